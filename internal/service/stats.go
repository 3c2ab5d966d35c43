package service

import "github.com/Nopass0/repitnew_backend/internal/model"

// ComputeStats сворачивает уроки в агрегаты. Отменённые уроки не
// участвуют ни в общих суммах, ни в оплачено/не оплачено
func ComputeStats(lessons []model.Lesson) model.Stats {
	var st model.Stats
	for i := range lessons {
		l := &lessons[i]
		if l.IsCancelled {
			continue
		}
		st.TotalLessons++
		st.TotalAmount += l.PaymentAmount
		if l.HasPassed {
			st.CompletedLessons++
		}
		if l.EventType == model.LessonPaid {
			st.PaidLessons++
			st.PaidAmount += l.PaymentAmount
		} else {
			st.UnpaidLessons++
			st.UnpaidAmount += l.PaymentAmount
			if l.HasPassed {
				st.Debt += l.PaymentAmount
			}
		}
	}
	return st
}

// SubjectStats — те же агрегаты, ограниченные одним предметом
func SubjectStats(lessons []model.Lesson, subjectName string) model.Stats {
	filtered := make([]model.Lesson, 0, len(lessons))
	for _, l := range lessons {
		if l.SubjectName == subjectName {
			filtered = append(filtered, l)
		}
	}
	return ComputeStats(filtered)
}
