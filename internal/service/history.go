package service

import (
	"sort"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

// CombinedHistory объединяет уроки и предоплаты в одну ленту,
// отсортированную по убыванию даты (свежие сверху)
func CombinedHistory(lessons []model.Lesson, prepayments []model.Prepayment) []model.CombinedHistoryEntry {
	entries := make([]model.CombinedHistoryEntry, 0, len(lessons)+len(prepayments))

	for i := range lessons {
		l := &lessons[i]
		entries = append(entries, model.CombinedHistoryEntry{
			Kind:        model.HistoryLesson,
			ID:          l.ID,
			DateTime:    l.DateTime,
			Amount:      l.PaymentAmount,
			SubjectName: l.SubjectName,
			EventType:   l.EventType,
			Color:       lessonColor(l.EventType),
		})
	}

	for i := range prepayments {
		p := &prepayments[i]
		entries = append(entries, model.CombinedHistoryEntry{
			Kind:     model.HistoryPrepayment,
			ID:       p.ID,
			DateTime: p.DateTime,
			Amount:   p.Amount,
			Color:    model.ColorPrepayment,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DateTime.After(entries[j].DateTime)
	})

	return entries
}

func lessonColor(eventType model.LessonEventType) string {
	switch eventType {
	case model.LessonPaid:
		return model.ColorPaid
	case model.LessonCancelled:
		return model.ColorCancelled
	default:
		return model.ColorUnpaid
	}
}
