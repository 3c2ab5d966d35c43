package service

import (
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator разворачивает недельные шаблоны предметов в конкретные уроки
type Generator struct {
	logger *zap.Logger
}

func NewGenerator(logger *zap.Logger) *Generator {
	return &Generator{logger: logger}
}

// Generate строит список уроков по предметам на закрытом интервале
// [StartDate, EndDate] каждого предмета, дедуплицируя против existing.
// Существующие записи не удаляются: совпавший по ключу (день, предмет,
// время начала) урок обновляется на месте (цена, признак прошедшего),
// id сохраняется. Непригодные предметы пропускаются и подсчитываются,
// это не ошибка. Вход не мутируется.
func (g *Generator) Generate(subjects []model.Subject, existing []model.Lesson, now time.Time) ([]model.Lesson, int) {
	result := make([]model.Lesson, len(existing))
	copy(result, existing)

	index := make(map[string]int, len(result))
	for i := range result {
		index[result[i].OccurrenceKey()] = i
	}

	skipped := 0
	created := 0
	for i := range subjects {
		subject := &subjects[i]
		if !subject.IsGeneratable() {
			skipped++
			g.logger.Warn("Subject skipped during generation",
				zap.String("name", subject.Name),
				zap.Time("start_date", subject.StartDate),
				zap.Time("end_date", subject.EndDate),
			)
			continue
		}

		start := dayOf(subject.StartDate)
		end := dayOf(subject.EndDate)

		for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
			day, ok := subject.Schedule[int(d.Weekday())]
			if !ok || !day.Enabled || len(day.Ranges) == 0 {
				continue
			}

			// Интервалы обходятся в порядке массива, без сортировки
			for _, r := range day.Ranges {
				startMin, endMin, err := r.Minutes()
				if err != nil || startMin >= endMin {
					continue
				}

				dateTime := time.Date(d.Year(), d.Month(), d.Day(),
					startMin/60, startMin%60, 0, 0, d.Location())
				hasPassed := dateTime.Before(now)
				startClock := model.FormatClock(startMin)
				endClock := model.FormatClock(endMin)

				key := dateTime.Format("2006-01-02") + "|" + subject.Name + "|" + startClock
				if idx, ok := index[key]; ok {
					updated := result[idx]
					updated.PaymentAmount = subject.Price
					updated.EndTime = endClock
					updated.HasPassed = hasPassed
					result[idx] = updated
					continue
				}

				lesson := model.Lesson{
					ID:              uuid.New(),
					DateTime:        dateTime,
					StartTime:       startClock,
					EndTime:         endClock,
					SubjectName:     subject.Name,
					PaymentAmount:   subject.Price,
					EventType:       model.LessonUnpaid,
					HasPassed:       hasPassed,
					IsCancelled:     false,
					IsAutoGenerated: true,
					CreatedAt:       now,
				}
				index[key] = len(result)
				result = append(result, lesson)
				created++
			}
		}
	}

	g.logger.Info("Lesson generation completed",
		zap.Int("subjects", len(subjects)),
		zap.Int("skipped_subjects", skipped),
		zap.Int("created", created),
		zap.Int("total", len(result)),
	)

	return result, skipped
}

// dayOf обрезает время до начала суток
func dayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
