package render

import (
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

// CalendarCell — свёртка одного календарного дня для отображения.
// Читающий потребитель результата сверки, ничего не мутирует
type CalendarCell struct {
	Date         time.Time      `json:"date"`
	Lessons      []model.Lesson `json:"lessons"`
	TotalAmount  int            `json:"total_amount"`
	PaidCount    int            `json:"paid_count"`
	UnpaidCount  int            `json:"unpaid_count"`
	HasCancelled bool           `json:"has_cancelled"`
}

// CalendarWeek — семь ячеек, начиная с понедельника
type CalendarWeek struct {
	Start time.Time      `json:"start"`
	Days  []CalendarCell `json:"days"`
}

// WeekStart возвращает понедельник недели, содержащей дату.
// Неделя в календаре отображается с понедельника, это чисто
// презентационное решение и не влияет на нумерацию дней в расписании
func WeekStart(date time.Time) time.Time {
	normalized := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	daysSinceMonday := int(normalized.Weekday()) - 1
	if normalized.Weekday() == time.Sunday {
		daysSinceMonday = 6
	}
	return normalized.AddDate(0, 0, -daysSinceMonday)
}

// BuildWeek раскладывает уроки по дням недели, содержащей date
func BuildWeek(date time.Time, lessons []model.Lesson) CalendarWeek {
	start := WeekStart(date)
	week := CalendarWeek{
		Start: start,
		Days:  make([]CalendarCell, 7),
	}

	byDay := make(map[string][]model.Lesson)
	for _, l := range lessons {
		key := l.DateTime.Format("2006-01-02")
		byDay[key] = append(byDay[key], l)
	}

	for i := 0; i < 7; i++ {
		day := start.AddDate(0, 0, i)
		cell := CalendarCell{Date: day}
		for _, l := range byDay[day.Format("2006-01-02")] {
			cell.Lessons = append(cell.Lessons, l)
			if l.IsCancelled {
				cell.HasCancelled = true
				continue
			}
			cell.TotalAmount += l.PaymentAmount
			if l.EventType == model.LessonPaid {
				cell.PaidCount++
			} else {
				cell.UnpaidCount++
			}
		}
		week.Days[i] = cell
	}

	return week
}
