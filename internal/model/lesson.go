package model

import (
	"time"

	"github.com/google/uuid"
)

type LessonEventType string

const (
	LessonUnpaid    LessonEventType = "Не оплачено"
	LessonPaid      LessonEventType = "Оплачено"
	LessonCancelled LessonEventType = "Отменено"
)

type Lesson struct {
	ID                  uuid.UUID       `json:"id"`
	DateTime            time.Time       `json:"date_time"`
	StartTime           string          `json:"start_time"` // "HH:MM"
	EndTime             string          `json:"end_time"`   // "HH:MM"
	SubjectName         string          `json:"subject_name"`
	PaymentAmount       int             `json:"payment_amount"` // копия цены предмета на момент генерации
	EventType           LessonEventType `json:"event_type"`
	HasPassed           bool            `json:"has_passed"`
	IsCancelled         bool            `json:"is_cancelled"`
	IsAutoGenerated     bool            `json:"is_auto_generated"`
	RemainingPrepayment int             `json:"remaining_prepayment"` // заполняется только сверкой
	CreatedAt           time.Time       `json:"created_at"`
}

// OccurrenceKey — ключ дедупликации при генерации:
// календарный день + предмет + время начала.
// Время начала канонизируется, чтобы "9:30" и "09:30" давали один ключ
func (l *Lesson) OccurrenceKey() string {
	start := l.StartTime
	if normalized, err := NormalizeClock(start); err == nil {
		start = normalized
	}
	return l.DateTime.Format("2006-01-02") + "|" + l.SubjectName + "|" + start
}
