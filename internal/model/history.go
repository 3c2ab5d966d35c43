package model

import (
	"time"

	"github.com/google/uuid"
)

type HistoryEntryKind string

const (
	HistoryLesson     HistoryEntryKind = "lesson"
	HistoryPrepayment HistoryEntryKind = "prepayment"
)

// Цвета записей истории для отображения
const (
	ColorPaid       = "#4CAF50"
	ColorUnpaid     = "#F44336"
	ColorCancelled  = "#9E9E9E"
	ColorPrepayment = "#2196F3"
)

// CombinedHistoryEntry — запись объединённой истории уроков и предоплат.
// Производная проекция, не хранится
type CombinedHistoryEntry struct {
	Kind        HistoryEntryKind `json:"kind"`
	ID          uuid.UUID        `json:"id"`
	DateTime    time.Time        `json:"date_time"`
	Amount      int              `json:"amount"`
	SubjectName string           `json:"subject_name,omitempty"`
	EventType   LessonEventType  `json:"event_type,omitempty"`
	Color       string           `json:"color"`
}
