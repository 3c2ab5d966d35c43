package model

import (
	"time"

	"github.com/google/uuid"
)

type Subject struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Price     int            `json:"price"`    // в копейках/центах
	Duration  int            `json:"duration"` // в минутах
	StartDate time.Time      `json:"start_date"`
	EndDate   time.Time      `json:"end_date"`
	Schedule  WeeklySchedule `json:"schedule"`
	CreatedAt time.Time      `json:"created_at"`
}

// WeeklySchedule — недельный шаблон занятий.
// Ключ — день недели: 0 = Sunday, 6 = Saturday (как в time.Weekday).
// Исходные формы вводили расписание с понедельника, а поиск шёл по
// воскресной нумерации — здесь закреплён вариант time.Weekday, на него есть тест.
type WeeklySchedule map[int]DaySchedule

// DaySchedule описывает один день недельного шаблона
type DaySchedule struct {
	Enabled bool        `json:"enabled"`
	Ranges  []TimeRange `json:"ranges"`
}

// HasLessons сообщает, есть ли в расписании хотя бы один включённый день
// с непустым списком интервалов
func (ws WeeklySchedule) HasLessons() bool {
	for _, day := range ws {
		if day.Enabled && len(day.Ranges) > 0 {
			return true
		}
	}
	return false
}

// IsGeneratable проверяет, пригоден ли предмет для генерации уроков:
// непустое имя, заданные даты начала/конца и хотя бы один активный день
func (s *Subject) IsGeneratable() bool {
	if s.Name == "" {
		return false
	}
	if s.StartDate.IsZero() || s.EndDate.IsZero() {
		return false
	}
	if s.EndDate.Before(s.StartDate) {
		return false
	}
	return s.Schedule.HasLessons()
}
