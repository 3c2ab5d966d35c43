package model

import (
	"fmt"
	"regexp"
)

// TimeRange — интервал внутри одного дня, границы в формате "HH:MM"
type TimeRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// ParseClock разбирает время "HH:MM" в минуты с начала суток
func ParseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid clock time %q", s)
	}
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock time %q: %w", s, err)
	}
	return h*60 + m, nil
}

// FormatClock форматирует минуты с начала суток в "HH:MM" с ведущим нулём
func FormatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// NormalizeClock приводит запись времени к канонической форме с ведущим
// нулём: "9:30" и "09:30" обозначают один момент и должны совпадать
func NormalizeClock(s string) (string, error) {
	minutes, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return FormatClock(minutes), nil
}

// Validate проверяет формат границ и что начало строго раньше конца
func (r TimeRange) Validate() error {
	start, err := ParseClock(r.Start)
	if err != nil {
		return err
	}
	end, err := ParseClock(r.End)
	if err != nil {
		return err
	}
	if start >= end {
		return fmt.Errorf("time range %s-%s: start must be before end", r.Start, r.End)
	}
	return nil
}

// Minutes возвращает границы интервала в минутах с начала суток
func (r TimeRange) Minutes() (start, end int, err error) {
	start, err = ParseClock(r.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err = ParseClock(r.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// Overlaps проверяет пересечение двух интервалов.
// Сравнение полуоткрытое: интервалы, соприкасающиеся границами
// (один кончается в 10:00, другой начинается в 10:00), не пересекаются.
func (r TimeRange) Overlaps(other TimeRange) bool {
	aStart, aEnd, err := r.Minutes()
	if err != nil {
		return false
	}
	bStart, bEnd, err := other.Minutes()
	if err != nil {
		return false
	}
	return aStart < bEnd && aEnd > bStart
}

// HasConflict проверяет, пересекается ли кандидат хотя бы с одним занятым интервалом
func HasConflict(candidate TimeRange, busy []TimeRange) bool {
	for _, b := range busy {
		if candidate.Overlaps(b) {
			return true
		}
	}
	return false
}
