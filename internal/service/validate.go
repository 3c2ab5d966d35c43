package service

import (
	"errors"
	"fmt"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

// ValidationError — ошибка формы или диапазона входных данных.
// Возвращается до запуска генерации или сверки, частичного применения нет
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s: %s", e.Field, e.Reason)
}

// IsValidationError сообщает, является ли ошибка ошибкой валидации
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ValidateSubjects проверяет предметы перед генерацией.
// Непригодные для генерации предметы (пустое имя, нет дат) здесь не
// отклоняются — их молча пропустит генератор. Отклоняются только
// заведомо некорректные значения
func ValidateSubjects(subjects []model.Subject) error {
	for i := range subjects {
		s := &subjects[i]
		if s.Price < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("subjects[%d].price", i),
				Reason: "must not be negative",
			}
		}
		if !s.StartDate.IsZero() && !s.EndDate.IsZero() && s.EndDate.Before(s.StartDate) {
			return &ValidationError{
				Field:  fmt.Sprintf("subjects[%d].end_date", i),
				Reason: "must not be before start_date",
			}
		}
		for weekday, day := range s.Schedule {
			if weekday < 0 || weekday > 6 {
				return &ValidationError{
					Field:  fmt.Sprintf("subjects[%d].schedule", i),
					Reason: fmt.Sprintf("weekday %d out of range 0-6", weekday),
				}
			}
			if !day.Enabled {
				continue
			}
			for j, r := range day.Ranges {
				if err := r.Validate(); err != nil {
					return &ValidationError{
						Field:  fmt.Sprintf("subjects[%d].schedule[%d].ranges[%d]", i, weekday, j),
						Reason: err.Error(),
					}
				}
			}
		}
	}
	return nil
}

// ValidatePrepayments проверяет предоплаты перед сверкой
func ValidatePrepayments(prepayments []model.Prepayment) error {
	for i := range prepayments {
		p := &prepayments[i]
		if p.Amount <= 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("prepayments[%d].amount", i),
				Reason: "must be positive",
			}
		}
		if p.DateTime.IsZero() {
			return &ValidationError{
				Field:  fmt.Sprintf("prepayments[%d].date_time", i),
				Reason: "must be set",
			}
		}
	}
	return nil
}

// ValidateLessons проверяет уроки перед сверкой
func ValidateLessons(lessons []model.Lesson) error {
	for i := range lessons {
		l := &lessons[i]
		if l.PaymentAmount < 0 {
			return &ValidationError{
				Field:  fmt.Sprintf("lessons[%d].payment_amount", i),
				Reason: "must not be negative",
			}
		}
		if l.DateTime.IsZero() {
			return &ValidationError{
				Field:  fmt.Sprintf("lessons[%d].date_time", i),
				Reason: "must be set",
			}
		}
	}
	return nil
}
