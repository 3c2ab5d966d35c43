package service

import (
	"testing"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
)

func TestValidateSubjects(t *testing.T) {
	valid := mathSubject()

	tests := []struct {
		name    string
		mutate  func(*model.Subject)
		wantErr bool
	}{
		{name: "valid subject", mutate: func(s *model.Subject) {}},
		{name: "negative price", mutate: func(s *model.Subject) { s.Price = -1 }, wantErr: true},
		{
			name:    "end date before start date",
			mutate:  func(s *model.Subject) { s.EndDate = s.StartDate.AddDate(0, 0, -1) },
			wantErr: true,
		},
		{
			name: "weekday out of range",
			mutate: func(s *model.Subject) {
				s.Schedule[7] = model.DaySchedule{Enabled: true}
			},
			wantErr: true,
		},
		{
			name: "malformed time range on enabled day",
			mutate: func(s *model.Subject) {
				s.Schedule[1] = model.DaySchedule{
					Enabled: true,
					Ranges:  []model.TimeRange{{Start: "11:00", End: "10:00"}},
				}
			},
			wantErr: true,
		},
		{
			name: "malformed range on disabled day is ignored",
			mutate: func(s *model.Subject) {
				s.Schedule[2] = model.DaySchedule{
					Enabled: false,
					Ranges:  []model.TimeRange{{Start: "bad", End: "worse"}},
				}
			},
		},
		{
			name:   "incomplete subject passes validation and is skipped later",
			mutate: func(s *model.Subject) { s.Name = ""; s.StartDate = time.Time{} },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			subject := valid
			subject.Schedule = model.WeeklySchedule{}
			for k, v := range valid.Schedule {
				subject.Schedule[k] = v
			}
			tt.mutate(&subject)

			err := ValidateSubjects([]model.Subject{subject})
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateSubjects() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !IsValidationError(err) {
				t.Errorf("error %v is not a ValidationError", err)
			}
		})
	}
}

func TestValidatePrepayments(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	if err := ValidatePrepayments([]model.Prepayment{{Amount: 100, DateTime: now}}); err != nil {
		t.Errorf("valid prepayment rejected: %v", err)
	}
	if err := ValidatePrepayments([]model.Prepayment{{Amount: 0, DateTime: now}}); err == nil {
		t.Error("zero amount accepted")
	}
	if err := ValidatePrepayments([]model.Prepayment{{Amount: -5, DateTime: now}}); err == nil {
		t.Error("negative amount accepted")
	}
	if err := ValidatePrepayments([]model.Prepayment{{Amount: 100}}); err == nil {
		t.Error("zero date accepted")
	}
}

func TestValidateLessons(t *testing.T) {
	if err := ValidateLessons([]model.Lesson{lessonAt(1, 10, 1000)}); err != nil {
		t.Errorf("valid lesson rejected: %v", err)
	}

	bad := lessonAt(1, 10, -100)
	if err := ValidateLessons([]model.Lesson{bad}); err == nil {
		t.Error("negative payment amount accepted")
	}
}
