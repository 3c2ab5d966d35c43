package api

import (
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/go-playground/validator/v10"
)

// NewValidator создаёт валидатор запросов с правилом "hhmm"
// для времени в формате "HH:MM"
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		_, err := model.ParseClock(fl.Field().String())
		return err == nil
	})
	return v
}

type TimeRangeRequest struct {
	Start string `json:"start" validate:"required,hhmm"`
	End   string `json:"end" validate:"required,hhmm"`
}

type DayScheduleRequest struct {
	Enabled bool               `json:"enabled"`
	Ranges  []TimeRangeRequest `json:"ranges" validate:"dive"`
}

type CreateSubjectRequest struct {
	Name      string                     `json:"name" validate:"required"`
	Price     int                        `json:"price" validate:"gte=0"`
	Duration  int                        `json:"duration" validate:"gt=0"`
	StartDate time.Time                  `json:"start_date" validate:"required"`
	EndDate   time.Time                  `json:"end_date" validate:"required"`
	Schedule  map[int]DayScheduleRequest `json:"schedule" validate:"dive"`
}

// ToModel собирает предмет из запроса
func (r *CreateSubjectRequest) ToModel() model.Subject {
	schedule := make(model.WeeklySchedule, len(r.Schedule))
	for weekday, day := range r.Schedule {
		ranges := make([]model.TimeRange, 0, len(day.Ranges))
		for _, tr := range day.Ranges {
			ranges = append(ranges, model.TimeRange{Start: tr.Start, End: tr.End})
		}
		schedule[weekday] = model.DaySchedule{Enabled: day.Enabled, Ranges: ranges}
	}
	return model.Subject{
		Name:      r.Name,
		Price:     r.Price,
		Duration:  r.Duration,
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
		Schedule:  schedule,
	}
}

type CreatePrepaymentRequest struct {
	Amount   int       `json:"amount" validate:"gt=0"`
	DateTime time.Time `json:"date_time" validate:"required"`
}

type CreateLessonRequest struct {
	SubjectName   string    `json:"subject_name" validate:"required"`
	DateTime      time.Time `json:"date_time" validate:"required"`
	StartTime     string    `json:"start_time" validate:"required,hhmm"`
	EndTime       string    `json:"end_time" validate:"required,hhmm"`
	PaymentAmount int       `json:"payment_amount" validate:"gte=0"`
}

// ReconcileRequest — полный снимок входных данных для чистого пересчёта.
// Обрабатывается без обращения к базе
type ReconcileRequest struct {
	Subjects        []model.Subject    `json:"subjects"`
	Prepayments     []model.Prepayment `json:"prepayments"`
	ExistingLessons []model.Lesson     `json:"existingLessons"`
	Now             time.Time          `json:"now" validate:"required"`
}

type ReconcileResponse struct {
	Lessons []model.Lesson `json:"lessons"`
	Stats   model.Stats    `json:"stats"`
}
