package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ScheduleService — оркестрация генерации, сверки и CRUD вокруг ядра
type ScheduleService struct {
	subjectRepo    *repository.SubjectRepository
	lessonRepo     *repository.LessonRepository
	prepaymentRepo *repository.PrepaymentRepository
	generator      *Generator
	logger         *zap.Logger
}

func NewScheduleService(
	subjectRepo *repository.SubjectRepository,
	lessonRepo *repository.LessonRepository,
	prepaymentRepo *repository.PrepaymentRepository,
	generator *Generator,
	logger *zap.Logger,
) *ScheduleService {
	return &ScheduleService{
		subjectRepo:    subjectRepo,
		lessonRepo:     lessonRepo,
		prepaymentRepo: prepaymentRepo,
		generator:      generator,
		logger:         logger,
	}
}

// CreateSubject создаёт новый предмет
func (s *ScheduleService) CreateSubject(ctx context.Context, subject *model.Subject) error {
	if err := ValidateSubjects([]model.Subject{*subject}); err != nil {
		return err
	}

	if err := s.subjectRepo.Create(ctx, subject); err != nil {
		return fmt.Errorf("create subject: %w", err)
	}

	s.logger.Info("Subject created",
		zap.String("subject_id", subject.ID.String()),
		zap.String("name", subject.Name),
		zap.Int("price", subject.Price),
	)

	return nil
}

// UpdateSubject обновляет предмет
func (s *ScheduleService) UpdateSubject(ctx context.Context, subject *model.Subject) error {
	if err := ValidateSubjects([]model.Subject{*subject}); err != nil {
		return err
	}

	existing, err := s.subjectRepo.GetByID(ctx, subject.ID)
	if err != nil {
		return fmt.Errorf("get subject: %w", err)
	}
	if existing == nil {
		return fmt.Errorf("subject not found")
	}

	if err := s.subjectRepo.Update(ctx, subject); err != nil {
		return fmt.Errorf("update subject: %w", err)
	}

	s.logger.Info("Subject updated", zap.String("subject_id", subject.ID.String()))
	return nil
}

// GetSubjects возвращает все предметы
func (s *ScheduleService) GetSubjects(ctx context.Context) ([]model.Subject, error) {
	return s.subjectRepo.GetAll(ctx)
}

// DeleteSubject удаляет предмет
func (s *ScheduleService) DeleteSubject(ctx context.Context, id uuid.UUID) error {
	return s.subjectRepo.Delete(ctx, id)
}

// AddPrepayment создаёт предоплату
func (s *ScheduleService) AddPrepayment(ctx context.Context, prepayment *model.Prepayment) error {
	if err := ValidatePrepayments([]model.Prepayment{*prepayment}); err != nil {
		return err
	}

	if err := s.prepaymentRepo.Create(ctx, prepayment); err != nil {
		return fmt.Errorf("add prepayment: %w", err)
	}

	s.logger.Info("Prepayment added",
		zap.String("prepayment_id", prepayment.ID.String()),
		zap.Int("amount", prepayment.Amount),
		zap.Time("date_time", prepayment.DateTime),
	)

	return nil
}

// GetPrepayments возвращает все предоплаты
func (s *ScheduleService) GetPrepayments(ctx context.Context) ([]model.Prepayment, error) {
	return s.prepaymentRepo.GetAll(ctx)
}

// DeletePrepayment удаляет предоплату
func (s *ScheduleService) DeletePrepayment(ctx context.Context, id uuid.UUID) error {
	return s.prepaymentRepo.Delete(ctx, id)
}

// GetLessons возвращает все уроки
func (s *ScheduleService) GetLessons(ctx context.Context) ([]model.Lesson, error) {
	return s.lessonRepo.GetAll(ctx)
}

// AddManualLesson добавляет урок вручную с проверкой пересечений
// по занятым интервалам того же дня
func (s *ScheduleService) AddManualLesson(ctx context.Context, lesson *model.Lesson) error {
	if err := ValidateLessons([]model.Lesson{*lesson}); err != nil {
		return err
	}

	candidate := model.TimeRange{Start: lesson.StartTime, End: lesson.EndTime}
	if err := candidate.Validate(); err != nil {
		return &ValidationError{Field: "lesson.time", Reason: err.Error()}
	}

	// Время хранится в канонической форме, чтобы "9:30" и "09:30"
	// считались одним временем начала
	if normalized, err := model.NormalizeClock(lesson.StartTime); err == nil {
		lesson.StartTime = normalized
	}
	if normalized, err := model.NormalizeClock(lesson.EndTime); err == nil {
		lesson.EndTime = normalized
	}

	sameDay, err := s.lessonRepo.GetByDay(ctx, lesson.DateTime)
	if err != nil {
		return fmt.Errorf("get lessons for day: %w", err)
	}

	busy := make([]model.TimeRange, 0, len(sameDay))
	for i := range sameDay {
		if sameDay[i].IsCancelled {
			continue
		}
		busy = append(busy, model.TimeRange{Start: sameDay[i].StartTime, End: sameDay[i].EndTime})
	}

	if model.HasConflict(candidate, busy) {
		return &ValidationError{
			Field:  "lesson.time",
			Reason: fmt.Sprintf("range %s-%s overlaps an existing lesson", lesson.StartTime, lesson.EndTime),
		}
	}

	lesson.IsAutoGenerated = false
	if lesson.EventType == "" {
		lesson.EventType = model.LessonUnpaid
	}
	lesson.HasPassed = lesson.DateTime.Before(time.Now())

	if err := s.lessonRepo.Create(ctx, lesson); err != nil {
		return fmt.Errorf("add manual lesson: %w", err)
	}

	s.logger.Info("Manual lesson added",
		zap.String("lesson_id", lesson.ID.String()),
		zap.String("subject_name", lesson.SubjectName),
		zap.Time("date_time", lesson.DateTime),
	)

	return nil
}

// CancelLesson помечает урок отменённым
func (s *ScheduleService) CancelLesson(ctx context.Context, id uuid.UUID) error {
	if err := s.lessonRepo.SetCancelled(ctx, id, true); err != nil {
		return err
	}
	s.logger.Info("Lesson cancelled", zap.String("lesson_id", id.String()))
	return nil
}

// RestoreLesson снимает отмену с урока
func (s *ScheduleService) RestoreLesson(ctx context.Context, id uuid.UUID) error {
	if err := s.lessonRepo.SetCancelled(ctx, id, false); err != nil {
		return err
	}
	s.logger.Info("Lesson restored", zap.String("lesson_id", id.String()))
	return nil
}

// RefreshLessons прогоняет генератор по всем предметам и сохраняет
// новые и изменившиеся уроки
func (s *ScheduleService) RefreshLessons(ctx context.Context, now time.Time) error {
	subjects, err := s.subjectRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("get subjects: %w", err)
	}

	existing, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("get lessons: %w", err)
	}

	if err := ValidateSubjects(subjects); err != nil {
		return err
	}

	generated, skipped := s.generator.Generate(subjects, existing, now)

	for i := range generated {
		if !generated[i].IsAutoGenerated {
			continue
		}
		if err := s.lessonRepo.Upsert(ctx, &generated[i]); err != nil {
			return fmt.Errorf("persist generated lesson: %w", err)
		}
	}

	s.logger.Info("Lessons refreshed",
		zap.Int("subjects", len(subjects)),
		zap.Int("skipped_subjects", skipped),
		zap.Int("lessons", len(generated)),
	)

	return nil
}

// ReconcileAll загружает уроки и предоплаты, выполняет сверку и
// сохраняет статусы с остатками. Возвращает сверенные уроки и агрегаты
func (s *ScheduleService) ReconcileAll(ctx context.Context) ([]model.Lesson, model.Stats, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return nil, model.Stats{}, fmt.Errorf("get lessons: %w", err)
	}

	prepayments, err := s.prepaymentRepo.GetAll(ctx)
	if err != nil {
		return nil, model.Stats{}, fmt.Errorf("get prepayments: %w", err)
	}

	if err := ValidateLessons(lessons); err != nil {
		return nil, model.Stats{}, err
	}
	if err := ValidatePrepayments(prepayments); err != nil {
		return nil, model.Stats{}, err
	}

	for _, idx := range RefreshPassage(lessons, time.Now()) {
		if err := s.lessonRepo.SetPassed(ctx, lessons[idx].ID, lessons[idx].HasPassed); err != nil {
			return nil, model.Stats{}, fmt.Errorf("persist lesson passage: %w", err)
		}
	}

	reconciled := Reconcile(lessons, prepayments)

	for i := range reconciled {
		before := &lessons[i]
		after := &reconciled[i]
		if before.EventType == after.EventType && before.RemainingPrepayment == after.RemainingPrepayment {
			continue
		}
		if err := s.lessonRepo.UpdateReconciliation(ctx, after.ID, after.EventType, after.RemainingPrepayment); err != nil {
			return nil, model.Stats{}, fmt.Errorf("persist reconciliation: %w", err)
		}
	}

	stats := ComputeStats(reconciled)

	s.logger.Info("Reconciliation completed",
		zap.Int("lessons", len(reconciled)),
		zap.Int("prepayments", len(prepayments)),
		zap.Int("paid", stats.PaidLessons),
		zap.Int("unpaid", stats.UnpaidLessons),
		zap.Int("debt", stats.Debt),
	)

	return reconciled, stats, nil
}

// History возвращает объединённую историю уроков и предоплат
func (s *ScheduleService) History(ctx context.Context) ([]model.CombinedHistoryEntry, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get lessons: %w", err)
	}

	prepayments, err := s.prepaymentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get prepayments: %w", err)
	}

	return CombinedHistory(lessons, prepayments), nil
}

// Stats возвращает агрегаты по всем урокам
func (s *ScheduleService) Stats(ctx context.Context) (model.Stats, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("get lessons: %w", err)
	}
	return ComputeStats(lessons), nil
}

// StatsForSubject возвращает агрегаты по одному предмету
func (s *ScheduleService) StatsForSubject(ctx context.Context, subjectName string) (model.Stats, error) {
	lessons, err := s.lessonRepo.GetAll(ctx)
	if err != nil {
		return model.Stats{}, fmt.Errorf("get lessons: %w", err)
	}
	return SubjectStats(lessons, subjectName), nil
}
