package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type LessonRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewLessonRepository(pool *pgxpool.Pool, logger *zap.Logger) *LessonRepository {
	return &LessonRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

const lessonColumns = `
	id, date_time, start_time, end_time, subject_name, payment_amount,
	event_type, has_passed, is_cancelled, is_auto_generated,
	remaining_prepayment, created_at
`

// Upsert создаёт урок или обновляет существующий по ключу генерации
// (календарный день, предмет, время начала). Id существующей записи
// сохраняется, поэтому повторная генерация не плодит дубликаты
func (r *LessonRepository) Upsert(ctx context.Context, lesson *model.Lesson) error {
	query := `
		INSERT INTO lessons (
			id, lesson_date, date_time, start_time, end_time, subject_name,
			payment_amount, event_type, has_passed, is_cancelled,
			is_auto_generated, remaining_prepayment
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (lesson_date, subject_name, start_time) DO UPDATE
		SET payment_amount = EXCLUDED.payment_amount,
		    end_time = EXCLUDED.end_time,
		    has_passed = EXCLUDED.has_passed
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		lesson.ID,
		lesson.DateTime.Format("2006-01-02"),
		lesson.DateTime,
		lesson.StartTime,
		lesson.EndTime,
		lesson.SubjectName,
		lesson.PaymentAmount,
		lesson.EventType,
		lesson.HasPassed,
		lesson.IsCancelled,
		lesson.IsAutoGenerated,
		lesson.RemainingPrepayment,
	).Scan(&lesson.ID, &lesson.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to upsert lesson",
			zap.String("subject_name", lesson.SubjectName),
			zap.Time("date_time", lesson.DateTime),
			zap.Error(err))
		return fmt.Errorf("upsert lesson: %w", err)
	}

	return nil
}

// Create создаёт урок, добавленный вручную
func (r *LessonRepository) Create(ctx context.Context, lesson *model.Lesson) error {
	if lesson.ID == uuid.Nil {
		lesson.ID = uuid.New()
	}

	query := `
		INSERT INTO lessons (
			id, lesson_date, date_time, start_time, end_time, subject_name,
			payment_amount, event_type, has_passed, is_cancelled,
			is_auto_generated, remaining_prepayment
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at
	`

	err := r.QueryRow(
		ctx, query,
		lesson.ID,
		lesson.DateTime.Format("2006-01-02"),
		lesson.DateTime,
		lesson.StartTime,
		lesson.EndTime,
		lesson.SubjectName,
		lesson.PaymentAmount,
		lesson.EventType,
		lesson.HasPassed,
		lesson.IsCancelled,
		lesson.IsAutoGenerated,
		lesson.RemainingPrepayment,
	).Scan(&lesson.CreatedAt)

	if err != nil {
		return fmt.Errorf("create lesson: %w", err)
	}

	return nil
}

// GetByID получает урок по ID
func (r *LessonRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE id = $1`

	lesson, err := scanLesson(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get lesson by id: %w", err)
	}

	return lesson, nil
}

// GetAll получает все уроки в порядке возрастания даты
func (r *LessonRepository) GetAll(ctx context.Context) ([]model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons ORDER BY date_time, created_at`
	return r.queryLessons(ctx, query)
}

// GetByDay получает уроки одного календарного дня для проверки пересечений
func (r *LessonRepository) GetByDay(ctx context.Context, day time.Time) ([]model.Lesson, error) {
	query := `SELECT ` + lessonColumns + ` FROM lessons WHERE lesson_date = $1 ORDER BY start_time`
	return r.queryLessons(ctx, query, day.Format("2006-01-02"))
}

// SetCancelled помечает урок отменённым или снимает отмену
func (r *LessonRepository) SetCancelled(ctx context.Context, id uuid.UUID, cancelled bool) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE lessons SET is_cancelled = $2 WHERE id = $1`, id, cancelled)
	if err != nil {
		return fmt.Errorf("set lesson cancelled: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}
	return nil
}

// SetPassed сохраняет признак прошедшего урока
func (r *LessonRepository) SetPassed(ctx context.Context, id uuid.UUID, passed bool) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE lessons SET has_passed = $2 WHERE id = $1`, id, passed)
	if err != nil {
		return fmt.Errorf("set lesson passed: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}
	return nil
}

// UpdateReconciliation сохраняет результат сверки для урока
func (r *LessonRepository) UpdateReconciliation(ctx context.Context, id uuid.UUID, eventType model.LessonEventType, remaining int) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE lessons SET event_type = $2, remaining_prepayment = $3 WHERE id = $1`,
		id, eventType, remaining)
	if err != nil {
		return fmt.Errorf("update lesson reconciliation: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}
	return nil
}

// Delete удаляет урок
func (r *LessonRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM lessons WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lesson: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("lesson not found")
	}
	return nil
}

func (r *LessonRepository) queryLessons(ctx context.Context, query string, args ...interface{}) ([]model.Lesson, error) {
	rows, err := r.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lessons: %w", err)
	}
	defer rows.Close()

	var lessons []model.Lesson
	for rows.Next() {
		lesson, err := scanLesson(rows)
		if err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		lessons = append(lessons, *lesson)
	}

	return lessons, rows.Err()
}

func scanLesson(row rowScanner) (*model.Lesson, error) {
	var lesson model.Lesson
	err := row.Scan(
		&lesson.ID,
		&lesson.DateTime,
		&lesson.StartTime,
		&lesson.EndTime,
		&lesson.SubjectName,
		&lesson.PaymentAmount,
		&lesson.EventType,
		&lesson.HasPassed,
		&lesson.IsCancelled,
		&lesson.IsAutoGenerated,
		&lesson.RemainingPrepayment,
		&lesson.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &lesson, nil
}
