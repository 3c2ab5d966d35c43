package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type SubjectRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewSubjectRepository(pool *pgxpool.Pool, logger *zap.Logger) *SubjectRepository {
	return &SubjectRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт новый предмет
func (r *SubjectRepository) Create(ctx context.Context, subject *model.Subject) error {
	schedule, err := json.Marshal(subject.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	if subject.ID == uuid.Nil {
		subject.ID = uuid.New()
	}

	query := `
		INSERT INTO subjects (id, name, price, duration, start_date, end_date, schedule)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING created_at
	`

	err = r.QueryRow(
		ctx, query,
		subject.ID,
		subject.Name,
		subject.Price,
		subject.Duration,
		subject.StartDate,
		subject.EndDate,
		schedule,
	).Scan(&subject.CreatedAt)

	if err != nil {
		r.logger.Error("Failed to insert subject into DB",
			zap.String("name", subject.Name),
			zap.Error(err))
		return fmt.Errorf("create subject: %w", err)
	}

	return nil
}

// GetByID получает предмет по ID
func (r *SubjectRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Subject, error) {
	query := `
		SELECT id, name, price, duration, start_date, end_date, schedule, created_at
		FROM subjects
		WHERE id = $1
	`

	subject, err := scanSubject(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subject by id: %w", err)
	}

	return subject, nil
}

// GetAll получает все предметы
func (r *SubjectRepository) GetAll(ctx context.Context) ([]model.Subject, error) {
	query := `
		SELECT id, name, price, duration, start_date, end_date, schedule, created_at
		FROM subjects
		ORDER BY created_at
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all subjects: %w", err)
	}
	defer rows.Close()

	var subjects []model.Subject
	for rows.Next() {
		subject, err := scanSubject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subject: %w", err)
		}
		subjects = append(subjects, *subject)
	}

	return subjects, rows.Err()
}

// Update обновляет предмет
func (r *SubjectRepository) Update(ctx context.Context, subject *model.Subject) error {
	schedule, err := json.Marshal(subject.Schedule)
	if err != nil {
		return fmt.Errorf("marshal schedule: %w", err)
	}

	query := `
		UPDATE subjects
		SET name = $2, price = $3, duration = $4, start_date = $5, end_date = $6, schedule = $7
		WHERE id = $1
	`

	affected, err := r.ExecAffected(ctx, query,
		subject.ID,
		subject.Name,
		subject.Price,
		subject.Duration,
		subject.StartDate,
		subject.EndDate,
		schedule,
	)
	if err != nil {
		return fmt.Errorf("update subject: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject not found")
	}

	return nil
}

// Delete удаляет предмет
func (r *SubjectRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM subjects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete subject: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("subject not found")
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSubject(row rowScanner) (*model.Subject, error) {
	var subject model.Subject
	var schedule []byte

	err := row.Scan(
		&subject.ID,
		&subject.Name,
		&subject.Price,
		&subject.Duration,
		&subject.StartDate,
		&subject.EndDate,
		&schedule,
		&subject.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(schedule) > 0 {
		if err := json.Unmarshal(schedule, &subject.Schedule); err != nil {
			return nil, fmt.Errorf("unmarshal schedule: %w", err)
		}
	}

	return &subject, nil
}
