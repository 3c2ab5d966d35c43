package repository

import (
	"context"
	"fmt"

	"github.com/Nopass0/repitnew_backend/internal/model"
	"github.com/Nopass0/repitnew_backend/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type PrepaymentRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewPrepaymentRepository(pool *pgxpool.Pool, logger *zap.Logger) *PrepaymentRepository {
	return &PrepaymentRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create создаёт новую предоплату
func (r *PrepaymentRepository) Create(ctx context.Context, prepayment *model.Prepayment) error {
	if prepayment.ID == uuid.Nil {
		prepayment.ID = uuid.New()
	}

	query := `
		INSERT INTO prepayments (id, amount, date_time)
		VALUES ($1, $2, $3)
	`

	_, err := r.ExecAffected(ctx, query, prepayment.ID, prepayment.Amount, prepayment.DateTime)
	if err != nil {
		r.logger.Error("Failed to insert prepayment",
			zap.Int("amount", prepayment.Amount),
			zap.Error(err))
		return fmt.Errorf("create prepayment: %w", err)
	}

	return nil
}

// GetAll получает все предоплаты в порядке возрастания даты
func (r *PrepaymentRepository) GetAll(ctx context.Context) ([]model.Prepayment, error) {
	query := `
		SELECT id, amount, date_time
		FROM prepayments
		ORDER BY date_time
	`

	rows, err := r.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("get all prepayments: %w", err)
	}
	defer rows.Close()

	var prepayments []model.Prepayment
	for rows.Next() {
		var p model.Prepayment
		if err := rows.Scan(&p.ID, &p.Amount, &p.DateTime); err != nil {
			return nil, fmt.Errorf("scan prepayment: %w", err)
		}
		prepayments = append(prepayments, p)
	}

	return prepayments, rows.Err()
}

// Update обновляет предоплату
func (r *PrepaymentRepository) Update(ctx context.Context, prepayment *model.Prepayment) error {
	affected, err := r.ExecAffected(ctx,
		`UPDATE prepayments SET amount = $2, date_time = $3 WHERE id = $1`,
		prepayment.ID, prepayment.Amount, prepayment.DateTime)
	if err != nil {
		return fmt.Errorf("update prepayment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("prepayment not found")
	}
	return nil
}

// Delete удаляет предоплату
func (r *PrepaymentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.ExecAffected(ctx, `DELETE FROM prepayments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete prepayment: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("prepayment not found")
	}
	return nil
}
