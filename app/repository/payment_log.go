package repository

import (
	"context"

	"github.com/anseninnov/conference-registration/app/entity"
)

type PaymentLogRepository struct {
	db DBTX
}

func NewPaymentLogRepository(db DBTX) *PaymentLogRepository {
	return &PaymentLogRepository{db: db}
}

func (r *PaymentLogRepository) Create(ctx context.Context, log *entity.PaymentLog) error {
	query := `
		INSERT INTO payment_log (content, type, customer_id, create_time)
		VALUES (?, ?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		log.Content,
		log.Type,
		nullableUint64Value(log.CustomerID),
		log.CreateTime,
	)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	log.ID = uint64(id)

	return nil
}
