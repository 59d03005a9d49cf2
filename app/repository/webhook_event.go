package repository

import (
	"context"
	"errors"

	"github.com/anseninnov/conference-registration/app/entity"
)

// ErrEventAlreadySeen reports a duplicate provider event id; the caller
// treats the delivery as already processed.
var ErrEventAlreadySeen = errors.New("webhook event already seen")

type WebhookEventRepository struct {
	db DBTX
}

func NewWebhookEventRepository(db DBTX) *WebhookEventRepository {
	return &WebhookEventRepository{db: db}
}

func (r *WebhookEventRepository) Create(ctx context.Context, event *entity.WebhookEvent) error {
	query := `
		INSERT INTO webhook_events (event_id, event_type, created_at)
		VALUES (?, ?, ?)
	`

	result, err := r.db.ExecContext(ctx, query,
		event.EventID,
		event.EventType,
		event.CreatedAt,
	)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrEventAlreadySeen
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	event.ID = uint64(id)

	return nil
}
