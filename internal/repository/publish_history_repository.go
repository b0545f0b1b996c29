package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/portal28/scheduling-api/internal/models"
)

type PublishHistoryRepository interface {
	Create(ctx context.Context, h *models.PublishHistory) (int64, error)
	ListByScheduleID(ctx context.Context, scheduleID string) ([]*models.PublishHistory, error)
}

type publishHistoryRepository struct {
	db *sql.DB
}

func NewPublishHistoryRepository(db *sql.DB) PublishHistoryRepository {
	return &publishHistoryRepository{db: db}
}

func (r *publishHistoryRepository) Create(ctx context.Context, h *models.PublishHistory) (int64, error) {
	query := `
		INSERT INTO publish_history (schedule_id, content_type, content_id, action, error_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, h.ScheduleID, h.ContentType, h.ContentID, h.Action, h.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}
	return id, nil
}

func (r *publishHistoryRepository) ListByScheduleID(ctx context.Context, scheduleID string) ([]*models.PublishHistory, error) {
	query := `
		SELECT id, schedule_id, content_type, content_id, action, error_message, created_at
		FROM publish_history
		WHERE schedule_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, scheduleID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var history []*models.PublishHistory
	for rows.Next() {
		var h models.PublishHistory
		err := rows.Scan(&h.ID, &h.ScheduleID, &h.ContentType, &h.ContentID, &h.Action, &h.ErrorMessage, &h.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		history = append(history, &h)
	}
	return history, nil
}
