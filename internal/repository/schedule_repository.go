package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"
	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/pkg/apperr"
)

type ScheduleFilter struct {
	ContentType string
	Status      string
	Limit       int
	Offset      int
}

type ScheduleRepository interface {
	Create(ctx context.Context, s *models.ScheduledContent) error
	GetByID(ctx context.Context, id string) (*models.ScheduledContent, bool, error)
	List(ctx context.Context, f ScheduleFilter) ([]*models.ScheduledContent, int, error)
	UpdatePending(ctx context.Context, s *models.ScheduledContent) (bool, error)
	ClaimByID(ctx context.Context, id string, now time.Time) (bool, error)
	ClaimDue(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledContent, error)
}

type scheduleRepository struct {
	db *sql.DB
}

func NewScheduleRepository(db *sql.DB) ScheduleRepository {
	return &scheduleRepository{db: db}
}

const scheduleColumns = "id, content_type, content_id, scheduled_for, timezone, auto_publish, publish_action, status, created_by, created_at, updated_at"

// Create inserts the schedule. One pending schedule per content target is
// enforced by the partial unique index on (content_type, content_id) WHERE
// status = 'pending'; a violation is reported as apperr.ErrConflict. There
// is deliberately no prior existence check, so concurrent creates race on
// the index instead of each other.
func (r *scheduleRepository) Create(ctx context.Context, s *models.ScheduledContent) error {
	query := `
		INSERT INTO scheduled_content (id, content_type, content_id, scheduled_for, timezone, auto_publish, publish_action, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ID, s.ContentType, s.ContentID, s.ScheduledFor, s.Timezone,
		s.AutoPublish, nullableJSON(s.PublishAction), s.Status, s.CreatedBy,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperr.ErrConflict
		}
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *scheduleRepository) GetByID(ctx context.Context, id string) (*models.ScheduledContent, bool, error) {
	query := fmt.Sprintf("SELECT %s FROM scheduled_content WHERE id = $1", scheduleColumns)
	s, err := scanSchedule(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, false, nil
		}
		slog.Info(err.Error())
		return nil, false, err
	}
	return s, true, nil
}

func (r *scheduleRepository) List(ctx context.Context, f ScheduleFilter) ([]*models.ScheduledContent, int, error) {
	where := "WHERE 1=1"
	args := []any{}

	if f.ContentType != "" {
		args = append(args, f.ContentType)
		where += fmt.Sprintf(" AND content_type = $%d", len(args))
	}
	if f.Status != "" {
		args = append(args, f.Status)
		where += fmt.Sprintf(" AND status = $%d", len(args))
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM scheduled_content " + where
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}

	args = append(args, f.Limit, f.Offset)
	query := fmt.Sprintf(
		"SELECT %s FROM scheduled_content %s ORDER BY scheduled_for ASC LIMIT $%d OFFSET $%d",
		scheduleColumns, where, len(args)-1, len(args),
	)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	defer rows.Close()

	var schedules []*models.ScheduledContent
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, 0, err
		}
		schedules = append(schedules, s)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, 0, err
	}
	return schedules, total, nil
}

// UpdatePending writes the mutable fields of a schedule. The pending guard
// lives in the WHERE clause so an update racing the publish pipeline loses
// cleanly; the caller gets false when the row already left pending.
func (r *scheduleRepository) UpdatePending(ctx context.Context, s *models.ScheduledContent) (bool, error) {
	query := `
		UPDATE scheduled_content
		SET scheduled_for = $1, timezone = $2, auto_publish = $3, publish_action = $4, status = $5, updated_at = now()
		WHERE id = $6 AND status = $7
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		s.ScheduledFor, s.Timezone, s.AutoPublish, nullableJSON(s.PublishAction),
		s.Status, s.ID, models.ScheduleStatusPending,
	).Scan(&s.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

// ClaimByID atomically moves one due, pending schedule to published.
// Returns false when the record was already claimed, rescheduled past now,
// or cancelled, which makes redundant publish tasks harmless no-ops.
func (r *scheduleRepository) ClaimByID(ctx context.Context, id string, now time.Time) (bool, error) {
	query := `
		UPDATE scheduled_content
		SET status = $1, updated_at = now()
		WHERE id = $2 AND status = $3 AND scheduled_for <= $4
		RETURNING id
	`

	var claimed string
	err := r.db.QueryRowContext(ctx, query, models.ScheduleStatusPublished, id, models.ScheduleStatusPending, now).Scan(&claimed)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		slog.Info(err.Error())
		return false, err
	}
	return true, nil
}

// ClaimDue claims every overdue auto-publish schedule, at most once per row
// across concurrent sweeps (SKIP LOCKED), and returns the claimed records.
func (r *scheduleRepository) ClaimDue(ctx context.Context, now time.Time, limit int) ([]*models.ScheduledContent, error) {
	query := fmt.Sprintf(`
		UPDATE scheduled_content
		SET status = $1, updated_at = now()
		WHERE id IN (
			SELECT id FROM scheduled_content
			WHERE status = $2 AND auto_publish AND scheduled_for <= $3
			ORDER BY scheduled_for ASC
			LIMIT $4
			FOR UPDATE SKIP LOCKED
		)
		RETURNING %s
	`, scheduleColumns)

	rows, err := r.db.QueryContext(ctx, query, models.ScheduleStatusPublished, models.ScheduleStatusPending, now, limit)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var claimed []*models.ScheduledContent
	for rows.Next() {
		s, err := scanSchedule(rows)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		claimed = append(claimed, s)
	}
	if err := rows.Err(); err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	return claimed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSchedule(row rowScanner) (*models.ScheduledContent, error) {
	var s models.ScheduledContent
	var action []byte
	err := row.Scan(
		&s.ID, &s.ContentType, &s.ContentID, &s.ScheduledFor, &s.Timezone,
		&s.AutoPublish, &action, &s.Status, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.PublishAction = action
	return &s, nil
}

func nullableJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return raw
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
