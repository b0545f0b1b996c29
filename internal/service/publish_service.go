package service

import (
	"context"
	"log/slog"

	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/repository"
)

// PublishService runs publish actions for claimed schedules and records the
// outcome. Callers must have claimed the record first (status already
// flipped to published); a failed action is logged in publish history, never
// retried here.
type PublishService interface {
	Execute(ctx context.Context, schedule *models.ScheduledContent) error
	NotifyDue(ctx context.Context, schedule *models.ScheduledContent) error
}

type PublishFunc func(ctx context.Context, contentID int64) error

type publishService struct {
	ph         repository.PublishHistoryRepository
	publishers map[string]PublishFunc
}

func NewPublishService(cr repository.ContentRepository, ph repository.PublishHistoryRepository) PublishService {
	return &publishService{
		ph: ph,
		publishers: map[string]PublishFunc{
			models.ContentTypeCourse:       cr.PublishCourse,
			models.ContentTypeLesson:       cr.PublishLesson,
			models.ContentTypeAnnouncement: cr.PublishAnnouncement,
			models.ContentTypePost:         cr.PublishPost,
		},
	}
}

func (s *publishService) Execute(ctx context.Context, schedule *models.ScheduledContent) error {
	action := models.PublishActionPublished
	var execErr error

	if publish, ok := s.publishers[schedule.ContentType]; ok {
		execErr = publish(ctx, schedule.ContentID)
	} else {
		// Email delivery and video uploads happen outside this service; the
		// history row carrying the opaque publish action is the handoff.
		action = models.PublishActionHandoff
	}

	history := models.PublishHistory{
		ScheduleID:  schedule.ID,
		ContentType: schedule.ContentType,
		ContentID:   schedule.ContentID,
		Action:      action,
	}
	if execErr != nil {
		history.ErrorMessage = execErr.Error()
		slog.Error("publish action failed", "schedule_id", schedule.ID, "error", execErr)
	}
	if _, err := s.ph.Create(ctx, &history); err != nil {
		slog.Error("failed to record publish history", "schedule_id", schedule.ID, "error", err)
	}
	return execErr
}

// NotifyDue records that a schedule without auto-publish came due. The
// record stays pending for manual action.
func (s *publishService) NotifyDue(ctx context.Context, schedule *models.ScheduledContent) error {
	history := models.PublishHistory{
		ScheduleID:  schedule.ID,
		ContentType: schedule.ContentType,
		ContentID:   schedule.ContentID,
		Action:      models.PublishActionNotified,
	}
	if _, err := s.ph.Create(ctx, &history); err != nil {
		slog.Error("failed to record due notification", "schedule_id", schedule.ID, "error", err)
		return err
	}
	return nil
}
