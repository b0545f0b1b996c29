package queue

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
	"github.com/portal28/scheduling-api/internal/models"
)

func (q *Queue) HandlePublishScheduleTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishSchedulePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	return q.PublishSchedule(ctx, payload.ScheduleID)
}

// PublishSchedule runs the publish action for one due schedule. Stale tasks
// are expected (cancelled or rescheduled records keep their original task)
// and must resolve as no-ops, so the record is re-read and then claimed with
// a conditional update before anything irreversible happens.
func (q *Queue) PublishSchedule(ctx context.Context, scheduleID string) error {
	schedule, found, err := q.sr.GetByID(ctx, scheduleID)
	if err != nil {
		return err
	}
	if !found || schedule.Status != models.ScheduleStatusPending {
		return nil
	}

	if !schedule.AutoPublish {
		if schedule.ScheduledFor.After(time.Now()) {
			// rescheduled into the future; the newer task covers it
			return nil
		}
		return q.ps.NotifyDue(ctx, schedule)
	}

	claimed, err := q.sr.ClaimByID(ctx, scheduleID, time.Now())
	if err != nil {
		return err
	}
	if !claimed {
		return nil
	}

	schedule.Status = models.ScheduleStatusPublished
	return q.ps.Execute(ctx, schedule)
}
