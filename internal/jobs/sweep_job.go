package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/portal28/scheduling-api/internal/service"
)

// SweepJob is the catch-up net behind the delayed task queue: any overdue
// auto-publish schedule whose task was lost (Redis downtime, missed ack) is
// claimed and published on the next tick.
type SweepJob struct {
	sr repository.ScheduleRepository
	ps service.PublishService
}

func NewSweepJob(sr repository.ScheduleRepository, ps service.PublishService) *SweepJob {
	return &SweepJob{
		sr: sr,
		ps: ps,
	}
}

const sweepBatchSize = 100

func (j *SweepJob) Sweep() {
	ctx := context.Background()

	for {
		claimed, err := j.sr.ClaimDue(ctx, time.Now(), sweepBatchSize)
		if err != nil {
			slog.Error("sweep failed to claim due schedules", "error", err)
			return
		}

		for _, schedule := range claimed {
			if err := j.ps.Execute(ctx, schedule); err != nil {
				slog.Error("sweep publish failed", "schedule_id", schedule.ID, "error", err)
			}
		}

		if len(claimed) < sweepBatchSize {
			return
		}
	}
}
