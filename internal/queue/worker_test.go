package queue

import (
	"context"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubScheduleRepo struct {
	schedule   *models.ScheduledContent
	claimed    bool
	claimCalls int
}

func (r *stubScheduleRepo) Create(context.Context, *models.ScheduledContent) error { return nil }

func (r *stubScheduleRepo) GetByID(context.Context, string) (*models.ScheduledContent, bool, error) {
	if r.schedule == nil {
		return nil, false, nil
	}
	copied := *r.schedule
	return &copied, true, nil
}

func (r *stubScheduleRepo) List(context.Context, repository.ScheduleFilter) ([]*models.ScheduledContent, int, error) {
	return nil, 0, nil
}

func (r *stubScheduleRepo) UpdatePending(context.Context, *models.ScheduledContent) (bool, error) {
	return false, nil
}

func (r *stubScheduleRepo) ClaimByID(context.Context, string, time.Time) (bool, error) {
	r.claimCalls++
	return r.claimed, nil
}

func (r *stubScheduleRepo) ClaimDue(context.Context, time.Time, int) ([]*models.ScheduledContent, error) {
	return nil, nil
}

type stubPublishService struct {
	executed []*models.ScheduledContent
	notified []*models.ScheduledContent
}

func (s *stubPublishService) Execute(_ context.Context, schedule *models.ScheduledContent) error {
	s.executed = append(s.executed, schedule)
	return nil
}

func (s *stubPublishService) NotifyDue(_ context.Context, schedule *models.ScheduledContent) error {
	s.notified = append(s.notified, schedule)
	return nil
}

func pendingSchedule(autoPublish bool, scheduledFor time.Time) *models.ScheduledContent {
	return &models.ScheduledContent{
		ID:           "sched-1",
		ContentType:  models.ContentTypeCourse,
		ContentID:    10,
		ScheduledFor: scheduledFor,
		AutoPublish:  autoPublish,
		Status:       models.ScheduleStatusPending,
	}
}

func TestPublishScheduleClaimsAndExecutes(t *testing.T) {
	repo := &stubScheduleRepo{schedule: pendingSchedule(true, time.Now().Add(-time.Minute)), claimed: true}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	err := q.PublishSchedule(context.Background(), "sched-1")
	require.NoError(t, err)

	assert.Equal(t, 1, repo.claimCalls)
	require.Len(t, ps.executed, 1)
	assert.Equal(t, models.ScheduleStatusPublished, ps.executed[0].Status)
}

func TestPublishScheduleMissingRecordIsNoOp(t *testing.T) {
	repo := &stubScheduleRepo{}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	require.NoError(t, q.PublishSchedule(context.Background(), "gone"))
	assert.Zero(t, repo.claimCalls)
	assert.Empty(t, ps.executed)
}

func TestPublishScheduleCancelledRecordIsNoOp(t *testing.T) {
	schedule := pendingSchedule(true, time.Now().Add(-time.Minute))
	schedule.Status = models.ScheduleStatusCancelled
	repo := &stubScheduleRepo{schedule: schedule}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	require.NoError(t, q.PublishSchedule(context.Background(), "sched-1"))
	assert.Zero(t, repo.claimCalls)
	assert.Empty(t, ps.executed)
}

func TestPublishScheduleLostClaimSkipsExecution(t *testing.T) {
	repo := &stubScheduleRepo{schedule: pendingSchedule(true, time.Now().Add(-time.Minute)), claimed: false}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	require.NoError(t, q.PublishSchedule(context.Background(), "sched-1"))
	assert.Equal(t, 1, repo.claimCalls)
	assert.Empty(t, ps.executed)
}

func TestPublishScheduleNotifyOnly(t *testing.T) {
	repo := &stubScheduleRepo{schedule: pendingSchedule(false, time.Now().Add(-time.Minute))}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	require.NoError(t, q.PublishSchedule(context.Background(), "sched-1"))
	assert.Zero(t, repo.claimCalls)
	assert.Empty(t, ps.executed)
	require.Len(t, ps.notified, 1)
	assert.Equal(t, models.ScheduleStatusPending, ps.notified[0].Status)
}

func TestPublishScheduleNotifyRescheduledIntoFuture(t *testing.T) {
	repo := &stubScheduleRepo{schedule: pendingSchedule(false, time.Now().Add(time.Hour))}
	ps := &stubPublishService{}
	q := NewQueue(repo, ps)

	require.NoError(t, q.PublishSchedule(context.Background(), "sched-1"))
	assert.Empty(t, ps.notified)
}

func TestHandlePublishScheduleTaskRejectsBadPayload(t *testing.T) {
	q := NewQueue(&stubScheduleRepo{}, &stubPublishService{})

	task := asynq.NewTask(TaskTypePublishSchedule, []byte("{not json"))
	assert.Error(t, q.HandlePublishScheduleTask(context.Background(), task))
}
