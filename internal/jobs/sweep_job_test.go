package job

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/stretchr/testify/assert"
)

type stubScheduleRepo struct {
	due      []*models.ScheduledContent
	claimErr error
}

func (r *stubScheduleRepo) Create(context.Context, *models.ScheduledContent) error { return nil }

func (r *stubScheduleRepo) GetByID(context.Context, string) (*models.ScheduledContent, bool, error) {
	return nil, false, nil
}

func (r *stubScheduleRepo) List(context.Context, repository.ScheduleFilter) ([]*models.ScheduledContent, int, error) {
	return nil, 0, nil
}

func (r *stubScheduleRepo) UpdatePending(context.Context, *models.ScheduledContent) (bool, error) {
	return false, nil
}

func (r *stubScheduleRepo) ClaimByID(context.Context, string, time.Time) (bool, error) {
	return false, nil
}

func (r *stubScheduleRepo) ClaimDue(context.Context, time.Time, int) ([]*models.ScheduledContent, error) {
	if r.claimErr != nil {
		return nil, r.claimErr
	}
	claimed := r.due
	r.due = nil
	return claimed, nil
}

type stubPublishService struct {
	executed []*models.ScheduledContent
	err      error
}

func (s *stubPublishService) Execute(_ context.Context, schedule *models.ScheduledContent) error {
	s.executed = append(s.executed, schedule)
	return s.err
}

func (s *stubPublishService) NotifyDue(context.Context, *models.ScheduledContent) error {
	return nil
}

func TestSweepPublishesClaimedSchedules(t *testing.T) {
	repo := &stubScheduleRepo{due: []*models.ScheduledContent{
		{ID: "a", ContentType: models.ContentTypeCourse, ContentID: 1},
		{ID: "b", ContentType: models.ContentTypeLesson, ContentID: 2},
	}}
	ps := &stubPublishService{}

	NewSweepJob(repo, ps).Sweep()

	assert.Len(t, ps.executed, 2)
}

func TestSweepStopsOnClaimError(t *testing.T) {
	repo := &stubScheduleRepo{claimErr: errors.New("db down")}
	ps := &stubPublishService{}

	NewSweepJob(repo, ps).Sweep()

	assert.Empty(t, ps.executed)
}

func TestSweepContinuesPastFailedPublish(t *testing.T) {
	repo := &stubScheduleRepo{due: []*models.ScheduledContent{
		{ID: "a"}, {ID: "b"},
	}}
	ps := &stubPublishService{err: errors.New("publish failed")}

	NewSweepJob(repo, ps).Sweep()

	assert.Len(t, ps.executed, 2)
}
