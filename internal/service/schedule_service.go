package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/portal28/scheduling-api/internal/transfer"
	"github.com/portal28/scheduling-api/pkg/apperr"
	"github.com/portal28/scheduling-api/pkg/timeutil"
)

type ScheduleService interface {
	List(ctx context.Context, contentType, status string, limit, offset int) (*transfer.ScheduleList, error)
	Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation) (*models.ScheduledContent, error)
	Get(ctx context.Context, id string) (*models.ScheduledContent, error)
	Update(ctx context.Context, id string, su *transfer.ScheduleUpdate) (*models.ScheduledContent, error)
	Cancel(ctx context.Context, id string) (*models.ScheduledContent, error)
	History(ctx context.Context, id string) ([]*models.PublishHistory, error)
}

type scheduleService struct {
	sr     repository.ScheduleRepository
	ur     repository.UserRepository
	ph     repository.PublishHistoryRepository
	owners map[string]OwnershipResolver
}

func NewScheduleService(
	sr repository.ScheduleRepository,
	ur repository.UserRepository,
	ph repository.PublishHistoryRepository,
	owners map[string]OwnershipResolver) ScheduleService {
	return &scheduleService{
		sr:     sr,
		ur:     ur,
		ph:     ph,
		owners: owners,
	}
}

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

func (s *scheduleService) List(ctx context.Context, contentType, status string, limit, offset int) (*transfer.ScheduleList, error) {
	if contentType != "" && !models.IsValidContentType(contentType) {
		return nil, apperr.Validation("contentType", "unknown content type")
	}
	if status != "" && !models.IsValidScheduleStatus(status) {
		return nil, apperr.Validation("status", "unknown status")
	}

	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	schedules, total, err := s.sr.List(ctx, repository.ScheduleFilter{
		ContentType: contentType,
		Status:      status,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, err
	}
	if schedules == nil {
		schedules = []*models.ScheduledContent{}
	}

	return &transfer.ScheduleList{
		Schedules: schedules,
		Total:     total,
		Limit:     limit,
		Offset:    offset,
	}, nil
}

func (s *scheduleService) Create(ctx context.Context, userID int64, sc *transfer.ScheduleCreation) (*models.ScheduledContent, error) {
	if sc == nil {
		return nil, apperr.Validation("body", "missing request body")
	}
	if !models.IsValidContentType(sc.ContentType) {
		return nil, apperr.Validation("contentType", "must be one of "+strings.Join(models.ContentTypes, ", "))
	}
	if sc.ContentID <= 0 {
		return nil, apperr.Validation("contentId", "must be a positive id")
	}

	timezone := sc.Timezone
	if timezone == "" {
		timezone = "UTC"
	}
	if !timeutil.IsValidTimezone(timezone) {
		return nil, apperr.Validation("timezone", "not a recognized IANA timezone")
	}

	if sc.ScheduledFor == "" {
		return nil, apperr.Validation("scheduledFor", "is required")
	}
	scheduledFor, err := timeutil.ResolveInstant(sc.ScheduledFor, timezone)
	if err != nil {
		return nil, apperr.Validation("scheduledFor", "not a valid ISO 8601 date-time")
	}

	if err := s.authorize(ctx, userID, sc.ContentType, sc.ContentID); err != nil {
		return nil, err
	}

	autoPublish := true
	if sc.AutoPublish != nil {
		autoPublish = *sc.AutoPublish
	}

	id, err := gonanoid.New()
	if err != nil {
		slog.Error(err.Error())
		return nil, err
	}

	schedule := &models.ScheduledContent{
		ID:            id,
		ContentType:   sc.ContentType,
		ContentID:     sc.ContentID,
		ScheduledFor:  scheduledFor,
		Timezone:      timezone,
		AutoPublish:   autoPublish,
		PublishAction: sc.PublishAction,
		Status:        models.ScheduleStatusPending,
		CreatedBy:     userID,
	}

	if err := s.sr.Create(ctx, schedule); err != nil {
		return nil, err
	}
	return schedule, nil
}

// authorize admits admins for every content type; other callers must own
// the target per the resolver registry. Types without a resolver are
// admin-only. Reasons never echo internal identifiers.
func (s *scheduleService) authorize(ctx context.Context, userID int64, contentType string, contentID int64) error {
	user, found, err := s.ur.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.ErrUnauthorized
	}
	if user.IsAdmin() {
		return nil
	}

	resolver, ok := s.owners[contentType]
	if !ok {
		return apperr.Forbidden(fmt.Sprintf("only admins can schedule %s content", contentType))
	}

	ownerID, found, err := resolver.OwnerID(ctx, contentID)
	if err != nil {
		return err
	}
	if !found {
		return apperr.ErrNotFound
	}
	if ownerID != userID {
		return apperr.Forbidden("you do not manage this content")
	}
	return nil
}

func (s *scheduleService) Get(ctx context.Context, id string) (*models.ScheduledContent, error) {
	schedule, found, err := s.sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	return schedule, nil
}

func (s *scheduleService) Update(ctx context.Context, id string, su *transfer.ScheduleUpdate) (*models.ScheduledContent, error) {
	if su == nil {
		return nil, apperr.Validation("body", "missing request body")
	}

	schedule, found, err := s.sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}
	if schedule.Status != models.ScheduleStatusPending {
		return nil, apperr.ErrNotPending
	}

	if su.Status != nil {
		if *su.Status != models.ScheduleStatusCancelled {
			return nil, apperr.Validation("status", `may only be set to "cancelled"`)
		}
		schedule.Status = models.ScheduleStatusCancelled
	}
	if su.Timezone != nil {
		if !timeutil.IsValidTimezone(*su.Timezone) {
			return nil, apperr.Validation("timezone", "not a recognized IANA timezone")
		}
		schedule.Timezone = *su.Timezone
	}
	if su.ScheduledFor != nil {
		scheduledFor, err := timeutil.ResolveInstant(*su.ScheduledFor, schedule.Timezone)
		if err != nil {
			return nil, apperr.Validation("scheduledFor", "not a valid ISO 8601 date-time")
		}
		schedule.ScheduledFor = scheduledFor
	}
	if su.AutoPublish != nil {
		schedule.AutoPublish = *su.AutoPublish
	}
	if su.PublishAction != nil {
		schedule.PublishAction = su.PublishAction
	}

	// The pending check above is advisory; the conditional update is what
	// guarantees a record that just left pending stays untouched.
	updated, err := s.sr.UpdatePending(ctx, schedule)
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, apperr.ErrNotPending
	}
	return schedule, nil
}

func (s *scheduleService) Cancel(ctx context.Context, id string) (*models.ScheduledContent, error) {
	cancelled := models.ScheduleStatusCancelled
	return s.Update(ctx, id, &transfer.ScheduleUpdate{Status: &cancelled})
}

func (s *scheduleService) History(ctx context.Context, id string) ([]*models.PublishHistory, error) {
	_, found, err := s.sr.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, apperr.ErrNotFound
	}

	history, err := s.ph.ListByScheduleID(ctx, id)
	if err != nil {
		return nil, err
	}
	if history == nil {
		history = []*models.PublishHistory{}
	}
	return history, nil
}
