package service

import (
	"context"

	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/repository"
)

// OwnershipResolver answers who owns one piece of content of a single type.
// Content types without a resolver are schedulable by admins only, so adding
// a new owner-schedulable type means registering a resolver here, not
// touching the authorization path.
type OwnershipResolver interface {
	OwnerID(ctx context.Context, contentID int64) (int64, bool, error)
}

type OwnershipResolverFunc func(ctx context.Context, contentID int64) (int64, bool, error)

func (f OwnershipResolverFunc) OwnerID(ctx context.Context, contentID int64) (int64, bool, error) {
	return f(ctx, contentID)
}

func NewOwnershipRegistry(cr repository.ContentRepository) map[string]OwnershipResolver {
	return map[string]OwnershipResolver{
		models.ContentTypeCourse:       OwnershipResolverFunc(cr.CourseInstructorID),
		models.ContentTypeLesson:       OwnershipResolverFunc(cr.LessonInstructorID),
		models.ContentTypeAnnouncement: OwnershipResolverFunc(cr.AnnouncementAuthorID),
	}
}
