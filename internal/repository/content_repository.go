package repository

import (
	"context"
	"database/sql"
	"log/slog"
)

// ContentRepository looks up who owns a piece of schedulable content and
// flips the published flag on the owning table at publish time. Ownership
// reads are treated as an external read-only contract: one owner id per row.
type ContentRepository interface {
	CourseInstructorID(ctx context.Context, courseID int64) (int64, bool, error)
	LessonInstructorID(ctx context.Context, lessonID int64) (int64, bool, error)
	AnnouncementAuthorID(ctx context.Context, announcementID int64) (int64, bool, error)

	PublishCourse(ctx context.Context, courseID int64) error
	PublishLesson(ctx context.Context, lessonID int64) error
	PublishAnnouncement(ctx context.Context, announcementID int64) error
	PublishPost(ctx context.Context, postID int64) error
}

type contentRepository struct {
	db *sql.DB
}

func NewContentRepository(db *sql.DB) ContentRepository {
	return &contentRepository{db: db}
}

func (r *contentRepository) CourseInstructorID(ctx context.Context, courseID int64) (int64, bool, error) {
	query := "SELECT instructor_id FROM courses WHERE id = $1"
	return r.ownerID(ctx, query, courseID)
}

// Lessons have no owner column of their own; ownership follows the course.
func (r *contentRepository) LessonInstructorID(ctx context.Context, lessonID int64) (int64, bool, error) {
	query := `
		SELECT c.instructor_id
		FROM lessons l
		JOIN courses c ON c.id = l.course_id
		WHERE l.id = $1
	`
	return r.ownerID(ctx, query, lessonID)
}

func (r *contentRepository) AnnouncementAuthorID(ctx context.Context, announcementID int64) (int64, bool, error) {
	query := "SELECT author_id FROM announcements WHERE id = $1"
	return r.ownerID(ctx, query, announcementID)
}

func (r *contentRepository) ownerID(ctx context.Context, query string, id int64) (int64, bool, error) {
	var ownerID int64
	err := r.db.QueryRowContext(ctx, query, id).Scan(&ownerID)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, false, nil
		}
		slog.Info(err.Error())
		return 0, false, err
	}
	return ownerID, true, nil
}

func (r *contentRepository) PublishCourse(ctx context.Context, courseID int64) error {
	query := "UPDATE courses SET is_published = true, updated_at = now() WHERE id = $1"
	return r.exec(ctx, query, courseID)
}

func (r *contentRepository) PublishLesson(ctx context.Context, lessonID int64) error {
	query := "UPDATE lessons SET published_at = now() WHERE id = $1 AND published_at IS NULL"
	return r.exec(ctx, query, lessonID)
}

func (r *contentRepository) PublishAnnouncement(ctx context.Context, announcementID int64) error {
	query := "UPDATE announcements SET published_at = now() WHERE id = $1 AND published_at IS NULL"
	return r.exec(ctx, query, announcementID)
}

func (r *contentRepository) PublishPost(ctx context.Context, postID int64) error {
	query := "UPDATE posts SET published_at = now() WHERE id = $1 AND published_at IS NULL"
	return r.exec(ctx, query, postID)
}

func (r *contentRepository) exec(ctx context.Context, query string, args ...any) error {
	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
