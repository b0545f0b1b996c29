package models

import "time"

// PublishHistory records one attempt of the publish pipeline against a
// schedule: an executed publish action, a handoff to an external delivery
// system, or a due notification for records without auto-publish.
type PublishHistory struct {
	ID           int64     `db:"id" json:"id"`
	ScheduleID   string    `db:"schedule_id" json:"schedule_id"`
	ContentType  string    `db:"content_type" json:"content_type"`
	ContentID    int64     `db:"content_id" json:"content_id"`
	Action       string    `db:"action" json:"action"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

const (
	PublishActionPublished = "published"
	PublishActionHandoff   = "handoff"
	PublishActionNotified  = "due_notification"
)
