package models

import (
	"encoding/json"
	"time"
)

type ScheduledContent struct {
	ID            string          `db:"id" json:"id"`
	ContentType   string          `db:"content_type" json:"contentType"`
	ContentID     int64           `db:"content_id" json:"contentId"`
	ScheduledFor  time.Time       `db:"scheduled_for" json:"scheduledFor"`
	Timezone      string          `db:"timezone" json:"timezone"`
	AutoPublish   bool            `db:"auto_publish" json:"autoPublish"`
	PublishAction json.RawMessage `db:"publish_action" json:"publishAction,omitempty"`
	Status        string          `db:"status" json:"status"`
	CreatedBy     int64           `db:"created_by" json:"createdBy"`
	CreatedAt     time.Time       `db:"created_at" json:"createdAt"`
	UpdatedAt     time.Time       `db:"updated_at" json:"updatedAt"`
}

const (
	ScheduleStatusPending   = "pending"
	ScheduleStatusPublished = "published"
	ScheduleStatusCancelled = "cancelled"
)

const (
	ContentTypeCourse       = "course"
	ContentTypeLesson       = "lesson"
	ContentTypeAnnouncement = "announcement"
	ContentTypeEmail        = "email"
	ContentTypePost         = "post"
	ContentTypeYoutubeVideo = "youtube_video"
)

// ContentTypes lists every schedulable content type.
var ContentTypes = []string{
	ContentTypeCourse,
	ContentTypeLesson,
	ContentTypeAnnouncement,
	ContentTypeEmail,
	ContentTypePost,
	ContentTypeYoutubeVideo,
}

func IsValidContentType(t string) bool {
	for _, ct := range ContentTypes {
		if ct == t {
			return true
		}
	}
	return false
}

func IsValidScheduleStatus(s string) bool {
	return s == ScheduleStatusPending || s == ScheduleStatusPublished || s == ScheduleStatusCancelled
}
