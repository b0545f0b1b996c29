package transfer

import (
	"encoding/json"

	"github.com/portal28/scheduling-api/internal/models"
)

type ScheduleCreation struct {
	ContentType   string          `json:"contentType"`
	ContentID     int64           `json:"contentId"`
	ScheduledFor  string          `json:"scheduledFor"`
	Timezone      string          `json:"timezone"`
	AutoPublish   *bool           `json:"autoPublish"`
	PublishAction json.RawMessage `json:"publishAction"`
}

// ScheduleUpdate carries a partial update; nil fields are left untouched.
// The only status transition accepted over the API is to "cancelled".
type ScheduleUpdate struct {
	ScheduledFor  *string         `json:"scheduledFor"`
	Timezone      *string         `json:"timezone"`
	AutoPublish   *bool           `json:"autoPublish"`
	PublishAction json.RawMessage `json:"publishAction"`
	Status        *string         `json:"status"`
}

type ScheduleList struct {
	Schedules []*models.ScheduledContent `json:"schedules"`
	Total     int                        `json:"total"`
	Limit     int                        `json:"limit"`
	Offset    int                        `json:"offset"`
}
