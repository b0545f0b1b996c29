package queue

import (
	"github.com/portal28/scheduling-api/internal/repository"
	"github.com/portal28/scheduling-api/internal/service"
)

type Queue struct {
	sr repository.ScheduleRepository
	ps service.PublishService
}

func NewQueue(sr repository.ScheduleRepository, ps service.PublishService) *Queue {
	return &Queue{
		sr: sr,
		ps: ps,
	}
}

const TaskTypePublishSchedule = "schedule:publish"

type PublishSchedulePayload struct {
	ScheduleID string `json:"schedule_id"`
}
