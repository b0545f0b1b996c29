package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/portal28/scheduling-api/internal/models"
	"github.com/portal28/scheduling-api/internal/queue"
	"github.com/portal28/scheduling-api/internal/service"
	"github.com/portal28/scheduling-api/internal/transfer"
)

type ScheduleHandler struct {
	s        service.ScheduleService
	enqueuer queue.Enqueuer
}

func NewScheduleHandler(service service.ScheduleService, enqueuer queue.Enqueuer) *ScheduleHandler {
	return &ScheduleHandler{s: service, enqueuer: enqueuer}
}

func (h *ScheduleHandler) ListSchedules(c *fiber.Ctx) error {
	contentType := c.Query("contentType")
	status := c.Query("status")
	limit := c.QueryInt("limit", 0)
	offset := c.QueryInt("offset", 0)

	list, err := h.s.List(c.Context(), contentType, status, limit, offset)
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(list)
}

func (h *ScheduleHandler) CreateSchedule(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var sc transfer.ScheduleCreation
	if err := c.BodyParser(&sc); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	schedule, err := h.s.Create(c.Context(), userID, &sc)
	if err != nil {
		return errorResponse(c, err)
	}

	h.enqueuePublish(schedule)

	return c.Status(fiber.StatusCreated).JSON(schedule)
}

func (h *ScheduleHandler) GetSchedule(c *fiber.Ctx) error {
	schedule, err := h.s.Get(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(schedule)
}

func (h *ScheduleHandler) UpdateSchedule(c *fiber.Ctx) error {
	var su transfer.ScheduleUpdate
	if err := c.BodyParser(&su); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	schedule, err := h.s.Update(c.Context(), c.Params("id"), &su)
	if err != nil {
		return errorResponse(c, err)
	}

	if su.ScheduledFor != nil {
		h.enqueuePublish(schedule)
	}

	return c.Status(fiber.StatusOK).JSON(schedule)
}

// CancelSchedule soft-cancels; the row stays for audit and the stale queue
// task resolves as a no-op against the cancelled status.
func (h *ScheduleHandler) CancelSchedule(c *fiber.Ctx) error {
	schedule, err := h.s.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(schedule)
}

func (h *ScheduleHandler) ScheduleHistory(c *fiber.Ctx) error {
	history, err := h.s.History(c.Context(), c.Params("id"))
	if err != nil {
		return errorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"history": history,
	})
}

// enqueuePublish registers the delayed publish task. Enqueue failures are
// logged, not surfaced: the cron sweep picks up anything the queue loses.
func (h *ScheduleHandler) enqueuePublish(schedule *models.ScheduledContent) {
	if schedule.Status != models.ScheduleStatusPending {
		return
	}

	delay := time.Until(schedule.ScheduledFor)
	if delay < 0 {
		delay = 0
	}

	err := queue.EnqueueSchedule(h.enqueuer, queue.PublishSchedulePayload{ScheduleID: schedule.ID}, delay)
	if err != nil {
		slog.Error("failed to enqueue publish task", "schedule_id", schedule.ID, "error", err)
	}
}
