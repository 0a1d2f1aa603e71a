package handlers

import (
	"net/http"
	"strconv"

	"subtrack/internal/common"
	"subtrack/internal/services"

	"github.com/labstack/echo/v4"
)

type SubscriptionHandlers struct {
	subscriptionService services.SubscriptionService
	reminderService     services.ReminderService
}

func NewSubscriptionHandlers(subscriptionService services.SubscriptionService, reminderService services.ReminderService) *SubscriptionHandlers {
	return &SubscriptionHandlers{
		subscriptionService: subscriptionService,
		reminderService:     reminderService,
	}
}

type listSubscriptionsQuery struct {
	Status string `query:"status"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

// @Summary List subscriptions
// @Tags subscriptions
// @Produce json
// @Param status query string false "filter by status"
// @Success 200 {array} models.SubscriptionWithDetails
// @Router /subscriptions [get]
func (h *SubscriptionHandlers) ListSubscriptions(c echo.Context) error {
	var q listSubscriptionsQuery
	if err := c.Bind(&q); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	items, err := h.subscriptionService.ListSubscriptions(c.Request().Context(), q.Status, q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SubscriptionHandlers) GetSubscription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "subscription")
	}

	detail, err := h.subscriptionService.GetSubscription(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, detail)
}

// @Summary Create a subscription
// @Tags subscriptions
// @Accept json
// @Produce json
// @Success 201 {object} models.SubscriptionWithDetails
// @Failure 400 {object} common.ErrorResponse
// @Router /subscriptions [post]
func (h *SubscriptionHandlers) CreateSubscription(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return common.SendUnauthorizedError(c)
	}

	var input services.CreateSubscriptionInput
	if err := c.Bind(&input); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	detail, err := h.subscriptionService.CreateSubscription(ctx, input, userID)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusCreated, detail)
}

func (h *SubscriptionHandlers) UpdateSubscription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "subscription")
	}

	var input services.UpdateSubscriptionInput
	if err := c.Bind(&input); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	detail, err := h.subscriptionService.UpdateSubscription(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, detail)
}

func (h *SubscriptionHandlers) DeleteSubscription(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "subscription")
	}

	if err := h.subscriptionService.DeleteSubscription(c.Request().Context(), id); err != nil {
		return respondError(c, err, "subscription")
	}
	return c.NoContent(http.StatusNoContent)
}

// ListExpiring returns active subscriptions expiring within :days days,
// soonest first.
//
// @Summary List expiring subscriptions
// @Tags subscriptions
// @Produce json
// @Param days path int true "lookahead window in days"
// @Success 200 {array} models.SubscriptionWithDetails
// @Failure 400 {object} common.ErrorResponse
// @Router /subscriptions/expiring/{days} [get]
func (h *SubscriptionHandlers) ListExpiring(c echo.Context) error {
	days, err := strconv.Atoi(c.Param("days"))
	if err != nil || days < 0 {
		return common.SendValidationError(c, "days", "days must be a non-negative integer")
	}

	items, err := h.subscriptionService.ListExpiring(c.Request().Context(), days)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, items)
}

// RecordReminder appends an entry to the subscription's reminder log.
func (h *SubscriptionHandlers) RecordReminder(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "subscription")
	}

	var input services.RecordReminderInput
	if err := c.Bind(&input); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	reminder, err := h.reminderService.RecordReminder(c.Request().Context(), id, input)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusCreated, reminder)
}

// ListReminders returns the subscription's reminder log, newest first.
func (h *SubscriptionHandlers) ListReminders(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "subscription")
	}

	reminders, err := h.reminderService.ListReminders(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "subscription")
	}
	return c.JSON(http.StatusOK, reminders)
}
