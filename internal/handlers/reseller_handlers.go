package handlers

import (
	"net/http"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/services"

	"github.com/labstack/echo/v4"
)

type ResellerHandlers struct {
	resellerService services.ResellerService
}

func NewResellerHandlers(resellerService services.ResellerService) *ResellerHandlers {
	return &ResellerHandlers{resellerService: resellerService}
}

func (h *ResellerHandlers) ListResellers(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	resellers, err := h.resellerService.ListResellers(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err, "reseller")
	}
	return c.JSON(http.StatusOK, resellers)
}

func (h *ResellerHandlers) GetReseller(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "reseller")
	}

	reseller, err := h.resellerService.GetReseller(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "reseller")
	}
	return c.JSON(http.StatusOK, reseller)
}

func (h *ResellerHandlers) CreateReseller(c echo.Context) error {
	reseller := models.Reseller{IsActive: true}
	if err := c.Bind(&reseller); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	if err := h.resellerService.CreateReseller(c.Request().Context(), &reseller); err != nil {
		return respondError(c, err, "reseller")
	}
	return c.JSON(http.StatusCreated, reseller)
}

func (h *ResellerHandlers) UpdateReseller(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "reseller")
	}

	var reseller models.Reseller
	if err := c.Bind(&reseller); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	reseller.ID = id

	if err := h.resellerService.UpdateReseller(c.Request().Context(), &reseller); err != nil {
		return respondError(c, err, "reseller")
	}
	return c.JSON(http.StatusOK, reseller)
}

func (h *ResellerHandlers) DeleteReseller(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "reseller")
	}

	if err := h.resellerService.DeleteReseller(c.Request().Context(), id); err != nil {
		return respondError(c, err, "reseller")
	}
	return c.NoContent(http.StatusNoContent)
}
