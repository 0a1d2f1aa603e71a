package handlers

import (
	"net/http"
	"time"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/services"

	"github.com/labstack/echo/v4"
)

// maxIconSize caps catalog icon uploads at 2 MiB.
const maxIconSize = 2 << 20

type SoftwareHandlers struct {
	softwareService services.SoftwareService
	storageService  services.StorageService
}

func NewSoftwareHandlers(softwareService services.SoftwareService, storageService services.StorageService) *SoftwareHandlers {
	return &SoftwareHandlers{
		softwareService: softwareService,
		storageService:  storageService,
	}
}

func (h *SoftwareHandlers) ListSoftware(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	items, err := h.softwareService.ListSoftware(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err, "software")
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SoftwareHandlers) GetSoftware(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "software")
	}

	software, err := h.softwareService.GetSoftware(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "software")
	}
	return c.JSON(http.StatusOK, software)
}

func (h *SoftwareHandlers) CreateSoftware(c echo.Context) error {
	software := models.Software{IsActive: true}
	if err := c.Bind(&software); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	if err := h.softwareService.CreateSoftware(c.Request().Context(), &software); err != nil {
		return respondError(c, err, "software")
	}
	return c.JSON(http.StatusCreated, software)
}

func (h *SoftwareHandlers) UpdateSoftware(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "software")
	}

	var software models.Software
	if err := c.Bind(&software); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	software.ID = id

	if err := h.softwareService.UpdateSoftware(c.Request().Context(), &software); err != nil {
		return respondError(c, err, "software")
	}
	return c.JSON(http.StatusOK, software)
}

func (h *SoftwareHandlers) DeleteSoftware(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "software")
	}

	if err := h.softwareService.DeleteSoftware(c.Request().Context(), id); err != nil {
		return respondError(c, err, "software")
	}
	return c.NoContent(http.StatusNoContent)
}

// UploadIcon stores a catalog icon in object storage and records its object
// name on the software row.
func (h *SoftwareHandlers) UploadIcon(c echo.Context) error {
	ctx := c.Request().Context()

	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "software")
	}

	software, err := h.softwareService.GetSoftware(ctx, id)
	if err != nil {
		return respondError(c, err, "software")
	}

	fileHeader, err := c.FormFile("icon")
	if err != nil {
		return common.SendValidationError(c, "icon", "icon file is required")
	}
	if fileHeader.Size > maxIconSize {
		return common.SendValidationError(c, "icon", "icon must be 2MB or smaller")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err, "software")
	}
	defer file.Close()

	objectName, err := h.storageService.UploadIcon(ctx, id, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file, fileHeader.Size)
	if err != nil {
		return respondError(c, err, "software")
	}

	software.IconURL = &objectName
	if err := h.softwareService.UpdateSoftware(ctx, software); err != nil {
		return respondError(c, err, "software")
	}

	url, err := h.storageService.IconURL(ctx, id, fileHeader.Filename, 24*time.Hour)
	if err != nil {
		return respondError(c, err, "software")
	}
	return c.JSON(http.StatusOK, map[string]string{
		"icon_url": url,
	})
}
