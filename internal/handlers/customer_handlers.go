package handlers

import (
	"net/http"

	"subtrack/internal/common"
	"subtrack/internal/models"
	"subtrack/internal/services"

	"github.com/labstack/echo/v4"
)

type CustomerHandlers struct {
	customerService services.CustomerService
}

func NewCustomerHandlers(customerService services.CustomerService) *CustomerHandlers {
	return &CustomerHandlers{customerService: customerService}
}

func (h *CustomerHandlers) ListCustomers(c echo.Context) error {
	var q listQuery
	if err := c.Bind(&q); err != nil {
		return common.SendClientError(c, "Invalid query parameters")
	}

	customers, err := h.customerService.ListCustomers(c.Request().Context(), q.Limit, q.Offset)
	if err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandlers) GetCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "customer")
	}

	customer, err := h.customerService.GetCustomer(c.Request().Context(), id)
	if err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) CreateCustomer(c echo.Context) error {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}

	if err := h.customerService.CreateCustomer(c.Request().Context(), &customer); err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandlers) UpdateCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "customer")
	}

	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		return common.SendClientError(c, "Invalid request body")
	}
	customer.ID = id

	if err := h.customerService.UpdateCustomer(c.Request().Context(), &customer); err != nil {
		return respondError(c, err, "customer")
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandlers) DeleteCustomer(c echo.Context) error {
	id, err := common.ValidateUUID(c.Param("id"), "id")
	if err != nil {
		return respondError(c, err, "customer")
	}

	if err := h.customerService.DeleteCustomer(c.Request().Context(), id); err != nil {
		return respondError(c, err, "customer")
	}
	return c.NoContent(http.StatusNoContent)
}
