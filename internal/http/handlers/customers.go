package handlers

import (
	"net/http"

	"paperstore/internal/repo"

	"github.com/labstack/echo/v4"
)

// CustomerHandler handles staff-facing customer management endpoints
type CustomerHandler struct {
	customerRepo *repo.CustomerRepository
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerRepo *repo.CustomerRepository) *CustomerHandler {
	return &CustomerHandler{customerRepo: customerRepo}
}

// List godoc
// @Summary List customers
// @Description List registered customers with pagination, newest first
// @Tags customers
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /customers [get]
func (h *CustomerHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	customers, total, err := h.customerRepo.List(limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list customers"})
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":  customers,
		"total": total,
	})
}
