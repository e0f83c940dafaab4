package handlers

import (
	"net/http"

	"paperstore/internal/repo"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// PaymentHandler handles the simulated payment gateway endpoints
type PaymentHandler struct {
	paymentService  *services.PaymentService
	paymentRepo     *repo.PaymentRepository
	orderRepo       *repo.OrderRepository
	activityService *services.ActivityService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *services.PaymentService, paymentRepo *repo.PaymentRepository, orderRepo *repo.OrderRepository, activityService *services.ActivityService) *PaymentHandler {
	return &PaymentHandler{
		paymentService:  paymentService,
		paymentRepo:     paymentRepo,
		orderRepo:       orderRepo,
		activityService: activityService,
	}
}

// Initiate godoc
// @Summary Start a payment
// @Description Create a payment attempt for an order; the simulated gateway settles it shortly after
// @Tags payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 201 {object} models.Payment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customer/orders/{id}/pay [post]
func (h *PaymentHandler) Initiate(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil || order.CustomerID != customerID {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	payment, err := h.paymentService.Initiate(order)
	if err != nil {
		switch err {
		case services.ErrPaymentExists, services.ErrOrderNotPayable:
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start payment"})
	}

	return c.JSON(http.StatusCreated, payment)
}

// GetByTrackingCode godoc
// @Summary Track a payment
// @Description Look up a payment attempt by its tracking code
// @Tags payments
// @Produce json
// @Param code path string true "Tracking code"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Router /payments/{code} [get]
func (h *PaymentHandler) GetByTrackingCode(c echo.Context) error {
	payment, err := h.paymentRepo.GetByTrackingCode(c.Param("code"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	return c.JSON(http.StatusOK, payment)
}

// ListByOrder godoc
// @Summary List order payments
// @Description List all payment attempts for an order, newest first
// @Tags payments
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} models.Payment
// @Failure 400 {object} map[string]string
// @Router /orders/{id}/payments [get]
func (h *PaymentHandler) ListByOrder(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	payments, err := h.paymentRepo.ListByOrder(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list payments"})
	}

	return c.JSON(http.StatusOK, payments)
}

// markRequest carries the optional note for a manual payment transition
type markRequest struct {
	Reason      string `json:"reason"`
	ReferenceID string `json:"reference_id"`
}

// MarkSuccessful godoc
// @Summary Mark payment successful
// @Description Manually settle a payment attempt
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body markRequest false "Gateway reference"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id}/success [put]
func (h *PaymentHandler) MarkSuccessful(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	payment, err := h.paymentRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	var req markRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	reference := req.ReferenceID
	if reference == "" {
		reference = "MANUAL-" + payment.TrackingCode
	}

	if err := h.paymentService.MarkSuccessful(payment, reference); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	h.activityService.Record(staffActor(c), models.ActionPaymentUpdated, "payment", &payment.ID, payment.TrackingCode+" -> success")

	return c.JSON(http.StatusOK, payment)
}

// MarkFailed godoc
// @Summary Mark payment failed
// @Description Manually fail a payment attempt; the customer may retry
// @Tags payments
// @Accept json
// @Produce json
// @Param id path string true "Payment ID"
// @Param request body markRequest false "Failure reason"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id}/fail [put]
func (h *PaymentHandler) MarkFailed(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	payment, err := h.paymentRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	var req markRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := h.paymentService.MarkFailed(payment, req.Reason); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	h.activityService.Record(staffActor(c), models.ActionPaymentUpdated, "payment", &payment.ID, payment.TrackingCode+" -> failed")

	return c.JSON(http.StatusOK, payment)
}

// MarkExpired godoc
// @Summary Mark payment expired
// @Description Expire a stale payment attempt
// @Tags payments
// @Produce json
// @Param id path string true "Payment ID"
// @Success 200 {object} models.Payment
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /payments/{id}/expire [put]
func (h *PaymentHandler) MarkExpired(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid payment ID"})
	}

	payment, err := h.paymentRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment not found"})
	}

	if err := h.paymentService.MarkExpired(payment); err != nil {
		return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
	}

	h.activityService.Record(staffActor(c), models.ActionPaymentUpdated, "payment", &payment.ID, payment.TrackingCode+" -> expired")

	return c.JSON(http.StatusOK, payment)
}
