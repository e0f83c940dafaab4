package handlers

import (
	"net/http"

	"paperstore/internal/cart"
	"paperstore/internal/repo"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// OrderHandler handles checkout and order management endpoints
type OrderHandler struct {
	orderService    *services.OrderService
	orderRepo       *repo.OrderRepository
	customerRepo    *repo.CustomerRepository
	cartStore       *cart.Store
	activityService *services.ActivityService
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService *services.OrderService, orderRepo *repo.OrderRepository, customerRepo *repo.CustomerRepository, cartStore *cart.Store, activityService *services.ActivityService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		orderRepo:       orderRepo,
		customerRepo:    customerRepo,
		cartStore:       cartStore,
		activityService: activityService,
	}
}

// Checkout godoc
// @Summary Place an order
// @Description Freeze the session cart into a pending order
// @Tags orders
// @Accept json
// @Produce json
// @Param request body models.CheckoutRequest true "Checkout data"
// @Success 201 {object} models.SwaggerOrder
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /customer/orders [post]
func (h *OrderHandler) Checkout(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	customer, err := h.customerRepo.GetByID(customerID)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}
	if !customer.IsVerified {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "Phone verification required"})
	}

	var req models.CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	sessionCart, ok := h.cartStore.Peek(customerID)
	if !ok || sessionCart.Empty() {
		// The storefront sends empty-cart checkouts back to the catalog
		return c.JSON(http.StatusConflict, map[string]string{
			"error":    "cart is empty",
			"redirect": "/store/catalog",
		})
	}

	order, err := h.orderService.Checkout(customer, sessionCart.Summarize(), req.Notes)
	if err != nil {
		if err == services.ErrEmptyCart {
			return c.JSON(http.StatusConflict, map[string]string{
				"error":    "cart is empty",
				"redirect": "/store/catalog",
			})
		}
		if err == services.ErrUnknownProduct {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to place order"})
	}

	h.cartStore.Drop(customerID)

	h.activityService.Record(customerActor(c), models.ActionOrderPlaced, "order", &order.ID, order.OrderNumber)

	return c.JSON(http.StatusCreated, order)
}

// MyOrders godoc
// @Summary List own orders
// @Description List the authenticated customer's orders, newest first
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Success 200 {array} models.SwaggerOrder
// @Failure 500 {object} map[string]string
// @Router /customer/orders [get]
func (h *OrderHandler) MyOrders(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	limit, offset := parsePagination(c)
	orders, err := h.orderRepo.ListByCustomer(customerID, limit, offset)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list orders"})
	}

	return c.JSON(http.StatusOK, orders)
}

// MyOrder godoc
// @Summary Get own order
// @Description Get one of the authenticated customer's orders
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.SwaggerOrder
// @Failure 404 {object} map[string]string
// @Router /customer/orders/{id} [get]
func (h *OrderHandler) MyOrder(c echo.Context) error {
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

	return c.JSON(http.StatusOK, order)
}

// List godoc
// @Summary List orders
// @Description List all orders with pagination, optionally filtered by status
// @Tags orders
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param status query string false "Filter by status"
// @Success 200 {object} models.OrderListResponse
// @Failure 500 {object} map[string]string
// @Router /orders [get]
func (h *OrderHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	result, err := h.orderRepo.List(limit, offset, c.QueryParam("status"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list orders"})
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get order
// @Description Get an order with its items and payments
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} models.SwaggerOrder
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders/{id} [get]
func (h *OrderHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// GetByNumber godoc
// @Summary Get order by number
// @Description Look up an order by its ORD order number
// @Tags orders
// @Produce json
// @Param number path string true "Order number"
// @Success 200 {object} models.SwaggerOrder
// @Failure 404 {object} map[string]string
// @Router /orders/number/{number} [get]
func (h *OrderHandler) GetByNumber(c echo.Context) error {
	order, err := h.orderRepo.GetByNumber(c.Param("number"))
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	return c.JSON(http.StatusOK, order)
}

// History godoc
// @Summary Order status history
// @Description List an order's status transitions, oldest first
// @Tags orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {array} models.OrderStatusHistory
// @Failure 400 {object} map[string]string
// @Router /orders/{id}/history [get]
func (h *OrderHandler) History(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	history, err := h.orderRepo.StatusHistory(id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load history"})
	}

	return c.JSON(http.StatusOK, history)
}

// UpdateStatus godoc
// @Summary Change order status
// @Description Transition an order to a new status
// @Tags orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param request body models.UpdateOrderStatusRequest true "New status"
// @Success 200 {object} models.SwaggerOrder
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /orders/{id}/status [put]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid order ID"})
	}

	order, err := h.orderRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Order not found"})
	}

	var req models.UpdateOrderStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	actor := staffActor(c)
	if err := h.orderService.ChangeStatus(order, req.Status, actor.ID, req.Note); err != nil {
		switch err {
		case services.ErrInvalidStatus:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		case services.ErrCannotCancel, services.ErrBadTransition:
			return c.JSON(http.StatusConflict, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update status"})
	}

	h.activityService.Record(actor, models.ActionStatusChanged, "order", &order.ID, order.OrderNumber+" -> "+req.Status)

	return c.JSON(http.StatusOK, order)
}
