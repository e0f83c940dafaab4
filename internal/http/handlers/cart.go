package handlers

import (
	"net/http"

	"paperstore/internal/cart"
	"paperstore/internal/repo"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CartHandler handles the customer's session cart
type CartHandler struct {
	cartStore   *cart.Store
	productRepo *repo.ProductRepository
}

// NewCartHandler creates a new cart handler
func NewCartHandler(cartStore *cart.Store, productRepo *repo.ProductRepository) *CartHandler {
	return &CartHandler{
		cartStore:   cartStore,
		productRepo: productRepo,
	}
}

// cartMutationRequest targets one product in the session cart
type cartMutationRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// cartResponse is the summary plus an optional clamp warning
type cartResponse struct {
	Summary cart.Summary       `json:"summary"`
	Warning *cart.StockWarning `json:"warning,omitempty"`
}

func (h *CartHandler) loadItem(productID string) (cart.Item, error) {
	id, err := uuid.Parse(productID)
	if err != nil {
		return cart.Item{}, err
	}

	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return cart.Item{}, err
	}

	return cart.Item{
		ID:        product.ID.String(),
		Name:      product.Name,
		SKU:       product.SKU,
		UnitPrice: product.EffectivePrice(),
		Stock:     product.StockQuantity,
		Tier:      product.Tier,
	}, nil
}

// Select godoc
// @Summary Toggle a product selection
// @Description Select a product into the cart, or deselect it when already selected
// @Tags cart
// @Accept json
// @Produce json
// @Param request body cartMutationRequest true "Product and quantity"
// @Success 200 {object} cartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/select [post]
func (h *CartHandler) Select(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	var req cartMutationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.loadItem(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	sessionCart := h.cartStore.Get(customerID)
	quantity := req.Quantity
	if quantity == 0 {
		quantity = sessionCart.WorkingQuantity(item.ID)
	}

	summary, warning := sessionCart.Select(item, quantity, item.Tier)
	return c.JSON(http.StatusOK, cartResponse{Summary: summary, Warning: warning})
}

// SetQuantity godoc
// @Summary Set a product quantity
// @Description Set the quantity for a product, clamped to available stock
// @Tags cart
// @Accept json
// @Produce json
// @Param request body cartMutationRequest true "Product and quantity"
// @Success 200 {object} cartResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /cart/quantity [put]
func (h *CartHandler) SetQuantity(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	var req cartMutationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	item, err := h.loadItem(req.ProductID)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	summary, warning := h.cartStore.Get(customerID).SetQuantity(item, req.Quantity)
	return c.JSON(http.StatusOK, cartResponse{Summary: summary, Warning: warning})
}

// Remove godoc
// @Summary Remove a product
// @Description Remove a product from the cart; removing an absent product is a no-op
// @Tags cart
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} cartResponse
// @Failure 400 {object} map[string]string
// @Router /cart/items/{id} [delete]
func (h *CartHandler) Remove(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	if _, err := uuid.Parse(c.Param("id")); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	summary := h.cartStore.Get(customerID).Remove(c.Param("id"))
	return c.JSON(http.StatusOK, cartResponse{Summary: summary})
}

// Clear godoc
// @Summary Clear the cart
// @Description Drop every selection in the session cart
// @Tags cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /cart [delete]
func (h *CartHandler) Clear(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	sessionCart := h.cartStore.Get(customerID)
	sessionCart.Clear()
	return c.JSON(http.StatusOK, cartResponse{Summary: sessionCart.Summarize()})
}

// Summary godoc
// @Summary Current cart summary
// @Description Return the computed order summary for the session cart
// @Tags cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /cart [get]
func (h *CartHandler) Summary(c echo.Context) error {
	customerID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Customer not found"})
	}

	return c.JSON(http.StatusOK, cartResponse{Summary: h.cartStore.Get(customerID).Summarize()})
}
