package handlers

import (
	"net/http"

	"paperstore/internal/repo"
	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ProductHandler handles catalog endpoints
type ProductHandler struct {
	productRepo     *repo.ProductRepository
	activityService *services.ActivityService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productRepo *repo.ProductRepository, activityService *services.ActivityService) *ProductHandler {
	return &ProductHandler{
		productRepo:     productRepo,
		activityService: activityService,
	}
}

// Storefront godoc
// @Summary Storefront catalog
// @Description List active products grouped by payment tier with stock badges
// @Tags store
// @Produce json
// @Success 200 {object} models.StorefrontCatalog
// @Failure 500 {object} map[string]string
// @Router /store/catalog [get]
func (h *ProductHandler) Storefront(c echo.Context) error {
	catalog := models.StorefrontCatalog{
		Cash:   []models.StorefrontProduct{},
		Credit: []models.StorefrontProduct{},
	}

	cash, err := h.productRepo.ListActiveByTier(models.TierCash)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load catalog"})
	}
	for _, p := range cash {
		catalog.Cash = append(catalog.Cash, storefrontView(p))
	}

	credit, err := h.productRepo.ListActiveByTier(models.TierCredit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load catalog"})
	}
	for _, p := range credit {
		catalog.Credit = append(catalog.Credit, storefrontView(p))
	}

	return c.JSON(http.StatusOK, catalog)
}

// List godoc
// @Summary List products
// @Description List products with pagination and optional search
// @Tags products
// @Produce json
// @Param page query int false "Page number"
// @Param per_page query int false "Items per page"
// @Param search query string false "Search by name, SKU or description"
// @Success 200 {object} models.ProductListResponse
// @Failure 500 {object} map[string]string
// @Router /products [get]
func (h *ProductHandler) List(c echo.Context) error {
	limit, offset := parsePagination(c)

	result, err := h.productRepo.ListWithSearch(limit, offset, c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to list products"})
	}

	return c.JSON(http.StatusOK, result)
}

// GetByID godoc
// @Summary Get product
// @Description Get a product by ID
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.SwaggerProduct
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (h *ProductHandler) GetByID(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	return c.JSON(http.StatusOK, product)
}

// Create godoc
// @Summary Create product
// @Description Create a new product
// @Tags products
// @Accept json
// @Produce json
// @Param request body models.Product true "Product data"
// @Success 201 {object} models.SwaggerProduct
// @Failure 400 {object} map[string]string
// @Router /products [post]
func (h *ProductHandler) Create(c echo.Context) error {
	var product models.Product
	if err := c.Bind(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.productRepo.Create(&product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to create product"})
	}

	h.activityService.Record(staffActor(c), models.ActionCreated, "product", &product.ID, product.Name)

	return c.JSON(http.StatusCreated, product)
}

// Update godoc
// @Summary Update product
// @Description Update an existing product
// @Tags products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param request body models.Product true "Product data"
// @Success 200 {object} models.SwaggerProduct
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /products/{id} [put]
func (h *ProductHandler) Update(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	product, err := h.productRepo.GetByID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	var req models.Product
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request"})
	}

	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	product.Name = req.Name
	product.Description = req.Description
	product.Tier = req.Tier
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.SKU = req.SKU
	product.StockQuantity = req.StockQuantity
	product.LowStockThreshold = req.LowStockThreshold
	product.SortOrder = req.SortOrder
	product.IsActive = req.IsActive

	if err := h.productRepo.Update(product); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to update product"})
	}

	h.activityService.Record(staffActor(c), models.ActionUpdated, "product", &product.ID, product.Name)

	return c.JSON(http.StatusOK, product)
}

// Delete godoc
// @Summary Delete product
// @Description Soft-delete a product
// @Tags products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /products/{id} [delete]
func (h *ProductHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product ID"})
	}

	if err := h.productRepo.Delete(id); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Failed to delete product"})
	}

	h.activityService.Record(staffActor(c), models.ActionDeleted, "product", &id, "")

	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}
