package repo

import (
	"strings"

	"paperstore/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProductRepository handles product data access
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// GetByID gets a product by ID
func (r *ProductRepository) GetByID(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	err := r.db.Where("id = ?", id).First(&product).Error
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Create creates a new product
func (r *ProductRepository) Create(product *models.Product) error {
	return r.db.Create(product).Error
}

// Update updates a product
func (r *ProductRepository) Update(product *models.Product) error {
	return r.db.Save(product).Error
}

// Delete soft-deletes a product
func (r *ProductRepository) Delete(id uuid.UUID) error {
	return r.db.Delete(&models.Product{}, "id = ?", id).Error
}

// ListWithSearch lists products with pagination and optional name/SKU search
func (r *ProductRepository) ListWithSearch(limit, offset int, search string) (*models.PaginationResult[models.Product], error) {
	var products []models.Product
	var total int64

	query := r.db.Model(&models.Product{})
	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ? OR LOWER(description) LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	err := query.Order("sort_order ASC, created_at DESC").Limit(limit).Offset(offset).Find(&products).Error
	if err != nil {
		return nil, err
	}

	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Product]{
		Data:       products,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// ListActiveByTier returns the active storefront products of one tier
func (r *ProductRepository) ListActiveByTier(tier models.PaymentTier) ([]models.Product, error) {
	var products []models.Product
	err := r.db.Where("tier = ? AND is_active = ?", tier, true).
		Order("sort_order ASC, created_at ASC").
		Find(&products).Error
	return products, err
}

// DecrementStock reduces stock inside the given transaction, clamping at
// zero so checkout concurrency can never drive it negative.
func (r *ProductRepository) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&models.Product{}).
		Where("id = ?", id).
		Update("stock_quantity", gorm.Expr("GREATEST(stock_quantity - ?, 0)", quantity)).Error
}
