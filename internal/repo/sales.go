package repo

import (
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository handles order data access
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a new order repository
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// DB returns the underlying connection for transactional work
func (r *OrderRepository) DB() *gorm.DB {
	return r.db
}

// GetByID gets an order with its items and payments
func (r *OrderRepository) GetByID(id uuid.UUID) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Preload("Payments").Where("id = ?", id).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetByNumber gets an order by its order number
func (r *OrderRepository) GetByNumber(number string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Items").Where("order_number = ?", number).First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// List lists orders with pagination, newest first, optionally by status
func (r *OrderRepository) List(limit, offset int, status string) (*models.PaginationResult[models.Order], error) {
	var orders []models.Order
	var total int64

	query := r.db.Model(&models.Order{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	err := query.Preload("Items").Order("created_at DESC").Limit(limit).Offset(offset).Find(&orders).Error
	if err != nil {
		return nil, err
	}

	page := offset/limit + 1
	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return &models.PaginationResult[models.Order]{
		Data:       orders,
		Total:      total,
		Page:       page,
		PerPage:    limit,
		TotalPages: totalPages,
	}, nil
}

// ListByCustomer lists a customer's own orders, newest first
func (r *OrderRepository) ListByCustomer(customerID uuid.UUID, limit, offset int) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&orders).Error
	return orders, err
}

// UpdateStatus transitions the order status and appends to the history
func (r *OrderRepository) UpdateStatus(order *models.Order, to string, changedBy *uuid.UUID, note string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		history := models.OrderStatusHistory{
			OrderID:   order.ID,
			From:      order.Status,
			To:        to,
			ChangedBy: changedBy,
			Note:      note,
		}
		if err := tx.Create(&history).Error; err != nil {
			return err
		}
		order.Status = to
		return tx.Model(order).Update("status", to).Error
	})
}

// StatusHistory returns the transition history of an order, oldest first
func (r *OrderRepository) StatusHistory(orderID uuid.UUID) ([]models.OrderStatusHistory, error) {
	var history []models.OrderStatusHistory
	err := r.db.Where("order_id = ?", orderID).Order("created_at ASC").Find(&history).Error
	return history, err
}

// PaymentRepository handles payment data access
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create creates a new payment
func (r *PaymentRepository) Create(payment *models.Payment) error {
	return r.db.Create(payment).Error
}

// Update updates a payment
func (r *PaymentRepository) Update(payment *models.Payment) error {
	return r.db.Save(payment).Error
}

// GetByID gets a payment by ID
func (r *PaymentRepository) GetByID(id uuid.UUID) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("id = ?", id).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetByTrackingCode gets a payment by its tracking code
func (r *PaymentRepository) GetByTrackingCode(code string) (*models.Payment, error) {
	var payment models.Payment
	err := r.db.Where("tracking_code = ?", code).First(&payment).Error
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// ListByOrder lists all payment attempts for an order, newest first
func (r *PaymentRepository) ListByOrder(orderID uuid.UUID) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("order_id = ?", orderID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}
