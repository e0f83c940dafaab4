package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"paperstore/internal/cart"
	"paperstore/internal/repo"
	"paperstore/pkg/models"
)

// Checkout errors surfaced to the handler layer
var (
	ErrEmptyCart      = errors.New("cart is empty")
	ErrUnknownProduct = errors.New("cart references an unknown product")
	ErrInvalidStatus  = errors.New("invalid order status")
	ErrCannotCancel   = errors.New("order can no longer be cancelled")
	ErrBadTransition  = errors.New("order status cannot move there")
)

// orderNumberAttempts bounds how many times checkout redraws the random
// order number suffix after hitting the unique index.
const orderNumberAttempts = 3

// OrderService assembles persisted orders from session cart summaries
type OrderService struct {
	db       *gorm.DB
	orders   *repo.OrderRepository
	products *repo.ProductRepository
	feed     *OrderFeed
}

// NewOrderService creates a new order service
func NewOrderService(db *gorm.DB, orders *repo.OrderRepository, products *repo.ProductRepository, feed *OrderFeed) *OrderService {
	return &OrderService{db: db, orders: orders, products: products, feed: feed}
}

// checkoutStore is the slice of persistence checkout runs against. The
// production implementation wraps one gorm transaction.
type checkoutStore interface {
	CreateOrder(order *models.Order) error
	FindProduct(id uuid.UUID) (*models.Product, error)
	CreateItem(item *models.OrderItem) error
	DecrementStock(id uuid.UUID, quantity int) error
	CreateHistory(history *models.OrderStatusHistory) error
}

type gormCheckoutStore struct {
	tx       *gorm.DB
	products *repo.ProductRepository
}

func (s gormCheckoutStore) CreateOrder(order *models.Order) error {
	return s.tx.Create(order).Error
}

func (s gormCheckoutStore) FindProduct(id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.tx.Where("id = ?", id).First(&product).Error; err != nil {
		return nil, err
	}
	return &product, nil
}

func (s gormCheckoutStore) CreateItem(item *models.OrderItem) error {
	return s.tx.Create(item).Error
}

func (s gormCheckoutStore) DecrementStock(id uuid.UUID, quantity int) error {
	return s.products.DecrementStock(s.tx, id, quantity)
}

func (s gormCheckoutStore) CreateHistory(history *models.OrderStatusHistory) error {
	return s.tx.Create(history).Error
}

// Checkout freezes the cart summary into an order: order + items + initial
// history row are created and stock is decremented, all in one
// transaction. The caller clears the session cart afterwards.
func (s *OrderService) Checkout(customer *models.Customer, summary cart.Summary, notes string) (*models.Order, error) {
	if summary.ItemCount == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		CustomerID:    customer.ID,
		Status:        models.OrderPending,
		TotalAmount:   summary.TotalAmount,
		ItemCount:     summary.ItemCount,
		TotalQuantity: summary.TotalQuantity,
		Notes:         notes,
		CustomerName:  customer.Name,
		CustomerPhone: customer.Phone,
	}

	err := placeWithFreshNumber(order, func(o *models.Order) error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			return placeOrder(gormCheckoutStore{tx: tx, products: s.products}, o, summary)
		})
	})
	if err != nil {
		return nil, err
	}

	if s.feed != nil {
		s.feed.Publish(OrderEvent{
			Type:        EventOrderPlaced,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      order.Status,
			TotalAmount: order.TotalAmount,
		})
	}

	return order, nil
}

// placeWithFreshNumber draws an order number, runs place, and redraws on a
// unique-index collision. Each attempt runs a whole new transaction because
// Postgres aborts the current one on a constraint violation.
func placeWithFreshNumber(order *models.Order, place func(*models.Order) error) error {
	var err error
	for attempt := 0; attempt < orderNumberAttempts; attempt++ {
		order.OrderNumber = GenerateOrderNumber()
		err = place(order)
		if err == nil || !isDuplicateOrderNumber(err) {
			return err
		}
	}
	return err
}

func isDuplicateOrderNumber(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "duplicate key")
}

// placeOrder writes the order, its items, the stock decrements, and the
// initial history row through the store.
func placeOrder(store checkoutStore, order *models.Order, summary cart.Summary) error {
	if err := store.CreateOrder(order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for _, line := range summary.Lines {
		productID, err := uuid.Parse(line.ItemID)
		if err != nil {
			return ErrUnknownProduct
		}

		product, err := store.FindProduct(productID)
		if err != nil {
			return ErrUnknownProduct
		}

		item := models.OrderItem{
			OrderID:     order.ID,
			ProductID:   &productID,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
			LineTotal:   line.LineTotal,
			ProductName: line.Name,
			ProductSKU:  product.SKU,
			Tier:        line.Tier,
		}
		if err := store.CreateItem(&item); err != nil {
			return fmt.Errorf("failed to create order item: %w", err)
		}

		if err := store.DecrementStock(productID, line.Quantity); err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}
	}

	history := models.OrderStatusHistory{
		OrderID: order.ID,
		From:    "",
		To:      models.OrderPending,
		Note:    "order placed",
	}
	return store.CreateHistory(&history)
}

// ChangeStatus validates and applies a status transition
func (s *OrderService) ChangeStatus(order *models.Order, to string, changedBy *uuid.UUID, note string) error {
	if !validStatus(to) {
		return ErrInvalidStatus
	}
	if to == models.OrderCancelled && !order.CanBeCancelled() {
		return ErrCannotCancel
	}
	if order.Status == models.OrderDelivered || order.Status == models.OrderCancelled {
		return ErrBadTransition
	}

	if err := s.orders.UpdateStatus(order, to, changedBy, note); err != nil {
		return err
	}

	if s.feed != nil {
		s.feed.Publish(OrderEvent{
			Type:        EventOrderStatus,
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			Status:      to,
			TotalAmount: order.TotalAmount,
		})
	}
	return nil
}

// GenerateOrderNumber generates an order number of the form
// ORD-YYYYMMDD-NNNN. The suffix is drawn from a crypto source so two
// checkouts in the same second never collide deterministically; the unique
// index still backstops the residual collision, which checkout retries.
func GenerateOrderNumber() string {
	now := time.Now()
	n, err := rand.Int(rand.Reader, big.NewInt(10000))
	if err != nil {
		n = big.NewInt(now.UnixNano() % 10000)
	}
	return fmt.Sprintf("ORD-%d%02d%02d-%04d",
		now.Year(),
		now.Month(),
		now.Day(),
		n.Int64(),
	)
}

func validStatus(status string) bool {
	for _, s := range models.OrderStatuses() {
		if s == status {
			return true
		}
	}
	return false
}
