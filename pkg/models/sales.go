package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a storefront customer identified by phone number
type Customer struct {
	BaseModel
	Phone       string     `gorm:"unique;not null" json:"phone" validate:"required,numeric"`
	Name        string     `json:"name"`
	Address     string     `json:"address"`
	Postcode    string     `json:"postcode"`
	NationalID  string     `json:"national_id"`
	IsVerified  bool       `gorm:"default:false" json:"is_verified"`
	IsActive    bool       `gorm:"default:true" json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
}

// Order statuses, in the usual forward progression
const (
	OrderPending    = "pending"
	OrderConfirmed  = "confirmed"
	OrderProcessing = "processing"
	OrderReady      = "ready"
	OrderDelivered  = "delivered"
	OrderCancelled  = "cancelled"
	OrderReturned   = "returned"
)

// OrderStatuses lists every valid order status
func OrderStatuses() []string {
	return []string{
		OrderPending, OrderConfirmed, OrderProcessing,
		OrderReady, OrderDelivered, OrderCancelled, OrderReturned,
	}
}

// Order represents a placed order, frozen from a cart summary at checkout
type Order struct {
	BaseModel
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"customer_id"`
	OrderNumber   string    `gorm:"unique;not null" json:"order_number"`
	Status        string    `gorm:"default:'pending';index" json:"status"`
	PaymentStatus string    `gorm:"default:'pending'" json:"payment_status"`
	TotalAmount   int64     `gorm:"not null" json:"total_amount"`
	ItemCount     int       `gorm:"not null" json:"item_count"`
	TotalQuantity int       `gorm:"not null" json:"total_quantity"`
	Notes         string    `json:"notes"`

	// Historical customer data for order integrity
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`

	// Relations
	Customer *Customer   `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	Payments []Payment   `gorm:"foreignKey:OrderID" json:"payments,omitempty"`
}

// CanBeCancelled reports whether the order is early enough to cancel
func (o *Order) CanBeCancelled() bool {
	return o.Status == OrderPending || o.Status == OrderConfirmed
}

// OrderItem represents a line of an order
type OrderItem struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"order_id"`
	ProductID *uuid.UUID `gorm:"type:uuid;constraint:OnDelete:SET NULL" json:"product_id"`
	Quantity  int        `gorm:"not null" json:"quantity"`
	UnitPrice int64      `gorm:"not null" json:"unit_price"`
	LineTotal int64      `gorm:"not null" json:"line_total"`

	// Historical product data for order integrity
	ProductName string      `json:"product_name"`
	ProductSKU  string      `json:"product_sku"`
	Tier        PaymentTier `json:"tier"`
}

// OrderStatusHistory records each status transition of an order
type OrderStatusHistory struct {
	BaseModel
	OrderID   uuid.UUID  `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"order_id"`
	From      string     `json:"from"`
	To        string     `gorm:"not null" json:"to"`
	ChangedBy *uuid.UUID `gorm:"type:uuid" json:"changed_by"`
	Note      string     `json:"note"`
}

// Payment statuses
const (
	PaymentInitiated = "initiated"
	PaymentSuccess   = "success"
	PaymentFailed    = "failed"
	PaymentExpired   = "expired"
)

// Payment represents a (simulated) gateway payment attempt for an order
type Payment struct {
	BaseModel
	OrderID      uuid.UUID  `gorm:"type:uuid;not null;index;constraint:OnDelete:RESTRICT" json:"order_id"`
	TrackingCode string     `gorm:"unique;not null" json:"tracking_code"`
	Status       string     `gorm:"default:'initiated';index" json:"status"`
	Amount       int64      `gorm:"not null" json:"amount"`
	Gateway      string     `gorm:"default:'simulated'" json:"gateway"`
	ReferenceID  string     `json:"reference_id"`
	ErrorMessage string     `json:"error_message"`
	ExpiresAt    time.Time  `json:"expires_at"`
	CompletedAt  *time.Time `json:"completed_at"`
}

// CanRetry reports whether a new attempt may be made after this one
func (p *Payment) CanRetry() bool {
	return p.Status == PaymentFailed || p.Status == PaymentExpired
}

// UpdateOrderStatusRequest changes an order's status
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// CheckoutRequest finalizes the session cart into an order
type CheckoutRequest struct {
	Notes string `json:"notes"`
}
