package models

// PaymentTier is the pricing/stock track a product is sold under.
// Cash products are paid up front, credit ("terms") products are invoiced.
type PaymentTier string

const (
	TierCash   PaymentTier = "cash"
	TierCredit PaymentTier = "credit"
)

// Valid reports whether the tier is one of the known tracks
func (t PaymentTier) Valid() bool {
	return t == TierCash || t == TierCredit
}

// Product represents a paper product in the catalog.
// Prices are integer minor units (Toman); stock is whole kilograms.
type Product struct {
	BaseModel
	Name              string      `gorm:"not null" json:"name" validate:"required"`
	Description       string      `json:"description"`
	Tier              PaymentTier `gorm:"not null;index;check:tier IN ('cash','credit')" json:"tier" validate:"required,oneof=cash credit"`
	Price             int64       `gorm:"not null" json:"price" validate:"required,gt=0"`
	SalePrice         int64       `json:"sale_price"`
	SKU               string      `gorm:"uniqueIndex;not null" json:"sku"`
	StockQuantity     int         `gorm:"default:0" json:"stock_quantity" validate:"gte=0"`
	LowStockThreshold int         `gorm:"default:5" json:"low_stock_threshold"`
	SortOrder         int         `gorm:"default:0" json:"sort_order"`
	IsActive          bool        `gorm:"default:true" json:"is_active"`
}

// Stock status badges shown on the storefront tables
const (
	StockHigh   = "high"
	StockMedium = "medium"
	StockLow    = "low"
)

// StockStatus derives the storefront badge from the current stock level
func (p *Product) StockStatus() string {
	switch {
	case p.StockQuantity > 100:
		return StockHigh
	case p.StockQuantity > 50:
		return StockMedium
	default:
		return StockLow
	}
}

// EffectivePrice returns the sale price when set, the list price otherwise
func (p *Product) EffectivePrice() int64 {
	if p.SalePrice > 0 && p.SalePrice < p.Price {
		return p.SalePrice
	}
	return p.Price
}

// StorefrontProduct is the storefront view of a product
type StorefrontProduct struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Tier        PaymentTier `json:"tier"`
	Price       int64       `json:"price"`
	Stock       int         `json:"stock"`
	StockStatus string      `json:"stock_status"`
}

// StorefrontCatalog groups active products by payment tier
type StorefrontCatalog struct {
	Cash   []StorefrontProduct `json:"cash"`
	Credit []StorefrontProduct `json:"credit"`
}
