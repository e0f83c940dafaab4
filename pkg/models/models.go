package models

// PaginationResult represents paginated results
type PaginationResult[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	TotalPages int   `json:"total_pages"`
}

// Swagger-specific types (non-generic to avoid swag parsing issues)

// SwaggerProduct represents a product for swagger docs (without GORM dependencies)
type SwaggerProduct struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Tier          string `json:"tier"`
	Price         int64  `json:"price"`
	StockQuantity int    `json:"stock_quantity"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// ProductListResponse represents paginated product results for Swagger docs
type ProductListResponse struct {
	Data       []SwaggerProduct `json:"data"`
	Total      int64            `json:"total"`
	Page       int              `json:"page"`
	PerPage    int              `json:"per_page"`
	TotalPages int              `json:"total_pages"`
}

// SwaggerOrder represents an order for swagger docs (without GORM dependencies)
type SwaggerOrder struct {
	ID            string `json:"id"`
	CustomerID    string `json:"customer_id"`
	OrderNumber   string `json:"order_number"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
	TotalAmount   int64  `json:"total_amount"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

// OrderListResponse represents paginated order results for Swagger docs
type OrderListResponse struct {
	Data       []SwaggerOrder `json:"data"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	PerPage    int            `json:"per_page"`
	TotalPages int            `json:"total_pages"`
}

// GetAllModels returns all models for GORM AutoMigrate
func GetAllModels() []interface{} {
	return []interface{}{
		// Accounts
		&User{},
		&Customer{},
		&OTPCode{},

		// Catalog
		&Product{},

		// Sales
		&Order{},
		&OrderItem{},
		&OrderStatusHistory{},
		&Payment{},

		// Store configuration
		&WorkingHours{},

		// Audit
		&ActivityLog{},
	}
}
