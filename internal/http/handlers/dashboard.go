package handlers

import (
	"net/http"
	"time"

	"paperstore/internal/hours"
	"paperstore/pkg/models"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// DashboardHandler aggregates the admin console landing numbers
type DashboardHandler struct {
	db *gorm.DB
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(db *gorm.DB) *DashboardHandler {
	return &DashboardHandler{db: db}
}

// Stats godoc
// @Summary Dashboard stats
// @Description Order, product and customer counts plus today's settled revenue
// @Tags dashboard
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]string
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	var (
		totalOrders    int64
		pendingOrders  int64
		totalProducts  int64
		lowStock       int64
		totalCustomers int64
		todayRevenue   int64
	)

	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load stats"})
	}
	h.db.Model(&models.Order{}).Where("status = ?", models.OrderPending).Count(&pendingOrders)
	h.db.Model(&models.Product{}).Where("is_active = ?", true).Count(&totalProducts)
	h.db.Model(&models.Product{}).Where("is_active = ? AND stock_quantity <= low_stock_threshold", true).Count(&lowStock)
	h.db.Model(&models.Customer{}).Count(&totalCustomers)

	// Revenue counts settled payments since store-zone midnight
	now := time.Now().In(hours.Location)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, hours.Location)
	h.db.Model(&models.Payment{}).
		Where("status = ? AND completed_at >= ?", models.PaymentSuccess, midnight).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&todayRevenue)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"total_orders":    totalOrders,
		"pending_orders":  pendingOrders,
		"total_products":  totalProducts,
		"low_stock":       lowStock,
		"total_customers": totalCustomers,
		"today_revenue":   todayRevenue,
	})
}
