package handlers

import (
	"net/http/httptest"
	"testing"

	"paperstore/pkg/models"

	"github.com/labstack/echo/v4"
)

func paginationContext(query string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", "/?"+query, nil)
	return e.NewContext(req, httptest.NewRecorder())
}

func TestParsePagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", 20, 0},
		{"page=1&per_page=10", 10, 0},
		{"page=3&per_page=10", 10, 20},
		{"page=0&per_page=0", 20, 0},
		{"page=-2&per_page=-5", 20, 0},
		{"page=2&per_page=500", 100, 100},
		{"page=abc&per_page=xyz", 20, 0},
	}

	for _, test := range tests {
		limit, offset := parsePagination(paginationContext(test.query))
		if limit != test.wantLimit || offset != test.wantOffset {
			t.Errorf("parsePagination(%q) = (%d, %d), expected (%d, %d)",
				test.query, limit, offset, test.wantLimit, test.wantOffset)
		}
	}
}

func TestStorefrontView(t *testing.T) {
	tests := []struct {
		name      string
		stock     int
		price     int64
		salePrice int64
		wantBadge string
		wantPrice int64
	}{
		{"plenty in stock", 150, 25000, 0, models.StockHigh, 25000},
		{"medium stock", 75, 25000, 0, models.StockMedium, 25000},
		{"low stock", 10, 25000, 0, models.StockLow, 25000},
		{"boundary hundred is medium", 100, 25000, 0, models.StockMedium, 25000},
		{"sale price wins when lower", 150, 25000, 20000, models.StockHigh, 20000},
		{"sale price ignored when higher", 150, 25000, 30000, models.StockHigh, 25000},
	}

	for _, test := range tests {
		p := models.Product{
			Name:          test.name,
			Tier:          models.TierCash,
			Price:         test.price,
			SalePrice:     test.salePrice,
			StockQuantity: test.stock,
		}
		view := storefrontView(p)
		if view.StockStatus != test.wantBadge {
			t.Errorf("%s: stock badge = %q, expected %q", test.name, view.StockStatus, test.wantBadge)
		}
		if view.Price != test.wantPrice {
			t.Errorf("%s: price = %d, expected %d", test.name, view.Price, test.wantPrice)
		}
		if view.Stock != test.stock {
			t.Errorf("%s: stock = %d, expected %d", test.name, view.Stock, test.stock)
		}
	}
}
