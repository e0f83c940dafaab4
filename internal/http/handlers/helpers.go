package handlers

import (
	"strconv"

	"paperstore/internal/services"
	"paperstore/pkg/models"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// parsePagination reads limit/offset from page and per_page query params
func parsePagination(c echo.Context) (limit, offset int) {
	page, _ := strconv.Atoi(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}

	limit, _ = strconv.Atoi(c.QueryParam("per_page"))
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	return limit, (page - 1) * limit
}

// staffActor builds an audit actor from the authenticated staff context
func staffActor(c echo.Context) services.Actor {
	actor := services.Actor{IP: c.RealIP()}
	if id, ok := c.Get("user_id").(uuid.UUID); ok {
		actor.ID = &id
	}
	if email, ok := c.Get("user_email").(string); ok {
		actor.Name = email
	}
	if role, ok := c.Get("user_role").(string); ok {
		actor.Role = role
	}
	return actor
}

// customerActor builds an audit actor from the authenticated customer context
func customerActor(c echo.Context) services.Actor {
	actor := services.Actor{IP: c.RealIP(), Role: models.RoleCustomer}
	if id, ok := c.Get("user_id").(uuid.UUID); ok {
		actor.ID = &id
	}
	if phone, ok := c.Get("user_phone").(string); ok {
		actor.Name = phone
	}
	return actor
}

// storefrontView converts a product to its storefront representation
func storefrontView(p models.Product) models.StorefrontProduct {
	return models.StorefrontProduct{
		ID:          p.ID.String(),
		Name:        p.Name,
		Tier:        p.Tier,
		Price:       p.EffectivePrice(),
		Stock:       p.StockQuantity,
		StockStatus: p.StockStatus(),
	}
}
