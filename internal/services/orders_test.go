package services

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperstore/internal/cart"
	"paperstore/pkg/models"
)

type fakeCheckoutStore struct {
	products   map[uuid.UUID]*models.Product
	orders     []*models.Order
	items      []models.OrderItem
	decrements map[uuid.UUID]int
	history    []models.OrderStatusHistory
}

func newFakeCheckoutStore(products ...*models.Product) *fakeCheckoutStore {
	s := &fakeCheckoutStore{
		products:   make(map[uuid.UUID]*models.Product),
		decrements: make(map[uuid.UUID]int),
	}
	for _, p := range products {
		s.products[p.ID] = p
	}
	return s
}

func (s *fakeCheckoutStore) CreateOrder(order *models.Order) error {
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeCheckoutStore) FindProduct(id uuid.UUID) (*models.Product, error) {
	p, ok := s.products[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (s *fakeCheckoutStore) CreateItem(item *models.OrderItem) error {
	s.items = append(s.items, *item)
	return nil
}

func (s *fakeCheckoutStore) DecrementStock(id uuid.UUID, quantity int) error {
	s.decrements[id] += quantity
	return nil
}

func (s *fakeCheckoutStore) CreateHistory(h *models.OrderStatusHistory) error {
	s.history = append(s.history, *h)
	return nil
}

func a4Product() *models.Product {
	p := &models.Product{
		Name:          "A4 80g white",
		SKU:           "CASH-A4-80",
		Price:         25000,
		StockQuantity: 150,
		Tier:          models.TierCash,
		IsActive:      true,
	}
	p.ID = uuid.New()
	return p
}

func TestCheckoutRejectsEmptyCart(t *testing.T) {
	svc := &OrderService{}
	_, err := svc.Checkout(&models.Customer{}, cart.Summary{}, "")
	assert.Equal(t, ErrEmptyCart, err)
}

func TestPlaceOrderWritesItemsStockAndHistory(t *testing.T) {
	p := a4Product()

	c := cart.New()
	sum, warn := c.Select(cart.Item{
		ID:        p.ID.String(),
		Name:      p.Name,
		SKU:       p.SKU,
		UnitPrice: p.Price,
		Stock:     p.StockQuantity,
		Tier:      p.Tier,
	}, 3, models.TierCash)
	require.Nil(t, warn)

	store := newFakeCheckoutStore(p)
	order := &models.Order{OrderNumber: "ORD-20260829-0001", Status: models.OrderPending}
	require.NoError(t, placeOrder(store, order, sum))

	require.Len(t, store.orders, 1)
	require.Len(t, store.items, 1)
	assert.Equal(t, order.ID, store.items[0].OrderID)
	assert.Equal(t, 3, store.items[0].Quantity)
	assert.Equal(t, int64(75000), store.items[0].LineTotal)
	assert.Equal(t, "CASH-A4-80", store.items[0].ProductSKU)

	assert.Equal(t, 3, store.decrements[p.ID])

	require.Len(t, store.history, 1)
	assert.Equal(t, models.OrderPending, store.history[0].To)
	assert.Equal(t, order.ID, store.history[0].OrderID)
}

func TestPlaceOrderUnknownProduct(t *testing.T) {
	sum := cart.Summary{
		ItemCount: 1,
		Lines:     []cart.Line{{ItemID: uuid.New().String(), Quantity: 1}},
	}
	err := placeOrder(newFakeCheckoutStore(), &models.Order{}, sum)
	assert.Equal(t, ErrUnknownProduct, err)

	sum.Lines[0].ItemID = "not-a-uuid"
	err = placeOrder(newFakeCheckoutStore(), &models.Order{}, sum)
	assert.Equal(t, ErrUnknownProduct, err)
}

func TestPlaceWithFreshNumberRetriesOnDuplicate(t *testing.T) {
	calls := 0
	var numbers []string
	err := placeWithFreshNumber(&models.Order{}, func(o *models.Order) error {
		calls++
		numbers = append(numbers, o.OrderNumber)
		if calls == 1 {
			return errors.New(`ERROR: duplicate key value violates unique constraint "idx_orders_order_number" (SQLSTATE 23505)`)
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 2, calls, "a collision should draw a fresh number and retry")
	require.Len(t, numbers, 2)
	assert.NotEmpty(t, numbers[1])
}

func TestPlaceWithFreshNumberGivesUpEventually(t *testing.T) {
	dup := errors.New("duplicate key value violates unique constraint")
	calls := 0
	err := placeWithFreshNumber(&models.Order{}, func(o *models.Order) error {
		calls++
		return dup
	})

	assert.Equal(t, dup, err)
	assert.Equal(t, orderNumberAttempts, calls)
}

func TestPlaceWithFreshNumberStopsOnOtherErrors(t *testing.T) {
	boom := errors.New("connection refused")
	calls := 0
	err := placeWithFreshNumber(&models.Order{}, func(o *models.Order) error {
		calls++
		return boom
	})

	assert.Equal(t, boom, err)
	assert.Equal(t, 1, calls)
}
