// Package cart maintains a customer's in-session product selection and
// derives the order summary from it. Selections live only for the browsing
// session; checkout freezes the summary into a persisted order and the cart
// is cleared.
package cart

import (
	"sync"

	"paperstore/pkg/models"
)

// Item is the catalog view the cart operates on
type Item struct {
	ID        string
	Name      string
	SKU       string
	UnitPrice int64
	Stock     int
	Tier      models.PaymentTier
}

// Selection is one chosen item with its quantity. At most one selection
// exists per item id.
type Selection struct {
	ItemID   string             `json:"item_id"`
	Quantity int                `json:"quantity"`
	Tier     models.PaymentTier `json:"tier"`
}

// Line is one computed row of the order summary
type Line struct {
	ItemID    string             `json:"item_id"`
	Name      string             `json:"name"`
	UnitPrice int64              `json:"unit_price"`
	Quantity  int                `json:"quantity"`
	LineTotal int64              `json:"line_total"`
	Tier      models.PaymentTier `json:"tier"`
}

// Summary is the derived order summary. It is recomputed on every mutation
// and never mutated in place.
type Summary struct {
	Lines         []Line `json:"lines"`
	TotalAmount   int64  `json:"total_amount"`
	ItemCount     int    `json:"item_count"`
	TotalQuantity int    `json:"total_quantity"`
}

// StockWarning is the advisory signal emitted when a requested quantity was
// clamped to the available stock. It never blocks the operation.
type StockWarning struct {
	ItemID   string `json:"item_id"`
	MaxStock int    `json:"max_stock"`
}

// Cart holds one session's selections. It is an explicitly constructed
// session object; nothing in this package is package-level state.
type Cart struct {
	mu         sync.Mutex
	selections map[string]*entry
	order      []string       // item ids in selection order
	working    map[string]int // clamped quantities remembered for unselected items
}

type entry struct {
	item     Item
	quantity int
	tier     models.PaymentTier
}

// New creates an empty cart
func New() *Cart {
	return &Cart{
		selections: make(map[string]*entry),
		working:    make(map[string]int),
	}
}

// Select toggles the selection for an item. If the item is already selected
// it is removed, matching the storefront's select-again-to-deselect
// behavior. Otherwise it is added with the quantity clamped to
// [1, item.Stock]; a non-nil warning reports clamping against stock. An
// out-of-stock item is never selected: the summary comes back unchanged
// with a warning, since no quantity in [1, stock] exists for it.
func (c *Cart) Select(item Item, quantity int, tier models.PaymentTier) (Summary, *StockWarning) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.selections[item.ID]; ok {
		c.removeLocked(item.ID)
		return c.summarizeLocked(), nil
	}

	if item.Stock < 1 {
		return c.summarizeLocked(), &StockWarning{ItemID: item.ID, MaxStock: 0}
	}

	qty, warn := clamp(quantity, item.Stock, item.ID)
	c.selections[item.ID] = &entry{item: item, quantity: qty, tier: tier}
	c.order = append(c.order, item.ID)
	delete(c.working, item.ID)
	return c.summarizeLocked(), warn
}

// SetQuantity clamps the quantity to [1, stock]. A selected item is updated
// in place; for an unselected item only the clamped working quantity is
// remembered for a future Select. Out-of-stock items are refused the same
// way Select refuses them.
func (c *Cart) SetQuantity(item Item, quantity int) (Summary, *StockWarning) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if item.Stock < 1 {
		return c.summarizeLocked(), &StockWarning{ItemID: item.ID, MaxStock: 0}
	}

	qty, warn := clamp(quantity, item.Stock, item.ID)
	if e, ok := c.selections[item.ID]; ok {
		e.quantity = qty
	} else {
		c.working[item.ID] = qty
	}
	return c.summarizeLocked(), warn
}

// WorkingQuantity returns the remembered quantity for an item: the live
// selection quantity if selected, the clamped working quantity otherwise,
// defaulting to 1.
func (c *Cart) WorkingQuantity(itemID string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.selections[itemID]; ok {
		return e.quantity
	}
	if q, ok := c.working[itemID]; ok {
		return q
	}
	return 1
}

// Remove drops the selection for an item. Removing an absent item is a
// no-op.
func (c *Cart) Remove(itemID string) Summary {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.removeLocked(itemID)
	return c.summarizeLocked()
}

// Clear empties the cart
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.selections = make(map[string]*entry)
	c.order = nil
	c.working = make(map[string]int)
}

// Summarize recomputes the order summary from the current selections
func (c *Cart) Summarize() Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.summarizeLocked()
}

// Empty reports whether nothing is selected
func (c *Cart) Empty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.selections) == 0
}

func (c *Cart) removeLocked(itemID string) {
	if _, ok := c.selections[itemID]; !ok {
		return
	}
	delete(c.selections, itemID)
	for i, id := range c.order {
		if id == itemID {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func (c *Cart) summarizeLocked() Summary {
	s := Summary{Lines: make([]Line, 0, len(c.order))}
	for _, id := range c.order {
		e := c.selections[id]
		total := e.item.UnitPrice * int64(e.quantity)
		s.Lines = append(s.Lines, Line{
			ItemID:    e.item.ID,
			Name:      e.item.Name,
			UnitPrice: e.item.UnitPrice,
			Quantity:  e.quantity,
			LineTotal: total,
			Tier:      e.tier,
		})
		s.TotalAmount += total
		s.TotalQuantity += e.quantity
	}
	s.ItemCount = len(s.Lines)
	return s
}

// clamp forces the quantity into [1, stock]. Callers never reach it with
// stock below 1.
func clamp(quantity, stock int, itemID string) (int, *StockWarning) {
	if quantity < 1 {
		return 1, nil
	}
	if quantity > stock {
		return stock, &StockWarning{ItemID: itemID, MaxStock: stock}
	}
	return quantity, nil
}
