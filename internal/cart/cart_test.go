package cart

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paperstore/pkg/models"
)

func a4Cash() Item {
	return Item{ID: "p1", Name: "A4 80g white", UnitPrice: 25000, Stock: 150, Tier: models.TierCash}
}

func a3Credit() Item {
	return Item{ID: "p2", Name: "A3 80g white", UnitPrice: 50000, Stock: 50, Tier: models.TierCredit}
}

func TestSelectThenSummarize(t *testing.T) {
	c := New()

	sum, warn := c.Select(a4Cash(), 3, models.TierCash)
	require.Nil(t, warn)
	assert.Equal(t, int64(75000), sum.TotalAmount)
	assert.Equal(t, 1, sum.ItemCount)
	assert.Equal(t, 3, sum.TotalQuantity)
	require.Len(t, sum.Lines, 1)
	assert.Equal(t, int64(75000), sum.Lines[0].LineTotal)
}

func TestSelectTogglesOff(t *testing.T) {
	c := New()

	c.Select(a4Cash(), 3, models.TierCash)
	sum, warn := c.Select(a4Cash(), 3, models.TierCash)

	assert.Nil(t, warn)
	assert.Equal(t, 0, sum.ItemCount)
	assert.Equal(t, int64(0), sum.TotalAmount)
	assert.True(t, c.Empty())
}

func TestSelectClampsToStock(t *testing.T) {
	c := New()

	sum, warn := c.Select(a4Cash(), 999, models.TierCash)

	require.NotNil(t, warn)
	assert.Equal(t, 150, warn.MaxStock)
	assert.Equal(t, "p1", warn.ItemID)
	assert.Equal(t, 150, sum.TotalQuantity)
}

func TestOutOfStockItemNeverEntersCart(t *testing.T) {
	c := New()
	soldOut := Item{ID: "p9", Name: "A5 laminated", UnitPrice: 35000, Stock: 0, Tier: models.TierCash}

	sum, warn := c.Select(soldOut, 1, models.TierCash)
	require.NotNil(t, warn)
	assert.Equal(t, "p9", warn.ItemID)
	assert.Equal(t, 0, warn.MaxStock)
	assert.Equal(t, 0, sum.ItemCount)
	assert.Equal(t, 0, sum.TotalQuantity)
	assert.True(t, c.Empty())

	sum, warn = c.SetQuantity(soldOut, 5)
	require.NotNil(t, warn)
	assert.Equal(t, 0, sum.ItemCount)

	// Stored quantities stay in [1, stock] across other items too.
	c.Select(a4Cash(), 2, models.TierCash)
	c.Select(soldOut, 1, models.TierCash)
	for _, l := range c.Summarize().Lines {
		assert.GreaterOrEqual(t, l.Quantity, 1)
	}
}

func TestSetQuantityOnSelectedItem(t *testing.T) {
	c := New()
	c.Select(a4Cash(), 1, models.TierCash)

	sum, warn := c.SetQuantity(a4Cash(), 10)
	require.Nil(t, warn)
	assert.Equal(t, 10, sum.TotalQuantity)
	assert.Equal(t, int64(250000), sum.TotalAmount)
}

func TestSetQuantityClampsAndWarns(t *testing.T) {
	c := New()
	c.Select(a4Cash(), 1, models.TierCash)

	sum, warn := c.SetQuantity(a4Cash(), 999)
	require.NotNil(t, warn)
	assert.Equal(t, 150, warn.MaxStock)
	assert.Equal(t, 150, sum.TotalQuantity)

	// Never below 1 either.
	sum, warn = c.SetQuantity(a4Cash(), -5)
	assert.Nil(t, warn)
	assert.Equal(t, 1, sum.TotalQuantity)
}

func TestSetQuantityOnUnselectedItemOnlyRemembers(t *testing.T) {
	c := New()

	sum, warn := c.SetQuantity(a4Cash(), 999)
	require.NotNil(t, warn)
	assert.Equal(t, 0, sum.ItemCount, "unselected item must not enter the summary")
	assert.Equal(t, 150, c.WorkingQuantity("p1"))

	// A later Select uses whatever quantity the caller passes; the working
	// quantity is what the storefront reads back into the input box.
	sum, _ = c.Select(a4Cash(), c.WorkingQuantity("p1"), models.TierCash)
	assert.Equal(t, 150, sum.TotalQuantity)
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	c := New()
	c.Select(a4Cash(), 2, models.TierCash)

	sum := c.Remove("nope")
	assert.Equal(t, 1, sum.ItemCount)

	sum = c.Remove("p1")
	assert.Equal(t, 0, sum.ItemCount)
}

func TestMixedTiersAggregate(t *testing.T) {
	c := New()

	c.Select(a4Cash(), 2, models.TierCash)
	sum, _ := c.Select(a3Credit(), 3, models.TierCredit)

	assert.Equal(t, int64(2*25000+3*50000), sum.TotalAmount)
	assert.Equal(t, 2, sum.ItemCount)
	assert.Equal(t, 5, sum.TotalQuantity)
	require.Len(t, sum.Lines, 2)
	// Lines keep selection order.
	assert.Equal(t, "p1", sum.Lines[0].ItemID)
	assert.Equal(t, "p2", sum.Lines[1].ItemID)
}

func TestInvariantsAfterMutationSequence(t *testing.T) {
	c := New()

	c.Select(a4Cash(), 2, models.TierCash)
	c.Select(a3Credit(), 1, models.TierCredit)
	c.SetQuantity(a3Credit(), 4)
	c.Select(a4Cash(), 2, models.TierCash) // toggles p1 off
	c.SetQuantity(a3Credit(), 2)
	sum := c.Summarize()

	var total int64
	var qty int
	for _, l := range sum.Lines {
		total += l.UnitPrice * int64(l.Quantity)
		qty += l.Quantity
	}
	assert.Equal(t, total, sum.TotalAmount)
	assert.Equal(t, qty, sum.TotalQuantity)
	assert.Equal(t, len(sum.Lines), sum.ItemCount)
	assert.Equal(t, 1, sum.ItemCount)
	assert.Equal(t, 2, sum.TotalQuantity)
}

func TestClearEmptiesCart(t *testing.T) {
	c := New()
	c.Select(a4Cash(), 2, models.TierCash)
	c.Select(a3Credit(), 1, models.TierCredit)

	c.Clear()

	sum := c.Summarize()
	assert.Equal(t, 0, sum.ItemCount)
	assert.Equal(t, int64(0), sum.TotalAmount)
	assert.Equal(t, 0, sum.TotalQuantity)
}

func TestStoreSessions(t *testing.T) {
	s := NewStore()
	alice := uuid.New()
	bob := uuid.New()

	s.Get(alice).Select(a4Cash(), 2, models.TierCash)

	_, ok := s.Peek(bob)
	assert.False(t, ok, "bob has no cart yet")
	assert.Equal(t, 2, s.Get(alice).Summarize().TotalQuantity)

	s.Drop(alice)
	_, ok = s.Peek(alice)
	assert.False(t, ok)
}
