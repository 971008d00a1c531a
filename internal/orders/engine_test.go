package orders_test

import (
	"context"
	"sync"
	"testing"

	"github.com/ariefcatur/stockmate.git/internal/catalog"
	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/ariefcatur/stockmate.git/internal/memstore"
	"github.com/ariefcatur/stockmate.git/internal/orders"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) (*orders.Engine, *catalog.Service, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return orders.NewEngine(store, zerolog.Nop()), catalog.New(store, zerolog.Nop()), store
}

func TestCreate(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))

	t.Run("pending order against existing supplier", func(t *testing.T) {
		require.NoError(t, eng.Create(ctx, 100, 1))
		o, err := store.GetOrder(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, inventory.StatusPending, o.Status)
		assert.Equal(t, int64(1), o.SupplierID)
	})

	t.Run("unknown supplier leaves no order behind", func(t *testing.T) {
		err := eng.Create(ctx, 101, 999)
		require.ErrorIs(t, err, inventory.ErrSupplierNotFound)
		_, err = store.GetOrder(ctx, 101)
		assert.ErrorIs(t, err, inventory.ErrOrderNotFound)
	})

	t.Run("order id uniqueness enforced", func(t *testing.T) {
		err := eng.Create(ctx, 100, 1)
		assert.ErrorIs(t, err, inventory.ErrDuplicateKey)
	})
}

func TestAddLine(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 500))
	require.NoError(t, eng.Create(ctx, 100, 1))

	t.Run("reserving all stock", func(t *testing.T) {
		line, err := eng.AddLine(ctx, 100, 1, 10)
		require.NoError(t, err)
		assert.Equal(t, 10, line.Qty)
		assert.Equal(t, int64(500), line.PriceCents)

		p, err := store.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Quantity)

		total, err := eng.Total(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(5000), total) // 10 x 5.00
	})

	t.Run("insufficient stock mutates nothing", func(t *testing.T) {
		_, err := eng.AddLine(ctx, 100, 1, 1)
		require.ErrorIs(t, err, inventory.ErrInsufficientStock)

		p, err := store.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.Equal(t, 0, p.Quantity)

		lines, err := store.ListOrderLines(ctx, 100)
		require.NoError(t, err)
		assert.Len(t, lines, 1)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := eng.AddLine(ctx, 100, 42, 1)
		assert.ErrorIs(t, err, inventory.ErrProductNotFound)
	})

	t.Run("unknown order", func(t *testing.T) {
		_, err := eng.AddLine(ctx, 999, 1, 1)
		assert.ErrorIs(t, err, inventory.ErrOrderNotFound)
	})

	t.Run("non-positive quantity", func(t *testing.T) {
		_, err := eng.AddLine(ctx, 100, 1, 0)
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
		_, err = eng.AddLine(ctx, 100, 1, -3)
		assert.ErrorIs(t, err, inventory.ErrInvalidQuantity)
	})
}

func TestAddLineOnCompletedOrder(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 500))
	require.NoError(t, eng.Create(ctx, 100, 1))
	require.NoError(t, eng.Complete(ctx, 100))

	_, err := eng.AddLine(ctx, 100, 1, 5)
	require.ErrorIs(t, err, inventory.ErrAlreadyCompleted)

	// no reservation happened: stock intact, no line appended
	p, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 10, p.Quantity)
	lines, err := store.ListOrderLines(ctx, 100)
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestRemoveSupplierReferencedByOrder(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, eng.Create(ctx, 100, 1))

	// removal is unconditional, the order keeps the supplier id it was
	// placed against
	require.NoError(t, cat.RemoveSupplier(ctx, 1))
	_, err := store.GetSupplier(ctx, 1)
	assert.ErrorIs(t, err, inventory.ErrSupplierNotFound)

	d, err := eng.Detail(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, int64(1), d.Order.SupplierID)
}

func TestRepeatedProductAppendsLines(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 500))
	require.NoError(t, eng.Create(ctx, 100, 1))

	_, err := eng.AddLine(ctx, 100, 1, 3)
	require.NoError(t, err)
	_, err = eng.AddLine(ctx, 100, 1, 2)
	require.NoError(t, err)

	lines, err := store.ListOrderLines(ctx, 100)
	require.NoError(t, err)
	require.Len(t, lines, 2) // no merging
	assert.Equal(t, 3, lines[0].Qty)
	assert.Equal(t, 2, lines[1].Qty)
	assert.NotEqual(t, lines[0].ID, lines[1].ID)

	p, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 5, p.Quantity)
}

func TestStockNeverGoesNegative(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 25, 100))
	require.NoError(t, eng.Create(ctx, 100, 1))

	for _, qty := range []int{10, 10, 10, 4, 3, 1, 1} {
		_, _ = eng.AddLine(ctx, 100, 1, qty)
		p, err := store.GetProduct(ctx, 1)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, p.Quantity, 0)
	}

	p, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Quantity) // 10+10+4+1 land, 10+3+1 bounce at the right moments
}

func TestInterleavedReservations(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 100))
	require.NoError(t, eng.Create(ctx, 100, 1))

	// Each attempt wants 7 of 10: only one can fit.
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes int
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := eng.AddLine(ctx, 100, 1, 7); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	p, err := store.GetProduct(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, p.Quantity)
}

func TestComplete(t *testing.T) {
	eng, cat, store := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, eng.Create(ctx, 100, 1))

	t.Run("unknown order", func(t *testing.T) {
		assert.ErrorIs(t, eng.Complete(ctx, 999), inventory.ErrOrderNotFound)
	})

	t.Run("pending to completed once", func(t *testing.T) {
		require.NoError(t, eng.Complete(ctx, 100))
		o, err := store.GetOrder(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, inventory.StatusCompleted, o.Status)
	})

	t.Run("second completion is a reported no-op", func(t *testing.T) {
		err := eng.Complete(ctx, 100)
		require.ErrorIs(t, err, inventory.ErrAlreadyCompleted)
		o, err := store.GetOrder(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, inventory.StatusCompleted, o.Status)
	})
}

func TestTotalUsesSnapshotPrice(t *testing.T) {
	eng, cat, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 500))
	require.NoError(t, eng.Create(ctx, 100, 1))
	_, err := eng.AddLine(ctx, 100, 1, 4)
	require.NoError(t, err)

	t.Run("price edit does not rewrite history", func(t *testing.T) {
		require.NoError(t, cat.UpdateProduct(ctx, 1, "Widget", 6, 900))
		total, err := eng.Total(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), total) // 4 x 5.00, not 4 x 9.00
	})

	t.Run("deleted product keeps listings and totals alive", func(t *testing.T) {
		require.NoError(t, cat.RemoveProduct(ctx, 1))

		total, err := eng.Total(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(2000), total)

		d, err := eng.Detail(ctx, 100)
		require.NoError(t, err)
		require.Len(t, d.Lines, 1)
		assert.Equal(t, "(removed)", d.Lines[0].ProductName)
		assert.Equal(t, int64(2000), d.TotalCents)
	})
}

func TestListByStatus(t *testing.T) {
	eng, cat, _ := setup(t)
	ctx := context.Background()
	require.NoError(t, cat.AddSupplier(ctx, 1, "Acme", "1234567890"))
	require.NoError(t, cat.AddProduct(ctx, 1, "Widget", 10, 500))

	require.NoError(t, eng.Create(ctx, 100, 1))
	require.NoError(t, eng.Create(ctx, 200, 1))
	_, err := eng.AddLine(ctx, 200, 1, 2)
	require.NoError(t, err)
	require.NoError(t, eng.Complete(ctx, 200))

	pending, err := eng.ListByStatus(ctx, inventory.StatusPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, int64(100), pending[0].Order.ID)

	completed, err := eng.ListByStatus(ctx, inventory.StatusCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, int64(200), completed[0].Order.ID)
	require.Len(t, completed[0].Lines, 1)
	assert.Equal(t, "Widget", completed[0].Lines[0].ProductName)
	assert.Equal(t, int64(1000), completed[0].TotalCents)
}
