package orders

import (
	"context"
	"errors"

	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/rs/zerolog"
)

// Engine drives the order workflow: create against an existing supplier,
// reserve stock line by line, complete once. All stock mutation funnels
// through Store.ReserveLine so the check-and-decrement stays atomic.
type Engine struct {
	Store inventory.Store
	Log   zerolog.Logger
}

func NewEngine(store inventory.Store, log zerolog.Logger) *Engine {
	return &Engine{Store: store, Log: log.With().Str("component", "orders").Logger()}
}

// Create verifies the supplier and inserts a Pending order. No side effects
// on ErrSupplierNotFound; a reused order id fails with ErrDuplicateKey.
func (e *Engine) Create(ctx context.Context, orderID, supplierID int64) error {
	if _, err := e.Store.GetSupplier(ctx, supplierID); err != nil {
		return err
	}
	err := e.Store.InsertOrder(ctx, inventory.Order{
		ID:         orderID,
		SupplierID: supplierID,
		Status:     inventory.StatusPending,
	})
	if err != nil {
		return err
	}
	e.Log.Info().Int64("order_id", orderID).Int64("supplier_id", supplierID).Msg("order created")
	return nil
}

// AddLine reserves qty units of a product for the order, which must still be
// Pending (ErrAlreadyCompleted otherwise). Repeated additions of the same
// product append separate lines. ErrProductNotFound and ErrInsufficientStock
// leave all state untouched so the caller can retry.
func (e *Engine) AddLine(ctx context.Context, orderID, productID int64, qty int) (inventory.OrderLine, error) {
	if qty <= 0 {
		return inventory.OrderLine{}, inventory.ErrInvalidQuantity
	}
	line, err := e.Store.ReserveLine(ctx, orderID, productID, qty)
	if err != nil {
		return inventory.OrderLine{}, err
	}
	e.Log.Info().
		Int64("order_id", orderID).
		Int64("product_id", productID).
		Int("qty", qty).
		Int64("price_cents", line.PriceCents).
		Msg("stock reserved")
	return line, nil
}

// Complete transitions Pending -> Completed. Completing twice reports
// ErrAlreadyCompleted and changes nothing.
func (e *Engine) Complete(ctx context.Context, orderID int64) error {
	if err := e.Store.CompleteOrder(ctx, orderID); err != nil {
		return err
	}
	e.Log.Info().Int64("order_id", orderID).Msg("order completed")
	return nil
}

// Total sums qty x snapshot price over the order's lines. Catalog price
// edits and product deletion after the fact never change it.
func (e *Engine) Total(ctx context.Context, orderID int64) (int64, error) {
	if _, err := e.Store.GetOrder(ctx, orderID); err != nil {
		return 0, err
	}
	lines, err := e.Store.ListOrderLines(ctx, orderID)
	if err != nil {
		return 0, err
	}
	var total int64
	for _, l := range lines {
		total += int64(l.Qty) * l.PriceCents
	}
	return total, nil
}

// LineDetail is an order line joined with the current catalog name.
type LineDetail struct {
	Line        inventory.OrderLine
	ProductName string // "(removed)" if the product left the catalog
}

// Detail is one order with its lines and snapshot total, ready for display.
type Detail struct {
	Order      inventory.Order
	Lines      []LineDetail
	TotalCents int64
}

func (e *Engine) Detail(ctx context.Context, orderID int64) (Detail, error) {
	o, err := e.Store.GetOrder(ctx, orderID)
	if err != nil {
		return Detail{}, err
	}
	return e.detail(ctx, o)
}

// ListByStatus returns Pending or Completed orders with their lines.
func (e *Engine) ListByStatus(ctx context.Context, status inventory.Status) ([]Detail, error) {
	os, err := e.Store.ListOrdersByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]Detail, 0, len(os))
	for _, o := range os {
		d, err := e.detail(ctx, o)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (e *Engine) detail(ctx context.Context, o inventory.Order) (Detail, error) {
	lines, err := e.Store.ListOrderLines(ctx, o.ID)
	if err != nil {
		return Detail{}, err
	}
	d := Detail{Order: o, Lines: make([]LineDetail, 0, len(lines))}
	for _, l := range lines {
		name := "(removed)"
		p, err := e.Store.GetProduct(ctx, l.ProductID)
		switch {
		case err == nil:
			name = p.Name
		case errors.Is(err, inventory.ErrProductNotFound):
			// product deleted after the line was reserved; keep the snapshot
		default:
			return Detail{}, err
		}
		d.Lines = append(d.Lines, LineDetail{Line: l, ProductName: name})
		d.TotalCents += int64(l.Qty) * l.PriceCents
	}
	return d, nil
}
