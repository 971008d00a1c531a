package memstore

import (
	"context"
	"sync"
	"time"

	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/google/uuid"
)

// Store keeps everything in maps behind one mutex. Insertion order is
// tracked explicitly so listings match what the durable store returns.
type Store struct {
	mu sync.Mutex

	products  map[int64]inventory.Product
	suppliers map[int64]inventory.Supplier
	orders    map[int64]inventory.Order
	lines     []inventory.OrderLine

	productOrder  []int64
	supplierOrder []int64
	orderOrder    []int64
}

var _ inventory.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		products:  make(map[int64]inventory.Product),
		suppliers: make(map[int64]inventory.Supplier),
		orders:    make(map[int64]inventory.Order),
	}
}

func (s *Store) InsertProduct(_ context.Context, p inventory.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[p.ID]; ok {
		return inventory.ErrDuplicateKey
	}
	now := time.Now().UTC()
	p.CreatedAt, p.UpdatedAt = now, now
	s.products[p.ID] = p
	s.productOrder = append(s.productOrder, p.ID)
	return nil
}

func (s *Store) GetProduct(_ context.Context, id int64) (inventory.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.products[id]
	if !ok {
		return inventory.Product{}, inventory.ErrProductNotFound
	}
	return p, nil
}

func (s *Store) UpdateProduct(_ context.Context, p inventory.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.products[p.ID]
	if !ok {
		return inventory.ErrProductNotFound
	}
	p.CreatedAt = cur.CreatedAt
	p.UpdatedAt = time.Now().UTC()
	s.products[p.ID] = p
	return nil
}

func (s *Store) DeleteProduct(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.products[id]; !ok {
		return inventory.ErrProductNotFound
	}
	delete(s.products, id)
	s.productOrder = remove(s.productOrder, id)
	return nil
}

func (s *Store) ListProducts(_ context.Context) ([]inventory.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]inventory.Product, 0, len(s.productOrder))
	for _, id := range s.productOrder {
		out = append(out, s.products[id])
	}
	return out, nil
}

func (s *Store) InsertSupplier(_ context.Context, sup inventory.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[sup.ID]; ok {
		return inventory.ErrDuplicateKey
	}
	now := time.Now().UTC()
	sup.CreatedAt, sup.UpdatedAt = now, now
	s.suppliers[sup.ID] = sup
	s.supplierOrder = append(s.supplierOrder, sup.ID)
	return nil
}

func (s *Store) GetSupplier(_ context.Context, id int64) (inventory.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sup, ok := s.suppliers[id]
	if !ok {
		return inventory.Supplier{}, inventory.ErrSupplierNotFound
	}
	return sup, nil
}

func (s *Store) UpdateSupplier(_ context.Context, sup inventory.Supplier) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.suppliers[sup.ID]
	if !ok {
		return inventory.ErrSupplierNotFound
	}
	sup.CreatedAt = cur.CreatedAt
	sup.UpdatedAt = time.Now().UTC()
	s.suppliers[sup.ID] = sup
	return nil
}

func (s *Store) DeleteSupplier(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.suppliers[id]; !ok {
		return inventory.ErrSupplierNotFound
	}
	delete(s.suppliers, id)
	s.supplierOrder = remove(s.supplierOrder, id)
	return nil
}

func (s *Store) ListSuppliers(_ context.Context) ([]inventory.Supplier, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]inventory.Supplier, 0, len(s.supplierOrder))
	for _, id := range s.supplierOrder {
		out = append(out, s.suppliers[id])
	}
	return out, nil
}

func (s *Store) InsertOrder(_ context.Context, o inventory.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.orders[o.ID]; ok {
		return inventory.ErrDuplicateKey
	}
	if _, ok := s.suppliers[o.SupplierID]; !ok {
		return inventory.ErrSupplierNotFound
	}
	now := time.Now().UTC()
	o.CreatedAt, o.UpdatedAt = now, now
	s.orders[o.ID] = o
	s.orderOrder = append(s.orderOrder, o.ID)
	return nil
}

func (s *Store) GetOrder(_ context.Context, id int64) (inventory.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[id]
	if !ok {
		return inventory.Order{}, inventory.ErrOrderNotFound
	}
	return o, nil
}

func (s *Store) ListOrdersByStatus(_ context.Context, status inventory.Status) ([]inventory.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []inventory.Order
	for _, id := range s.orderOrder {
		if o := s.orders[id]; o.Status == status {
			out = append(out, o)
		}
	}
	return out, nil
}

func (s *Store) ListOrderLines(_ context.Context, orderID int64) ([]inventory.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []inventory.OrderLine
	for _, l := range s.lines {
		if l.OrderID == orderID {
			out = append(out, l)
		}
	}
	return out, nil
}

// ReserveLine: seluruh check-and-decrement di bawah satu lock, jadi tidak ada
// state antara yang bisa terlihat dari goroutine lain.
func (s *Store) ReserveLine(_ context.Context, orderID, productID int64, qty int) (inventory.OrderLine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[orderID]
	if !ok {
		return inventory.OrderLine{}, inventory.ErrOrderNotFound
	}
	if o.Status != inventory.StatusPending {
		return inventory.OrderLine{}, inventory.ErrAlreadyCompleted
	}
	p, ok := s.products[productID]
	if !ok {
		return inventory.OrderLine{}, inventory.ErrProductNotFound
	}
	if p.Quantity < qty {
		return inventory.OrderLine{}, inventory.ErrInsufficientStock
	}

	p.Quantity -= qty
	p.UpdatedAt = time.Now().UTC()
	s.products[productID] = p

	line := inventory.OrderLine{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		ProductID:  productID,
		Qty:        qty,
		PriceCents: p.PriceCents,
		CreatedAt:  time.Now().UTC(),
	}
	s.lines = append(s.lines, line)
	return line, nil
}

func (s *Store) CompleteOrder(_ context.Context, orderID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.orders[orderID]
	if !ok {
		return inventory.ErrOrderNotFound
	}
	if !inventory.CanTransition(o.Status, inventory.StatusCompleted) {
		return inventory.ErrAlreadyCompleted
	}
	o.Status = inventory.StatusCompleted
	o.UpdatedAt = time.Now().UTC()
	s.orders[orderID] = o
	return nil
}

func (s *Store) Close() {}

func remove(ids []int64, id int64) []int64 {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
