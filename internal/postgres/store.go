package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store is the durable inventory.Store. Every multi-statement path runs in an
// explicit transaction; single statements rely on statement atomicity.
type Store struct{ DB *pgxpool.Pool }

var _ inventory.Store = (*Store)(nil)

func NewStore(db *pgxpool.Pool) *Store { return &Store{DB: db} }

func (s *Store) Close() { s.DB.Close() }

// mapErr: kenali error driver yang punya arti domain, sisanya berarti store
// sudah tidak bisa dipakai.
func mapErr(err, notFound error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return notFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return inventory.ErrDuplicateKey
		case "23503": // foreign_key_violation
			if notFound != nil {
				return notFound
			}
		}
	}
	return fmt.Errorf("%w: %v", inventory.ErrStorageUnavailable, err)
}

func (s *Store) InsertProduct(ctx context.Context, p inventory.Product) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO products(id, name, quantity, price_cents)
		VALUES ($1, $2, $3, $4)`,
		p.ID, p.Name, p.Quantity, p.PriceCents)
	return mapErr(err, nil)
}

func (s *Store) GetProduct(ctx context.Context, id int64) (inventory.Product, error) {
	var p inventory.Product
	err := s.DB.QueryRow(ctx, `
		SELECT id, name, quantity, price_cents, created_at, updated_at
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Quantity, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return inventory.Product{}, mapErr(err, inventory.ErrProductNotFound)
	}
	return p, nil
}

func (s *Store) UpdateProduct(ctx context.Context, p inventory.Product) error {
	ct, err := s.DB.Exec(ctx, `
		UPDATE products SET name=$2, quantity=$3, price_cents=$4, updated_at=now()
		WHERE id=$1`,
		p.ID, p.Name, p.Quantity, p.PriceCents)
	if err != nil {
		return mapErr(err, inventory.ErrProductNotFound)
	}
	if ct.RowsAffected() == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return mapErr(err, inventory.ErrProductNotFound)
	}
	if ct.RowsAffected() == 0 {
		return inventory.ErrProductNotFound
	}
	return nil
}

func (s *Store) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, quantity, price_cents, created_at, updated_at
		FROM products ORDER BY created_at, id`)
	if err != nil {
		return nil, mapErr(err, nil)
	}
	defer rows.Close()

	var out []inventory.Product
	for rows.Next() {
		var p inventory.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Quantity, &p.PriceCents, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, mapErr(err, nil)
		}
		out = append(out, p)
	}
	return out, mapErr(rows.Err(), nil)
}

func (s *Store) InsertSupplier(ctx context.Context, sup inventory.Supplier) error {
	_, err := s.DB.Exec(ctx, `
		INSERT INTO suppliers(id, name, contact)
		VALUES ($1, $2, $3)`,
		sup.ID, sup.Name, sup.Contact)
	return mapErr(err, nil)
}

func (s *Store) GetSupplier(ctx context.Context, id int64) (inventory.Supplier, error) {
	var sup inventory.Supplier
	err := s.DB.QueryRow(ctx, `
		SELECT id, name, contact, created_at, updated_at
		FROM suppliers WHERE id=$1`, id).
		Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt, &sup.UpdatedAt)
	if err != nil {
		return inventory.Supplier{}, mapErr(err, inventory.ErrSupplierNotFound)
	}
	return sup, nil
}

func (s *Store) UpdateSupplier(ctx context.Context, sup inventory.Supplier) error {
	ct, err := s.DB.Exec(ctx, `
		UPDATE suppliers SET name=$2, contact=$3, updated_at=now()
		WHERE id=$1`,
		sup.ID, sup.Name, sup.Contact)
	if err != nil {
		return mapErr(err, inventory.ErrSupplierNotFound)
	}
	if ct.RowsAffected() == 0 {
		return inventory.ErrSupplierNotFound
	}
	return nil
}

func (s *Store) DeleteSupplier(ctx context.Context, id int64) error {
	ct, err := s.DB.Exec(ctx, `DELETE FROM suppliers WHERE id=$1`, id)
	if err != nil {
		return mapErr(err, inventory.ErrSupplierNotFound)
	}
	if ct.RowsAffected() == 0 {
		return inventory.ErrSupplierNotFound
	}
	return nil
}

func (s *Store) ListSuppliers(ctx context.Context) ([]inventory.Supplier, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, name, contact, created_at, updated_at
		FROM suppliers ORDER BY created_at, id`)
	if err != nil {
		return nil, mapErr(err, nil)
	}
	defer rows.Close()

	var out []inventory.Supplier
	for rows.Next() {
		var sup inventory.Supplier
		if err := rows.Scan(&sup.ID, &sup.Name, &sup.Contact, &sup.CreatedAt, &sup.UpdatedAt); err != nil {
			return nil, mapErr(err, nil)
		}
		out = append(out, sup)
	}
	return out, mapErr(rows.Err(), nil)
}

func (s *Store) InsertOrder(ctx context.Context, o inventory.Order) error {
	// supplier existence is the engine's check; no FK backs it so supplier
	// removal stays unconditional.
	_, err := s.DB.Exec(ctx, `
		INSERT INTO orders(order_id, supplier_id, status)
		VALUES ($1, $2, $3)`,
		o.ID, o.SupplierID, string(o.Status))
	return mapErr(err, nil)
}

func (s *Store) GetOrder(ctx context.Context, id int64) (inventory.Order, error) {
	var o inventory.Order
	var status string
	err := s.DB.QueryRow(ctx, `
		SELECT order_id, supplier_id, status, created_at, updated_at
		FROM orders WHERE order_id=$1`, id).
		Scan(&o.ID, &o.SupplierID, &status, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return inventory.Order{}, mapErr(err, inventory.ErrOrderNotFound)
	}
	o.Status = inventory.Status(status)
	return o, nil
}

func (s *Store) ListOrdersByStatus(ctx context.Context, status inventory.Status) ([]inventory.Order, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT order_id, supplier_id, status, created_at, updated_at
		FROM orders WHERE status=$1 ORDER BY created_at, order_id`, string(status))
	if err != nil {
		return nil, mapErr(err, nil)
	}
	defer rows.Close()

	var out []inventory.Order
	for rows.Next() {
		var o inventory.Order
		var st string
		if err := rows.Scan(&o.ID, &o.SupplierID, &st, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, mapErr(err, nil)
		}
		o.Status = inventory.Status(st)
		out = append(out, o)
	}
	return out, mapErr(rows.Err(), nil)
}

func (s *Store) ListOrderLines(ctx context.Context, orderID int64) ([]inventory.OrderLine, error) {
	rows, err := s.DB.Query(ctx, `
		SELECT id, order_id, product_id, qty, price_cents, created_at
		FROM order_lines WHERE order_id=$1 ORDER BY created_at, id`, orderID)
	if err != nil {
		return nil, mapErr(err, nil)
	}
	defer rows.Close()

	var out []inventory.OrderLine
	for rows.Next() {
		var l inventory.OrderLine
		if err := rows.Scan(&l.ID, &l.OrderID, &l.ProductID, &l.Qty, &l.PriceCents, &l.CreatedAt); err != nil {
			return nil, mapErr(err, nil)
		}
		out = append(out, l)
	}
	return out, mapErr(rows.Err(), nil)
}

// ReserveLine: lock the product row (FOR UPDATE) -> check stock -> decrement
// -> insert the line with the price snapshot. Rollback on any failure path,
// so a failed check leaves no trace.
func (s *Store) ReserveLine(ctx context.Context, orderID, productID int64, qty int) (inventory.OrderLine, error) {
	tx, err := s.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return inventory.OrderLine{}, mapErr(err, nil)
	}
	defer tx.Rollback(ctx)

	// Lock the order row too: lines only attach while the order is Pending,
	// and a concurrent completion must not slip between check and insert.
	var status string
	err = tx.QueryRow(ctx, `SELECT status FROM orders WHERE order_id=$1 FOR UPDATE`, orderID).Scan(&status)
	if err != nil {
		return inventory.OrderLine{}, mapErr(err, inventory.ErrOrderNotFound)
	}
	if inventory.Status(status) != inventory.StatusPending {
		return inventory.OrderLine{}, inventory.ErrAlreadyCompleted
	}

	var stock int
	var price int64
	err = tx.QueryRow(ctx, `
		SELECT quantity, price_cents FROM products WHERE id=$1 FOR UPDATE`, productID).
		Scan(&stock, &price)
	if err != nil {
		return inventory.OrderLine{}, mapErr(err, inventory.ErrProductNotFound)
	}
	if stock < qty {
		return inventory.OrderLine{}, inventory.ErrInsufficientStock
	}

	ct, err := tx.Exec(ctx, `
		UPDATE products SET quantity = quantity - $2, updated_at=now() WHERE id=$1`,
		productID, qty)
	if err != nil {
		return inventory.OrderLine{}, mapErr(err, nil)
	}
	if ct.RowsAffected() != 1 {
		return inventory.OrderLine{}, inventory.ErrProductNotFound
	}

	line := inventory.OrderLine{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		ProductID:  productID,
		Qty:        qty,
		PriceCents: price,
	}
	err = tx.QueryRow(ctx, `
		INSERT INTO order_lines(id, order_id, product_id, qty, price_cents)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at`,
		line.ID, line.OrderID, line.ProductID, line.Qty, line.PriceCents).
		Scan(&line.CreatedAt)
	if err != nil {
		return inventory.OrderLine{}, mapErr(err, inventory.ErrOrderNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return inventory.OrderLine{}, mapErr(err, nil)
	}
	return line, nil
}

// CompleteOrder: conditional update keeps the transition single-shot even if
// another session raced us between read and write.
func (s *Store) CompleteOrder(ctx context.Context, orderID int64) error {
	ct, err := s.DB.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=now()
		WHERE order_id=$1 AND status=$3`,
		orderID, string(inventory.StatusCompleted), string(inventory.StatusPending))
	if err != nil {
		return mapErr(err, inventory.ErrOrderNotFound)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}

	// 0 rows: either the order is gone or it was already completed.
	var status string
	err = s.DB.QueryRow(ctx, `SELECT status FROM orders WHERE order_id=$1`, orderID).Scan(&status)
	if err != nil {
		return mapErr(err, inventory.ErrOrderNotFound)
	}
	if inventory.Status(status) == inventory.StatusCompleted {
		return inventory.ErrAlreadyCompleted
	}
	return fmt.Errorf("%w: order %d in unexpected status %q", inventory.ErrStorageUnavailable, orderID, status)
}
