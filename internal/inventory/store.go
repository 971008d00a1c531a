package inventory

import "context"

// Store is the storage port shared by the catalog service and the order
// workflow engine. Implementations: postgres (durable) and memstore (tests,
// DB-less runs). Listings return rows in insertion order.
type Store interface {
	InsertProduct(ctx context.Context, p Product) error
	GetProduct(ctx context.Context, id int64) (Product, error)
	UpdateProduct(ctx context.Context, p Product) error
	DeleteProduct(ctx context.Context, id int64) error
	ListProducts(ctx context.Context) ([]Product, error)

	InsertSupplier(ctx context.Context, s Supplier) error
	GetSupplier(ctx context.Context, id int64) (Supplier, error)
	UpdateSupplier(ctx context.Context, s Supplier) error
	DeleteSupplier(ctx context.Context, id int64) error
	ListSuppliers(ctx context.Context) ([]Supplier, error)

	InsertOrder(ctx context.Context, o Order) error
	GetOrder(ctx context.Context, id int64) (Order, error)
	ListOrdersByStatus(ctx context.Context, status Status) ([]Order, error)
	ListOrderLines(ctx context.Context, orderID int64) ([]OrderLine, error)

	// ReserveLine is the atomic unit of the workflow: check the product's
	// stock against qty, decrement it, and insert an order line carrying the
	// price snapshot. The order must exist and still be Pending
	// (ErrAlreadyCompleted otherwise). No intermediate state is observable;
	// on any rejection nothing is mutated.
	ReserveLine(ctx context.Context, orderID, productID int64, qty int) (OrderLine, error)

	// CompleteOrder moves an order Pending -> Completed exactly once.
	// ErrAlreadyCompleted when the transition already happened.
	CompleteOrder(ctx context.Context, orderID int64) error

	Close()
}
