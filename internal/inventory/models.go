package inventory

import "time"

type Product struct {
	ID         int64
	Name       string
	Quantity   int
	PriceCents int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Supplier struct {
	ID        int64
	Name      string
	Contact   string // exactly 10 digits
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Order struct {
	ID         int64
	SupplierID int64
	Status     Status // lihat status.go
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type OrderLine struct {
	ID         string // uuid
	OrderID    int64
	ProductID  int64
	Qty        int
	PriceCents int64 // snapshot of the product price at reservation time
	CreatedAt  time.Time
}
