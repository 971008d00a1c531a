package catalog

import (
	"context"
	"regexp"

	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/rs/zerolog"
)

// 10 digit, tanpa pemisah.
var contactRe = regexp.MustCompile(`^[0-9]{10}$`)

// Service owns the Product and Supplier catalog: field validation lives here,
// the prompt layer only re-prompts malformed input.
type Service struct {
	Store inventory.Store
	Log   zerolog.Logger
}

func New(store inventory.Store, log zerolog.Logger) *Service {
	return &Service{Store: store, Log: log.With().Str("component", "catalog").Logger()}
}

func (s *Service) AddProduct(ctx context.Context, id int64, name string, quantity int, priceCents int64) error {
	if quantity < 0 {
		return inventory.ErrInvalidQuantity
	}
	if priceCents < 0 {
		return inventory.ErrInvalidPrice
	}
	err := s.Store.InsertProduct(ctx, inventory.Product{
		ID: id, Name: name, Quantity: quantity, PriceCents: priceCents,
	})
	if err != nil {
		return err
	}
	s.Log.Info().Int64("product_id", id).Int("quantity", quantity).Msg("product added")
	return nil
}

func (s *Service) UpdateProduct(ctx context.Context, id int64, name string, quantity int, priceCents int64) error {
	if quantity < 0 {
		return inventory.ErrInvalidQuantity
	}
	if priceCents < 0 {
		return inventory.ErrInvalidPrice
	}
	return s.Store.UpdateProduct(ctx, inventory.Product{
		ID: id, Name: name, Quantity: quantity, PriceCents: priceCents,
	})
}

// RemoveProduct deletes unconditionally; historical order lines keep their
// snapshot and render the product as removed.
func (s *Service) RemoveProduct(ctx context.Context, id int64) error {
	if err := s.Store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	s.Log.Info().Int64("product_id", id).Msg("product removed")
	return nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (inventory.Product, error) {
	return s.Store.GetProduct(ctx, id)
}

func (s *Service) ListProducts(ctx context.Context) ([]inventory.Product, error) {
	return s.Store.ListProducts(ctx)
}

func (s *Service) AddSupplier(ctx context.Context, id int64, name, contact string) error {
	if !contactRe.MatchString(contact) {
		return inventory.ErrInvalidContact
	}
	err := s.Store.InsertSupplier(ctx, inventory.Supplier{ID: id, Name: name, Contact: contact})
	if err != nil {
		return err
	}
	s.Log.Info().Int64("supplier_id", id).Msg("supplier added")
	return nil
}

func (s *Service) UpdateSupplier(ctx context.Context, id int64, name, contact string) error {
	if !contactRe.MatchString(contact) {
		return inventory.ErrInvalidContact
	}
	return s.Store.UpdateSupplier(ctx, inventory.Supplier{ID: id, Name: name, Contact: contact})
}

func (s *Service) RemoveSupplier(ctx context.Context, id int64) error {
	if err := s.Store.DeleteSupplier(ctx, id); err != nil {
		return err
	}
	s.Log.Info().Int64("supplier_id", id).Msg("supplier removed")
	return nil
}

func (s *Service) GetSupplier(ctx context.Context, id int64) (inventory.Supplier, error) {
	return s.Store.GetSupplier(ctx, id)
}

func (s *Service) ListSuppliers(ctx context.Context) ([]inventory.Supplier, error) {
	return s.Store.ListSuppliers(ctx)
}
