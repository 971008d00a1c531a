package menu

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariefcatur/stockmate.git/internal/catalog"
	"github.com/ariefcatur/stockmate.git/internal/inventory"
	"github.com/ariefcatur/stockmate.git/internal/orders"
	"github.com/rs/zerolog"
)

// Menu is the operator-facing surface: a numbered loop over the catalog
// service and the order workflow engine. Domain errors are reported and
// return to the menu; only a lost store ends the session with an error.
type Menu struct {
	Prompt  *Prompter
	Out     io.Writer
	Catalog *catalog.Service
	Orders  *orders.Engine
	Log     zerolog.Logger
}

func New(in io.Reader, out io.Writer, cat *catalog.Service, eng *orders.Engine, log zerolog.Logger) *Menu {
	return &Menu{
		Prompt:  NewPrompter(in, out),
		Out:     out,
		Catalog: cat,
		Orders:  eng,
		Log:     log.With().Str("component", "menu").Logger(),
	}
}

func (m *Menu) Run(ctx context.Context) error {
	for {
		fmt.Fprintln(m.Out, "\n--- Inventory Management System ---")
		fmt.Fprintln(m.Out, " 1. Add Product")
		fmt.Fprintln(m.Out, " 2. Update Product")
		fmt.Fprintln(m.Out, " 3. Remove Product")
		fmt.Fprintln(m.Out, " 4. Add Supplier")
		fmt.Fprintln(m.Out, " 5. Update Supplier")
		fmt.Fprintln(m.Out, " 6. Remove Supplier")
		fmt.Fprintln(m.Out, " 7. Place Order")
		fmt.Fprintln(m.Out, " 8. Complete Order")
		fmt.Fprintln(m.Out, " 9. Display Inventory")
		fmt.Fprintln(m.Out, "10. Display Suppliers")
		fmt.Fprintln(m.Out, "11. Display Pending Orders")
		fmt.Fprintln(m.Out, "12. Display Completed Orders")
		fmt.Fprintln(m.Out, "13. Exit")

		choice, err := m.Prompt.Int("Enter your choice: ")
		if err != nil {
			return m.done(err)
		}

		switch choice {
		case 1:
			err = m.addProduct(ctx)
		case 2:
			err = m.updateProduct(ctx)
		case 3:
			err = m.removeProduct(ctx)
		case 4:
			err = m.addSupplier(ctx)
		case 5:
			err = m.updateSupplier(ctx)
		case 6:
			err = m.removeSupplier(ctx)
		case 7:
			err = m.placeOrder(ctx)
		case 8:
			err = m.completeOrder(ctx)
		case 9:
			err = m.displayInventory(ctx)
		case 10:
			err = m.displaySuppliers(ctx)
		case 11:
			err = m.displayOrders(ctx, inventory.StatusPending)
		case 12:
			err = m.displayOrders(ctx, inventory.StatusCompleted)
		case 13:
			fmt.Fprintln(m.Out, "Exiting program...")
			return nil
		default:
			fmt.Fprintln(m.Out, "Invalid choice. Please try again.")
			continue
		}

		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) || !inventory.Recoverable(err) {
				return m.done(err)
			}
			fmt.Fprintln(m.Out, message(err))
		}
	}
}

// done: EOF and a closed stdin (signal-driven shutdown) are normal ways to
// leave the session, anything else is fatal.
func (m *Menu) done(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
		return nil
	}
	m.Log.Error().Err(err).Msg("session aborted")
	return err
}

func (m *Menu) addProduct(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter product ID: ")
	if err != nil {
		return err
	}
	name, err := m.Prompt.Line("Enter product name: ")
	if err != nil {
		return err
	}
	qty, err := m.Prompt.Int("Enter product quantity: ")
	if err != nil {
		return err
	}
	price, err := m.Prompt.Price("Enter product price: ")
	if err != nil {
		return err
	}
	if err := m.Catalog.AddProduct(ctx, id, name, int(qty), price); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Product added successfully!")
	return nil
}

func (m *Menu) updateProduct(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter product ID to update: ")
	if err != nil {
		return err
	}
	name, err := m.Prompt.Line("Enter new product name: ")
	if err != nil {
		return err
	}
	qty, err := m.Prompt.Int("Enter new product quantity: ")
	if err != nil {
		return err
	}
	price, err := m.Prompt.Price("Enter new product price: ")
	if err != nil {
		return err
	}
	if err := m.Catalog.UpdateProduct(ctx, id, name, int(qty), price); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Product updated successfully!")
	return nil
}

func (m *Menu) removeProduct(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter product ID to remove: ")
	if err != nil {
		return err
	}
	if err := m.Catalog.RemoveProduct(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Product removed successfully!")
	return nil
}

func (m *Menu) addSupplier(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter supplier ID: ")
	if err != nil {
		return err
	}
	name, err := m.Prompt.Line("Enter supplier name: ")
	if err != nil {
		return err
	}
	contact, err := m.Prompt.Line("Enter supplier contact (10 digits): ")
	if err != nil {
		return err
	}
	if err := m.Catalog.AddSupplier(ctx, id, name, contact); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Supplier added successfully!")
	return nil
}

func (m *Menu) updateSupplier(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter supplier ID to update: ")
	if err != nil {
		return err
	}
	name, err := m.Prompt.Line("Enter new supplier name: ")
	if err != nil {
		return err
	}
	contact, err := m.Prompt.Line("Enter new supplier contact (10 digits): ")
	if err != nil {
		return err
	}
	if err := m.Catalog.UpdateSupplier(ctx, id, name, contact); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Supplier updated successfully!")
	return nil
}

func (m *Menu) removeSupplier(ctx context.Context) error {
	id, err := m.Prompt.Int("Enter supplier ID to remove: ")
	if err != nil {
		return err
	}
	if err := m.Catalog.RemoveSupplier(ctx, id); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Supplier removed successfully!")
	return nil
}

// placeOrder drives the whole workflow: create, then add lines until the
// operator stops. ProductNotFound / InsufficientStock keep the loop alive;
// a failed create aborts the operation before any state exists.
func (m *Menu) placeOrder(ctx context.Context) error {
	supplierID, err := m.Prompt.Int("Enter supplier ID for the order: ")
	if err != nil {
		return err
	}
	orderID, err := m.Prompt.Int("Enter order ID: ")
	if err != nil {
		return err
	}
	if err := m.Orders.Create(ctx, orderID, supplierID); err != nil {
		return err
	}

	for {
		productID, err := m.Prompt.Int("Enter product ID to order: ")
		if err != nil {
			return err
		}
		qty, err := m.Prompt.Int("Enter quantity to order: ")
		if err != nil {
			return err
		}

		switch _, err := m.Orders.AddLine(ctx, orderID, productID, int(qty)); {
		case err == nil:
			fmt.Fprintln(m.Out, "Product added to the order.")
		case inventory.Recoverable(err):
			fmt.Fprintln(m.Out, message(err))
		default:
			return err
		}

		more, err := m.Prompt.YesNo("Do you want to add more products to the order? (y/n): ")
		if err != nil {
			return err
		}
		if !more {
			break
		}
	}

	total, err := m.Orders.Total(ctx, orderID)
	if err != nil {
		return err
	}
	fmt.Fprintf(m.Out, "Order placed successfully! Total: Rs. %s\n", inventory.FormatPrice(total))
	return nil
}

func (m *Menu) completeOrder(ctx context.Context) error {
	orderID, err := m.Prompt.Int("Enter order ID to mark as completed: ")
	if err != nil {
		return err
	}
	if err := m.Orders.Complete(ctx, orderID); err != nil {
		return err
	}
	fmt.Fprintln(m.Out, "Order marked as completed successfully!")
	return nil
}

func (m *Menu) displayInventory(ctx context.Context) error {
	products, err := m.Catalog.ListProducts(ctx)
	if err != nil {
		return err
	}
	if len(products) == 0 {
		fmt.Fprintln(m.Out, "Inventory is empty.")
		return nil
	}
	fmt.Fprintln(m.Out, "\nCurrent Inventory:")
	for _, p := range products {
		fmt.Fprintf(m.Out, "ID: %d, Name: %s, Quantity: %d, Price: Rs. %s\n",
			p.ID, p.Name, p.Quantity, inventory.FormatPrice(p.PriceCents))
	}
	return nil
}

func (m *Menu) displaySuppliers(ctx context.Context) error {
	suppliers, err := m.Catalog.ListSuppliers(ctx)
	if err != nil {
		return err
	}
	if len(suppliers) == 0 {
		fmt.Fprintln(m.Out, "No suppliers.")
		return nil
	}
	fmt.Fprintln(m.Out, "\nSuppliers:")
	for _, s := range suppliers {
		fmt.Fprintf(m.Out, "ID: %d, Name: %s, Contact: %s\n", s.ID, s.Name, s.Contact)
	}
	return nil
}

func (m *Menu) displayOrders(ctx context.Context, status inventory.Status) error {
	details, err := m.Orders.ListByStatus(ctx, status)
	if err != nil {
		return err
	}
	if len(details) == 0 {
		fmt.Fprintf(m.Out, "No %s orders.\n", status)
		return nil
	}
	for _, d := range details {
		fmt.Fprintf(m.Out, "\n--- Order ID: %d ---\n", d.Order.ID)
		fmt.Fprintf(m.Out, "Supplier ID: %d, Status: %s\n", d.Order.SupplierID, d.Order.Status)
		for _, l := range d.Lines {
			fmt.Fprintf(m.Out, "Product ID: %d, Name: %s, Quantity: %d, Price: Rs. %s\n",
				l.Line.ProductID, l.ProductName, l.Line.Qty, inventory.FormatPrice(l.Line.PriceCents))
		}
		fmt.Fprintf(m.Out, "Total: Rs. %s\n", inventory.FormatPrice(d.TotalCents))
	}
	return nil
}

func message(err error) string {
	switch {
	case errors.Is(err, inventory.ErrInsufficientStock):
		return "Insufficient quantity in stock!"
	case errors.Is(err, inventory.ErrProductNotFound):
		return "Product not found!"
	case errors.Is(err, inventory.ErrSupplierNotFound):
		return "Supplier not found!"
	case errors.Is(err, inventory.ErrOrderNotFound):
		return "Order not found!"
	case errors.Is(err, inventory.ErrDuplicateKey):
		return "That ID is already in use!"
	case errors.Is(err, inventory.ErrInvalidContact):
		return "Contact must be exactly 10 digits!"
	case errors.Is(err, inventory.ErrAlreadyCompleted):
		return "Order is already completed."
	case errors.Is(err, inventory.ErrInvalidQuantity):
		return "Quantity must be a positive integer!"
	case errors.Is(err, inventory.ErrInvalidPrice):
		return "Price must be non-negative!"
	default:
		return err.Error()
	}
}
