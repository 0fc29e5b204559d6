package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/itcontroller/internal/client/render"
)

func (a *App) Products(ctx context.Context, _ []string) error {
	if err := a.svc.Inventory.Load(a.authed(ctx)); err != nil {
		return err
	}
	render.Products(a.out, a.svc.Inventory.Products())
	return nil
}

func (a *App) AddProduct(ctx context.Context, _ []string) error {
	name, err := a.ask("Enter name")
	if err != nil {
		return err
	}
	price, err := a.ask("Enter price")
	if err != nil {
		return err
	}
	if err := a.svc.Inventory.Create(a.authed(ctx), name, price); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product created")
	return nil
}

// EditProduct offers the current values; empty answers keep them.
func (a *App) EditProduct(ctx context.Context, args []string) error {
	ctx = a.authed(ctx)
	id, err := a.idArg(args, "Enter product id")
	if err != nil {
		return err
	}
	p, err := ensure(ctx, id, "product", a.svc.Inventory.Product, a.svc.Inventory.Load)
	if err != nil {
		return err
	}

	name, err := a.ask(fmt.Sprintf("Name (empty keeps %q)", p.Name))
	if err != nil {
		return err
	}
	if name == "" {
		name = p.Name
	}
	price, err := a.ask(fmt.Sprintf("Price (empty keeps %s)", render.Price(p.Price)))
	if err != nil {
		return err
	}
	if price == "" {
		price = strconv.FormatFloat(p.Price, 'f', -1, 64)
	}

	if err := a.svc.Inventory.Update(ctx, id, name, price); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product saved")
	return nil
}

func (a *App) DeleteProduct(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter product id")
	if err != nil {
		return err
	}
	if err := a.svc.Inventory.Delete(a.authed(ctx), id); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Product deleted")
	return nil
}
