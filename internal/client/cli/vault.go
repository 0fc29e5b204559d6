package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/render"
	"github.com/dmitrijs2005/itcontroller/internal/client/services"
	"github.com/dmitrijs2005/itcontroller/internal/common"
)

func (a *App) Vault(ctx context.Context, _ []string) error {
	if err := a.svc.Vault.Load(a.authed(ctx)); err != nil {
		return err
	}
	render.Vault(a.out, a.svc.Vault.Credentials())
	return nil
}

// AddCredential reads the secret without echo.
func (a *App) AddCredential(ctx context.Context, _ []string) error {
	title, err := a.ask("Enter title")
	if err != nil {
		return err
	}
	value, err := getSecret(a.out, "Enter value")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(value)

	user, err := a.ask("Enter user (optional)")
	if err != nil {
		return err
	}

	nc := services.NewCredential{Title: title, Value: string(value), User: user}
	if v, err := a.ask(fmt.Sprintf("Category %v (empty for General)", models.CredentialCategories.Labels())); err != nil {
		return err
	} else if v != "" {
		if nc.Category, err = models.CredentialCategories.Parse(v); err != nil {
			return err
		}
	}

	c, err := a.svc.Vault.Create(a.authed(ctx), nc)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Credential #%d stored\n", c.ID)
	return nil
}

// credential reads a credential from a fresh load of the vault; secrets are
// never served from an earlier listing.
func (a *App) credential(ctx context.Context, args []string) (models.Credential, error) {
	id, err := a.idArg(args, "Enter credential id")
	if err != nil {
		return models.Credential{}, err
	}
	if err := a.svc.Vault.Load(a.authed(ctx)); err != nil {
		return models.Credential{}, err
	}
	c, ok := a.svc.Vault.Credential(id)
	if !ok {
		return models.Credential{}, fmt.Errorf("credential %d not found", id)
	}
	return c, nil
}

// ShowCredential prints a credential; "showcred <id> reveal" shows the
// secret in clear.
func (a *App) ShowCredential(ctx context.Context, args []string) error {
	c, err := a.credential(ctx, args)
	if err != nil {
		return err
	}
	reveal := len(args) > 1 && strings.EqualFold(args[1], "reveal")
	render.Credential(a.out, c, reveal)
	return nil
}

func (a *App) CopyCredential(ctx context.Context, args []string) error {
	c, err := a.credential(ctx, args)
	if err != nil {
		return err
	}
	if err := a.svc.Vault.CopyValue(c.ID); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Copied to clipboard")
	return nil
}

func (a *App) DeleteCredential(ctx context.Context, args []string) error {
	id, err := a.idArg(args, "Enter credential id")
	if err != nil {
		return err
	}
	ctx = a.authed(ctx)
	if _, err := ensure(ctx, id, "credential", a.svc.Vault.Credential, a.svc.Vault.Load); err != nil {
		return err
	}
	return a.report(a.svc.Vault.Delete(ctx, id), "Credential deleted")
}
