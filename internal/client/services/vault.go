package services

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dmitrijs2005/itcontroller/internal/client/mutation"
	"github.com/dmitrijs2005/itcontroller/internal/client/store"
	"github.com/dmitrijs2005/itcontroller/internal/common"
	"github.com/dmitrijs2005/itcontroller/internal/logging"
)

const credentialsPath = "/credenciales"

// VaultService manages stored credentials.
type VaultService interface {
	Load(ctx context.Context) error
	Reset()
	Credentials() []models.Credential
	Credential(id int64) (models.Credential, bool)
	Create(ctx context.Context, c NewCredential) (models.Credential, error)
	Delete(ctx context.Context, id int64) mutation.Outcome
	CopyValue(id int64) error
}

type NewCredential struct {
	Title    string
	Value    string
	User     string
	Category models.CredentialCategory
}

// ClipboardWriter puts text on the system clipboard.
type ClipboardWriter func(text string) error

type vaultService struct {
	api       API
	store     *store.Store[models.Credential]
	engine    *mutation.Engine[models.Credential]
	clipboard ClipboardWriter
	logger    logging.Logger
}

// NewVaultService builds the vault. A nil clip uses the system clipboard.
func NewVaultService(api API, clip ClipboardWriter, logger logging.Logger) VaultService {
	if clip == nil {
		clip = clipboard.WriteAll
	}
	v := &vaultService{api: api, clipboard: clip, logger: logger.With("component", "vault")}
	v.store = store.New[models.Credential](v.fetch)
	v.engine = mutation.New(v.store, v.logger)
	return v
}

func (v *vaultService) fetch(ctx context.Context) ([]models.Credential, error) {
	var ws []models.CredentialWire
	if err := v.api.JSON(ctx, http.MethodGet, credentialsPath, nil, &ws); err != nil {
		return nil, fmt.Errorf("load credentials: %w", err)
	}
	return models.DecodeCredentials(ws)
}

func (v *vaultService) Load(ctx context.Context) error { return v.store.Load(ctx) }

func (v *vaultService) Reset() { v.store.Reset() }

func (v *vaultService) Credentials() []models.Credential { return v.store.All() }

func (v *vaultService) Credential(id int64) (models.Credential, bool) { return v.store.Get(id) }

// Create checks title and value locally; nothing is sent when either is
// missing.
func (v *vaultService) Create(ctx context.Context, nc NewCredential) (models.Credential, error) {
	c := models.Credential{
		Title:    strings.TrimSpace(nc.Title),
		Value:    nc.Value,
		User:     strings.TrimSpace(nc.User),
		Category: nc.Category,
	}
	if c.Title == "" || c.Value == "" {
		return models.Credential{}, invalid("titulo", "credential title and value are required")
	}
	if c.Category == "" {
		c.Category = models.CredentialGeneral
	}

	w, err := c.Wire()
	if err != nil {
		return models.Credential{}, err
	}

	resp, err := send(ctx, v.api, http.MethodPost, credentialsPath, w)
	if err != nil {
		return models.Credential{}, fmt.Errorf("create credential: %w", err)
	}

	var created models.CredentialWire
	if err := resp.Decode(&created); err == nil && created.ID != 0 {
		if decoded, err := created.Credential(); err == nil {
			c = decoded
		}
	}

	if err := v.store.Load(ctx); err != nil {
		v.logger.Warn(ctx, "reload after create failed", "error", err)
		if c.ID != 0 {
			v.store.Upsert(c)
		}
	}
	return c, nil
}

func (v *vaultService) Delete(ctx context.Context, id int64) mutation.Outcome {
	return v.engine.Delete(ctx, id, func(ctx context.Context, c models.Credential) error {
		_, err := send(ctx, v.api, http.MethodDelete, itemPath(credentialsPath, c.ID), nil)
		return err
	})
}

// CopyValue puts the secret of id on the clipboard.
func (v *vaultService) CopyValue(id int64) error {
	c, ok := v.store.Get(id)
	if !ok {
		return fmt.Errorf("credential %d: %w", id, common.ErrNotFound)
	}
	if err := v.clipboard(c.Value); err != nil {
		return fmt.Errorf("copy to clipboard: %w", err)
	}
	return nil
}
