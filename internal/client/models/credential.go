package models

import (
	"fmt"
	"strings"
	"time"
)

// Credential is a vault entry. Value is the secret itself.
type Credential struct {
	ID        int64
	Title     string
	Value     string
	User      string
	Category  CredentialCategory
	CreatedAt time.Time
}

func (c Credential) Key() int64 { return c.ID }

// MaskedValue is what the vault list shows instead of the secret.
const MaskedValue = "••••••••••••"

type CredentialWire struct {
	ID            int64      `json:"id,omitempty"`
	Titulo        string     `json:"titulo"`
	Valor         string     `json:"valor"`
	Usuario       string     `json:"usuario,omitempty"`
	Categoria     string     `json:"categoria,omitempty"`
	FechaCreacion *Timestamp `json:"fechaCreacion,omitempty"`
}

func (c Credential) Wire() (CredentialWire, error) {
	w := CredentialWire{
		ID:      c.ID,
		Titulo:  c.Title,
		Valor:   c.Value,
		Usuario: strings.TrimSpace(c.User),
	}
	if c.Category != "" {
		if !CredentialCategories.Valid(c.Category) {
			_, err := CredentialCategories.Encode(c.Category)
			return CredentialWire{}, err
		}
		w.Categoria = string(c.Category)
	}
	if !c.CreatedAt.IsZero() {
		w.FechaCreacion = &Timestamp{c.CreatedAt}
	}
	return w, nil
}

// Credential decodes w; a missing categoria reads as General.
func (w CredentialWire) Credential() (Credential, error) {
	c := Credential{
		ID:       w.ID,
		Title:    w.Titulo,
		Value:    w.Valor,
		User:     w.Usuario,
		Category: CredentialGeneral,
	}
	if w.Categoria != "" {
		category := CredentialCategory(w.Categoria)
		if !CredentialCategories.Valid(category) {
			_, err := CredentialCategories.Encode(category)
			return Credential{}, fmt.Errorf("credential %d: %w", w.ID, err)
		}
		c.Category = category
	}
	if w.FechaCreacion != nil {
		c.CreatedAt = w.FechaCreacion.Time
	}
	return c, nil
}

func DecodeCredentials(ws []CredentialWire) ([]Credential, error) {
	out := make([]Credential, 0, len(ws))
	for _, w := range ws {
		c, err := w.Credential()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}
