package render

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
)

// Vault lists credentials with their secrets masked.
func Vault(w io.Writer, creds []models.Credential) {
	if len(creds) == 0 {
		fmt.Fprintln(w, "Vault is empty")
		return
	}
	for _, c := range creds {
		user := c.User
		if user == "" {
			user = "-"
		}
		fmt.Fprintf(w, "%-5d %-11s %-20s %-16s %s\n", c.ID, c.Category, c.Title, user, models.MaskedValue)
	}
}

// Credential writes one credential. The secret is shown only with reveal.
func Credential(w io.Writer, c models.Credential, reveal bool) {
	value := models.MaskedValue
	if reveal {
		value = c.Value
	}
	fmt.Fprintln(w, Title(c.Title))
	fmt.Fprintf(w, "Categoría: %s\n", c.Category)
	if c.User != "" {
		fmt.Fprintf(w, "Usuario:   %s\n", c.User)
	}
	fmt.Fprintf(w, "Valor:     %s\n", value)
}
