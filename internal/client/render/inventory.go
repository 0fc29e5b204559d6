package render

import (
	"fmt"
	"io"

	"github.com/dmitrijs2005/itcontroller/internal/client/models"
	"github.com/dustin/go-humanize"
)

// Price formats a price with thousands separators and two decimals.
func Price(v float64) string {
	return "$" + humanize.FormatFloat("#,###.##", v)
}

func Products(w io.Writer, products []models.Product) {
	fmt.Fprintln(w, Muted(fmt.Sprintf("%s productos", humanize.Comma(int64(len(products))))))
	for _, p := range products {
		fmt.Fprintf(w, "%-5d %-30s %12s\n", p.ID, p.Name, Price(p.Price))
	}
}
