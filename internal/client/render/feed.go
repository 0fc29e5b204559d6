package render

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/dmitrijs2005/itcontroller/internal/client/services"
)

const feedDateLayout = "2/1/2006"

// RelativeTime labels t as seen at now. Minutes, hours and days are
// rounded to the nearest unit before the thresholds are applied.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mins := round(diff.Minutes())
	hours := round(diff.Hours())
	days := round(diff.Hours() / 24)

	switch {
	case mins < 1:
		return "Justo ahora"
	case mins < 60:
		return fmt.Sprintf("Hace %d min", mins)
	case hours < 24:
		return fmt.Sprintf("Hace %d h", hours)
	case days == 1:
		return "Ayer"
	default:
		return t.In(now.Location()).Format(feedDateLayout)
	}
}

// round is half-up rounding.
func round(v float64) int64 {
	return int64(math.Floor(v + 0.5))
}

// Feed writes the non-empty groups in order.
func Feed(w io.Writer, groups []services.FeedGroup, now time.Time) {
	empty := true
	for _, g := range groups {
		if len(g.Activities) == 0 {
			continue
		}
		empty = false
		fmt.Fprintln(w, Title(g.Title))
		for _, a := range g.Activities {
			line := fmt.Sprintf("  %-5d %-20s %s", a.ID, a.Type.Label(), a.Description)
			if a.ReferenceInfo != "" {
				line += " (" + a.ReferenceInfo + ")"
			}
			fmt.Fprintf(w, "%s  %s\n", line, Muted(RelativeTime(a.CreatedAt(), now)))
		}
	}
	if empty {
		fmt.Fprintln(w, "No activity")
	}
}
