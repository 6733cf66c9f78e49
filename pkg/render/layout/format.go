package layout

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

// Count formats n with thousands separators and a unit, pluralized.
func Count(n int64, unit string) string {
	if n != 1 {
		unit += "s"
	}
	return humanize.Comma(n) + " " + unit
}

// Rating formats a rating out of five.
func Rating(r float64) string {
	return "★ " + humanize.FtoaWithDigits(r, 2) + "/5"
}

// Players formats a player count.
func Players(online, max int) string {
	return fmt.Sprintf("%s/%s players", humanize.Comma(int64(online)), humanize.Comma(int64(max)))
}
