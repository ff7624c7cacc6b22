// Package calendar lays out month grids for the roadmap calendar. Weeks
// start on Sunday.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/bmic/internal/content"
)

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Day is one grid cell. Blank leading cells have Day == 0.
type Day struct {
	Day     int  `json:"day"`
	IsToday bool `json:"is_today,omitempty"`
}

type MonthGrid struct {
	Year  int            `json:"year"`
	Month time.Month     `json:"month"`
	Cells []Day          `json:"cells"`
	Phase *content.Phase `json:"phase,omitempty"`
}

// DaysIn returns the number of days in month of year.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Month builds the grid for month of year. today only decides which cell
// is flagged; phases decides which roadmap phase the month belongs to.
func Month(year int, month time.Month, today time.Time, phases []content.Phase) MonthGrid {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	lead := int(first.Weekday())
	n := DaysIn(year, month)

	cells := make([]Day, lead, lead+n)
	for d := 1; d <= n; d++ {
		cells = append(cells, Day{
			Day:     d,
			IsToday: today.Year() == year && today.Month() == month && today.Day() == d,
		})
	}

	g := MonthGrid{Year: year, Month: month, Cells: cells}
	if p, ok := content.PhaseAt(phases, first); ok {
		g.Phase = &p
	}
	return g
}

// Year returns the twelve month grids of year.
func Year(year int, today time.Time, phases []content.Phase) []MonthGrid {
	out := make([]MonthGrid, 0, 12)
	for m := time.January; m <= time.December; m++ {
		out = append(out, Month(year, m, today, phases))
	}
	return out
}

// Render writes g as a text grid. Today is marked with '*'.
func Render(w io.Writer, g MonthGrid) error {
	var b strings.Builder

	title := fmt.Sprintf("%s %d", g.Month, g.Year)
	if g.Phase != nil {
		title += " | " + g.Phase.Title
	}
	b.WriteString(title)
	b.WriteByte('\n')
	b.WriteString(strings.Join(weekdays, " "))
	b.WriteByte('\n')

	var line strings.Builder
	flush := func() {
		b.WriteString(strings.TrimRight(line.String(), " "))
		b.WriteByte('\n')
		line.Reset()
	}

	for i, c := range g.Cells {
		switch {
		case c.Day == 0:
			line.WriteString("    ")
		case c.IsToday:
			fmt.Fprintf(&line, "%3d*", c.Day)
		default:
			fmt.Fprintf(&line, "%3d ", c.Day)
		}
		if i%7 == 6 {
			flush()
		}
	}
	if line.Len() > 0 {
		flush()
	}

	_, err := io.WriteString(w, b.String())
	return err
}
