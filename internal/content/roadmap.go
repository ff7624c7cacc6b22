package content

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// OngoingPeriod marks a phase with no end date.
const OngoingPeriod = "Ongoing"

var ErrInvalidPeriod = errors.New("invalid period")

type Phase struct {
	Title  string   `json:"title"`
	Period string   `json:"period"`
	Items  []string `json:"items"`
}

var roadmap = []Phase{
	{
		Title:  "Phase 1: Foundation",
		Period: "Q4 2024 - Q1 2025",
		Items: []string{
			"Build core AI & QML infrastructure",
			"Alpha testnet launch - compute jobs",
			"Whitepaper v1 and token launch",
			"Arrangement of seed funding rounds",
		},
	},
	{
		Title:  "Phase 2: Testnet Expansion",
		Period: "Q2 2025 - Q3 2025",
		Items: []string{
			"Developer onboarding",
			"Beta compute marketplace live",
			"Expand partner networking",
			"NFT-based access live",
		},
	},
	{
		Title:  "Phase 3: Mainet Launch",
		Period: "Q4 2025 - Q1 2026",
		Items: []string{
			"Full launch",
			"Decentralized governance integration",
			"Mainnet compute nodes are staking",
			"Key strategic partnerships",
		},
	},
	{
		Title:  "Phase 4: Optimization",
		Period: OngoingPeriod,
		Items: []string{
			"Global node expansion",
			"Compute quantum and data networks",
			"Hybrid AI quantum services",
			"Key strategic partnerships",
		},
	},
}

func Roadmap() []Phase {
	out := make([]Phase, len(roadmap))
	for i, p := range roadmap {
		p.Items = append([]string(nil), p.Items...)
		out[i] = p
	}
	return out
}

// Span is a half-open month range [Start, End). An ongoing span has zero
// bounds.
type Span struct {
	Start   time.Time
	End     time.Time
	Ongoing bool
}

// Contains reports whether t falls inside a bounded span. Ongoing spans
// contain nothing on their own; see PhaseAt.
func (s Span) Contains(t time.Time) bool {
	if s.Ongoing {
		return false
	}
	return !t.Before(s.Start) && t.Before(s.End)
}

// ParseQuarterSpan parses "Q4 2024 - Q1 2025", a single "Q2 2025", or
// "Ongoing".
func ParseQuarterSpan(s string) (Span, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, OngoingPeriod) {
		return Span{Ongoing: true}, nil
	}

	from, to, found := strings.Cut(s, "-")
	if !found {
		to = from
	}

	start, err := parseQuarter(from)
	if err != nil {
		return Span{}, fmt.Errorf("%w %q: %v", ErrInvalidPeriod, s, err)
	}
	last, err := parseQuarter(to)
	if err != nil {
		return Span{}, fmt.Errorf("%w %q: %v", ErrInvalidPeriod, s, err)
	}
	end := last.AddDate(0, 3, 0)
	if !end.After(start) {
		return Span{}, fmt.Errorf("%w %q: ends before it starts", ErrInvalidPeriod, s)
	}

	return Span{Start: start, End: end}, nil
}

// parseQuarter turns "Q3 2025" into the first day of that quarter.
func parseQuarter(s string) (time.Time, error) {
	var q, year int
	if _, err := fmt.Sscanf(strings.TrimSpace(s), "Q%d %d", &q, &year); err != nil {
		return time.Time{}, err
	}
	if q < 1 || q > 4 {
		return time.Time{}, fmt.Errorf("quarter %d out of range", q)
	}
	return time.Date(year, time.Month(3*(q-1)+1), 1, 0, 0, 0, 0, time.UTC), nil
}

// PhaseAt returns the phase running at t. A bounded phase wins when it
// contains t; otherwise an ongoing phase is active once every bounded phase
// has ended. Only t's calendar date matters, not its location. Phases with
// unparsable periods are skipped.
func PhaseAt(phases []Phase, t time.Time) (Phase, bool) {
	t = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	var latestEnd time.Time
	ongoing := -1

	for i, p := range phases {
		sp, err := ParseQuarterSpan(p.Period)
		if err != nil {
			continue
		}
		if sp.Ongoing {
			ongoing = i
			continue
		}
		if sp.Contains(t) {
			return p, true
		}
		if sp.End.After(latestEnd) {
			latestEnd = sp.End
		}
	}

	if ongoing >= 0 && !latestEnd.IsZero() && !t.Before(latestEnd) {
		return phases[ongoing], true
	}
	return Phase{}, false
}
