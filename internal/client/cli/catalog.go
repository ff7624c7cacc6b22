package cli

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/dmitrijs2005/bmic/internal/calendar"
	"github.com/dmitrijs2005/bmic/internal/content"
)

// Show prints one section of the static catalog.
func (a *App) Show(ctx context.Context, topic string) error {
	switch topic {
	case "problems":
		a.printCards("The Problem", content.Problems())
	case "solutions":
		a.printCards("Our Solution", content.Solutions())
	case "benefits":
		a.printCards("Why choose BMIC token?", content.Benefits())
	case "invest":
		a.printCards("Investment Opportunity", content.Investment())
	case "tokenomics":
		a.printTokenomics()
	case "roadmap":
		a.printRoadmap()
	case "info":
		a.printInfo()
	default:
		return fmt.Errorf("unknown topic %q", topic)
	}
	return nil
}

func (a *App) printCards(title string, cards []content.Card) {
	fmt.Fprintln(a.out, titleStyle.Render(title))
	for _, c := range cards {
		head := c.Title
		if c.Subtitle != "" {
			head += " " + subtleStyle.Render(c.Subtitle)
		}
		fmt.Fprintln(a.out, bodyStyle.Render("- "+head))
		fmt.Fprintln(a.out, bodyStyle.Render("  "+c.Description))
	}
}

func (a *App) printTokenomics() {
	rows := content.Tokenomics()
	out := make([][]string, 0, len(rows)+1)
	totalCoins := 0
	for _, r := range rows {
		out = append(out, []string{r.Title, formatCoins(r.Coins), strconv.Itoa(r.Percent) + "%"})
		totalCoins += r.Coins
	}
	out = append(out, []string{"Total", formatCoins(totalCoins), strconv.Itoa(content.TotalPercent(rows)) + "%"})

	fmt.Fprintln(a.out, titleStyle.Render("Tokenomics"))
	fmt.Fprint(a.out, renderTable([]string{"ALLOCATION", "COINS (M)", "SHARE"}, out))
}

func (a *App) printRoadmap() {
	current, hasCurrent := content.PhaseAt(content.Roadmap(), a.now())

	fmt.Fprintln(a.out, titleStyle.Render("Roadmap"))
	for _, p := range content.Roadmap() {
		head := p.Title + " " + subtleStyle.Render(p.Period)
		if hasCurrent && p.Title == current.Title {
			head += " <- now"
		}
		fmt.Fprintln(a.out, bodyStyle.Render(head))
		for _, it := range p.Items {
			fmt.Fprintln(a.out, bodyStyle.Render("  - "+it))
		}
	}
}

func (a *App) printInfo() {
	info := content.Info()
	fmt.Fprintln(a.out, titleStyle.Render(info.Name))
	fmt.Fprintln(a.out, bodyStyle.Render("Version:    "+info.Version))
	fmt.Fprintln(a.out, bodyStyle.Render("Build date: "+info.BuildDate))
	fmt.Fprintln(a.out, bodyStyle.Render("Commit:     "+info.Commit))
}

// Calendar prints the current month, a whole year ("calendar 2025") or one
// month ("calendar 2025 10").
func (a *App) Calendar(ctx context.Context, args []string) error {
	now := a.now()
	phases := content.Roadmap()

	switch len(args) {
	case 0:
		return calendar.Render(a.out, calendar.Month(now.Year(), now.Month(), now, phases))

	case 1:
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: calendar [year [month]]: %w", err)
		}
		for i, m := range calendar.Year(year, now, phases) {
			if i > 0 {
				fmt.Fprintln(a.out)
			}
			if err := calendar.Render(a.out, m); err != nil {
				return err
			}
		}
		return nil

	default:
		year, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("usage: calendar [year [month]]: %w", err)
		}
		month, err := strconv.Atoi(args[1])
		if err != nil || month < 1 || month > 12 {
			return fmt.Errorf("usage: calendar [year [month]]: month must be 1-12")
		}
		return calendar.Render(a.out, calendar.Month(year, time.Month(month), now, phases))
	}
}

// formatCoins groups thousands: 1500 -> "1,500".
func formatCoins(n int) string {
	s := strconv.Itoa(n)
	if n < 0 {
		return "-" + formatCoins(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
