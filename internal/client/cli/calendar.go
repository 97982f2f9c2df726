package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dmitrijs2005/receiptkeeper/internal/client/services"
)

var (
	colorPositive = lipgloss.Color("#10B981")
	colorNegative = lipgloss.Color("#EF4444")
	colorMuted    = lipgloss.Color("#6B7280")
	colorAccent   = lipgloss.Color("#7C3AED")

	cellStyle = lipgloss.NewStyle().
			Width(12).
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			Align(lipgloss.Right)

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorAccent).MarginBottom(1)
)

const (
	dailyColumns   = 7
	monthlyColumns = 4
)

func cellColor(v float64) lipgloss.Color {
	switch {
	case v > 0:
		return colorPositive
	case v < 0:
		return colorNegative
	default:
		return colorMuted
	}
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// renderReport lays the periods out in a grid of cols columns. Each cell
// shows its label and amount, green when positive, red when negative and
// gray when zero.
func renderReport(title string, r *services.Report, cols int, label func(int) string) string {
	var rows []string
	var row []string
	for _, p := range r.Periods {
		c := cellColor(p.Amount)
		cell := cellStyle.
			Foreground(c).
			BorderForeground(c).
			Render(label(p.Index) + "\n" + formatAmount(p.Amount))
		row = append(row, cell)
		if len(row) == cols {
			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	summary := fmt.Sprintf("Income %s  Expense %s  Net %s",
		lipgloss.NewStyle().Foreground(colorPositive).Render(formatAmount(r.Income)),
		lipgloss.NewStyle().Foreground(colorNegative).Render(formatAmount(r.Expense)),
		lipgloss.NewStyle().Foreground(cellColor(r.Net())).Render(formatAmount(r.Net())),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		lipgloss.JoinVertical(lipgloss.Left, rows...),
		summary,
	)
}

func monthLabel(i int) string {
	return time.Month(i).String()[:3]
}

// Daily shows the day-by-day calendar of a month (default: current).
func (a *App) Daily(ctx context.Context, args []string) error {
	year, month := a.now().Year(), a.now().Month()
	if len(args) > 0 {
		ts, err := time.Parse("2006-01", args[0])
		if err != nil {
			return fmt.Errorf("invalid month %q, want YYYY-MM", args[0])
		}
		year, month = ts.Year(), ts.Month()
	}

	r, err := a.reports.Daily(ctx, year, month)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("%s %d", month, year)
	fmt.Fprintln(a.out, renderReport(title, r, dailyColumns, strconv.Itoa))
	return nil
}

// Monthly shows the month-by-month calendar of a year (default: current).
func (a *App) Monthly(ctx context.Context, args []string) error {
	year := a.now().Year()
	if len(args) > 0 {
		y, err := strconv.Atoi(strings.TrimSpace(args[0]))
		if err != nil || y < 1 {
			return fmt.Errorf("invalid year %q", args[0])
		}
		year = y
	}

	r, err := a.reports.Monthly(ctx, year)
	if err != nil {
		return err
	}
	fmt.Fprintln(a.out, renderReport(strconv.Itoa(year), r, monthlyColumns, monthLabel))
	return nil
}
