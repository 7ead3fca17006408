package cli

import (
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// цвета темы (Flexoki Dark)
var (
	ColorBorder    = lipgloss.Color("#282726")
	ColorTextDim   = lipgloss.Color("#575653")
	ColorTextMuted = lipgloss.Color("#6F6E69")
	ColorText      = lipgloss.Color("#FFFCF0")
	ColorAccent    = lipgloss.Color("#3AA99F")
	ColorGreen     = lipgloss.Color("#879A39")
	ColorOrange    = lipgloss.Color("#DA702C")
	ColorRed       = lipgloss.Color("#D14D41")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Align(lipgloss.Center)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent)

	cellStyle = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	mutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	goodStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorGreen)
	warnStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorOrange)
	badStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
)

// Table данные для RenderTable, первая колонка выравнивается влево, остальные вправо
type Table struct {
	Title   string
	Headers []string
	Rows    [][]string
}

func RenderTitle(title string) string {
	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Width(55).
		Align(lipgloss.Center).
		Padding(0, 1)

	return border.Render(titleStyle.Render(title))
}

func RenderTable(t Table) string {
	if len(t.Rows) == 0 && len(t.Headers) == 0 {
		return ""
	}

	tbl := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(ColorTextDim)).
		Headers(t.Headers...).
		Rows(t.Rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			if col > 0 {
				return cellStyle.Align(lipgloss.Right)
			}
			return cellStyle
		})

	var b strings.Builder
	if t.Title != "" {
		b.WriteString("  ")
		b.WriteString(headerStyle.Render(t.Title))
		b.WriteString("\n")
	}
	b.WriteString(tbl.Render())
	b.WriteString("\n")
	return b.String()
}

// RenderProgressBar полоса заполнения, pct в процентах, больше 100 обрезается
func RenderProgressBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}

	style := goodStyle
	switch {
	case pct >= 100:
		style = badStyle
	case pct >= 80:
		style = warnStyle
	}
	bar := style.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("[%s] %s", bar, FormatPercent(pct))
}

func RenderVerdict(v models.Verdict) string {
	switch v {
	case models.VerdictAffordable:
		return goodStyle.Render("AFFORDABLE")
	case models.VerdictAffordableWithTradeoff:
		return warnStyle.Render("AFFORDABLE WITH TRADEOFF")
	default:
		return badStyle.Render("NOT AFFORDABLE")
	}
}

func RenderPlan(plan *models.BudgetPlan, currency string) string {
	rows := make([][]string, 0, len(models.PlanCategories)+1)
	for _, c := range models.PlanCategories {
		allocated, _ := plan.Allocated(c)
		rows = append(rows, []string{c.String(), FormatPercent(plan.Ratios.Of(c) * 100), FormatMoney(allocated, currency)})
	}
	rows = append(rows, []string{"total", "", FormatMoney(plan.Total(), currency)})

	return RenderTable(Table{
		Title:   fmt.Sprintf("Budget plan (%s)", plan.Period),
		Headers: []string{"Category", "Share", "Limit"},
		Rows:    rows,
	})
}

func RenderBalances(balances []models.CategoryBalance, currency string) string {
	rows := make([][]string, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, []string{
			b.Category.String(),
			FormatMoney(b.Allocated, currency),
			FormatMoney(b.Spent, currency),
			FormatMoney(b.Remaining, currency),
			RenderProgressBar(b.SpentPercent, 20),
		})
	}
	return RenderTable(Table{
		Title:   "Balances this period",
		Headers: []string{"Category", "Limit", "Spent", "Left", "Used"},
		Rows:    rows,
	})
}

// RenderAdvice вердикт, цифры симуляции и текст объяснения
func RenderAdvice(advice *models.PurchaseAdvice, currency string) string {
	r := advice.Result
	var b strings.Builder

	fmt.Fprintf(&b, "  %s  %s for %s (%s)\n\n",
		RenderVerdict(r.Verdict), r.Proposal.Description, FormatMoney(r.Proposal.Amount, currency), r.Proposal.Category)

	rows := [][]string{
		{"Left in category", FormatMoney(r.CategoryRemaining, currency)},
	}
	if r.Verdict != models.VerdictAffordable {
		rows = append(rows,
			[]string{"Shortfall", FormatMoney(r.Shortfall, currency)},
			[]string{"Goal delay", FormatDelay(r)},
		)
	}
	if r.HeavyPurchase {
		rows = append(rows, []string{"Caution", "over half of what is left"})
	}
	b.WriteString(RenderTable(Table{Rows: rows}))

	b.WriteString("\n  ")
	b.WriteString(mutedStyle.Render("advice (" + advice.AdviceSource + ")"))
	b.WriteString("\n  ")
	b.WriteString(strings.ReplaceAll(strings.TrimSpace(advice.Advice), "\n", "\n  "))
	b.WriteString("\n")
	return b.String()
}
