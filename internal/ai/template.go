package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-mentor/internal/models"
)

// TemplateExplainer детерминированный текст по полям результата, без сети (mock mode)
type TemplateExplainer struct{}

func NewTemplateExplainer() *TemplateExplainer {
	return &TemplateExplainer{}
}

func (t *TemplateExplainer) Name() string {
	return "template"
}

func (t *TemplateExplainer) Explain(_ context.Context, c Context) (string, error) {
	if c.Result == nil {
		return "", fmt.Errorf("%w: empty simulation result", ErrExplanationUnavailable)
	}
	return t.Render(c), nil
}

// Render никогда не падает, используется как запасной вариант
func (t *TemplateExplainer) Render(c Context) string {
	r := c.Result
	item := r.Proposal.Description
	if item == "" {
		item = "this purchase"
	}
	cost := money(r.Proposal.Amount.StringFixed(2), r.Currency)
	after := r.RemainingAfter[r.Proposal.Category]

	var sb strings.Builder
	switch r.Verdict {
	case models.VerdictAffordable:
		fmt.Fprintf(&sb, "Verdict: affordable. %s (%s) fits your %s budget.\n", item, cost, r.Proposal.Category)
		fmt.Fprintf(&sb, "%s\n", r.Reason)
		fmt.Fprintf(&sb, "You will still have %s left in %s this %s.",
			money(after.StringFixed(2), r.Currency), r.Proposal.Category, periodNoun(r.Period))
		if r.HeavyPurchase {
			sb.WriteString("\nIt takes more than half of what is left, so think it over for a day if it is a want.")
		} else {
			sb.WriteString("\nEnjoy it guilt-free.")
		}
	case models.VerdictAffordableWithTradeoff:
		fmt.Fprintf(&sb, "Verdict: affordable with a tradeoff. %s (%s) is over your %s budget by %s.\n",
			item, cost, r.Proposal.Category, money(r.Shortfall.StringFixed(2), r.Currency))
		fmt.Fprintf(&sb, "%s\n", r.Reason)
		fmt.Fprintf(&sb, "The difference comes out of savings and delays your goal by %s.", delayText(r))
		sb.WriteString("\nIf you can wait until next " + periodNoun(r.Period) + ", the goal stays on track.")
	case models.VerdictNotAffordable:
		fmt.Fprintf(&sb, "Verdict: not affordable. I advise against buying %s (%s) now.\n", item, cost)
		fmt.Fprintf(&sb, "%s\n", r.Reason)
		sb.WriteString("Savings cannot cover the difference without breaking your goal. " +
			"Wait for the next " + periodNoun(r.Period) + " or look for a cheaper alternative.")
	default:
		fmt.Fprintf(&sb, "Verdict: %s. %s", r.Verdict, r.Reason)
	}
	return sb.String()
}

func money(amount, currency string) string {
	if currency == "" {
		return amount
	}
	return amount + " " + currency
}
