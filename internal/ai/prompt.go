package ai

import (
	"fmt"
	"strings"

	"github.com/alligatorO15/fin-mentor/internal/models"
)

const systemPrompt = "You are a helpful, strict, but kind financial mentor for a beginner. " +
	"You receive a structured assessment of a purchase from a deterministic calculation engine. " +
	"Explain it to the user in natural language. Do NOT second-guess the math. " +
	"If the verdict is not_affordable, be firm. If it is affordable_with_tradeoff, be careful. " +
	"If it is affordable, be encouraging. Keep it concise."

// buildUserPrompt плоское описание результата для модели
func buildUserPrompt(c Context) string {
	r := c.Result
	var sb strings.Builder

	sb.WriteString("Purchase assessment:\n")
	fmt.Fprintf(&sb, "- Item: %s\n", r.Proposal.Description)
	fmt.Fprintf(&sb, "- Category: %s\n", r.Proposal.Category)
	fmt.Fprintf(&sb, "- Cost: %s %s\n", r.Proposal.Amount.StringFixed(2), r.Currency)
	fmt.Fprintf(&sb, "- Verdict: %s\n", r.Verdict)
	fmt.Fprintf(&sb, "- Reason: %s\n", r.Reason)
	fmt.Fprintf(&sb, "- Left in category before purchase: %s\n", r.CategoryRemaining.StringFixed(2))
	if r.Shortfall.IsPositive() {
		fmt.Fprintf(&sb, "- Shortfall: %s\n", r.Shortfall.StringFixed(2))
	}
	if r.Verdict == models.VerdictAffordableWithTradeoff {
		fmt.Fprintf(&sb, "- Goal delay: %s\n", delayText(r))
	}
	if c.Income.IsPositive() {
		fmt.Fprintf(&sb, "- Income per %s: %s\n", periodNoun(r.Period), c.Income.StringFixed(2))
	}
	if c.Goal != nil {
		fmt.Fprintf(&sb, "- Savings goal: %s, %s of %s saved\n",
			c.Goal.Name, c.Goal.CurrentAmount.StringFixed(2), c.Goal.TargetAmount.StringFixed(2))
	}
	sb.WriteString("\nExplain this to the user as a mentor.")
	return sb.String()
}

// chatML формат инструкций Qwen
func chatML(system, user string) string {
	return "<|im_start|>system\n" + system + "<|im_end|>\n" +
		"<|im_start|>user\n" + user + "<|im_end|>\n" +
		"<|im_start|>assistant\n"
}

func delayText(r *models.SimulationResult) string {
	if r.DelayUnbounded {
		return "goal cannot be reached without a savings allocation"
	}
	if r.GoalDelayPeriods == 1 {
		return "1 " + periodNoun(r.Period)
	}
	return fmt.Sprintf("%d %ss", r.GoalDelayPeriods, periodNoun(r.Period))
}

func periodNoun(p models.Period) string {
	switch p {
	case models.PeriodWeekly:
		return "week"
	case models.PeriodQuarterly:
		return "quarter"
	case models.PeriodYearly:
		return "year"
	default:
		return "month"
	}
}
