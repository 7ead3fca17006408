// Package cli форматирование и отрисовка вывода для терминала
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alligatorO15/fin-mentor/internal/models"
	"github.com/shopspring/decimal"
)

// FormatMoney сумма с двумя знаками, разделителем тысяч и кодом валюты: "1,234.50 INR"
func FormatMoney(amount decimal.Decimal, currency string) string {
	s := amount.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	out := sign + groupThousands(whole) + "." + frac
	if currency == "" {
		return out
	}
	return out + " " + currency
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

// FormatPercent одна цифра после точки
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// FormatDate дата без времени, нулевая как "-"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02")
}

// FormatDelay задержка цели в периодах бюджета
func FormatDelay(r *models.SimulationResult) string {
	switch {
	case r.DelayUnbounded:
		return "indefinitely"
	case r.GoalDelayPeriods == 0:
		return "none"
	case r.GoalDelayPeriods == 1:
		return "1 " + periodUnit(r.Period)
	default:
		return fmt.Sprintf("%d %ss", r.GoalDelayPeriods, periodUnit(r.Period))
	}
}

func periodUnit(p models.Period) string {
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
