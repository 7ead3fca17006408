package models

import (
	"fmt"
	"strings"
	"time"
)

type Period string

const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// среднее кол-во дней в году, отсюда 30.44 дня в месяце
const daysPerYear = 365.25

func ParsePeriod(s string) (Period, error) {
	if s == "" {
		return PeriodMonthly, nil
	}
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("%w %q", ErrInvalidPeriod, s)
	}
	return p, nil
}

func (p Period) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return true
	}
	return false
}

// PerYear сколько раз период повторяется за год
func (p Period) PerYear() int64 {
	switch p {
	case PeriodWeekly:
		return 52
	case PeriodQuarterly:
		return 4
	case PeriodYearly:
		return 1
	default:
		return 12
	}
}

// Days средняя длина периода в днях
func (p Period) Days() float64 {
	return daysPerYear / float64(p.PerYear())
}

// Bounds возвращает начало и конец текущего периода относительно now.
// Конец не включается: [start, end)
func (p Period) Bounds(now time.Time) (time.Time, time.Time) {
	switch p {
	case PeriodWeekly:
		// неделя начинается с понедельника
		weekday := int(now.Weekday())
		if weekday == 0 {
			weekday = 7
		}
		start := now.AddDate(0, 0, -weekday+1)
		start = time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 0, 7)

	case PeriodQuarterly:
		quarter := (int(now.Month()) - 1) / 3
		start := time.Date(now.Year(), time.Month(quarter*3+1), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 3, 0)

	case PeriodYearly:
		start := time.Date(now.Year(), 1, 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(1, 0, 0)

	default:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return start, start.AddDate(0, 1, 0)
	}
}
