package models

import (
	"fmt"
	"strings"
)

type Category string

const (
	CategoryNeeds   Category = "needs"
	CategoryWants   Category = "wants"
	CategorySavings Category = "savings"
)

// порядок категорий в плане и в выводе
var PlanCategories = []Category{CategoryNeeds, CategoryWants, CategorySavings}

// ParseCategory не учитывает регистр: "Wants" и "wants" одна категория
func ParseCategory(s string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range PlanCategories {
		if c == known {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

func (c Category) String() string {
	return string(c)
}
