package helper

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RoundDownToStep обрезает количество вниз до шага лота (как amount_to_precision с TRUNCATE).
func RoundDownToStep(qty, step decimal.Decimal) decimal.Decimal {
	if !step.IsPositive() {
		return qty
	}
	return qty.Div(step).Floor().Mul(step)
}

// ContainsFold: регистронезависимый поиск подстроки.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
