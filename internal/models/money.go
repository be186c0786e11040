package models

import "github.com/shopspring/decimal"

// MoneyScale is the number of decimal places kept for computed fees and commissions.
const MoneyScale int32 = 2

var hundred = decimal.NewFromInt(100)

// RoundMoney rounds half away from zero to MoneyScale places.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(MoneyScale)
}

// Percent returns pct percent of amount, rounded to MoneyScale.
func Percent(amount, pct decimal.Decimal) decimal.Decimal {
	return RoundMoney(amount.Mul(pct).Div(hundred))
}
