// Package core holds the order model, the line parser and the aggregator.
//
// This file contains the formatting of monetary amounts for display.
package core

import (
	"math"
	"strconv"

	"github.com/shopspring/decimal"
)

// FormatAmount renders an amount with exactly two decimals.
//
// Rounding is half away from zero on the shortest decimal representation of
// the float, so values that read as a half cent round up the way a person
// would expect:
//
//	FormatAmount(1.005) -> "1.01"
//	FormatAmount(0.125) -> "0.13"
//	FormatAmount(70)    -> "70.00"
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}
