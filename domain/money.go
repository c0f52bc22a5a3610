// MIT License
//
// Copyright (c) 2022-2026 GoAkt Team
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package domain

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// Currency is the unit every amount is displayed in
const Currency = "K"

var (
	// MinimumOpeningDeposit is the smallest initial deposit accepted at registration
	MinimumOpeningDeposit = decimal.NewFromInt(100)
	// MaximumAmount is the largest amount a balance or journal row can hold,
	// the int64 number of cents it is persisted as
	MaximumAmount = FromCents(math.MaxInt64)

	// ErrAmountOutOfRange is returned when an amount does not fit in int64 cents
	ErrAmountOutOfRange = errors.New("amount out of range")

	minimumCents = decimal.NewFromInt(math.MinInt64)
	maximumCents = decimal.NewFromInt(math.MaxInt64)
)

// FormatAmount renders an amount the way it is shown to customers, e.g. "K 650.00"
func FormatAmount(amount decimal.Decimal) string {
	return fmt.Sprintf("%s %s", Currency, amount.StringFixed(2))
}

// ToCents converts an amount to its integer number of cents.
// Fractions of a cent are rounded half away from zero.
func ToCents(amount decimal.Decimal) (int64, error) {
	cents := amount.Shift(2).Round(0)
	if cents.LessThan(minimumCents) || cents.GreaterThan(maximumCents) {
		return 0, errors.Wrapf(ErrAmountOutOfRange, "%s", amount.String())
	}
	return cents.IntPart(), nil
}

// FromCents converts an integer number of cents back to an amount
func FromCents(cents int64) decimal.Decimal {
	return decimal.New(cents, -2)
}

// HasCentPrecision reports whether the amount has at most two fractional digits
func HasCentPrecision(amount decimal.Decimal) bool {
	return amount.Equal(amount.Round(2))
}
