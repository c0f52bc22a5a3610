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

package ledger

import (
	"fmt"
	"unicode"

	"github.com/shopspring/decimal"

	"github.com/tochemey/goakt-bank/domain"
)

const (
	minNameLength     = 2
	maxNameLength     = 100
	minPasswordLength = 6
	maxPasswordLength = 50
)

// ValidateName checks a holder name: 2 to 100 characters made of ASCII letters, spaces and dots
func ValidateName(name string) error {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return invalid("name", fmt.Sprintf("name must be %d-%d characters", minNameLength, maxNameLength))
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if !isASCIILetter(c) && c != ' ' && c != '.' {
			return invalid("name", "invalid name, use only letters, spaces, and dots")
		}
	}
	return nil
}

// ValidatePassword checks the password policy: 6 to 50 characters with at least
// one uppercase letter, one lowercase letter and one digit
func ValidatePassword(password string) error {
	message := fmt.Sprintf("password must be %d-%d characters with uppercase, lowercase, and digits", minPasswordLength, maxPasswordLength)
	if len(password) < minPasswordLength || len(password) > maxPasswordLength {
		return invalid("password", message)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return invalid("password", message)
	}
	return nil
}

// ValidateInitialDeposit checks the opening deposit against the minimum
func ValidateInitialDeposit(amount decimal.Decimal) error {
	if amount.LessThan(domain.MinimumOpeningDeposit) {
		return invalid("initialDeposit", "minimum initial deposit is "+domain.FormatAmount(domain.MinimumOpeningDeposit))
	}
	if !domain.HasCentPrecision(amount) {
		return invalid("initialDeposit", "amount may have at most two decimal places")
	}
	if amount.GreaterThan(domain.MaximumAmount) {
		return invalid("initialDeposit", "amount may not exceed "+domain.FormatAmount(domain.MaximumAmount))
	}
	return nil
}

// ValidateAmount checks that a deposit, withdrawal or transfer amount is positive,
// in whole cents and no larger than the maximum amount
func ValidateAmount(kind string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return invalid("amount", kind+" amount must be positive")
	}
	if !domain.HasCentPrecision(amount) {
		return invalid("amount", "amount may have at most two decimal places")
	}
	if amount.GreaterThan(domain.MaximumAmount) {
		return invalid("amount", "amount may not exceed "+domain.FormatAmount(domain.MaximumAmount))
	}
	return nil
}

// validateCredit checks that crediting amount to balance keeps it within the maximum amount
func validateCredit(balance, amount decimal.Decimal) error {
	if balance.Add(amount).GreaterThan(domain.MaximumAmount) {
		return invalid("amount", "resulting balance may not exceed "+domain.FormatAmount(domain.MaximumAmount))
	}
	return nil
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
