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
	"time"

	"github.com/shopspring/decimal"
)

// Account is a customer's balance-holding entity
type Account struct {
	fullName      string
	accountNumber int64
	credential    string
	balance       decimal.Decimal
	active        bool
	createdAt     time.Time
}

// NewAccount creates an instance of Account
func NewAccount(fullName string, accountNumber int64, credential string, balance decimal.Decimal, active bool, createdAt time.Time) *Account {
	return &Account{
		fullName:      fullName,
		accountNumber: accountNumber,
		credential:    credential,
		balance:       balance,
		active:        active,
		createdAt:     createdAt,
	}
}

func (a *Account) SetBalance(balance decimal.Decimal) {
	a.balance = balance
}

func (a *Account) SetCredential(credential string) {
	a.credential = credential
}

func (a *Account) SetActive(active bool) {
	a.active = active
}

func (a *Account) FullName() string {
	return a.fullName
}

func (a *Account) AccountNumber() int64 {
	return a.accountNumber
}

// Credential returns the stored form of the account password.
// It is never the plain text password.
func (a *Account) Credential() string {
	return a.credential
}

func (a *Account) Balance() decimal.Decimal {
	return a.balance
}

func (a *Account) IsActive() bool {
	return a.active
}

func (a *Account) CreatedAt() time.Time {
	return a.createdAt
}

// Clone returns a detached copy of the account
func (a *Account) Clone() *Account {
	cp := *a
	return &cp
}
