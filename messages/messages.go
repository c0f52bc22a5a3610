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

package messages

import (
	"github.com/shopspring/decimal"

	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/ledger"
)

// OpenAccount is the actor command to register an account
type OpenAccount struct {
	FullName       string
	Password       string
	Confirm        string
	InitialDeposit decimal.Decimal
}

// Deposit is the actor command to credit an account
type Deposit struct {
	AccountNumber int64
	Amount        decimal.Decimal
}

// Withdraw is the actor command to debit an account
type Withdraw struct {
	AccountNumber int64
	Amount        decimal.Decimal
}

// Transfer is the actor command to move money between two accounts
type Transfer struct {
	From   int64
	To     int64
	Amount decimal.Decimal
}

// ChangePassword is the actor command to replace a credential
type ChangePassword struct {
	AccountNumber int64
	Current       string
	Password      string
	Confirm       string
}

// Login is the actor command to authenticate an account
type Login struct {
	AccountNumber int64
	Password      string
}

// GetAccount is the actor command to fetch an active account
type GetAccount struct {
	AccountNumber int64
}

// GetHistory is the actor command to fetch the journal rows of an account
type GetHistory struct {
	AccountNumber int64
}

// ListAccounts is the actor command to fetch every active account
type ListAccounts struct{}

// GetSummary is the actor command to fetch the bank totals
type GetSummary struct{}

// SearchAccount is the actor command to fetch an account whatever its status
type SearchAccount struct {
	AccountNumber int64
}

// Reconcile is the actor command to check the journal against the balances
type Reconcile struct{}

// ReceiptReply answers the balance-changing commands
type ReceiptReply struct {
	Receipt *ledger.Receipt
	Err     error
}

// AccountReply answers Login, GetAccount and SearchAccount
type AccountReply struct {
	Account *domain.Account
	Err     error
}

// HistoryReply answers GetHistory
type HistoryReply struct {
	Entries []domain.Transaction
	Err     error
}

// AccountsReply answers ListAccounts
type AccountsReply struct {
	Accounts []*domain.Account
}

// SummaryReply answers GetSummary
type SummaryReply struct {
	Summary ledger.Summary
}

// Ack answers commands that return nothing but an error
type Ack struct {
	Err error
}

// ReconcileReply answers Reconcile
type ReconcileReply struct {
	Report *ledger.ReconcileReport
	Err    error
}
