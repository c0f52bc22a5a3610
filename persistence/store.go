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

package persistence

import (
	"context"
	"iter"

	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v4/extension"

	"github.com/tochemey/goakt-bank/domain"
)

const (
	// AccountStoreID identifies the account store extension in the actor system
	AccountStoreID = "AccountStore"
	// JournalID identifies the transaction journal extension in the actor system
	JournalID = "TransactionJournal"
)

var (
	// ErrDuplicateAccount is returned when adding an account whose number is already taken
	ErrDuplicateAccount = errors.New("account number already exists")
	// ErrJournalNotStarted is returned when appending to a journal that has not been started
	ErrJournalNotStarted = errors.New("journal is not started")
)

// AccountStore holds the account collection for the process lifetime.
// It is the single source of truth for balances during a session and
// owns loading and saving the persisted snapshot.
type AccountStore interface {
	extension.Extension
	// Load replaces the in-memory collection with the persisted snapshot.
	// A missing snapshot yields an empty store.
	Load(ctx context.Context) error
	// Save writes the whole collection as one snapshot
	Save(ctx context.Context) error
	// MarkDirty records an in-memory change that Save has not written yet
	MarkDirty()
	// Dirty reports whether the collection changed since the last Load or Save
	Dirty() bool
	// Add appends a new account
	Add(account *domain.Account) error
	// Discard removes an account that was added but never saved
	Discard(accountNumber int64) bool
	// FindByNumber returns the first account with the given number
	FindByNumber(accountNumber int64) (*domain.Account, bool)
	// Accounts returns every account in insertion order
	Accounts() []*domain.Account
	// Len returns the number of accounts
	Len() int
}

// Journal is the append-only durable log of every balance-changing event
type Journal interface {
	extension.Extension
	Start(ctx context.Context) error
	// Append writes the entries of one ledger operation to the end of the log
	Append(ctx context.Context, entries ...domain.Transaction) error
	// Scan yields every journal row in write order
	Scan(ctx context.Context) iter.Seq2[domain.Transaction, error]
	// QueryByAccount yields the rows owned by accountNumber in write order.
	// Every range over the returned sequence rescans the log.
	QueryByAccount(ctx context.Context, accountNumber int64) iter.Seq2[domain.Transaction, error]
	Stop(ctx context.Context) error
}

// filterByAccount narrows a journal scan down to a single account
func filterByAccount(rows iter.Seq2[domain.Transaction, error], accountNumber int64) iter.Seq2[domain.Transaction, error] {
	return func(yield func(domain.Transaction, error) bool) {
		for tx, err := range rows {
			if err != nil {
				yield(tx, err)
				return
			}
			if tx.AccountNumber != accountNumber {
				continue
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}
