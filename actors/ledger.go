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

package actors

import (
	"fmt"

	"github.com/tochemey/goakt/v4/actor"

	"github.com/tochemey/goakt-bank/ledger"
	"github.com/tochemey/goakt-bank/messages"
	"github.com/tochemey/goakt-bank/persistence"
)

// LedgerEntity owns the ledger and handles its commands one at a time,
// which makes it the single writer of the account store and the journal.
// Business failures travel back inside the replies so they never trigger supervision.
type LedgerEntity struct {
	ledger *ledger.Ledger
	store  persistence.AccountStore
	opts   []ledger.Option
}

var _ actor.Actor = (*LedgerEntity)(nil)

// NewLedgerEntity creates an instance of LedgerEntity
func NewLedgerEntity(opts ...ledger.Option) *LedgerEntity {
	return &LedgerEntity{opts: opts}
}

// PreStart loads the account snapshot
func (x *LedgerEntity) PreStart(ctx *actor.Context) error {
	store, ok := ctx.Extension(persistence.AccountStoreID).(persistence.AccountStore)
	if !ok {
		return fmt.Errorf("extension %s is not registered", persistence.AccountStoreID)
	}
	journal, ok := ctx.Extension(persistence.JournalID).(persistence.Journal)
	if !ok {
		return fmt.Errorf("extension %s is not registered", persistence.JournalID)
	}

	if err := store.Load(ctx.Context()); err != nil {
		return fmt.Errorf("failed to load the account store: %w", err)
	}

	x.store = store
	x.ledger = ledger.New(store, journal, x.opts...)
	return nil
}

// Receive handles the messages sent to the actor
func (x *LedgerEntity) Receive(ctx *actor.ReceiveContext) {
	switch msg := ctx.Message().(type) {
	case *actor.PostStart:
		ctx.Logger().Infof("ledger started with %d account(s)", x.store.Len())

	case *messages.OpenAccount:
		receipt, err := x.ledger.OpenAccount(ctx.Context(), ledger.Registration{
			FullName:       msg.FullName,
			Password:       msg.Password,
			Confirm:        msg.Confirm,
			InitialDeposit: msg.InitialDeposit,
		})
		ctx.Response(&messages.ReceiptReply{Receipt: receipt, Err: err})

	case *messages.Deposit:
		receipt, err := x.ledger.Deposit(ctx.Context(), msg.AccountNumber, msg.Amount)
		ctx.Response(&messages.ReceiptReply{Receipt: receipt, Err: err})

	case *messages.Withdraw:
		receipt, err := x.ledger.Withdraw(ctx.Context(), msg.AccountNumber, msg.Amount)
		ctx.Response(&messages.ReceiptReply{Receipt: receipt, Err: err})

	case *messages.Transfer:
		receipt, err := x.ledger.Transfer(ctx.Context(), msg.From, msg.To, msg.Amount)
		ctx.Response(&messages.ReceiptReply{Receipt: receipt, Err: err})

	case *messages.ChangePassword:
		err := x.ledger.ChangePassword(ctx.Context(), msg.AccountNumber, msg.Current, msg.Password, msg.Confirm)
		ctx.Response(&messages.Ack{Err: err})

	case *messages.Login:
		account, err := x.ledger.Login(ctx.Context(), msg.AccountNumber, msg.Password)
		ctx.Response(&messages.AccountReply{Account: account, Err: err})

	case *messages.GetAccount:
		account, err := x.ledger.Account(msg.AccountNumber)
		ctx.Response(&messages.AccountReply{Account: account, Err: err})

	case *messages.GetHistory:
		entries, err := x.ledger.History(ctx.Context(), msg.AccountNumber)
		ctx.Response(&messages.HistoryReply{Entries: entries, Err: err})

	case *messages.ListAccounts:
		ctx.Response(&messages.AccountsReply{Accounts: x.ledger.Accounts()})

	case *messages.GetSummary:
		ctx.Response(&messages.SummaryReply{Summary: x.ledger.Summary()})

	case *messages.SearchAccount:
		account, err := x.ledger.Search(msg.AccountNumber)
		ctx.Response(&messages.AccountReply{Account: account, Err: err})

	case *messages.Reconcile:
		report, err := x.ledger.Reconcile(ctx.Context())
		ctx.Response(&messages.ReconcileReply{Report: report, Err: err})

	default:
		ctx.Unhandled()
	}
}

// PostStop writes the final snapshot when changes are still unsaved.
// Every mutation saves as it commits, so a clean store is left untouched on disk.
func (x *LedgerEntity) PostStop(ctx *actor.Context) error {
	if x.store == nil || !x.store.Dirty() {
		return nil
	}
	return x.store.Save(ctx.Context())
}
