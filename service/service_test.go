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

package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	goakt "github.com/tochemey/goakt/v4/actor"
	"github.com/tochemey/goakt/v4/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tochemey/goakt-bank/auth"
	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/ledger"
	"github.com/tochemey/goakt-bank/persistence"
)

func TestBankService(t *testing.T) {
	ctx := context.TODO()
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "bank.dat")

	store := persistence.NewFileAccountStore(dataFile, log.DiscardLogger)
	journal := persistence.NewFileJournal(filepath.Join(dir, "journal.dat"), log.DiscardLogger)
	require.NoError(t, journal.Start(ctx))

	// create the actor system
	actorSystem, err := goakt.NewActorSystem("bank-test",
		goakt.WithLogger(log.DiscardLogger),
		goakt.WithExtensions(store, journal),
		goakt.WithActorInitMaxRetries(1))
	require.NoError(t, err)

	// start the actor system
	require.NoError(t, actorSystem.Start(ctx))

	bank := NewBankService(actorSystem, log.DiscardLogger)

	_, err = bank.Summary(ctx)
	require.ErrorIs(t, err, ErrNotStarted)

	require.NoError(t, bank.Start(ctx, ledger.WithHasher(credential.NewHasher(bcrypt.MinCost))))

	receipt, err := bank.OpenAccount(ctx, ledger.Registration{
		FullName:       "Alice Banda",
		Password:       "Secret1",
		Confirm:        "Secret1",
		InitialDeposit: decimal.NewFromInt(500),
	})
	require.NoError(t, err)
	a := receipt.Account.AccountNumber()

	receipt, err = bank.OpenAccount(ctx, ledger.Registration{
		FullName:       "Bob Phiri",
		Password:       "Secret1",
		Confirm:        "Secret1",
		InitialDeposit: decimal.NewFromInt(200),
	})
	require.NoError(t, err)
	b := receipt.Account.AccountNumber()

	_, err = bank.OpenAccount(ctx, ledger.Registration{FullName: "X", Password: "Secret1", Confirm: "Secret1", InitialDeposit: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, ledger.ErrValidation)

	account, err := bank.Login(ctx, a, "Secret1")
	require.NoError(t, err)
	assert.Equal(t, "Alice Banda", account.FullName())
	_, err = bank.Login(ctx, a, "Secret9")
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)

	receipt, err = bank.Deposit(ctx, a, decimal.NewFromInt(150))
	require.NoError(t, err)
	assert.Equal(t, "650.00", receipt.Account.Balance().StringFixed(2))

	receipt, err = bank.Transfer(ctx, a, b, decimal.NewFromInt(300))
	require.NoError(t, err)
	assert.Equal(t, "350.00", receipt.Account.Balance().StringFixed(2))
	assert.Equal(t, "500.00", receipt.Counterparty.Balance().StringFixed(2))

	_, err = bank.Withdraw(ctx, b, decimal.RequireFromString("500.01"))
	assert.ErrorIs(t, err, ledger.ErrInsufficientFunds)

	require.NoError(t, bank.ChangePassword(ctx, b, "Secret1", "Newpass9", "Newpass9"))

	history, err := bank.History(ctx, a)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, domain.Transfer, history[2].Type)

	accounts, err := bank.Accounts(ctx)
	require.NoError(t, err)
	assert.Len(t, accounts, 2)

	summary, err := bank.Summary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "850.00", summary.TotalBalance.StringFixed(2))
	assert.Equal(t, 2, summary.ActiveAccounts)

	found, err := bank.Search(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "Bob Phiri", found.FullName())

	current, err := bank.Account(ctx, b)
	require.NoError(t, err)
	assert.Equal(t, "500.00", current.Balance().StringFixed(2))

	report, err := bank.Reconcile(ctx)
	require.NoError(t, err)
	assert.True(t, report.Consistent())

	require.NoError(t, bank.Stop(ctx))
	require.NoError(t, actorSystem.Stop(ctx))
	require.NoError(t, journal.Stop(ctx))

	// the final snapshot holds every balance
	reloaded := persistence.NewFileAccountStore(dataFile, log.DiscardLogger)
	require.NoError(t, reloaded.Load(ctx))
	require.Equal(t, 2, reloaded.Len())
	alice, ok := reloaded.FindByNumber(a)
	require.True(t, ok)
	assert.Equal(t, "350.00", alice.Balance().StringFixed(2))
}
