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
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/domain"
)

func newAccount(name string, number int64, balance string, active bool) *domain.Account {
	return domain.NewAccount(name, number, credential.Obfuscate("Secret1"), decimal.RequireFromString(balance), active, time.Unix(1700000000, 0).UTC())
}

func TestFileAccountStore(t *testing.T) {
	t.Run("missing snapshot loads as empty", func(t *testing.T) {
		ctx := context.TODO()
		store := NewFileAccountStore(filepath.Join(t.TempDir(), "bank.dat"), nil)

		require.NoError(t, store.Load(ctx))
		assert.True(t, store.Loaded())
		assert.Zero(t, store.Len())
		assert.Empty(t, store.Accounts())
		assert.Equal(t, AccountStoreID, store.ID())
	})
	t.Run("save and load round trip", func(t *testing.T) {
		ctx := context.TODO()
		path := filepath.Join(t.TempDir(), "bank.dat")
		store := NewFileAccountStore(path, nil)
		require.NoError(t, store.Load(ctx))

		alice := newAccount("Alice Banda", 33000001, "650.00", true)
		// obfuscating 'M' yields a NUL byte in the stored credential
		bob := domain.NewAccount("Bob M. Phiri", 33000002, credential.Obfuscate("MMMMMm1"), decimal.RequireFromString("0.01"), false, time.Time{})
		require.NoError(t, store.Add(alice))
		require.NoError(t, store.Add(bob))
		require.NoError(t, store.Save(ctx))

		reloaded := NewFileAccountStore(path, nil)
		require.NoError(t, reloaded.Load(ctx))
		require.Equal(t, 2, reloaded.Len())

		accounts := reloaded.Accounts()
		assert.Equal(t, "Alice Banda", accounts[0].FullName())
		assert.EqualValues(t, 33000001, accounts[0].AccountNumber())
		assert.True(t, accounts[0].Balance().Equal(decimal.RequireFromString("650")))
		assert.True(t, accounts[0].IsActive())
		assert.Equal(t, alice.CreatedAt(), accounts[0].CreatedAt())
		assert.Equal(t, alice.Credential(), accounts[0].Credential())

		assert.Equal(t, bob.Credential(), accounts[1].Credential())
		assert.False(t, accounts[1].IsActive())
		assert.True(t, accounts[1].CreatedAt().IsZero())
		assert.Equal(t, "0.01", accounts[1].Balance().StringFixed(2))

		found, ok := reloaded.FindByNumber(33000002)
		require.True(t, ok)
		assert.Equal(t, "Bob M. Phiri", found.FullName())
	})
	t.Run("save leaves no temporary files behind", func(t *testing.T) {
		ctx := context.TODO()
		dir := t.TempDir()
		store := NewFileAccountStore(filepath.Join(dir, "bank.dat"), nil)
		require.NoError(t, store.Add(newAccount("Alice Banda", 33000001, "100", true)))
		require.NoError(t, store.Save(ctx))
		require.NoError(t, store.Save(ctx))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "bank.dat", entries[0].Name())
	})
	t.Run("save into a missing directory fails", func(t *testing.T) {
		ctx := context.TODO()
		store := NewFileAccountStore(filepath.Join(t.TempDir(), "missing", "bank.dat"), nil)
		require.NoError(t, store.Add(newAccount("Alice Banda", 33000001, "100", true)))
		assert.Error(t, store.Save(ctx))
	})
	t.Run("corrupt and truncated records are skipped", func(t *testing.T) {
		ctx := context.TODO()
		path := filepath.Join(t.TempDir(), "bank.dat")
		store := NewFileAccountStore(path, nil)
		require.NoError(t, store.Add(newAccount("Alice Banda", 33000001, "100", true)))
		require.NoError(t, store.Add(newAccount("Bob Phiri", 33000002, "200", true)))
		require.NoError(t, store.Add(newAccount("Chikondi Mwale", 33000003, "300", true)))
		require.NoError(t, store.Save(ctx))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		recordSize := len(raw[4:]) / 3
		// invalid active flag in the first record
		activeOffset := 4 + nameSize + 1 + 8 + credentialSize + 1 + 8
		raw[activeOffset] = 7
		// cut the last record in half
		raw = raw[:len(raw)-recordSize/2]
		require.NoError(t, os.WriteFile(path, raw, 0o600))

		reloaded := NewFileAccountStore(path, nil)
		require.NoError(t, reloaded.Load(ctx))
		require.Equal(t, 1, reloaded.Len())
		assert.Equal(t, "Bob Phiri", reloaded.Accounts()[0].FullName())
	})
	t.Run("duplicate numbers resolve to the first record", func(t *testing.T) {
		ctx := context.TODO()
		path := filepath.Join(t.TempDir(), "bank.dat")

		var buf bytes.Buffer
		require.NoError(t, writeSnapshot(&buf, []*domain.Account{
			newAccount("First Holder", 33000001, "100", true),
			newAccount("Second Holder", 33000001, "900", true),
		}))
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

		store := NewFileAccountStore(path, nil)
		require.NoError(t, store.Load(ctx))
		assert.Equal(t, 2, store.Len())

		found, ok := store.FindByNumber(33000001)
		require.True(t, ok)
		assert.Equal(t, "First Holder", found.FullName())
	})
	t.Run("add rejects duplicates and discard removes", func(t *testing.T) {
		store := NewFileAccountStore(filepath.Join(t.TempDir(), "bank.dat"), nil)
		require.NoError(t, store.Add(newAccount("Alice Banda", 33000001, "100", true)))
		require.NoError(t, store.Add(newAccount("Bob Phiri", 33000002, "100", true)))

		err := store.Add(newAccount("Alice Again", 33000001, "100", true))
		assert.True(t, errors.Is(err, ErrDuplicateAccount))

		assert.True(t, store.Discard(33000001))
		assert.False(t, store.Discard(33000001))
		_, ok := store.FindByNumber(33000001)
		assert.False(t, ok)

		found, ok := store.FindByNumber(33000002)
		require.True(t, ok)
		assert.Equal(t, "Bob Phiri", found.FullName())
	})
	t.Run("dirty tracks unsaved changes", func(t *testing.T) {
		ctx := context.TODO()
		store := NewFileAccountStore(filepath.Join(t.TempDir(), "bank.dat"), nil)
		require.NoError(t, store.Load(ctx))
		assert.False(t, store.Dirty())

		require.NoError(t, store.Add(newAccount("Alice Banda", 33000001, "500", true)))
		assert.True(t, store.Dirty())
		require.NoError(t, store.Save(ctx))
		assert.False(t, store.Dirty())

		store.MarkDirty()
		assert.True(t, store.Dirty())
		require.NoError(t, store.Load(ctx))
		assert.False(t, store.Dirty())

		assert.True(t, store.Discard(33000001))
		assert.True(t, store.Dirty())
	})
	t.Run("empty file loads as empty", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bank.dat")
		require.NoError(t, os.WriteFile(path, nil, 0o600))

		store := NewFileAccountStore(path, nil)
		require.NoError(t, store.Load(context.TODO()))
		assert.Zero(t, store.Len())
	})
}

func TestAccountRecord(t *testing.T) {
	t.Run("rejects oversized names", func(t *testing.T) {
		long := string(bytes.Repeat([]byte("a"), nameSize+1))
		_, err := toAccountRecord(newAccount(long, 33000001, "100", true))
		assert.Error(t, err)
	})
	t.Run("rejects balances beyond int64 cents", func(t *testing.T) {
		_, err := toAccountRecord(newAccount("Alice Banda", 33000001, "100000000000000000", true))
		assert.ErrorIs(t, err, domain.ErrAmountOutOfRange)

		rec, err := toAccountRecord(newAccount("Alice Banda", 33000001, domain.MaximumAmount.String(), true))
		require.NoError(t, err)
		account, err := rec.toAccount()
		require.NoError(t, err)
		assert.True(t, account.Balance().Equal(domain.MaximumAmount))
	})
	t.Run("record size is fixed", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, writeSnapshot(&buf, []*domain.Account{newAccount("Alice Banda", 33000001, "100", true)}))
		assert.Equal(t, 4+191, buf.Len())
	})
}
