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

package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/persistence"
)

func TestGate(t *testing.T) {
	hasher := credential.NewHasher(bcrypt.MinCost)
	hashed, err := hasher.Hash("Secret1")
	require.NoError(t, err)

	store := persistence.NewFileAccountStore(filepath.Join(t.TempDir(), "bank.dat"), nil)
	require.NoError(t, store.Add(domain.NewAccount("Alice Banda", 33000001, hashed, decimal.NewFromInt(500), true, time.Now())))
	require.NoError(t, store.Add(domain.NewAccount("Bob Phiri", 33000002, credential.Obfuscate("Legacy1"), decimal.NewFromInt(200), true, time.Now())))
	require.NoError(t, store.Add(domain.NewAccount("Closed Holder", 33000003, hashed, decimal.Zero, false, time.Now())))

	gate := NewGate(store, hasher)

	t.Run("hashed credential", func(t *testing.T) {
		account, err := gate.Login(33000001, "Secret1")
		require.NoError(t, err)
		assert.Equal(t, "Alice Banda", account.FullName())
	})
	t.Run("legacy credential", func(t *testing.T) {
		account, err := gate.Login(33000002, "Legacy1")
		require.NoError(t, err)
		assert.EqualValues(t, 33000002, account.AccountNumber())
	})
	t.Run("failures are indistinguishable", func(t *testing.T) {
		_, wrongPassword := gate.Login(33000001, "Secret2")
		_, unknown := gate.Login(33999999, "Secret1")
		_, closed := gate.Login(33000003, "Secret1")

		for _, err := range []error{wrongPassword, unknown, closed} {
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
			assert.Equal(t, "invalid account number or password", err.Error())
		}
	})
	t.Run("verify password", func(t *testing.T) {
		account, ok := store.FindByNumber(33000001)
		require.True(t, ok)
		assert.True(t, gate.VerifyPassword(account, "Secret1"))
		assert.False(t, gate.VerifyPassword(account, "secret1"))
		assert.False(t, gate.VerifyPassword(nil, "Secret1"))
	})
}

func TestSession(t *testing.T) {
	var session Session
	assert.False(t, session.IsAuthenticated())

	session.Begin(33000001)
	current, ok := session.Current()
	assert.True(t, ok)
	assert.EqualValues(t, 33000001, current)

	session.End()
	_, ok = session.Current()
	assert.False(t, ok)
	assert.False(t, session.IsAuthenticated())
}
