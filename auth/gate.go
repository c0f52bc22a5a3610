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
	"github.com/pkg/errors"

	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/persistence"
)

// ErrInvalidCredentials is returned for every failed login. Unknown accounts,
// closed accounts and wrong passwords are not told apart.
var ErrInvalidCredentials = errors.New("invalid account number or password")

// Gate verifies an account number and password pair against the account store
type Gate struct {
	store  persistence.AccountStore
	hasher *credential.Hasher
}

// NewGate creates an instance of Gate
func NewGate(store persistence.AccountStore, hasher *credential.Hasher) *Gate {
	return &Gate{
		store:  store,
		hasher: hasher,
	}
}

// Login returns the live account record when the credentials match an active account
func (g *Gate) Login(accountNumber int64, password string) (*domain.Account, error) {
	account, ok := g.store.FindByNumber(accountNumber)
	if !ok || !account.IsActive() {
		return nil, ErrInvalidCredentials
	}
	if !g.hasher.Verify(password, account.Credential()) {
		return nil, ErrInvalidCredentials
	}
	return account, nil
}

// VerifyPassword checks password against the stored credential of account
func (g *Gate) VerifyPassword(account *domain.Account, password string) bool {
	if account == nil {
		return false
	}
	return g.hasher.Verify(password, account.Credential())
}
