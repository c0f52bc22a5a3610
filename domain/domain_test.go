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
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoney(t *testing.T) {
	t.Run("cents round trip", func(t *testing.T) {
		amount := decimal.RequireFromString("650.25")
		cents, err := ToCents(amount)
		require.NoError(t, err)
		require.EqualValues(t, 65025, cents)
		assert.True(t, FromCents(cents).Equal(amount))
	})
	t.Run("negative amounts", func(t *testing.T) {
		cents, err := ToCents(decimal.NewFromInt(-300))
		require.NoError(t, err)
		assert.EqualValues(t, -30000, cents)
		assert.Equal(t, "K -300.00", FormatAmount(FromCents(-30000)))
	})
	t.Run("cents range", func(t *testing.T) {
		cents, err := ToCents(MaximumAmount)
		require.NoError(t, err)
		assert.EqualValues(t, math.MaxInt64, cents)
		assert.Equal(t, "92233720368547758.07", MaximumAmount.String())

		_, err = ToCents(MaximumAmount.Add(decimal.RequireFromString("0.01")))
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
		_, err = ToCents(decimal.RequireFromString("1e17"))
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
		_, err = ToCents(decimal.RequireFromString("-1e17"))
		assert.ErrorIs(t, err, ErrAmountOutOfRange)
	})
	t.Run("format", func(t *testing.T) {
		assert.Equal(t, "K 100.00", FormatAmount(decimal.NewFromInt(100)))
		assert.Equal(t, "K 0.01", FormatAmount(decimal.RequireFromString("0.01")))
	})
	t.Run("cent precision", func(t *testing.T) {
		assert.True(t, HasCentPrecision(decimal.RequireFromString("10.5")))
		assert.True(t, HasCentPrecision(decimal.RequireFromString("10.55")))
		assert.False(t, HasCentPrecision(decimal.RequireFromString("10.555")))
	})
}

func TestAccount(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	account := NewAccount("Jane Doe", 33123456, "secret", decimal.NewFromInt(500), true, created)

	clone := account.Clone()
	clone.SetBalance(decimal.NewFromInt(1))
	clone.SetCredential("other")
	clone.SetActive(false)

	assert.True(t, account.Balance().Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "secret", account.Credential())
	assert.True(t, account.IsActive())
	assert.Equal(t, "Jane Doe", account.FullName())
	assert.EqualValues(t, 33123456, account.AccountNumber())
	assert.Equal(t, created, account.CreatedAt())
	assert.False(t, clone.IsActive())
}

func TestTransactionType(t *testing.T) {
	for _, typ := range []TransactionType{Opening, Deposit, Withdrawal, Transfer} {
		assert.True(t, typ.Valid(), typ)
	}
	assert.False(t, TransactionType("REFUND").Valid())
	assert.True(t, Transaction{Amount: decimal.NewFromInt(-1)}.IsDebit())
	assert.False(t, Transaction{Amount: decimal.NewFromInt(1)}.IsDebit())
}
