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

package credential

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var passwords = []string{
	"Secret123",
	"MMMMMm1",
	"aB3456",
	"Passw0rd with spaces",
	"iNeedA$2bDollar9",
	"Zz9_______________________________________________",
}

func TestObfuscate(t *testing.T) {
	for _, password := range passwords {
		stored := Obfuscate(password)
		assert.NotEqual(t, password, stored)
		assert.Equal(t, password, Deobfuscate(stored))
		assert.Equal(t, password, Obfuscate(Obfuscate(password)))
		assert.Equal(t, stored, Obfuscate(password), "transform must be deterministic")
		assert.True(t, VerifyLegacy(password, stored))
		assert.False(t, VerifyLegacy(password+"x", stored))
		assert.False(t, IsHashed(stored))
	}
}

func TestHasher(t *testing.T) {
	hasher := NewHasher(bcrypt.MinCost)

	t.Run("hashed credentials", func(t *testing.T) {
		stored, err := hasher.Hash("Secret123")
		require.NoError(t, err)
		assert.True(t, IsHashed(stored))
		assert.False(t, hasher.NeedsUpgrade(stored))
		assert.True(t, hasher.Verify("Secret123", stored))
		assert.False(t, hasher.Verify("Secret124", stored))
		assert.False(t, hasher.Verify("", stored))
	})
	t.Run("hashes are salted", func(t *testing.T) {
		first, err := hasher.Hash("Secret123")
		require.NoError(t, err)
		second, err := hasher.Hash("Secret123")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})
	t.Run("legacy credentials", func(t *testing.T) {
		stored := Obfuscate("Secret123")
		assert.True(t, hasher.NeedsUpgrade(stored))
		assert.True(t, hasher.Verify("Secret123", stored))
		assert.False(t, hasher.Verify("secret123", stored))
	})
	t.Run("cost is clamped", func(t *testing.T) {
		assert.Equal(t, bcrypt.MinCost, NewHasher(0).cost)
		assert.Equal(t, bcrypt.MaxCost, NewHasher(99).cost)
	})
}
