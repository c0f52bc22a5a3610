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

// Package credential stores and verifies account passwords.
//
// New credentials are salted bcrypt hashes. Snapshots written by older releases hold
// passwords under a reversible single-byte XOR transform; those are still verified and
// are upgraded to a hash by the ledger on the next successful login.
package credential

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// obfuscationKey is the fixed key of the legacy transform
const obfuscationKey byte = 'M'

// bcryptHashLen is the length of every encoded bcrypt hash
const bcryptHashLen = 60

// Obfuscate applies the legacy reversible transform.
// The transform is its own inverse.
func Obfuscate(password string) string {
	b := []byte(password)
	for i := range b {
		b[i] ^= obfuscationKey
	}
	return string(b)
}

// Deobfuscate recovers the password from its legacy stored form
func Deobfuscate(stored string) string {
	return Obfuscate(stored)
}

// VerifyLegacy checks a password against a legacy obfuscated credential
func VerifyLegacy(password, stored string) bool {
	return subtle.ConstantTimeCompare([]byte(Obfuscate(password)), []byte(stored)) == 1
}

// IsHashed reports whether stored is a bcrypt hash rather than a legacy credential
func IsHashed(stored string) bool {
	if len(stored) != bcryptHashLen {
		return false
	}
	return strings.HasPrefix(stored, "$2a$") ||
		strings.HasPrefix(stored, "$2b$") ||
		strings.HasPrefix(stored, "$2y$")
}

// Hasher derives and verifies stored credentials
type Hasher struct {
	cost int
}

// NewHasher creates an instance of Hasher. The cost is clamped to the bcrypt bounds.
func NewHasher(cost int) *Hasher {
	switch {
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the stored form of password
func (h *Hasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Verify re-derives password against the stored credential
func (h *Hasher) Verify(password, stored string) bool {
	if IsHashed(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return VerifyLegacy(password, stored)
}

// NeedsUpgrade reports whether stored should be replaced by a fresh hash
func (h *Hasher) NeedsUpgrade(stored string) bool {
	return !IsHashed(stored)
}
