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

package ledger

import (
	"github.com/pkg/errors"
)

var (
	// ErrValidation matches every ValidationError
	ErrValidation = errors.New("validation failed")
	// ErrAccountNotFound is returned when the account is unknown or inactive
	ErrAccountNotFound = errors.New("account not found or inactive")
	// ErrInsufficientFunds is returned when a debit exceeds the available balance
	ErrInsufficientFunds = errors.New("insufficient funds")
	// ErrSelfTransfer is returned when sender and recipient are the same account
	ErrSelfTransfer = errors.New("cannot transfer to your own account")
	// ErrPersistence is returned when the account snapshot cannot be written.
	// The in-memory change has been undone when this is returned.
	ErrPersistence = errors.New("failed to save account data")
	// ErrJournalWrite is reported as a receipt warning: the balance change is committed
	// but its history row could not be recorded
	ErrJournalWrite = errors.New("failed to record transaction history")
	// ErrIncorrectPassword is returned when a password change is attempted with a wrong current password
	ErrIncorrectPassword = errors.New("current password is incorrect")
	// ErrAccountNumbersExhausted is returned when no free account number could be generated
	ErrAccountNumbersExhausted = errors.New("no free account number available")
)

// ValidationError describes an input that fails policy. Field names the offending input.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements error
func (e *ValidationError) Error() string {
	return e.Message
}

// Is makes errors.Is(err, ErrValidation) hold for every ValidationError
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
