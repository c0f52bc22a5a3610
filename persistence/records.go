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
	"bufio"
	"bytes"
	"encoding/binary"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tochemey/goakt-bank/domain"
)

const (
	nameSize       = 100
	credentialSize = 64
	typeSize       = 20
)

var (
	byteOrder = binary.LittleEndian

	errCorruptRecord = errors.New("corrupt record")
)

// accountRecord is the fixed-size on-disk layout of an account
type accountRecord struct {
	FullName      [nameSize]byte
	NameLen       uint8
	AccountNumber int64
	Credential    [credentialSize]byte
	CredentialLen uint8
	Balance       int64
	Active        uint8
	CreatedAt     int64
}

// transactionRecord is the fixed-size on-disk layout of a journal row
type transactionRecord struct {
	ID            [16]byte
	Reference     [16]byte
	AccountNumber int64
	Type          [typeSize]byte
	Amount        int64
	BalanceAfter  int64
	Timestamp     int64
	TargetAccount int64
}

func toAccountRecord(account *domain.Account) (accountRecord, error) {
	var rec accountRecord
	name := account.FullName()
	if len(name) == 0 || len(name) > nameSize {
		return rec, errors.Errorf("account %d: name length %d out of range", account.AccountNumber(), len(name))
	}
	credential := account.Credential()
	if len(credential) > credentialSize {
		return rec, errors.Errorf("account %d: credential length %d out of range", account.AccountNumber(), len(credential))
	}

	copy(rec.FullName[:], name)
	rec.NameLen = uint8(len(name))
	rec.AccountNumber = account.AccountNumber()
	copy(rec.Credential[:], credential)
	rec.CredentialLen = uint8(len(credential))
	balance, err := domain.ToCents(account.Balance())
	if err != nil {
		return rec, errors.Wrapf(err, "account %d: balance", account.AccountNumber())
	}
	rec.Balance = balance
	if account.IsActive() {
		rec.Active = 1
	}
	if !account.CreatedAt().IsZero() {
		rec.CreatedAt = account.CreatedAt().Unix()
	}
	return rec, nil
}

func (rec accountRecord) toAccount() (*domain.Account, error) {
	switch {
	case rec.NameLen == 0, int(rec.NameLen) > nameSize:
		return nil, errors.Wrap(errCorruptRecord, "invalid name length")
	case int(rec.CredentialLen) > credentialSize:
		return nil, errors.Wrap(errCorruptRecord, "invalid credential length")
	case rec.Active > 1:
		return nil, errors.Wrap(errCorruptRecord, "invalid active flag")
	case rec.AccountNumber <= 0:
		return nil, errors.Wrap(errCorruptRecord, "invalid account number")
	case rec.Balance < 0:
		return nil, errors.Wrap(errCorruptRecord, "negative balance")
	}

	var createdAt time.Time
	if rec.CreatedAt != 0 {
		createdAt = time.Unix(rec.CreatedAt, 0).UTC()
	}

	return domain.NewAccount(
		string(rec.FullName[:rec.NameLen]),
		rec.AccountNumber,
		string(rec.Credential[:rec.CredentialLen]),
		domain.FromCents(rec.Balance),
		rec.Active == 1,
		createdAt,
	), nil
}

func toTransactionRecord(tx domain.Transaction) (transactionRecord, error) {
	amount, err := domain.ToCents(tx.Amount)
	if err != nil {
		return transactionRecord{}, errors.Wrapf(err, "account %d: amount", tx.AccountNumber)
	}
	balanceAfter, err := domain.ToCents(tx.BalanceAfter)
	if err != nil {
		return transactionRecord{}, errors.Wrapf(err, "account %d: balance after", tx.AccountNumber)
	}
	rec := transactionRecord{
		ID:            [16]byte(tx.ID),
		Reference:     [16]byte(tx.Reference),
		AccountNumber: tx.AccountNumber,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Timestamp:     tx.Timestamp.UnixNano(),
		TargetAccount: tx.TargetAccount,
	}
	copy(rec.Type[:], tx.Type)
	return rec, nil
}

func (rec transactionRecord) toTransaction() (domain.Transaction, error) {
	typ := domain.TransactionType(bytes.TrimRight(rec.Type[:], "\x00"))
	if !typ.Valid() {
		return domain.Transaction{}, errors.Wrapf(errCorruptRecord, "unknown transaction type %q", string(typ))
	}
	return domain.Transaction{
		ID:            uuid.UUID(rec.ID),
		Reference:     uuid.UUID(rec.Reference),
		AccountNumber: rec.AccountNumber,
		Type:          typ,
		Amount:        domain.FromCents(rec.Amount),
		BalanceAfter:  domain.FromCents(rec.BalanceAfter),
		Timestamp:     time.Unix(0, rec.Timestamp),
		TargetAccount: rec.TargetAccount,
	}, nil
}

// writeSnapshot writes the account count followed by one record per account
func writeSnapshot(w io.Writer, accounts []*domain.Account) error {
	writer := bufio.NewWriter(w)
	if err := binary.Write(writer, byteOrder, uint32(len(accounts))); err != nil {
		return err
	}
	for _, account := range accounts {
		rec, err := toAccountRecord(account)
		if err != nil {
			return err
		}
		if err := binary.Write(writer, byteOrder, &rec); err != nil {
			return err
		}
	}
	return writer.Flush()
}

// readSnapshot decodes a snapshot. Truncated and structurally invalid records are
// skipped and counted rather than failing the whole read.
func readSnapshot(r io.Reader) (accounts []*domain.Account, skipped int, err error) {
	reader := bufio.NewReader(r)

	var count uint32
	if err := binary.Read(reader, byteOrder, &count); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, 0, nil
		}
		return nil, 0, err
	}

	accounts = make([]*domain.Account, 0, min(int(count), 16))
	for i := uint32(0); i < count; i++ {
		var rec accountRecord
		if err := binary.Read(reader, byteOrder, &rec); err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				skipped += int(count - i)
				break
			}
			return nil, 0, err
		}

		account, err := rec.toAccount()
		if err != nil {
			skipped++
			continue
		}
		accounts = append(accounts, account)
	}
	return accounts, skipped, nil
}
