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
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v4/log"
	"go.uber.org/atomic"

	"github.com/tochemey/goakt-bank/domain"
)

// FileAccountStore keeps every account in memory and persists the whole
// collection as a single binary snapshot file. It is not safe for concurrent
// use: the ledger entity is its only caller.
type FileAccountStore struct {
	path     string
	logger   log.Logger
	accounts []*domain.Account
	index    map[int64]int
	loaded   *atomic.Bool
	dirty    *atomic.Bool
}

// enforce compilation error
var _ AccountStore = (*FileAccountStore)(nil)

// NewFileAccountStore creates an instance of FileAccountStore backed by path
func NewFileAccountStore(path string, logger log.Logger) *FileAccountStore {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &FileAccountStore{
		path:   path,
		logger: logger,
		index:  make(map[int64]int),
		loaded: atomic.NewBool(false),
		dirty:  atomic.NewBool(false),
	}
}

// ID returns the extension id
func (x *FileAccountStore) ID() string {
	return AccountStoreID
}

// Path returns the snapshot location
func (x *FileAccountStore) Path() string {
	return x.path
}

// Load reads the snapshot into memory
func (x *FileAccountStore) Load(context.Context) error {
	file, err := os.Open(x.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			x.logger.Infof("no snapshot at %s, starting with an empty account store", x.path)
			x.reset(nil)
			return nil
		}
		return errors.Wrapf(err, "failed to open snapshot %s", x.path)
	}
	defer file.Close()

	accounts, skipped, err := readSnapshot(file)
	if err != nil {
		return errors.Wrapf(err, "failed to read snapshot %s", x.path)
	}
	if skipped > 0 {
		x.logger.Warnf("skipped %d unreadable account record(s) in %s", skipped, x.path)
	}

	x.reset(accounts)
	x.logger.Infof("loaded %d account(s) from %s", len(x.accounts), x.path)
	return nil
}

// Save atomically replaces the snapshot with the in-memory collection.
// A failed save leaves the previous snapshot intact.
func (x *FileAccountStore) Save(context.Context) error {
	tmp, err := os.CreateTemp(filepath.Dir(x.path), filepath.Base(x.path)+".*.tmp")
	if err != nil {
		return errors.Wrap(err, "failed to create snapshot file")
	}

	tmpName := tmp.Name()
	cleanup := func(cause error, msg string) error {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return errors.Wrap(cause, msg)
	}

	if err := writeSnapshot(tmp, x.accounts); err != nil {
		return cleanup(err, "failed to write snapshot")
	}
	if err := tmp.Sync(); err != nil {
		return cleanup(err, "failed to sync snapshot")
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrap(err, "failed to close snapshot")
	}
	if err := os.Rename(tmpName, x.path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to replace snapshot %s", x.path)
	}
	x.dirty.Store(false)
	return nil
}

// MarkDirty flags the collection as changed since the last Save
func (x *FileAccountStore) MarkDirty() {
	x.dirty.Store(true)
}

// Dirty reports whether the collection holds changes the snapshot does not
func (x *FileAccountStore) Dirty() bool {
	return x.dirty.Load()
}

// Add appends a new account to the collection
func (x *FileAccountStore) Add(account *domain.Account) error {
	if account == nil {
		return errors.New("account is nil")
	}
	if _, ok := x.index[account.AccountNumber()]; ok {
		return errors.Wrapf(ErrDuplicateAccount, "account %d", account.AccountNumber())
	}
	x.accounts = append(x.accounts, account)
	x.index[account.AccountNumber()] = len(x.accounts) - 1
	x.loaded.Store(true)
	x.dirty.Store(true)
	return nil
}

// Discard removes the account with the given number
func (x *FileAccountStore) Discard(accountNumber int64) bool {
	pos, ok := x.index[accountNumber]
	if !ok {
		return false
	}
	x.accounts = append(x.accounts[:pos], x.accounts[pos+1:]...)
	x.reindex()
	x.dirty.Store(true)
	return true
}

// FindByNumber returns the live account record, the first one when the
// snapshot carried duplicates
func (x *FileAccountStore) FindByNumber(accountNumber int64) (*domain.Account, bool) {
	pos, ok := x.index[accountNumber]
	if !ok {
		return nil, false
	}
	return x.accounts[pos], true
}

// Accounts returns the live account records in insertion order
func (x *FileAccountStore) Accounts() []*domain.Account {
	out := make([]*domain.Account, len(x.accounts))
	copy(out, x.accounts)
	return out
}

// Len returns the number of accounts, duplicates included
func (x *FileAccountStore) Len() int {
	return len(x.accounts)
}

// Loaded reports whether Load has completed at least once
func (x *FileAccountStore) Loaded() bool {
	return x.loaded.Load()
}

func (x *FileAccountStore) reset(accounts []*domain.Account) {
	x.accounts = accounts
	if duplicates := x.reindex(); duplicates > 0 {
		x.logger.Warnf("snapshot %s holds %d duplicate account number(s), the first occurrence wins", x.path, duplicates)
	}
	x.loaded.Store(true)
	x.dirty.Store(false)
}

func (x *FileAccountStore) reindex() (duplicates int) {
	x.index = make(map[int64]int, len(x.accounts))
	for pos, account := range x.accounts {
		if _, ok := x.index[account.AccountNumber()]; ok {
			duplicates++
			continue
		}
		x.index[account.AccountNumber()] = pos
	}
	return duplicates
}
