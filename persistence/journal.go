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
	"context"
	"encoding/binary"
	"io"
	"iter"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v4/log"
	"go.uber.org/atomic"

	"github.com/tochemey/goakt-bank/domain"
)

// FileJournal is an append-only binary journal. Each Append issues a
// single write on a file opened with O_APPEND followed by an fsync, so the
// legs of one operation land together or a torn tail is left behind.
type FileJournal struct {
	path    string
	logger  log.Logger
	clock   func() time.Time
	started *atomic.Bool
}

// enforce compilation error
var _ Journal = (*FileJournal)(nil)

// NewFileJournal creates an instance of FileJournal writing to path
func NewFileJournal(path string, logger log.Logger) *FileJournal {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &FileJournal{
		path:    path,
		logger:  logger,
		clock:   time.Now,
		started: atomic.NewBool(false),
	}
}

// ID returns the extension id
func (x *FileJournal) ID() string {
	return JournalID
}

// Path returns the journal location
func (x *FileJournal) Path() string {
	return x.path
}

// Start marks the journal ready for writes. The file itself is created on first append.
func (x *FileJournal) Start(context.Context) error {
	x.started.Store(true)
	return nil
}

// Stop prevents further writes
func (x *FileJournal) Stop(context.Context) error {
	x.started.Store(false)
	return nil
}

// Append writes the entries in one system call
func (x *FileJournal) Append(ctx context.Context, entries ...domain.Transaction) error {
	if !x.started.Load() {
		return ErrJournalNotStarted
	}
	if len(entries) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	buf := bytes.NewBuffer(make([]byte, 0, len(entries)*binary.Size(transactionRecord{})))
	for _, entry := range entries {
		rec, err := toTransactionRecord(x.complete(entry))
		if err != nil {
			return errors.Wrap(err, "failed to encode journal entry")
		}
		if err := binary.Write(buf, byteOrder, &rec); err != nil {
			return errors.Wrap(err, "failed to encode journal entry")
		}
	}

	file, err := os.OpenFile(x.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return errors.Wrapf(err, "failed to open journal %s", x.path)
	}
	if _, err := file.Write(buf.Bytes()); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to append to journal %s", x.path)
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		return errors.Wrapf(err, "failed to sync journal %s", x.path)
	}
	return errors.Wrapf(file.Close(), "failed to close journal %s", x.path)
}

// Scan yields every readable row. A trailing partial record is treated as
// the end of the log.
func (x *FileJournal) Scan(ctx context.Context) iter.Seq2[domain.Transaction, error] {
	return func(yield func(domain.Transaction, error) bool) {
		file, err := os.Open(x.path)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return
			}
			yield(domain.Transaction{}, errors.Wrapf(err, "failed to open journal %s", x.path))
			return
		}
		defer file.Close()

		reader := bufio.NewReader(file)
		for {
			if err := ctx.Err(); err != nil {
				yield(domain.Transaction{}, err)
				return
			}

			var rec transactionRecord
			if err := binary.Read(reader, byteOrder, &rec); err != nil {
				switch {
				case errors.Is(err, io.EOF):
				case errors.Is(err, io.ErrUnexpectedEOF):
					x.logger.Warnf("journal %s ends with a partial record, ignoring it", x.path)
				default:
					yield(domain.Transaction{}, errors.Wrapf(err, "failed to read journal %s", x.path))
				}
				return
			}

			tx, err := rec.toTransaction()
			if err != nil {
				x.logger.Warnf("skipping unreadable journal record in %s: %v", x.path, err)
				continue
			}
			if !yield(tx, nil) {
				return
			}
		}
	}
}

// QueryByAccount yields the rows owned by accountNumber
func (x *FileJournal) QueryByAccount(ctx context.Context, accountNumber int64) iter.Seq2[domain.Transaction, error] {
	return filterByAccount(x.Scan(ctx), accountNumber)
}

// complete fills in the identifiers and the timestamp when the caller left them empty
func (x *FileJournal) complete(entry domain.Transaction) domain.Transaction {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.Reference == uuid.Nil {
		entry.Reference = entry.ID
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = x.clock()
	}
	return entry
}
