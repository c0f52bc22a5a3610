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
	"iter"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/domain"
)

const journalTable = "journal_entries"

const createJournalTable = `CREATE TABLE IF NOT EXISTS journal_entries (
	seq            BIGSERIAL PRIMARY KEY,
	id             UUID NOT NULL,
	reference      UUID NOT NULL,
	account_number BIGINT NOT NULL,
	type           TEXT NOT NULL,
	amount         BIGINT NOT NULL,
	balance_after  BIGINT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	target_account BIGINT NOT NULL
)`

const createJournalIndex = `CREATE INDEX IF NOT EXISTS journal_entries_account_idx
	ON journal_entries (account_number, seq)`

var journalColumns = []string{
	"id",
	"reference",
	"account_number",
	"type",
	"amount",
	"balance_after",
	"created_at",
	"target_account",
}

// PostgresJournal keeps the transaction journal in a Postgres table.
// Amounts are stored in cents.
type PostgresJournal struct {
	dsn    string
	pool   *pgxpool.Pool
	sb     sq.StatementBuilderType
	logger log.Logger
	clock  func() time.Time
}

// enforce compilation error
var _ Journal = (*PostgresJournal)(nil)

// NewPostgresJournal creates an instance of PostgresJournal for the given connection string
func NewPostgresJournal(dsn string, logger log.Logger) *PostgresJournal {
	if logger == nil {
		logger = log.DiscardLogger
	}
	return &PostgresJournal{
		dsn:    dsn,
		sb:     sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		logger: logger,
		clock:  time.Now,
	}
}

// ID returns the extension id
func (x *PostgresJournal) ID() string {
	return JournalID
}

// Start connects to the database and creates the journal table when missing
func (x *PostgresJournal) Start(ctx context.Context) error {
	config, err := pgxpool.ParseConfig(x.dsn)
	if err != nil {
		return errors.Wrap(err, "failed to parse connection string")
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return errors.Wrap(err, "failed to create the connection pool")
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return errors.Wrap(err, "failed to ping the database connection")
	}

	for _, ddl := range []string{createJournalTable, createJournalIndex} {
		if _, err := pool.Exec(ctx, ddl); err != nil {
			pool.Close()
			return errors.Wrap(err, "failed to create the journal table")
		}
	}

	x.pool = pool
	x.logger.Infof("journal connected to postgres table %s", journalTable)
	return nil
}

// Stop closes the connection pool
func (x *PostgresJournal) Stop(context.Context) error {
	if x.pool == nil {
		return nil
	}
	x.pool.Close()
	x.pool = nil
	return nil
}

// Append inserts the entries with a single multi-row statement
func (x *PostgresJournal) Append(ctx context.Context, entries ...domain.Transaction) error {
	if x.pool == nil {
		return ErrJournalNotStarted
	}
	if len(entries) == 0 {
		return nil
	}

	query, args, err := x.insertStatement(entries)
	if err != nil {
		return errors.Wrap(err, "failed to build journal insert")
	}

	if _, err := x.pool.Exec(ctx, query, args...); err != nil {
		return errors.Wrap(err, "failed to append to journal")
	}
	return nil
}

// Scan yields every row in insertion order
func (x *PostgresJournal) Scan(ctx context.Context) iter.Seq2[domain.Transaction, error] {
	return x.query(ctx, x.selectStatement(nil))
}

// QueryByAccount yields the rows owned by accountNumber in insertion order
func (x *PostgresJournal) QueryByAccount(ctx context.Context, accountNumber int64) iter.Seq2[domain.Transaction, error] {
	return x.query(ctx, x.selectStatement(&accountNumber))
}

func (x *PostgresJournal) query(ctx context.Context, statement sq.SelectBuilder) iter.Seq2[domain.Transaction, error] {
	return func(yield func(domain.Transaction, error) bool) {
		if x.pool == nil {
			yield(domain.Transaction{}, ErrJournalNotStarted)
			return
		}

		query, args, err := statement.ToSql()
		if err != nil {
			yield(domain.Transaction{}, errors.Wrap(err, "failed to build journal query"))
			return
		}

		rows, err := x.pool.Query(ctx, query, args...)
		if err != nil {
			yield(domain.Transaction{}, errors.Wrap(err, "failed to query journal"))
			return
		}
		defer rows.Close()

		for rows.Next() {
			var (
				id, reference                               uuid.UUID
				typ                                         string
				accountNumber, amount, balanceAfter, target int64
				createdAt                                   time.Time
			)
			if err := rows.Scan(&id, &reference, &accountNumber, &typ, &amount, &balanceAfter, &createdAt, &target); err != nil {
				yield(domain.Transaction{}, errors.Wrap(err, "failed to scan journal row"))
				return
			}

			tx := domain.Transaction{
				ID:            id,
				Reference:     reference,
				AccountNumber: accountNumber,
				Type:          domain.TransactionType(typ),
				Amount:        domain.FromCents(amount),
				BalanceAfter:  domain.FromCents(balanceAfter),
				Timestamp:     createdAt,
				TargetAccount: target,
			}
			if !tx.Type.Valid() {
				x.logger.Warnf("skipping journal row %s with unknown type %q", id, typ)
				continue
			}
			if !yield(tx, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(domain.Transaction{}, errors.Wrap(err, "failed to read journal rows"))
		}
	}
}

func (x *PostgresJournal) insertStatement(entries []domain.Transaction) (string, []any, error) {
	statement := x.sb.Insert(journalTable).Columns(journalColumns...)
	for _, entry := range entries {
		if entry.ID == uuid.Nil {
			entry.ID = uuid.New()
		}
		if entry.Reference == uuid.Nil {
			entry.Reference = entry.ID
		}
		if entry.Timestamp.IsZero() {
			entry.Timestamp = x.clock()
		}
		amount, err := domain.ToCents(entry.Amount)
		if err != nil {
			return "", nil, err
		}
		balanceAfter, err := domain.ToCents(entry.BalanceAfter)
		if err != nil {
			return "", nil, err
		}
		statement = statement.Values(
			entry.ID,
			entry.Reference,
			entry.AccountNumber,
			string(entry.Type),
			amount,
			balanceAfter,
			entry.Timestamp,
			entry.TargetAccount,
		)
	}
	return statement.ToSql()
}

func (x *PostgresJournal) selectStatement(accountNumber *int64) sq.SelectBuilder {
	statement := x.sb.
		Select(journalColumns...).
		From(journalTable).
		OrderBy("seq")
	if accountNumber != nil {
		statement = statement.Where(sq.Eq{"account_number": *accountNumber})
	}
	return statement
}
