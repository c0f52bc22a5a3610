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
	"context"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tochemey/goakt/v4/log"
	"golang.org/x/crypto/bcrypt"

	"github.com/tochemey/goakt-bank/auth"
	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/persistence"
)

const (
	accountNumberPrefix = 33_000_000
	accountNumberRange  = 1_000_000
	maxNumberAttempts   = 1000
)

// Registration carries the inputs of OpenAccount
type Registration struct {
	FullName       string
	Password       string
	Confirm        string
	InitialDeposit decimal.Decimal
}

// Receipt describes a committed balance change.
// Account and Counterparty are copies taken right after the change.
// Warning is set when the change is committed but its history rows are missing.
type Receipt struct {
	Account      *domain.Account
	Counterparty *domain.Account
	Entries      []domain.Transaction
	Warning      error
}

// Summary is the admin overview of the bank
type Summary struct {
	TotalBalance       decimal.Decimal
	ActiveAccounts     int
	RegisteredAccounts int
}

// Ledger applies balance-changing operations to the account store and records them
// in the journal. It is not safe for concurrent use; wrap it in the ledger actor
// when more than one goroutine needs it.
type Ledger struct {
	store   persistence.AccountStore
	journal persistence.Journal
	hasher  *credential.Hasher
	gate    *auth.Gate
	logger  log.Logger
	clock   func() time.Time
	numbers func() int64
	metrics *Metrics
}

// Option configures the Ledger
type Option func(*Ledger)

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(l *Ledger) {
		l.logger = logger
	}
}

// WithClock sets the time source used to stamp accounts and journal rows
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) {
		l.clock = clock
	}
}

// WithNumberGenerator sets the source of candidate account numbers
func WithNumberGenerator(generator func() int64) Option {
	return func(l *Ledger) {
		l.numbers = generator
	}
}

// WithHasher sets the credential hasher
func WithHasher(hasher *credential.Hasher) Option {
	return func(l *Ledger) {
		l.hasher = hasher
	}
}

// WithMetrics enables operation counters
func WithMetrics(metrics *Metrics) Option {
	return func(l *Ledger) {
		l.metrics = metrics
	}
}

// New creates an instance of Ledger
func New(store persistence.AccountStore, journal persistence.Journal, opts ...Option) *Ledger {
	l := &Ledger{
		store:   store,
		journal: journal,
		hasher:  credential.NewHasher(bcrypt.DefaultCost),
		logger:  log.DiscardLogger,
		clock:   time.Now,
		numbers: randomAccountNumber,
	}
	for _, opt := range opts {
		opt(l)
	}
	l.gate = auth.NewGate(store, l.hasher)
	return l
}

// OpenAccount registers a new active account funded with the initial deposit
func (l *Ledger) OpenAccount(ctx context.Context, registration Registration) (receipt *Receipt, err error) {
	defer l.track("open_account", time.Now(), &err)

	if err := ValidateName(registration.FullName); err != nil {
		return nil, err
	}
	if err := ValidatePassword(registration.Password); err != nil {
		return nil, err
	}
	if registration.Password != registration.Confirm {
		return nil, invalid("confirm", "passwords do not match")
	}
	if err := ValidateInitialDeposit(registration.InitialDeposit); err != nil {
		return nil, err
	}

	number, err := l.nextAccountNumber()
	if err != nil {
		return nil, err
	}

	hashed, err := l.hasher.Hash(registration.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	now := l.clock()
	account := domain.NewAccount(registration.FullName, number, hashed, registration.InitialDeposit, true, now)
	if err := l.store.Add(account); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	if err := l.persist(ctx, "open_account", func() { l.store.Discard(number) }); err != nil {
		return nil, err
	}

	entry := l.entry(account.AccountNumber(), domain.Opening, registration.InitialDeposit, account.Balance(), now)
	receipt = &Receipt{
		Account: account.Clone(),
		Entries: []domain.Transaction{entry},
	}
	receipt.Warning = l.record(ctx, "open_account", receipt.Entries...)

	l.logger.Infof("account=%d opened with %s", number, domain.FormatAmount(registration.InitialDeposit))
	return receipt, nil
}

// Deposit credits amount to an active account
func (l *Ledger) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (receipt *Receipt, err error) {
	defer l.track("deposit", time.Now(), &err)

	if err := ValidateAmount("deposit", amount); err != nil {
		return nil, err
	}

	account, err := l.activeAccount(accountNumber)
	if err != nil {
		return nil, err
	}

	previous := account.Balance()
	if err := validateCredit(previous, amount); err != nil {
		return nil, err
	}
	account.SetBalance(previous.Add(amount))
	if err := l.persist(ctx, "deposit", func() { account.SetBalance(previous) }); err != nil {
		return nil, err
	}

	entry := l.entry(accountNumber, domain.Deposit, amount, account.Balance(), l.clock())
	receipt = &Receipt{
		Account: account.Clone(),
		Entries: []domain.Transaction{entry},
	}
	receipt.Warning = l.record(ctx, "deposit", receipt.Entries...)

	l.logger.Infof("account=%d deposited %s", accountNumber, domain.FormatAmount(amount))
	return receipt, nil
}

// Withdraw debits amount from an active account. The balance never goes below zero.
func (l *Ledger) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (receipt *Receipt, err error) {
	defer l.track("withdraw", time.Now(), &err)

	if err := ValidateAmount("withdrawal", amount); err != nil {
		return nil, err
	}

	account, err := l.activeAccount(accountNumber)
	if err != nil {
		return nil, err
	}

	previous := account.Balance()
	if amount.GreaterThan(previous) {
		return nil, insufficientFunds(previous)
	}

	account.SetBalance(previous.Sub(amount))
	if err := l.persist(ctx, "withdraw", func() { account.SetBalance(previous) }); err != nil {
		return nil, err
	}

	entry := l.entry(accountNumber, domain.Withdrawal, amount.Neg(), account.Balance(), l.clock())
	receipt = &Receipt{
		Account: account.Clone(),
		Entries: []domain.Transaction{entry},
	}
	receipt.Warning = l.record(ctx, "withdraw", receipt.Entries...)

	l.logger.Infof("account=%d withdrew %s", accountNumber, domain.FormatAmount(amount))
	return receipt, nil
}

// Transfer moves amount from one active account to another. Both balances change
// under a single snapshot and both journal legs share one reference and timestamp.
func (l *Ledger) Transfer(ctx context.Context, from, to int64, amount decimal.Decimal) (receipt *Receipt, err error) {
	defer l.track("transfer", time.Now(), &err)

	sender, err := l.activeAccount(from)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, ErrSelfTransfer
	}
	recipient, err := l.activeAccount(to)
	if err != nil {
		return nil, fmt.Errorf("recipient %d: %w", to, err)
	}
	if err := ValidateAmount("transfer", amount); err != nil {
		return nil, err
	}

	senderBalance := sender.Balance()
	recipientBalance := recipient.Balance()
	if amount.GreaterThan(senderBalance) {
		return nil, insufficientFunds(senderBalance)
	}
	if err := validateCredit(recipientBalance, amount); err != nil {
		return nil, err
	}

	sender.SetBalance(senderBalance.Sub(amount))
	recipient.SetBalance(recipientBalance.Add(amount))
	rollback := func() {
		sender.SetBalance(senderBalance)
		recipient.SetBalance(recipientBalance)
	}
	if err := l.persist(ctx, "transfer", rollback); err != nil {
		return nil, err
	}

	now := l.clock()
	reference := uuid.New()
	debit := l.entry(from, domain.Transfer, amount.Neg(), sender.Balance(), now)
	debit.Reference = reference
	debit.TargetAccount = to
	credit := l.entry(to, domain.Transfer, amount, recipient.Balance(), now)
	credit.Reference = reference
	credit.TargetAccount = from

	receipt = &Receipt{
		Account:      sender.Clone(),
		Counterparty: recipient.Clone(),
		Entries:      []domain.Transaction{debit, credit},
	}
	receipt.Warning = l.record(ctx, "transfer", receipt.Entries...)

	l.logger.Infof("account=%d transferred %s to account=%d", from, domain.FormatAmount(amount), to)
	return receipt, nil
}

// ChangePassword replaces the credential of an active account. It writes no journal row.
func (l *Ledger) ChangePassword(ctx context.Context, accountNumber int64, current, password, confirm string) (err error) {
	defer l.track("change_password", time.Now(), &err)

	account, err := l.activeAccount(accountNumber)
	if err != nil {
		return err
	}
	if !l.gate.VerifyPassword(account, current) {
		return ErrIncorrectPassword
	}
	if err := ValidatePassword(password); err != nil {
		return err
	}
	if password != confirm {
		return invalid("confirm", "new passwords do not match")
	}

	hashed, err := l.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}

	previous := account.Credential()
	account.SetCredential(hashed)
	if err := l.persist(ctx, "change_password", func() { account.SetCredential(previous) }); err != nil {
		return err
	}

	l.logger.Infof("account=%d changed its password", accountNumber)
	return nil
}

// Login authenticates an active account and returns a copy of it.
// A legacy obfuscated credential is replaced by a hash on success.
func (l *Ledger) Login(ctx context.Context, accountNumber int64, password string) (account *domain.Account, err error) {
	defer l.track("login", time.Now(), &err)

	live, err := l.gate.Login(accountNumber, password)
	if err != nil {
		l.logger.Debugf("login rejected for account=%d", accountNumber)
		return nil, err
	}

	if l.hasher.NeedsUpgrade(live.Credential()) {
		l.upgradeCredential(ctx, live, password)
	}
	return live.Clone(), nil
}

// Account returns a copy of an active account
func (l *Ledger) Account(accountNumber int64) (*domain.Account, error) {
	account, err := l.activeAccount(accountNumber)
	if err != nil {
		return nil, err
	}
	return account.Clone(), nil
}

// History returns the journal rows of an account in write order
func (l *Ledger) History(ctx context.Context, accountNumber int64) ([]domain.Transaction, error) {
	var history []domain.Transaction
	for tx, err := range l.journal.QueryByAccount(ctx, accountNumber) {
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read history of account %d", accountNumber)
		}
		history = append(history, tx)
	}
	return history, nil
}

// Accounts returns copies of every active account in registration order
func (l *Ledger) Accounts() []*domain.Account {
	var accounts []*domain.Account
	for _, account := range l.store.Accounts() {
		if account.IsActive() {
			accounts = append(accounts, account.Clone())
		}
	}
	return accounts
}

// Summary totals the balances of active accounts
func (l *Ledger) Summary() Summary {
	summary := Summary{
		TotalBalance:       decimal.Zero,
		RegisteredAccounts: l.store.Len(),
	}
	for _, account := range l.store.Accounts() {
		if !account.IsActive() {
			continue
		}
		summary.TotalBalance = summary.TotalBalance.Add(account.Balance())
		summary.ActiveAccounts++
	}
	return summary
}

// Search returns a copy of the account with the given number whatever its status
func (l *Ledger) Search(accountNumber int64) (*domain.Account, error) {
	account, ok := l.store.FindByNumber(accountNumber)
	if !ok {
		return nil, ErrAccountNotFound
	}
	return account.Clone(), nil
}

func (l *Ledger) track(operation string, start time.Time, err *error) {
	l.metrics.observe(operation, start, *err)
}

func (l *Ledger) activeAccount(accountNumber int64) (*domain.Account, error) {
	account, ok := l.store.FindByNumber(accountNumber)
	if !ok || !account.IsActive() {
		return nil, ErrAccountNotFound
	}
	return account, nil
}

// persist saves the snapshot and undoes the in-memory change when the save fails
func (l *Ledger) persist(ctx context.Context, operation string, rollback func()) error {
	l.store.MarkDirty()
	if err := l.store.Save(ctx); err != nil {
		rollback()
		l.logger.Errorf("%s rolled back, snapshot not saved: %v", operation, err)
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return nil
}

// record appends the journal rows of a committed operation
func (l *Ledger) record(ctx context.Context, operation string, entries ...domain.Transaction) error {
	if err := l.journal.Append(ctx, entries...); err != nil {
		l.metrics.journalFailure()
		l.logger.Errorf("%s committed without history: %v", operation, err)
		return fmt.Errorf("%w: %w", ErrJournalWrite, err)
	}
	return nil
}

func (l *Ledger) entry(accountNumber int64, typ domain.TransactionType, amount, balanceAfter decimal.Decimal, at time.Time) domain.Transaction {
	id := uuid.New()
	return domain.Transaction{
		ID:            id,
		Reference:     id,
		AccountNumber: accountNumber,
		Type:          typ,
		Amount:        amount,
		BalanceAfter:  balanceAfter,
		Timestamp:     at,
	}
}

func (l *Ledger) nextAccountNumber() (int64, error) {
	for range maxNumberAttempts {
		candidate := l.numbers()
		if _, taken := l.store.FindByNumber(candidate); !taken {
			return candidate, nil
		}
	}
	return 0, ErrAccountNumbersExhausted
}

func (l *Ledger) upgradeCredential(ctx context.Context, account *domain.Account, password string) {
	hashed, err := l.hasher.Hash(password)
	if err != nil {
		l.logger.Warnf("account=%d credential not upgraded: %v", account.AccountNumber(), err)
		return
	}

	previous := account.Credential()
	account.SetCredential(hashed)
	if err := l.persist(ctx, "credential upgrade", func() { account.SetCredential(previous) }); err != nil {
		return
	}
	l.logger.Infof("account=%d credential upgraded to a salted hash", account.AccountNumber())
}

func insufficientFunds(available decimal.Decimal) error {
	return fmt.Errorf("%w, available balance: %s", ErrInsufficientFunds, domain.FormatAmount(available))
}

func randomAccountNumber() int64 {
	return accountNumberPrefix + rand.Int64N(accountNumberRange)
}
