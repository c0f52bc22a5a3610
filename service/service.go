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

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	goakt "github.com/tochemey/goakt/v4/actor"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/actors"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/ledger"
	"github.com/tochemey/goakt-bank/messages"
)

const (
	askTimeout      = 5 * time.Second
	ledgerActorName = "Ledger"
)

// ErrNotStarted is returned when the service is used before Start
var ErrNotStarted = errors.New("bank service is not started")

// BankService exposes the ledger running inside the actor system
type BankService struct {
	actorSystem goakt.ActorSystem
	logger      log.Logger
	pid         *goakt.PID
}

// NewBankService creates an instance of BankService
func NewBankService(system goakt.ActorSystem, logger log.Logger) *BankService {
	return &BankService{
		actorSystem: system,
		logger:      logger,
	}
}

// Start spawns the ledger actor
func (s *BankService) Start(ctx context.Context, opts ...ledger.Option) error {
	pid, err := s.actorSystem.Spawn(ctx, ledgerActorName, actors.NewLedgerEntity(opts...), goakt.WithLongLived())
	if err != nil {
		return errors.Wrap(err, "failed to spawn the ledger actor")
	}
	s.pid = pid
	s.logger.Infof("ledger actor %s started", ledgerActorName)
	return nil
}

// Stop shuts the ledger actor down, which saves the snapshot
func (s *BankService) Stop(ctx context.Context) error {
	if s.pid == nil {
		return nil
	}
	pid := s.pid
	s.pid = nil
	return pid.Shutdown(ctx)
}

// OpenAccount registers an account
func (s *BankService) OpenAccount(ctx context.Context, registration ledger.Registration) (*ledger.Receipt, error) {
	reply, err := ask[*messages.ReceiptReply](ctx, s, &messages.OpenAccount{
		FullName:       registration.FullName,
		Password:       registration.Password,
		Confirm:        registration.Confirm,
		InitialDeposit: registration.InitialDeposit,
	})
	if err != nil {
		return nil, err
	}
	return reply.Receipt, reply.Err
}

// Deposit credits an account
func (s *BankService) Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*ledger.Receipt, error) {
	reply, err := ask[*messages.ReceiptReply](ctx, s, &messages.Deposit{AccountNumber: accountNumber, Amount: amount})
	if err != nil {
		return nil, err
	}
	return reply.Receipt, reply.Err
}

// Withdraw debits an account
func (s *BankService) Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*ledger.Receipt, error) {
	reply, err := ask[*messages.ReceiptReply](ctx, s, &messages.Withdraw{AccountNumber: accountNumber, Amount: amount})
	if err != nil {
		return nil, err
	}
	return reply.Receipt, reply.Err
}

// Transfer moves money between two accounts
func (s *BankService) Transfer(ctx context.Context, from, to int64, amount decimal.Decimal) (*ledger.Receipt, error) {
	reply, err := ask[*messages.ReceiptReply](ctx, s, &messages.Transfer{From: from, To: to, Amount: amount})
	if err != nil {
		return nil, err
	}
	return reply.Receipt, reply.Err
}

// ChangePassword replaces the credential of an account
func (s *BankService) ChangePassword(ctx context.Context, accountNumber int64, current, password, confirm string) error {
	reply, err := ask[*messages.Ack](ctx, s, &messages.ChangePassword{
		AccountNumber: accountNumber,
		Current:       current,
		Password:      password,
		Confirm:       confirm,
	})
	if err != nil {
		return err
	}
	return reply.Err
}

// Login authenticates an account
func (s *BankService) Login(ctx context.Context, accountNumber int64, password string) (*domain.Account, error) {
	reply, err := ask[*messages.AccountReply](ctx, s, &messages.Login{AccountNumber: accountNumber, Password: password})
	if err != nil {
		return nil, err
	}
	return reply.Account, reply.Err
}

// Account fetches an active account
func (s *BankService) Account(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	reply, err := ask[*messages.AccountReply](ctx, s, &messages.GetAccount{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}
	return reply.Account, reply.Err
}

// History fetches the journal rows of an account
func (s *BankService) History(ctx context.Context, accountNumber int64) ([]domain.Transaction, error) {
	reply, err := ask[*messages.HistoryReply](ctx, s, &messages.GetHistory{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}
	return reply.Entries, reply.Err
}

// Accounts fetches every active account
func (s *BankService) Accounts(ctx context.Context) ([]*domain.Account, error) {
	reply, err := ask[*messages.AccountsReply](ctx, s, new(messages.ListAccounts))
	if err != nil {
		return nil, err
	}
	return reply.Accounts, nil
}

// Summary fetches the bank totals
func (s *BankService) Summary(ctx context.Context) (ledger.Summary, error) {
	reply, err := ask[*messages.SummaryReply](ctx, s, new(messages.GetSummary))
	if err != nil {
		return ledger.Summary{}, err
	}
	return reply.Summary, nil
}

// Search fetches an account whatever its status
func (s *BankService) Search(ctx context.Context, accountNumber int64) (*domain.Account, error) {
	reply, err := ask[*messages.AccountReply](ctx, s, &messages.SearchAccount{AccountNumber: accountNumber})
	if err != nil {
		return nil, err
	}
	return reply.Account, reply.Err
}

// Reconcile checks the journal against the balances
func (s *BankService) Reconcile(ctx context.Context) (*ledger.ReconcileReport, error) {
	reply, err := ask[*messages.ReconcileReply](ctx, s, new(messages.Reconcile))
	if err != nil {
		return nil, err
	}
	return reply.Report, reply.Err
}

func ask[T any](ctx context.Context, s *BankService, message any) (T, error) {
	var zero T
	if s.pid == nil {
		return zero, ErrNotStarted
	}

	reply, err := goakt.Ask(ctx, s.pid, message, askTimeout)
	if err != nil {
		s.logger.Errorf("ledger did not answer %T: %v", message, err)
		return zero, errors.Wrapf(err, "ledger did not answer %T", message)
	}

	typed, ok := reply.(T)
	if !ok {
		return zero, fmt.Errorf("invalid reply type: %T", reply)
	}
	return typed, nil
}
