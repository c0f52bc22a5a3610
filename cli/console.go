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

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/auth"
	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/ledger"
)

// ErrEndOfInput is returned by the prompts once the input stream is closed
var ErrEndOfInput = errors.New("end of input")

const clearSequence = "\033[H\033[2J"

// Bank is the ledger as the console sees it
type Bank interface {
	OpenAccount(ctx context.Context, registration ledger.Registration) (*ledger.Receipt, error)
	Deposit(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*ledger.Receipt, error)
	Withdraw(ctx context.Context, accountNumber int64, amount decimal.Decimal) (*ledger.Receipt, error)
	Transfer(ctx context.Context, from, to int64, amount decimal.Decimal) (*ledger.Receipt, error)
	ChangePassword(ctx context.Context, accountNumber int64, current, password, confirm string) error
	Login(ctx context.Context, accountNumber int64, password string) (*domain.Account, error)
	Account(ctx context.Context, accountNumber int64) (*domain.Account, error)
	History(ctx context.Context, accountNumber int64) ([]domain.Transaction, error)
	Accounts(ctx context.Context) ([]*domain.Account, error)
	Summary(ctx context.Context) (ledger.Summary, error)
	Search(ctx context.Context, accountNumber int64) (*domain.Account, error)
}

// PasswordReader reads a secret after showing prompt
type PasswordReader func(prompt string) (string, error)

// Console drives the interactive menus on top of a Bank
type Console struct {
	bank        Bank
	in          *bufio.Reader
	out         io.Writer
	session     auth.Session
	adminSecret string
	interactive bool
	passwords   PasswordReader
	logger      log.Logger
}

// Option configures the Console
type Option func(*Console)

// WithAdminSecret sets the shared secret of the admin panel
func WithAdminSecret(secret string) Option {
	return func(c *Console) {
		c.adminSecret = secret
	}
}

// WithInteractive enables screen clearing and "Press Enter" pauses
func WithInteractive(interactive bool) Option {
	return func(c *Console) {
		c.interactive = interactive
	}
}

// WithPasswordReader sets how secrets are read, e.g. without echo on a terminal
func WithPasswordReader(reader PasswordReader) Option {
	return func(c *Console) {
		c.passwords = reader
	}
}

// WithLogger sets the logger
func WithLogger(logger log.Logger) Option {
	return func(c *Console) {
		c.logger = logger
	}
}

// NewConsole creates an instance of Console
func NewConsole(bank Bank, in io.Reader, out io.Writer, opts ...Option) *Console {
	c := &Console{
		bank:        bank,
		in:          bufio.NewReader(in),
		out:         out,
		adminSecret: "admin123",
		logger:      log.DiscardLogger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run shows the main menu until the user exits or the input ends
func (c *Console) Run(ctx context.Context) error {
	for ctx.Err() == nil {
		c.clearScreen()
		c.println("=========================================")
		c.println("      WELCOME TO MISHTERIOUS BANK       ")
		c.println("         Banking Made Mysterious        ")
		c.println("=========================================")
		c.println("")
		c.println("1. Register New Account")
		c.println("2. Login to Existing Account")
		c.println("3. Admin Panel")
		c.println("4. Exit")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return c.finish(err)
		}

		switch choice {
		case "1":
			err = c.register(ctx)
		case "2":
			err = c.login(ctx)
		case "3":
			err = c.adminGate(ctx)
		case "4":
			c.println("Thank you for banking with MISHTERIOUS BANK!")
			c.println("Exiting...")
			return nil
		default:
			c.println("Invalid choice. Please try again.")
			err = c.pause()
		}
		if err != nil {
			return c.finish(err)
		}
	}
	return nil
}

func (c *Console) finish(err error) error {
	if errors.Is(err, ErrEndOfInput) {
		c.session.End()
		c.println("")
		c.println("Input closed. Goodbye!")
		return nil
	}
	return err
}

func (c *Console) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(c.out, format, args...)
}

func (c *Console) println(line string) {
	_, _ = fmt.Fprintln(c.out, line)
}

func (c *Console) title(title string) {
	c.clearScreen()
	c.printf("=== %s ===\n\n", title)
}

func (c *Console) clearScreen() {
	if c.interactive {
		c.printf(clearSequence)
	}
}

func (c *Console) pause() error {
	if !c.interactive {
		return nil
	}
	_, err := c.readLine("\nPress Enter to continue...")
	return err
}

// readLine prints prompt and returns the next input line without its line terminator
func (c *Console) readLine(prompt string) (string, error) {
	c.printf("%s", prompt)
	line, err := c.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) || line == "" {
			return "", ErrEndOfInput
		}
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// readPassword prefers the password reader, but lines already typed ahead into
// the input buffer are read from there so the input order is kept
func (c *Console) readPassword(prompt string) (string, error) {
	if c.passwords == nil || c.in.Buffered() > 0 {
		return c.readLine(prompt)
	}
	secret, err := c.passwords(prompt)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", ErrEndOfInput
		}
		return "", err
	}
	return secret, nil
}

// readAccountNumber returns false when the input is not a number
func (c *Console) readAccountNumber(prompt string) (int64, bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return 0, false, err
	}
	number, err := strconv.ParseInt(strings.TrimSpace(line), 10, 64)
	if err != nil {
		return 0, false, nil
	}
	return number, true, nil
}

// readAmount returns false when the input is not a number
func (c *Console) readAmount(prompt string) (decimal.Decimal, bool, error) {
	line, err := c.readLine(prompt)
	if err != nil {
		return decimal.Zero, false, err
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(line))
	if err != nil {
		return decimal.Zero, false, nil
	}
	return amount, true, nil
}

// describe turns a ledger error into the sentence shown to the user
func describe(err error) string {
	var validationErr *ledger.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return capitalize(validationErr.Message)
	case errors.Is(err, ledger.ErrInsufficientFunds),
		errors.Is(err, ledger.ErrSelfTransfer),
		errors.Is(err, ledger.ErrIncorrectPassword),
		errors.Is(err, auth.ErrInvalidCredentials):
		return capitalize(err.Error())
	case errors.Is(err, ledger.ErrAccountNotFound):
		return "Account not found or inactive"
	case errors.Is(err, ledger.ErrPersistence):
		return "Could not save account data, no changes were made"
	case errors.Is(err, ledger.ErrAccountNumbersExhausted):
		return "No account number is available, please try again later"
	default:
		return capitalize(err.Error())
	}
}

func capitalize(message string) string {
	if message == "" {
		return message
	}
	return strings.ToUpper(message[:1]) + message[1:]
}
