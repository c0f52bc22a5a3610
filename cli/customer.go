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
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/tochemey/goakt-bank/domain"
	"github.com/tochemey/goakt-bank/ledger"
)

const historyTimeLayout = time.ANSIC

func (c *Console) register(ctx context.Context) error {
	c.title("MISHTERIOUS BANK - ACCOUNT REGISTRATION")

	var registration ledger.Registration
	for {
		name, err := c.readLine("Enter Full Name: ")
		if err != nil {
			return err
		}
		if err := ledger.ValidateName(name); err != nil {
			c.printf("Error: %s\n", describe(err))
			continue
		}
		registration.FullName = name
		break
	}

	for {
		password, err := c.readPassword("Create Password (min 6 chars, mix of upper/lower/digits): ")
		if err != nil {
			return err
		}
		if err := ledger.ValidatePassword(password); err != nil {
			c.printf("Error: %s\n", describe(err))
			continue
		}
		confirm, err := c.readPassword("Confirm Password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			c.println("Error: Passwords do not match.")
			continue
		}
		registration.Password = password
		registration.Confirm = confirm
		break
	}

	for {
		deposit, ok, err := c.readAmount("Enter Initial Deposit (K): ")
		if err != nil {
			return err
		}
		if !ok {
			c.println("Error: Minimum initial deposit is " + domain.FormatAmount(domain.MinimumOpeningDeposit))
			continue
		}
		if err := ledger.ValidateInitialDeposit(deposit); err != nil {
			c.printf("Error: %s\n", describe(err))
			continue
		}
		registration.InitialDeposit = deposit
		break
	}

	receipt, err := c.bank.OpenAccount(ctx, registration)
	if err != nil {
		c.printf("\nError: %s\n", describe(err))
		return c.pause()
	}

	account := receipt.Account
	c.println("\n✅ ACCOUNT CREATED SUCCESSFULLY!")
	c.printf("Account Number: %d\n", account.AccountNumber())
	c.printf("Account Holder: %s\n", account.FullName())
	c.printf("Initial Balance: %s\n", domain.FormatAmount(account.Balance()))
	c.println("\nPlease save your account number for future login.")
	c.warn(receipt)
	return c.pause()
}

func (c *Console) login(ctx context.Context) error {
	c.title("MISHTERIOUS BANK - LOGIN")

	number, _, err := c.readAccountNumber("Enter Account Number: ")
	if err != nil {
		return err
	}
	password, err := c.readPassword("Enter Password: ")
	if err != nil {
		return err
	}

	account, err := c.bank.Login(ctx, number, password)
	if err != nil {
		c.logger.Debugf("login failed: %v", err)
		c.println("\n❌ LOGIN FAILED! Invalid account number or password.")
		return c.pause()
	}

	c.session.Begin(account.AccountNumber())
	c.println("\n✅ LOGIN SUCCESSFUL!")
	c.printf("Welcome back, %s!\n", account.FullName())
	if err := c.pause(); err != nil {
		return err
	}
	return c.customerMenu(ctx)
}

func (c *Console) customerMenu(ctx context.Context) error {
	for c.session.IsAuthenticated() {
		current, _ := c.session.Current()

		c.title("MISHTERIOUS BANK - CUSTOMER PANEL")
		c.println("1. Deposit Funds")
		c.println("2. Withdraw Funds")
		c.println("3. Transfer Funds")
		c.println("4. Change Password")
		c.println("5. View Account Details")
		c.println("6. View Transaction History")
		c.println("7. Logout")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = c.deposit(ctx, current)
		case "2":
			err = c.withdraw(ctx, current)
		case "3":
			err = c.transfer(ctx, current)
		case "4":
			err = c.changePassword(ctx, current)
		case "5":
			err = c.details(ctx, current)
		case "6":
			c.title("TRANSACTION HISTORY")
			c.history(ctx, current)
			err = c.pause()
		case "7":
			c.session.End()
			c.println("Logged out successfully.")
			err = c.pause()
		default:
			c.println("Invalid choice. Please try again.")
			err = c.pause()
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Console) deposit(ctx context.Context, current int64) error {
	c.title("MISHTERIOUS BANK - DEPOSIT FUNDS")
	account, ok := c.currentAccount(ctx, current)
	if !ok {
		return c.pause()
	}
	c.printf("Current Balance: %s\n", domain.FormatAmount(account.Balance()))

	amount, _, err := c.readAmount("Enter amount to deposit (K): ")
	if err != nil {
		return err
	}

	receipt, err := c.bank.Deposit(ctx, current, amount)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return c.pause()
	}

	c.println("\n✅ DEPOSIT SUCCESSFUL!")
	c.printf("Amount Deposited: %s\n", domain.FormatAmount(amount))
	c.printf("New Balance: %s\n", domain.FormatAmount(receipt.Account.Balance()))
	c.warn(receipt)
	return c.pause()
}

func (c *Console) withdraw(ctx context.Context, current int64) error {
	c.title("MISHTERIOUS BANK - WITHDRAW FUNDS")
	account, ok := c.currentAccount(ctx, current)
	if !ok {
		return c.pause()
	}
	c.printf("Current Balance: %s\n", domain.FormatAmount(account.Balance()))

	amount, _, err := c.readAmount("Enter amount to withdraw (K): ")
	if err != nil {
		return err
	}

	receipt, err := c.bank.Withdraw(ctx, current, amount)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return c.pause()
	}

	c.println("\n✅ WITHDRAWAL SUCCESSFUL!")
	c.printf("Amount Withdrawn: %s\n", domain.FormatAmount(amount))
	c.printf("New Balance: %s\n", domain.FormatAmount(receipt.Account.Balance()))
	c.warn(receipt)
	return c.pause()
}

func (c *Console) transfer(ctx context.Context, current int64) error {
	c.title("MISHTERIOUS BANK - TRANSFER FUNDS")
	account, ok := c.currentAccount(ctx, current)
	if !ok {
		return c.pause()
	}
	c.printf("Your Current Balance: %s\n", domain.FormatAmount(account.Balance()))

	recipient, _, err := c.readAccountNumber("Enter recipient account number: ")
	if err != nil {
		return err
	}
	if recipient == current {
		c.printf("Error: %s\n", describe(ledger.ErrSelfTransfer))
		return c.pause()
	}

	amount, _, err := c.readAmount("Enter transfer amount (K): ")
	if err != nil {
		return err
	}

	receipt, err := c.bank.Transfer(ctx, current, recipient, amount)
	if err != nil {
		if errors.Is(err, ledger.ErrAccountNotFound) {
			c.println("Error: Recipient account not found or inactive.")
		} else {
			c.printf("Error: %s\n", describe(err))
		}
		return c.pause()
	}

	c.println("\n✅ TRANSFER SUCCESSFUL!")
	c.printf("Amount Transferred: %s\n", domain.FormatAmount(amount))
	c.printf("From: %d (%s)\n", current, receipt.Account.FullName())
	c.printf("To: %d (%s)\n", recipient, receipt.Counterparty.FullName())
	c.printf("Your New Balance: %s\n", domain.FormatAmount(receipt.Account.Balance()))
	c.warn(receipt)
	return c.pause()
}

func (c *Console) changePassword(ctx context.Context, current int64) error {
	c.title("MISHTERIOUS BANK - CHANGE PASSWORD")
	if _, ok := c.currentAccount(ctx, current); !ok {
		return c.pause()
	}

	existing, err := c.readPassword("Enter current password: ")
	if err != nil {
		return err
	}

	var password, confirm string
	for {
		password, err = c.readPassword("Enter new password (min 6 chars, mix of upper/lower/digits): ")
		if err != nil {
			return err
		}
		if err := ledger.ValidatePassword(password); err != nil {
			c.printf("Error: %s\n", describe(err))
			continue
		}
		confirm, err = c.readPassword("Confirm new password: ")
		if err != nil {
			return err
		}
		if password != confirm {
			c.println("Error: New passwords do not match.")
			continue
		}
		break
	}

	if err := c.bank.ChangePassword(ctx, current, existing, password, confirm); err != nil {
		if errors.Is(err, ledger.ErrIncorrectPassword) {
			c.println("Error: Current password is incorrect.")
		} else {
			c.printf("Error: %s\n", describe(err))
		}
		return c.pause()
	}

	c.println("\n✅ PASSWORD CHANGED SUCCESSFULLY!")
	return c.pause()
}

func (c *Console) details(ctx context.Context, current int64) error {
	c.title("MISHTERIOUS BANK - ACCOUNT DETAILS")
	account, ok := c.currentAccount(ctx, current)
	if !ok {
		return c.pause()
	}

	c.printf("Account Holder: %s\n", account.FullName())
	c.printf("Account Number: %d\n", account.AccountNumber())
	c.printf("Account Status: %s\n", status(account))
	c.printf("Current Balance: %s\n", domain.FormatAmount(account.Balance()))
	if !account.CreatedAt().IsZero() {
		c.printf("Member Since: %s\n", account.CreatedAt().Local().Format(time.DateOnly))
	}
	c.println("Password: ******** (hidden for security)")

	c.println("\nRecent Transactions:")
	c.history(ctx, current)
	return c.pause()
}

func (c *Console) history(ctx context.Context, accountNumber int64) {
	entries, err := c.bank.History(ctx, accountNumber)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return
	}

	if len(entries) == 0 {
		c.println("No transactions found for this account.")
		return
	}

	c.printf("Account: %d\n\n", accountNumber)
	for _, entry := range entries {
		c.printf("Date: %s\n", entry.Timestamp.Local().Format(historyTimeLayout))
		c.printf("Type: %s\n", entry.Type)
		c.printf("Amount: %s\n", domain.FormatAmount(entry.Amount))
		if entry.Type == domain.Transfer {
			if entry.IsDebit() {
				c.printf("Transferred to: %d\n", entry.TargetAccount)
			} else {
				c.printf("Received from: %d\n", entry.TargetAccount)
			}
		}
		c.printf("Balance After: %s\n", domain.FormatAmount(entry.BalanceAfter))
		c.println("---------------------------")
	}
}

// currentAccount fetches the logged in account, ending the session when it is gone
func (c *Console) currentAccount(ctx context.Context, current int64) (*domain.Account, bool) {
	account, err := c.bank.Account(ctx, current)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		if errors.Is(err, ledger.ErrAccountNotFound) {
			c.session.End()
		}
		return nil, false
	}
	return account, true
}

func (c *Console) warn(receipt *ledger.Receipt) {
	if receipt == nil || receipt.Warning == nil {
		return
	}
	c.println("Warning: the transaction was completed but could not be added to your history.")
}

func status(account *domain.Account) string {
	if account.IsActive() {
		return "Active"
	}
	return "Inactive"
}
