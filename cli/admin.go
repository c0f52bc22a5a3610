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
	"crypto/subtle"
	"fmt"

	"github.com/tochemey/goakt-bank/domain"
)

func (c *Console) adminGate(ctx context.Context) error {
	secret, err := c.readPassword("Enter Admin Password: ")
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(secret), []byte(c.adminSecret)) != 1 {
		c.logger.Warn("rejected admin panel access")
		c.println("Invalid admin password!")
		return c.pause()
	}
	return c.adminMenu(ctx)
}

func (c *Console) adminMenu(ctx context.Context) error {
	for {
		c.title("MISHTERIOUS BANK - ADMIN PANEL")
		c.println("1. View All Accounts")
		c.println("2. View Total Bank Balance")
		c.println("3. Search Account by Number")
		c.println("4. Back to Main Menu")

		choice, err := c.readLine("Enter your choice: ")
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			c.listAccounts(ctx)
		case "2":
			c.summary(ctx)
		case "3":
			if err := c.search(ctx); err != nil {
				return err
			}
		case "4":
			return nil
		default:
			c.println("Invalid choice. Please try again.")
		}
		if err := c.pause(); err != nil {
			return err
		}
	}
}

func (c *Console) listAccounts(ctx context.Context) {
	accounts, err := c.bank.Accounts(ctx)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return
	}
	summary, err := c.bank.Summary(ctx)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return
	}

	c.title(fmt.Sprintf("ALL ACCOUNTS (%d total)", summary.RegisteredAccounts))
	c.printf("%-20s %-15s %-15s\n", "Account Holder", "Account Number", "Balance (K)")
	c.println("-------------------------------------------------")
	for _, account := range accounts {
		c.printf("%-20s %-15d %-15s\n", account.FullName(), account.AccountNumber(), account.Balance().StringFixed(2))
	}
}

func (c *Console) summary(ctx context.Context) {
	summary, err := c.bank.Summary(ctx)
	if err != nil {
		c.printf("Error: %s\n", describe(err))
		return
	}

	c.title("TOTAL BANK BALANCE")
	c.printf("Total Bank Assets: %s\n", domain.FormatAmount(summary.TotalBalance))
	c.printf("Total Active Accounts: %d\n", summary.ActiveAccounts)
	c.printf("Total Registered Accounts: %d\n", summary.RegisteredAccounts)
}

func (c *Console) search(ctx context.Context) error {
	c.title("SEARCH ACCOUNT")
	number, ok, err := c.readAccountNumber("Enter account number to search: ")
	if err != nil {
		return err
	}
	if !ok {
		c.println("Account not found.")
		return nil
	}

	account, err := c.bank.Search(ctx, number)
	if err != nil {
		c.println("Account not found.")
		return nil
	}

	c.println("\nAccount Found:")
	c.printf("Holder: %s\n", account.FullName())
	c.printf("Account Number: %d\n", account.AccountNumber())
	c.printf("Balance: %s\n", domain.FormatAmount(account.Balance()))
	c.printf("Status: %s\n", status(account))
	return nil
}
