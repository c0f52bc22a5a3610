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
	"cmp"
	"context"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/tochemey/goakt-bank/domain"
)

// DiscrepancyKind classifies a reconciliation finding
type DiscrepancyKind string

const (
	// MissingHistory means an account has no journal rows at all
	MissingHistory DiscrepancyKind = "missing_history"
	// BalanceMismatch means the journal amounts do not add up to the balance
	BalanceMismatch DiscrepancyKind = "balance_mismatch"
	// LastBalanceMismatch means the latest balanceAfter differs from the balance
	LastBalanceMismatch DiscrepancyKind = "last_balance_mismatch"
	// UnknownAccount means journal rows belong to an account missing from the store
	UnknownAccount DiscrepancyKind = "unknown_account"
	// UnbalancedTransfer means the legs of a transfer do not net to zero
	UnbalancedTransfer DiscrepancyKind = "unbalanced_transfer"
)

// Discrepancy is one disagreement between the account store and the journal
type Discrepancy struct {
	Kind          DiscrepancyKind
	AccountNumber int64
	Detail        string
}

// ReconcileReport is the outcome of checking the journal against the account store
type ReconcileReport struct {
	Accounts      int
	Rows          int
	Discrepancies []Discrepancy
}

// Consistent reports whether no discrepancy was found
func (r *ReconcileReport) Consistent() bool {
	return len(r.Discrepancies) == 0
}

type accountTally struct {
	rows         int
	sum          decimal.Decimal
	lastBalance  decimal.Decimal
	firstSeenRow int
}

type transferTally struct {
	legs int
	sum  decimal.Decimal
	row  domain.Transaction
}

// Reconcile scans the whole journal and checks that it explains every balance
func (l *Ledger) Reconcile(ctx context.Context) (*ReconcileReport, error) {
	report := new(ReconcileReport)
	tallies := make(map[int64]*accountTally)
	transfers := make(map[uuid.UUID]*transferTally)
	var transferOrder []uuid.UUID

	for tx, err := range l.journal.Scan(ctx) {
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan the journal")
		}
		report.Rows++

		tally, ok := tallies[tx.AccountNumber]
		if !ok {
			tally = &accountTally{sum: decimal.Zero, firstSeenRow: report.Rows}
			tallies[tx.AccountNumber] = tally
		}
		tally.rows++
		tally.sum = tally.sum.Add(tx.Amount)
		tally.lastBalance = tx.BalanceAfter

		if tx.Type == domain.Transfer {
			transfer, ok := transfers[tx.Reference]
			if !ok {
				transfer = &transferTally{sum: decimal.Zero, row: tx}
				transfers[tx.Reference] = transfer
				transferOrder = append(transferOrder, tx.Reference)
			}
			transfer.legs++
			transfer.sum = transfer.sum.Add(tx.Amount)
		}
	}

	seen := make(map[int64]bool)
	for _, account := range l.store.Accounts() {
		number := account.AccountNumber()
		if seen[number] {
			continue
		}
		seen[number] = true
		report.Accounts++

		balance := account.Balance()
		tally, ok := tallies[number]
		if !ok {
			report.add(MissingHistory, number, fmt.Sprintf("balance %s has no journal rows", domain.FormatAmount(balance)))
			continue
		}
		if !tally.sum.Equal(balance) {
			report.add(BalanceMismatch, number, fmt.Sprintf("journal adds up to %s, balance is %s",
				domain.FormatAmount(tally.sum), domain.FormatAmount(balance)))
		}
		if !tally.lastBalance.Equal(balance) {
			report.add(LastBalanceMismatch, number, fmt.Sprintf("latest row shows %s, balance is %s",
				domain.FormatAmount(tally.lastBalance), domain.FormatAmount(balance)))
		}
	}

	unknown := make([]int64, 0)
	for number := range tallies {
		if !seen[number] {
			unknown = append(unknown, number)
		}
	}
	slices.SortFunc(unknown, func(a, b int64) int {
		return cmp.Compare(tallies[a].firstSeenRow, tallies[b].firstSeenRow)
	})
	for _, number := range unknown {
		report.add(UnknownAccount, number, fmt.Sprintf("%d journal row(s) for an account missing from the store", tallies[number].rows))
	}

	for _, reference := range transferOrder {
		transfer := transfers[reference]
		if transfer.legs != 2 || !transfer.sum.IsZero() {
			report.add(UnbalancedTransfer, transfer.row.AccountNumber, fmt.Sprintf("transfer %s has %d leg(s) netting %s",
				reference, transfer.legs, domain.FormatAmount(transfer.sum)))
		}
	}

	if report.Consistent() {
		l.logger.Infof("reconciled %d account(s) against %d journal row(s)", report.Accounts, report.Rows)
	} else {
		l.logger.Warnf("reconciliation found %d discrepancy(ies)", len(report.Discrepancies))
	}
	return report, nil
}

func (r *ReconcileReport) add(kind DiscrepancyKind, accountNumber int64, detail string) {
	r.Discrepancies = append(r.Discrepancies, Discrepancy{
		Kind:          kind,
		AccountNumber: accountNumber,
		Detail:        detail,
	})
}
