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

package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/tochemey/goakt-bank/config"
	"github.com/tochemey/goakt-bank/domain"
)

// verifyCmd checks the journal against the account snapshot
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Reconcile the transaction journal with the account balances",
	Run: func(cmd *cobra.Command, _ []string) {
		out := cmd.OutOrStdout()
		ctx := context.Background()

		cfg, err := config.GetConfig(".env")
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "invalid configuration: %v\n", err)
			os.Exit(1)
		}

		logger, closer, err := newLogger(cfg)
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			os.Exit(1)
		}
		defer closer.Close()

		rt, err := startBank(ctx, cfg, logger)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to start: %v\n", err)
			os.Exit(1)
		}

		report, err := rt.bank.Reconcile(ctx)
		rt.stop(ctx)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "reconciliation failed: %v\n", err)
			os.Exit(1)
		}

		fmt.Fprintf(out, "Accounts checked: %d\n", report.Accounts)
		fmt.Fprintf(out, "Journal rows:     %d\n", report.Rows)
		if report.Consistent() {
			fmt.Fprintln(out, "Journal and balances agree.")
			return
		}

		writer := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(writer, "KIND\tACCOUNT\tDETAIL")
		for _, discrepancy := range report.Discrepancies {
			fmt.Fprintf(writer, "%s\t%d\t%s\n", discrepancy.Kind, discrepancy.AccountNumber, discrepancy.Detail)
		}
		_ = writer.Flush()
		fmt.Fprintf(out, "%d discrepancy(ies) found, amounts in %s\n", len(report.Discrepancies), domain.Currency)
		os.Exit(2)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
