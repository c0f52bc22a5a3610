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
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tochemey/goakt-bank/cli"
	"github.com/tochemey/goakt-bank/config"
)

const shutdownTimeout = 5 * time.Second

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start an interactive banking session",
	Run:   runSession,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runSession(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(out, "Initializing MISHTERIOUS BANK System...")
	rt, err := startBank(ctx, cfg, logger)
	if err != nil {
		logger.Errorf("failed to start: %v", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "failed to start: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintln(out, "System ready!")
	time.Sleep(cfg.StartupDelay)

	stdin := int(os.Stdin.Fd())
	terminal := cli.IsTerminal(stdin)
	opts := []cli.Option{
		cli.WithAdminSecret(cfg.AdminSecret),
		cli.WithInteractive(cfg.Interactive && terminal),
		cli.WithLogger(logger),
	}
	if terminal {
		opts = append(opts, cli.WithPasswordReader(cli.TerminalPasswordReader(stdin, out)))
	}
	console := cli.NewConsole(rt.bank, cmd.InOrStdin(), out, opts...)

	done := make(chan error, 1)
	go func() {
		done <- console.Run(ctx)
	}()

	select {
	case err = <-done:
		if err != nil {
			logger.Errorf("session ended with error: %v", err)
		}
	case <-ctx.Done():
		fmt.Fprintln(out, "\nInterrupted, shutting down...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	rt.stop(shutdownCtx)
	logger.Info("Shutdown complete")
}
