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
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	goakt "github.com/tochemey/goakt/v4/actor"
	"github.com/tochemey/goakt/v4/log"

	"github.com/tochemey/goakt-bank/config"
	"github.com/tochemey/goakt-bank/credential"
	"github.com/tochemey/goakt-bank/ledger"
	"github.com/tochemey/goakt-bank/persistence"
	"github.com/tochemey/goakt-bank/service"
)

const actorSystemName = "MishteriousBank"

func getLogLevel(level string) log.Level {
	var logLevel log.Level
	switch strings.ToLower(level) {
	case "debug":
		logLevel = log.DebugLevel
	case "info":
		logLevel = log.InfoLevel
	case "warn", "warning":
		logLevel = log.WarningLevel
	case "error":
		logLevel = log.ErrorLevel
	default:
		logLevel = log.InfoLevel
	}
	return logLevel
}

// newLogger writes to the configured log file, or stderr so logs never mix with the menus
func newLogger(cfg *config.Config) (log.Logger, io.Closer, error) {
	if cfg.LogFile == "" {
		return log.NewSlog(getLogLevel(cfg.LogLevel), os.Stderr), io.NopCloser(nil), nil
	}
	file, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "failed to open log file %s", cfg.LogFile)
	}
	return log.NewSlog(getLogLevel(cfg.LogLevel), file), file, nil
}

func newJournal(cfg *config.Config, logger log.Logger) persistence.Journal {
	if cfg.JournalDSN != "" {
		return persistence.NewPostgresJournal(cfg.JournalDSN, logger)
	}
	return persistence.NewFileJournal(cfg.JournalFile, logger)
}

// bankRuntime groups everything a command needs to talk to the ledger actor
type bankRuntime struct {
	cfg         *config.Config
	logger      log.Logger
	journal     persistence.Journal
	actorSystem goakt.ActorSystem
	bank        *service.BankService
	metrics     *ledger.Metrics
}

func startBank(ctx context.Context, cfg *config.Config, logger log.Logger) (*bankRuntime, error) {
	store := persistence.NewFileAccountStore(cfg.DataFile, logger)
	journal := newJournal(cfg, logger)
	if err := journal.Start(ctx); err != nil {
		return nil, errors.Wrap(err, "failed to start the journal")
	}

	actorSystem, err := goakt.NewActorSystem(
		actorSystemName,
		goakt.WithLogger(logger),
		goakt.WithExtensions(store, journal),
		goakt.WithActorInitMaxRetries(1),
	)
	if err != nil {
		_ = journal.Stop(ctx)
		return nil, errors.Wrap(err, "failed to create the actor system")
	}

	if err := actorSystem.Start(ctx); err != nil {
		_ = journal.Stop(ctx)
		return nil, errors.Wrap(err, "failed to start the actor system")
	}

	metrics := ledger.NewMetrics()
	bank := service.NewBankService(actorSystem, logger)
	if err := bank.Start(ctx,
		ledger.WithLogger(logger),
		ledger.WithHasher(credential.NewHasher(cfg.BcryptCost)),
		ledger.WithMetrics(metrics),
	); err != nil {
		_ = actorSystem.Stop(ctx)
		_ = journal.Stop(ctx)
		return nil, err
	}

	return &bankRuntime{
		cfg:         cfg,
		logger:      logger,
		journal:     journal,
		actorSystem: actorSystem,
		bank:        bank,
		metrics:     metrics,
	}, nil
}

// stop saves the snapshot through the ledger actor and releases the journal
func (r *bankRuntime) stop(ctx context.Context) {
	if err := r.bank.Stop(ctx); err != nil {
		r.logger.Errorf("error stopping the ledger: %v", err)
	}
	if err := r.actorSystem.Stop(ctx); err != nil {
		r.logger.Errorf("error stopping actor system: %v", err)
	}
	if err := r.journal.Stop(ctx); err != nil {
		r.logger.Errorf("error stopping the journal: %v", err)
	}
	if r.cfg.MetricsFile != "" {
		if err := r.metrics.WriteToTextfile(r.cfg.MetricsFile); err != nil {
			r.logger.Errorf("error writing metrics to %s: %v", r.cfg.MetricsFile, err)
		}
	}
}
