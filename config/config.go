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

package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

// Config defines the bank configuration
type Config struct {
	DataFile     string        `env:"BANK_DATA_FILE" envDefault:"mishterious_bank_data.dat"`  // DataFile is the account snapshot location
	JournalFile  string        `env:"BANK_JOURNAL_FILE" envDefault:"transaction_history.dat"` // JournalFile is the transaction journal location
	JournalDSN   string        `env:"BANK_JOURNAL_DSN"`                                       // JournalDSN switches the journal to Postgres when set
	AdminSecret  string        `env:"BANK_ADMIN_SECRET" envDefault:"admin123"`                // AdminSecret gates the admin menu
	LogLevel     string        `env:"BANK_LOG_LEVEL" envDefault:"warn"`                       // LogLevel is one of debug, info, warn, error
	LogFile      string        `env:"BANK_LOG_FILE"`                                          // LogFile receives the logs instead of stderr when set
	BcryptCost   int           `env:"BANK_BCRYPT_COST" envDefault:"10"`                       // BcryptCost is the password hashing cost
	StartupDelay time.Duration `env:"BANK_STARTUP_DELAY" envDefault:"1s"`                     // StartupDelay is the pause after the welcome banner
	MetricsFile  string        `env:"BANK_METRICS_FILE"`                                      // MetricsFile receives the ledger metrics at shutdown when set
	Interactive  bool          `env:"BANK_INTERACTIVE" envDefault:"true"`                     // Interactive enables screen clearing and pauses
}

// GetConfig loads the optional dotenv files then reads the configuration from the environment
func GetConfig(envFiles ...string) (*Config, error) {
	for _, file := range envFiles {
		if _, err := os.Stat(file); err != nil {
			continue
		}
		if err := godotenv.Load(file); err != nil {
			return nil, errors.Wrapf(err, "failed to load %s", file)
		}
	}

	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{UseFieldNameByDefault: false}); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	switch {
	case strings.TrimSpace(c.DataFile) == "":
		return errors.New("BANK_DATA_FILE must not be empty")
	case strings.TrimSpace(c.JournalFile) == "" && c.JournalDSN == "":
		return errors.New("BANK_JOURNAL_FILE must not be empty")
	case c.AdminSecret == "":
		return errors.New("BANK_ADMIN_SECRET must not be empty")
	case c.BcryptCost < bcrypt.MinCost || c.BcryptCost > bcrypt.MaxCost:
		return errors.Errorf("BANK_BCRYPT_COST must be between %d and %d", bcrypt.MinCost, bcrypt.MaxCost)
	case c.StartupDelay < 0:
		return errors.New("BANK_STARTUP_DELAY must not be negative")
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "warning", "error":
		return nil
	default:
		return errors.Errorf("BANK_LOG_LEVEL %q is not one of debug, info, warn, error", c.LogLevel)
	}
}
