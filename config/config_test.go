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
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := GetConfig()
		require.NoError(t, err)
		assert.Equal(t, "mishterious_bank_data.dat", cfg.DataFile)
		assert.Equal(t, "transaction_history.dat", cfg.JournalFile)
		assert.Empty(t, cfg.JournalDSN)
		assert.Equal(t, "admin123", cfg.AdminSecret)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, 10, cfg.BcryptCost)
		assert.Equal(t, time.Second, cfg.StartupDelay)
		assert.True(t, cfg.Interactive)
	})
	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("BANK_DATA_FILE", "/tmp/accounts.dat")
		t.Setenv("BANK_STARTUP_DELAY", "0s")
		t.Setenv("BANK_LOG_LEVEL", "debug")
		t.Setenv("BANK_INTERACTIVE", "false")

		cfg, err := GetConfig()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/accounts.dat", cfg.DataFile)
		assert.Zero(t, cfg.StartupDelay)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.False(t, cfg.Interactive)
	})
	t.Run("dotenv file", func(t *testing.T) {
		file := filepath.Join(t.TempDir(), ".env")
		require.NoError(t, os.WriteFile(file, []byte("BANK_ADMIN_SECRET=s3cret\n"), 0o600))
		t.Setenv("BANK_ADMIN_SECRET", "")
		require.NoError(t, os.Unsetenv("BANK_ADMIN_SECRET"))

		cfg, err := GetConfig(filepath.Join(t.TempDir(), "missing.env"), file)
		require.NoError(t, err)
		assert.Equal(t, "s3cret", cfg.AdminSecret)
	})
	t.Run("invalid values", func(t *testing.T) {
		cases := map[string]string{
			"BANK_BCRYPT_COST":   "2",
			"BANK_LOG_LEVEL":     "loud",
			"BANK_STARTUP_DELAY": "-1s",
		}
		for key, value := range cases {
			t.Run(key, func(t *testing.T) {
				t.Setenv(key, value)
				_, err := GetConfig()
				assert.Error(t, err)
			})
		}
	})
}
