package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	// HTTP server
	Port string

	// Backend selection
	LedgerBackend string

	// xlsx backend
	LedgerFile string
	SheetName  string

	// sqlite backend
	SQLiteDBPath string

	// Google Sheets backend
	GoogleSpreadsheetID string
	GoogleSheetName     string
}

func Load() *Config {
	return &Config{
		Port:          getEnv("PORT", "8081"),
		LedgerBackend: getEnv("LEDGER_BACKEND", "xlsx"),

		LedgerFile: getEnv("LEDGER_FILE", "./data/expenses.xlsx"),
		SheetName:  getEnv("LEDGER_SHEET_NAME", "Expenses"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/kharcha.db"),

		GoogleSpreadsheetID: getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleSheetName:     getEnv("GOOGLE_SHEET_NAME", "Expenses"),
	}
}

// Validate checks the configuration and returns an error describing every
// problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.LedgerBackend {
	case "xlsx", "memory", "sqlite", "sheets":
	default:
		problems = append(problems, fmt.Sprintf("invalid ledger backend '%s': must be one of [xlsx memory sqlite sheets]", c.LedgerBackend))
	}

	if c.LedgerBackend == "xlsx" {
		if c.LedgerFile == "" {
			problems = append(problems, "ledger file path cannot be empty when using xlsx backend")
		} else if dir := filepath.Dir(c.LedgerFile); dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					problems = append(problems, fmt.Sprintf("cannot create ledger directory '%s': %v", dir, err))
				}
			}
		}
		if c.SheetName == "" {
			problems = append(problems, "ledger sheet name cannot be empty when using xlsx backend")
		}
	}

	if c.LedgerBackend == "sqlite" && c.SQLiteDBPath == "" {
		problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
	}

	if c.LedgerBackend == "sheets" && c.GoogleSpreadsheetID == "" {
		problems = append(problems, "Google Spreadsheet ID is required when using sheets backend")
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
