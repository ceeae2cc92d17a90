package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/Veraticus/pocket-ledger/internal/common"
)

// Configuration keys read through viper.
const (
	KeyDatabasePath    = "database.path"
	KeyLogLevel        = "logging.level"
	KeyLogFormat       = "logging.format"
	KeyCurrency        = "display.currency"
	KeyTopCategories   = "display.top_categories"
	KeyImportExpense   = "import.expense_category"
	KeyImportIncome    = "import.income_category"
	KeyImportAccount   = "import.account"
	DefaultDatabase    = "~/.local/share/ledger/ledger.db"
	DefaultCurrency    = "¥"
	DefaultTopCategory = 8
	EnvPrefix          = "LEDGER"
)

// ImportSettings maps statement lines onto ledger categories and accounts.
type ImportSettings struct {
	ExpenseCategory string
	IncomeCategory  string
	Account         string
}

// Settings is the resolved runtime configuration.
type Settings struct {
	Import        ImportSettings
	DatabasePath  string
	LogLevel      string
	LogFormat     string
	Currency      string
	TopCategories int
}

// SetDefaults registers every default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyDatabasePath, DefaultDatabase)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyCurrency, DefaultCurrency)
	v.SetDefault(KeyTopCategories, DefaultTopCategory)
	v.SetDefault(KeyImportExpense, "other_expense")
	v.SetDefault(KeyImportIncome, "other_income")
	v.SetDefault(KeyImportAccount, "bank")
}

// BindEnv makes LEDGER_DATABASE_PATH style variables override file values.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// LoadDotEnv reads KEY=value pairs from the given files (".env" when none)
// into the process environment. Missing files are not an error.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// Load resolves and validates settings from v.
func Load(v *viper.Viper) (*Settings, error) {
	s := &Settings{
		DatabasePath:  ExpandPath(strings.TrimSpace(v.GetString(KeyDatabasePath))),
		LogLevel:      v.GetString(KeyLogLevel),
		LogFormat:     v.GetString(KeyLogFormat),
		Currency:      v.GetString(KeyCurrency),
		TopCategories: v.GetInt(KeyTopCategories),
		Import: ImportSettings{
			ExpenseCategory: strings.TrimSpace(v.GetString(KeyImportExpense)),
			IncomeCategory:  strings.TrimSpace(v.GetString(KeyImportIncome)),
			Account:         strings.TrimSpace(v.GetString(KeyImportAccount)),
		},
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks settings that would otherwise fail deep inside a command.
func (s *Settings) Validate() error {
	if s.DatabasePath == "" {
		return fmt.Errorf("%w: %s", common.ErrMissingConfig, KeyDatabasePath)
	}
	if _, err := common.ParseLevel(s.LogLevel); err != nil {
		return err
	}
	switch s.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("%w: %s must be console or json, got %q", common.ErrInvalidConfig, KeyLogFormat, s.LogFormat)
	}
	if s.TopCategories <= 0 {
		return fmt.Errorf("%w: %s must be positive, got %d", common.ErrInvalidConfig, KeyTopCategories, s.TopCategories)
	}
	if s.Import.ExpenseCategory == "" || s.Import.IncomeCategory == "" {
		return fmt.Errorf("%w: import categories", common.ErrMissingConfig)
	}
	return nil
}
