package cliparse

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/pflag"
)

// Commands
const (
	CommandServe     = "serve"
	CommandReconcile = "reconcile"
)

type Config struct {
	Command      string
	Port         int
	DatabaseURL  string
	DatabaseType string
	OperatorKey  string
	SummaryFile  string
}

// ParseFlags validates flags and fills unset values from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := pflag.NewFlagSet("peer-survey", pflag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	fs.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	fs.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.OperatorKey, "operator-key", "", "Operator key for admin endpoints (prefer env)")

	fs.StringVar(&cfg.SummaryFile, "summary-file", "", "Write the reconcile summary as JSON to this path")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	switch fs.NArg() {
	case 0:
		cfg.Command = CommandServe
	case 1:
		cfg.Command = fs.Arg(0)
	default:
		return Config{}, errors.New("too many arguments")
	}
	if cfg.Command != CommandServe && cfg.Command != CommandReconcile {
		return Config{}, fmt.Errorf("unknown command %q (use serve or reconcile)", cfg.Command)
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("unsupported database type %q", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType != "sqlite" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:peer-survey.db"
	}

	if cfg.SummaryFile == "" {
		cfg.SummaryFile = os.Getenv("SUMMARY_FILE")
	}

	// The operator key guards the admin endpoints; the reconcile command runs
	// locally and does not need it.
	if cfg.OperatorKey == "" {
		cfg.OperatorKey = os.Getenv("OPERATOR_KEY")
	}
	if cfg.OperatorKey == "" && cfg.Command == CommandServe {
		return Config{}, errors.New("OPERATOR_KEY required")
	}

	return cfg, nil
}
