package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults mirror the reference deployment: a local postgres instance and
// 500 pre-existing orders already in the Orders table.
const (
	defaultDBHost    = "localhost"
	defaultOrderBase = 501
)

type Config struct {
	ServerPort  string
	DatabaseURL string

	// OrderNumberBase seeds the in-process order number counter.
	OrderNumberBase int

	Env string
}

// Load reads configuration from the environment. A .env file is honored for
// local development. Positional arguments (dbname, port, user), when given,
// take precedence over DATABASE_URL and mirror the legacy invocation
// `marketplace <dbname> <port> <user>` with a blank password.
func Load(args []string) (*Config, error) {
	// Load .env file if it exists (useful for local dev)
	_ = godotenv.Load()

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		serverPort = "8080"
	}

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	databaseURL := os.Getenv("DATABASE_URL")

	switch len(args) {
	case 0:
		// fall through to DATABASE_URL
	case 3:
		dbname, dbport, user := args[0], args[1], args[2]
		if _, err := strconv.Atoi(dbport); err != nil {
			return nil, fmt.Errorf("port %q is not numeric", dbport)
		}
		databaseURL = fmt.Sprintf("postgres://%s@%s:%s/%s", user, defaultDBHost, dbport, dbname)
	default:
		return nil, fmt.Errorf("expected <dbname> <port> <user>, got %d arguments", len(args))
	}

	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL must be set (or pass <dbname> <port> <user>)")
	}

	orderBase := defaultOrderBase
	if raw := os.Getenv("ORDER_NUMBER_BASE"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("ORDER_NUMBER_BASE must be an integer: %w", err)
		}
		orderBase = n
	}

	return &Config{
		ServerPort:      serverPort,
		DatabaseURL:     databaseURL,
		OrderNumberBase: orderBase,
		Env:             env,
	}, nil
}
