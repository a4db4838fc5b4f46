// Package config holds the option structs shared by the commands.
// Values come from flags, then environment variables (optionally loaded
// from a .env file), then defaults.
package config

import (
	"errors"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"visit-route-service/internal/logger"
)

type Database struct {
	Driver string `long:"db-driver"    env:"DB_DRIVER"    description:"Database driver" choice:"sqlite" choice:"pgx" default:"sqlite"`
	URL    string `long:"database-url" env:"DATABASE_URL" description:"SQLite path or Postgres URL"       default:"data/app.db"`
}

type Server struct {
	Logger   logger.Logger `group:"Logger options"`
	Database Database      `group:"Database options"`

	Addr       string `short:"a" long:"addr"        env:"LISTEN_ADDRESS" description:"Address to listen on"                  default:"0.0.0.0"`
	Port       int    `short:"p" long:"port"        env:"LISTEN_PORT"    description:"Port to listen on"                     default:"8080"`
	SeedPath   string `short:"s" long:"seed"        env:"SEED_PATH"      description:"Outlet seed file loaded on startup (.json, .yaml, .xlsx)"`
	MaxOutlets int    `long:"max-outlets"           env:"MAX_OUTLETS"    description:"Largest outlet set accepted per optimization" default:"500"`
}

// LoadEnv loads .env into the process environment if the file exists.
// Existing variables win.
func LoadEnv() bool {
	return godotenv.Load() == nil
}

// IsHelp reports whether err is go-flags' --help result.
func IsHelp(err error) bool {
	var fe *flags.Error
	return errors.As(err, &fe) && fe.Type == flags.ErrHelp
}

// ParseServer parses server options from args.
func ParseServer(args []string) (*Server, error) {
	var opts Server
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		return nil, err
	}
	return &opts, nil
}
