// Package config loads process settings from a .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/hamzaessahbaoui/aptos-agent-kit/runtime"
)

const (
	DefaultName    = "aptos-agent-kit"
	DefaultVersion = "1.0.0"
	DefaultNetwork = "mainnet"
	DefaultAddress = "0x1"
	DefaultModel   = "claude-3-7-sonnet-20250219"
)

var networks = map[string]bool{"mainnet": true, "testnet": true, "devnet": true, "local": true}

// Config holds every setting read by the binaries.
type Config struct {
	Name           string
	Version        string
	Network        string
	AccountAddress string
	LogLevel       log.Level
	AnthropicKey   string
	AnthropicModel string
}

// Load reads files (".env" when none are given) into the environment and
// returns the resulting configuration. Missing files are ignored; values
// already present in the environment win over the files.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only.
func FromEnv() (Config, error) {
	cfg := Config{
		Name:           env("APTOS_AGENT_NAME", DefaultName),
		Version:        env("APTOS_AGENT_VERSION", DefaultVersion),
		Network:        strings.ToLower(env("APTOS_NETWORK", DefaultNetwork)),
		AccountAddress: env("APTOS_ACCOUNT_ADDRESS", DefaultAddress),
		AnthropicKey:   os.Getenv("ANTHROPIC_API_KEY"),
		AnthropicModel: env("ANTHROPIC_MODEL", DefaultModel),
	}

	level, err := log.ParseLevel(env("LOG_LEVEL", "info"))
	if err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	cfg.LogLevel = level

	if !networks[cfg.Network] {
		return Config{}, fmt.Errorf("APTOS_NETWORK: unknown network %q", cfg.Network)
	}
	if !runtime.ValidAddress(cfg.AccountAddress) {
		return Config{}, fmt.Errorf("APTOS_ACCOUNT_ADDRESS: %w: %s", runtime.ErrInvalidAddress, cfg.AccountAddress)
	}
	return cfg, nil
}

// Logger returns a logger writing to stderr at the configured level.
// Stdout is left free for protocol traffic.
func (c Config) Logger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		Level:           c.LogLevel,
		ReportTimestamp: true,
		Prefix:          c.Name,
	})
}

func env(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
