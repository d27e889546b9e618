// Package config loads client/server options from the process
// environment, optionally seeded from a local .env file via
// github.com/joho/godotenv — the idiomatic equivalent of the teacher's
// own dotfile loading under ~/.kr, carried over from the rest of the
// retrieval pack (spec.md §6.4).
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"fillwire.dev/fillwire/client"
)

// LoadEnvFile loads path into the process environment if it exists;
// a missing file is not an error, matching godotenv.Load's own
// "optional .env" convention.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(path)
}

// ClientConfig builds a client.Config from FILLWIRE_HOST /
// FILLWIRE_PORT / FILLWIRE_TIMEOUT_MS / FILLWIRE_HEARTBEAT_ENABLED /
// FILLWIRE_HEARTBEAT_INTERVAL_MS, falling back to spec.md §6.4 defaults
// for everything but the required host.
func ClientConfig() (client.Config, error) {
	host := os.Getenv("FILLWIRE_HOST")
	if host == "" {
		return client.Config{}, fmt.Errorf("config: FILLWIRE_HOST is required")
	}
	cfg := client.DefaultConfig(host)

	if v := os.Getenv("FILLWIRE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return client.Config{}, fmt.Errorf("config: FILLWIRE_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("FILLWIRE_TIMEOUT_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return client.Config{}, fmt.Errorf("config: FILLWIRE_TIMEOUT_MS: %w", err)
		}
		cfg.Timeout = time.Duration(ms) * time.Millisecond
	}
	if v := os.Getenv("FILLWIRE_HEARTBEAT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return client.Config{}, fmt.Errorf("config: FILLWIRE_HEARTBEAT_ENABLED: %w", err)
		}
		cfg.HeartbeatEnabled = enabled
	}
	if v := os.Getenv("FILLWIRE_HEARTBEAT_INTERVAL_MS"); v != "" {
		ms, err := strconv.Atoi(v)
		if err != nil {
			return client.Config{}, fmt.Errorf("config: FILLWIRE_HEARTBEAT_INTERVAL_MS: %w", err)
		}
		cfg.HeartbeatInterval = time.Duration(ms) * time.Millisecond
	}
	return cfg, nil
}

// ServerConfig is the recognized server-side configuration: the TCP
// port to listen on, the admin API's bind address, and an optional SNS
// topic ARN enabling internal/notify.
type ServerConfig struct {
	Port      int
	AdminAddr string
	SnsTopic  string
}

// DefaultServerConfig returns port 5000 (spec.md §6.2) with the admin
// API on localhost:9090 and notifications disabled.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{Port: 5000, AdminAddr: "127.0.0.1:9090"}
}

// ServerConfigFromEnv builds a ServerConfig from FILLWIRE_PORT /
// FILLWIRE_ADMIN_ADDR / FILLWIRE_SNS_TOPIC_ARN, falling back to
// DefaultServerConfig for anything unset.
func ServerConfigFromEnv() (ServerConfig, error) {
	cfg := DefaultServerConfig()
	if v := os.Getenv("FILLWIRE_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return ServerConfig{}, fmt.Errorf("config: FILLWIRE_PORT: %w", err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("FILLWIRE_ADMIN_ADDR"); v != "" {
		cfg.AdminAddr = v
	}
	cfg.SnsTopic = os.Getenv("FILLWIRE_SNS_TOPIC_ARN")
	return cfg, nil
}
