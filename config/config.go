// Package config loads service configuration from an optional YAML
// file with environment-variable overrides. The variable names match
// the original deployment (PORT, NOCKCHAIN_SOCKET,
// COMMAND_TIMEOUT_SECS) so existing .env files keep working.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v2"
)

// Config is the complete service configuration.
type Config struct {
	// HTTPPort serves the JSON-RPC transport.
	HTTPPort int `yaml:"httpPort"`
	// GRPCPort serves the cramberry gRPC transport.
	GRPCPort int `yaml:"grpcPort"`
	// StorePath is the badger index directory written by the node.
	// Opened read-only; never created here.
	StorePath string `yaml:"storePath"`
	// SocketPath is the node socket handed to nockchain-wallet.
	SocketPath string `yaml:"socketPath"`
	// CommandTimeoutSecs bounds one wallet invocation.
	CommandTimeoutSecs int `yaml:"commandTimeoutSecs"`
}

// CommandTimeout returns the wallet timeout as a duration.
func (c Config) CommandTimeout() time.Duration {
	return time.Duration(c.CommandTimeoutSecs) * time.Second
}

// Load reads the YAML file at path (a missing file is fine), applies
// defaults, then environment overrides. A present but malformed file
// or variable is an error, not a silent fallback.
func Load(path string) (Config, error) {
	var c Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err):
		// Defaults plus environment carry the whole config.
	default:
		return c, fmt.Errorf("reading %s: %w", path, err)
	}

	if c.HTTPPort == 0 {
		c.HTTPPort = 3000
	}
	if c.GRPCPort == 0 {
		c.GRPCPort = 3001
	}
	if c.StorePath == "" {
		c.StorePath = "./data/block-index"
	}
	if c.CommandTimeoutSecs == 0 {
		c.CommandTimeoutSecs = 120
	}

	if err := c.applyEnv(); err != nil {
		return c, err
	}
	return c, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.HTTPPort = p
	}
	if v := os.Getenv("GRPC_PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid GRPC_PORT %q: %w", v, err)
		}
		c.GRPCPort = p
	}
	if v := os.Getenv("STORE_PATH"); v != "" {
		c.StorePath = v
	}
	if v := os.Getenv("NOCKCHAIN_SOCKET"); v != "" {
		c.SocketPath = v
	}
	if v := os.Getenv("COMMAND_TIMEOUT_SECS"); v != "" {
		secs, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid COMMAND_TIMEOUT_SECS %q: %w", v, err)
		}
		c.CommandTimeoutSecs = secs
	}
	return nil
}
