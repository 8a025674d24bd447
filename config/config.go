// Package config loads dkimcheck service configuration from defaults, an
// optional YAML file, and DKIMCHECK_-prefixed environment variables, in that
// order of precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/mcuadros/go-defaults"
)

const (
	// envPrefix is the prefix for environment variable overrides
	envPrefix = "DKIMCHECK_"
	// envNestingDelim separates nested config keys in environment variable names
	envNestingDelim = "__"
)

// Config holds the full dkimcheck service configuration
type Config struct {
	// Server holds HTTP server settings for serve mode
	Server Server `koanf:"server" json:"server"`
	// Resolver holds DNS resolution settings for the DKIM checker
	Resolver Resolver `koanf:"resolver" json:"resolver"`
	// Slack holds weak-key notification settings
	Slack Slack `koanf:"slack" json:"slack"`
}

// Server holds HTTP server settings for serve mode
type Server struct {
	// Listen is the address the HTTP server binds to
	Listen string `koanf:"listen" json:"listen" default:":8080"`
	// ReadTimeout is the maximum duration for reading a request
	ReadTimeout time.Duration `koanf:"read_timeout" json:"read_timeout" default:"30s"`
	// WriteTimeout is the maximum duration before timing out a response write
	WriteTimeout time.Duration `koanf:"write_timeout" json:"write_timeout" default:"30s"`
	// ShutdownGracePeriod is how long in-flight requests get to finish on shutdown
	ShutdownGracePeriod time.Duration `koanf:"shutdown_grace_period" json:"shutdown_grace_period" default:"10s"`
	// MaxBodySize is the maximum accepted request body size in bytes
	MaxBodySize int64 `koanf:"max_body_size" json:"max_body_size" default:"102400"`
	// CheckTimeout bounds the total time spent handling a check request
	CheckTimeout time.Duration `koanf:"check_timeout" json:"check_timeout" default:"30s"`
	// Debug enables debug logging
	Debug bool `koanf:"debug" json:"debug" default:"false"`
	// Pretty enables human readable console logging
	Pretty bool `koanf:"pretty" json:"pretty" default:"false"`
}

// Resolver holds DNS resolution settings for the DKIM checker
type Resolver struct {
	// Nameserver overrides the system resolver chain when set
	Nameserver string `koanf:"nameserver" json:"nameserver" default:""`
	// Timeout bounds each DKIM record resolution
	Timeout time.Duration `koanf:"timeout" json:"timeout" default:"4s"`
}

// Slack holds weak-key notification settings
type Slack struct {
	// WebhookURL is the Slack incoming webhook for weak-key alerts
	WebhookURL string `koanf:"webhook_url" json:"webhook_url" default:"" sensitive:"true"`
	// RequestTimeout bounds each webhook delivery
	RequestTimeout time.Duration `koanf:"request_timeout" json:"request_timeout" default:"10s"`
	// NotifyWeakKeys enables alerts when a check finds a weak or deprecated key
	NotifyWeakKeys bool `koanf:"notify_weak_keys" json:"notify_weak_keys" default:"true"`
}

// Load builds the configuration from defaults, the YAML file at path when it
// exists, and environment variable overrides
func Load(path *string) (*Config, error) {
	k := koanf.New(".")

	if path != nil && *path != "" {
		if _, err := os.Stat(*path); err == nil {
			if err := k.Load(file.Provider(*path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
			}
		}
	}

	if err := k.Load(env.Provider(k.Delim(), env.Opt{
		Prefix:        envPrefix,
		TransformFunc: envTransform,
	}), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigLoad, err)
	}

	cfg := &Config{}
	defaults.SetDefaults(cfg)

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigUnmarshal, err)
	}

	return cfg, nil
}

// envTransform maps DKIMCHECK_SERVER__READ_TIMEOUT to server.read_timeout.
// The double underscore delimits nesting so snake_case leaf keys stay intact.
func envTransform(key, value string) (string, any) {
	key = strings.TrimPrefix(key, envPrefix)
	key = strings.ReplaceAll(strings.ToLower(key), envNestingDelim, ".")

	return key, value
}
