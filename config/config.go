// Package config loads server settings. Layers, lowest first: built-in
// defaults, an optional YAML file, the process environment (optionally seeded
// from .env files). Command-line flags are applied by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort              = 3000
	DefaultMaxRequestLine    = 2048
	DefaultReadHeaderTimeout = 5 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultLogMode           = "development"
)

type Config struct {
	// Addr is the listen address, host:port.
	Addr    string
	LogMode string

	// MaxRequestLine is the longest accepted request line in bytes.
	MaxRequestLine    int
	ReadHeaderTimeout time.Duration
	ShutdownTimeout   time.Duration

	// CORSOrigins enables CORS for the listed origins. Empty disables it.
	CORSOrigins []string
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Addr:              ":" + strconv.Itoa(DefaultPort),
		LogMode:           DefaultLogMode,
		MaxRequestLine:    DefaultMaxRequestLine,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		ShutdownTimeout:   DefaultShutdownTimeout,
	}
}

// Load reads the given env files (".env" when none are named) into the
// environment, then builds a Config from it. Variables already set in the
// environment win over file contents. Missing env files are not an error.
func Load(files ...string) (*Config, error) {
	return LoadFrom("", files...)
}

// LoadFrom is Load with an explicit YAML config file. An empty configFile
// falls back to $UTILSERVE_CONFIG; when both are empty no file is read.
func LoadFrom(configFile string, envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config: load %s: %w", f, err)
		}
	}
	if configFile == "" {
		configFile = env("UTILSERVE_CONFIG")
	}

	cfg := Default()
	if configFile != "" {
		if err := cfg.applyFile(configFile); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv builds a Config from defaults overridden by environment variables.
// It does not read any file.
//
//	PORT                          listen port (ignored when UTILSERVE_ADDR is set)
//	UTILSERVE_ADDR                full listen address
//	LOG_MODE                      "production" or "development"
//	UTILSERVE_MAX_REQUEST_LINE    bytes
//	UTILSERVE_READ_HEADER_TIMEOUT duration, e.g. "5s"
//	UTILSERVE_SHUTDOWN_TIMEOUT    duration
//	CORS_ORIGINS                  comma separated origins, or "*"
func FromEnv() (*Config, error) {
	cfg := Default()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// fileConfig is the YAML layout. Zero values leave the default in place.
type fileConfig struct {
	Addr              string   `yaml:"addr"`
	Port              int      `yaml:"port"`
	LogMode           string   `yaml:"log_mode"`
	MaxRequestLine    int      `yaml:"max_request_line"`
	ReadHeaderTimeout string   `yaml:"read_header_timeout"`
	ShutdownTimeout   string   `yaml:"shutdown_timeout"`
	CORSOrigins       []string `yaml:"cors_origins"`
}

func (c *Config) applyFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(b, &fc); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	if fc.Port != 0 {
		c.SetPort(fc.Port)
	}
	if v := strings.TrimSpace(fc.Addr); v != "" {
		c.Addr = v
	}
	if v := strings.TrimSpace(fc.LogMode); v != "" {
		c.LogMode = v
	}
	if fc.MaxRequestLine != 0 {
		c.MaxRequestLine = fc.MaxRequestLine
	}
	if c.ReadHeaderTimeout, err = parseDuration("read_header_timeout", fc.ReadHeaderTimeout, c.ReadHeaderTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = parseDuration("shutdown_timeout", fc.ShutdownTimeout, c.ShutdownTimeout); err != nil {
		return err
	}
	if len(fc.CORSOrigins) > 0 {
		c.CORSOrigins = SplitOrigins(strings.Join(fc.CORSOrigins, ","))
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := env("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: PORT: %w", err)
		}
		c.SetPort(port)
	}
	if v := env("UTILSERVE_ADDR"); v != "" {
		c.Addr = v
	}
	if v := env("LOG_MODE"); v != "" {
		c.LogMode = v
	}
	if v := env("UTILSERVE_MAX_REQUEST_LINE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: UTILSERVE_MAX_REQUEST_LINE: %w", err)
		}
		c.MaxRequestLine = n
	}
	var err error
	if c.ReadHeaderTimeout, err = parseDuration("UTILSERVE_READ_HEADER_TIMEOUT", env("UTILSERVE_READ_HEADER_TIMEOUT"), c.ReadHeaderTimeout); err != nil {
		return err
	}
	if c.ShutdownTimeout, err = parseDuration("UTILSERVE_SHUTDOWN_TIMEOUT", env("UTILSERVE_SHUTDOWN_TIMEOUT"), c.ShutdownTimeout); err != nil {
		return err
	}
	if origins := SplitOrigins(env("CORS_ORIGINS")); len(origins) > 0 {
		c.CORSOrigins = origins
	}
	return nil
}

// SetPort replaces the port of Addr, keeping any host.
func (c *Config) SetPort(port int) {
	host := ""
	if i := strings.LastIndex(c.Addr, ":"); i >= 0 {
		host = c.Addr[:i]
	}
	c.Addr = host + ":" + strconv.Itoa(port)
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return errors.New("config: listen address is required")
	}
	if i := strings.LastIndex(c.Addr, ":"); i >= 0 {
		port, err := strconv.Atoi(c.Addr[i+1:])
		if err != nil || port < 0 || port > 65535 {
			return fmt.Errorf("config: invalid port in address %q", c.Addr)
		}
	} else {
		return fmt.Errorf("config: address %q has no port", c.Addr)
	}
	if c.MaxRequestLine <= 0 {
		return fmt.Errorf("config: max request line must be positive, got %d", c.MaxRequestLine)
	}
	if c.ReadHeaderTimeout <= 0 {
		return fmt.Errorf("config: read header timeout must be positive, got %s", c.ReadHeaderTimeout)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown timeout must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// SplitOrigins parses a comma separated origin list, dropping blanks.
func SplitOrigins(raw string) []string {
	var out []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func env(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func parseDuration(name, raw string, def time.Duration) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("config: %s: %w", name, err)
	}
	return d, nil
}
