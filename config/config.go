package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/upb/moltbot-gateway/services"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"github.com/upb/moltbot-gateway/utils"
)

// Config represents the complete gateway configuration
type Config struct {
	Server        ServerConfig
	Access        AccessConfig
	Observability ObservabilityConfig
	Bindings      BindingsConfig
	Worker        containerenv.WorkerEnv `validate:"-"`
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string        `validate:"required"`
	Port            int           `validate:"gte=1,max=65535"`
	ReadTimeout     time.Duration `validate:"gt=0"`
	WriteTimeout    time.Duration `validate:"gt=0"`
	ShutdownTimeout time.Duration `validate:"gt=0"`
	// AllowedOrigins may read the public JSON endpoints cross-origin.
	// Credentials are never allowed cross-origin.
	AllowedOrigins []string `validate:"dive,required"`
}

// AccessConfig holds Cloudflare Access settings guarding the admin routes
type AccessConfig struct {
	TeamDomain string `validate:"omitempty,fqdn"` // e.g. myteam.cloudflareaccess.com
	Audience   string `validate:"required_with=TeamDomain"`
	CacheTTL   time.Duration
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string `validate:"oneof=debug info warn error"`
	LogFormat string `validate:"oneof=json console"` // json or console
}

// BindingsConfig locates the optional YAML file holding worker bindings
type BindingsConfig struct {
	File string
}

// LoadOptions overrides where New looks for its inputs.
type LoadOptions struct {
	// EnvFiles are loaded with godotenv before reading the environment.
	// Nil loads the default files, skipping those that do not exist. Every
	// file named explicitly must exist and parse.
	EnvFiles []string
	// BindingsFile overrides MOLTBOT_BINDINGS_FILE when set.
	BindingsFile string
}

var defaultEnvFiles = []string{".dev.vars", ".env"}

// DefaultAllowedOrigins is used when CORS_ALLOWED_ORIGINS is unset.
var DefaultAllowedOrigins = []string{"http://localhost:*"}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	return Load(ctx, LoadOptions{})
}

// Load creates a Config from the environment, the given env files and the
// bindings file.
func Load(_ context.Context, opts LoadOptions) (*Config, error) {
	envFiles, explicit := opts.EnvFiles, true
	if envFiles == nil {
		envFiles, explicit = defaultEnvFiles, false
	}
	// godotenv.Load never overrides variables that are already set.
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			if !explicit && errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, services.ErrInvalidConfig.Wrap(err).WithDetail("env_file", f)
		}
	}

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
			AllowedOrigins:  getEnvAsSlice("CORS_ALLOWED_ORIGINS", DefaultAllowedOrigins),
		},
		Access: AccessConfig{
			TeamDomain: getEnv("CF_ACCESS_TEAM_DOMAIN", ""),
			Audience:   getEnv("CF_ACCESS_AUD", ""),
			CacheTTL:   getEnvAsDuration("CF_ACCESS_JWKS_TTL", time.Hour),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
		Bindings: BindingsConfig{
			File: getEnv("MOLTBOT_BINDINGS_FILE", ""),
		},
	}
	if opts.BindingsFile != "" {
		cfg.Bindings.File = opts.BindingsFile
	}

	cfg.Worker = LoadWorkerEnv(os.LookupEnv)
	if cfg.Bindings.File != "" {
		overlay, err := LoadWorkerEnvFile(cfg.Bindings.File)
		if err != nil {
			return nil, err
		}
		cfg.Worker = cfg.Worker.Merge(overlay)
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the server, access and observability settings. Worker
// bindings are passed to the container as-is and never validated here.
func (c *Config) Validate() error {
	if err := utils.ValidateStruct(c); err != nil {
		domainErr := services.ErrInvalidConfig.Wrap(err)
		for field, msg := range utils.GetValidationFields(err) {
			domainErr.WithDetail(field, msg)
		}
		return domainErr
	}
	return nil
}

// RequireAccess fails when the admin routes would be left unprotected: in
// production Cloudflare Access must be configured unless DEV_MODE is on.
func (c *Config) RequireAccess() error {
	if c.Access.Enabled() || c.DevMode() || !c.IsProduction() {
		return nil
	}
	return services.ErrInvalidConfig.Wrap(
		errors.New("cloudflare access is required in production: set CF_ACCESS_TEAM_DOMAIN and CF_ACCESS_AUD"))
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// DevMode reports whether the DEV_MODE binding is switched on.
func (c *Config) DevMode() bool {
	on, err := strconv.ParseBool(c.Worker.DevMode)
	return err == nil && on
}

// Enabled reports whether Cloudflare Access validation is configured
func (c *AccessConfig) Enabled() bool {
	return c.TeamDomain != "" && c.Audience != ""
}

// Issuer returns the expected token issuer
func (c *AccessConfig) Issuer() string {
	return "https://" + c.TeamDomain
}

// CertsURL returns the JWKS endpoint of the Access team
func (c *AccessConfig) CertsURL() string {
	return c.Issuer() + "/cdn-cgi/access/certs"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8787)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8787
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
