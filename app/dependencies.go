package app

import (
	"context"
	"fmt"

	"github.com/upb/moltbot-gateway/access"
	"github.com/upb/moltbot-gateway/config"
	"github.com/upb/moltbot-gateway/internal/observability"
	"github.com/upb/moltbot-gateway/middleware"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"go.uber.org/zap"
)

// Version is reported by the status endpoint; main overrides it at build time.
var Version = "dev"

// Dependencies holds everything the HTTP surface and the CLI need.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	Logger *zap.Logger
	Log    observability.Logger

	// Container environment derived from the worker bindings
	Env      containerenv.EnvVars
	Provider containerenv.Provider

	AccessMiddleware *middleware.AccessMiddleware
}

// NewDependencies derives the container environment and wires the access
// guard for the admin routes.
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	if err := cfg.RequireAccess(); err != nil {
		return nil, fmt.Errorf("failed to initialize access: %w", err)
	}

	deps := &Dependencies{
		Config:   cfg,
		Logger:   logger,
		Log:      observability.NewContextLogger(logger),
		Env:      containerenv.BuildEnvVars(cfg.Worker),
		Provider: containerenv.DetectProvider(cfg.Worker),
	}

	deps.Log.Info(ctx, "container environment derived",
		zap.Object("env", containerenv.Summarize(cfg.Worker, deps.Env)),
		zap.Strings("bindings", cfg.Worker.BindingNames()))
	if !deps.Env.HasAICredentials() {
		deps.Log.Warn(ctx, "no AI provider credentials configured")
	}

	deps.initAccess(cfg)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func (d *Dependencies) initAccess(cfg *config.Config) {
	switch {
	case cfg.Access.Enabled():
		validator := access.NewValidator(access.Config{
			TeamDomain: cfg.Access.TeamDomain,
			Audience:   cfg.Access.Audience,
			CacheTTL:   cfg.Access.CacheTTL,
		})
		d.AccessMiddleware = middleware.NewAccessMiddleware(validator, d.Logger)
		d.Logger.Info("cloudflare access enabled",
			zap.String("team_domain", cfg.Access.TeamDomain))
	case cfg.DevMode():
		d.Logger.Warn("cloudflare access not configured, DEV_MODE admits every request to admin routes")
		d.AccessMiddleware = middleware.NewDevAccessMiddleware(d.Logger)
	default:
		d.Logger.Warn("cloudflare access not configured, admin routes disabled")
		d.AccessMiddleware = middleware.NewAccessMiddleware(rejectAllValidator{}, d.Logger)
	}
}

// rejectAllValidator rejects all tokens (used when Access is not configured)
type rejectAllValidator struct{}

func (rejectAllValidator) ValidateToken(context.Context, string) (*access.Identity, error) {
	return nil, fmt.Errorf("cloudflare access not configured")
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Log.Info(ctx, "shutting down dependencies")
	if d.Logger != nil {
		_ = d.Logger.Sync()
	}
	return nil
}
