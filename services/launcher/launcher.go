// Package launcher starts the agent container process with the derived
// environment.
package launcher

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/upb/moltbot-gateway/services"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"go.uber.org/zap"
)

// Spec describes one process launch.
type Spec struct {
	Command string
	Args    []string
	Dir     string
	Env     containerenv.EnvVars

	// Nil streams fall back to the gateway's own stdin, stdout and stderr.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result describes a process that ran to completion.
type Result struct {
	LaunchID string
	ExitCode int
	Duration time.Duration
}

// Launcher runs container processes.
type Launcher struct {
	logger  *zap.Logger
	environ func() []string
}

// New creates a Launcher whose children inherit the current process
// environment.
func New(logger *zap.Logger) *Launcher {
	return &Launcher{
		logger:  logger,
		environ: os.Environ,
	}
}

// Launch starts spec.Command and waits for it to exit. Cancelling ctx kills
// the process. A non-zero exit is returned as an external error carrying
// the exit code.
func (l *Launcher) Launch(ctx context.Context, spec Spec) (*Result, error) {
	if strings.TrimSpace(spec.Command) == "" {
		return nil, services.ErrEmptyCommand
	}

	launchID := uuid.NewString()
	logger := l.logger.With(
		zap.String("launch_id", launchID),
		zap.String("command", spec.Command))

	cmd := exec.CommandContext(ctx, spec.Command, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.Env = MergeEnviron(l.environ(), spec.Env)
	cmd.Stdin = os.Stdin
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}
	cmd.Stdout = writerOr(spec.Stdout, os.Stdout)
	cmd.Stderr = writerOr(spec.Stderr, os.Stderr)

	logger.Info("starting container process",
		zap.Strings("args", spec.Args),
		zap.Strings("env_keys", spec.Env.Keys()))

	start := time.Now()
	if err := cmd.Start(); err != nil {
		logger.Error("failed to start container process", zap.Error(err))
		return nil, services.ErrLaunchFailed.Wrap(err).
			WithDetail("launch_id", launchID).
			WithDetail("command", spec.Command)
	}

	err := cmd.Wait()
	result := &Result{
		LaunchID: launchID,
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		logger.Warn("container process cancelled", zap.Error(ctxErr))
		return result, services.NewDomainError(services.ErrorTypeExternal, "container process cancelled", ctxErr).
			WithDetail("launch_id", launchID)
	}

	if err != nil {
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			return result, services.WrapExternal("failed to wait for container process", err)
		}
		logger.Warn("container process exited with error",
			zap.Int("exit_code", result.ExitCode),
			zap.Duration("duration", result.Duration))
		return result, services.ErrProcessFailed.Wrap(err).
			WithDetail("launch_id", launchID).
			WithDetail("exit_code", result.ExitCode)
	}

	logger.Info("container process exited",
		zap.Int("exit_code", result.ExitCode),
		zap.Duration("duration", result.Duration))
	return result, nil
}

// MergeEnviron returns base followed by vars. Worker bindings and output
// keys are dropped from base, so the child sees only what vars derived.
func MergeEnviron(base []string, vars containerenv.EnvVars) []string {
	out := make([]string, 0, len(base)+len(vars))
	for _, kv := range base {
		key, _, _ := strings.Cut(kv, "=")
		if containerenv.IsReserved(key) {
			continue
		}
		if _, ok := vars[key]; ok {
			continue
		}
		out = append(out, kv)
	}
	return append(out, vars.Environ()...)
}

func writerOr(w io.Writer, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
