package handlers

import (
	"net/http"

	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/middleware"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"github.com/upb/moltbot-gateway/utils"
	"go.uber.org/zap"
)

// DebugEnvResponse is the body of GET /debug/env
type DebugEnvResponse struct {
	Provider string               `json:"provider"`
	Keys     []string             `json:"keys"`
	Env      containerenv.EnvVars `json:"env"`
	Caller   string               `json:"caller,omitempty"`
}

// KeyStatus describes one known container variable
type KeyStatus struct {
	Key    string `json:"key"`
	Set    bool   `json:"set"`
	Secret bool   `json:"secret"`
}

// DebugEnvHandler shows the derived container environment with secrets masked
func DebugEnvHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := DebugEnvResponse{
			Provider: deps.Provider.String(),
			Keys:     deps.Env.Keys(),
			Env:      deps.Env.Redact(),
		}
		if id := middleware.GetIdentityFromContext(r.Context()); id != nil {
			resp.Caller = id.Name()
		}

		if err := utils.WriteOK(w, resp); err != nil {
			deps.Logger.Error("failed to write debug env response", zap.Error(err))
		}
	}
}

// DebugKeysHandler lists every variable the container understands and
// whether it is set
func DebugKeysHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		known := containerenv.KnownKeys()
		keys := make([]KeyStatus, 0, len(known))
		for _, k := range known {
			keys = append(keys, KeyStatus{
				Key:    k,
				Set:    deps.Env.Has(k),
				Secret: containerenv.IsSecret(k),
			})
		}

		if err := utils.WriteOK(w, keys); err != nil {
			deps.Logger.Error("failed to write debug keys response", zap.Error(err))
		}
	}
}

// DebugDotenvHandler renders the redacted container environment as a dotenv file
func DebugDotenvHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		out, err := deps.Env.Redact().Render()
		if err != nil {
			HandleServiceError(w, err, deps.Logger)
			return
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(out + "\n"))
	}
}
