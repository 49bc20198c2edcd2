package handlers

import (
	"net/http"
	"strings"

	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/services/containerenv"
)

// HealthCheck returns a simple health check handler
func HealthCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	}
}

// ReadinessCheck reports whether the container environment can reach a
// model provider. Missing chat channels or gateway token are reported but
// do not fail readiness.
func ReadinessCheck(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"ai_credentials": "missing",
			"gateway_token":  "missing",
			"channels":       "none",
		}
		status := "not_ready"

		if deps.Env.HasAICredentials() {
			checks["ai_credentials"] = "configured"
			status = "ready"
		}
		if deps.Env.Has(containerenv.KeyGatewayToken) {
			checks["gateway_token"] = "configured"
		}
		if channels := deps.Env.Channels(); len(channels) > 0 {
			checks["channels"] = strings.Join(channels, ",")
		}

		code := http.StatusOK
		if status != "ready" {
			code = http.StatusServiceUnavailable
		}
		respondJSON(w, code, map[string]interface{}{
			"status": status,
			"checks": checks,
		})
	}
}

// StatusHandler returns application status information
func StatusHandler(deps *app.Dependencies) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"version":     app.Version,
			"environment": deps.Config.Environment,
			"provider":    deps.Provider.String(),
			"dev_mode":    deps.Config.DevMode(),
		})
	}
}
