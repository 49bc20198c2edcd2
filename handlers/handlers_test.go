package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/moltbot-gateway/access"
	"github.com/upb/moltbot-gateway/app"
	"github.com/upb/moltbot-gateway/config"
	"github.com/upb/moltbot-gateway/internal/observability"
	"github.com/upb/moltbot-gateway/middleware"
	"github.com/upb/moltbot-gateway/services/containerenv"
	"go.uber.org/zap/zaptest"
)

func newTestDeps(t *testing.T, worker containerenv.WorkerEnv) *app.Dependencies {
	logger := zaptest.NewLogger(t)
	return &app.Dependencies{
		Config:   &config.Config{Environment: "test", Worker: worker},
		Logger:   logger,
		Log:      observability.NewContextLogger(logger),
		Env:      containerenv.BuildEnvVars(worker),
		Provider: containerenv.DetectProvider(worker),
	}
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	w := httptest.NewRecorder()
	HealthCheck(newTestDeps(t, containerenv.WorkerEnv{}))(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decode(t, w)["status"])
}

func TestReadinessCheck(t *testing.T) {
	tests := []struct {
		name       string
		worker     containerenv.WorkerEnv
		wantCode   int
		wantStatus string
		wantChecks map[string]interface{}
	}{
		{
			name:       "no credentials",
			worker:     containerenv.WorkerEnv{TelegramBotToken: "123:abc"},
			wantCode:   http.StatusServiceUnavailable,
			wantStatus: "not_ready",
			wantChecks: map[string]interface{}{
				"ai_credentials": "missing",
				"gateway_token":  "missing",
				"channels":       "telegram",
			},
		},
		{
			name: "gateway key with channels",
			worker: containerenv.WorkerEnv{
				GatewayAPIKey:   "gw-key",
				GatewayToken:    "token",
				DiscordBotToken: "discord",
				SlackBotToken:   "xoxb",
			},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]interface{}{
				"ai_credentials": "configured",
				"gateway_token":  "configured",
				"channels":       "discord,slack",
			},
		},
		{
			name:       "direct openai key",
			worker:     containerenv.WorkerEnv{OpenAIAPIKey: "sk-openai"},
			wantCode:   http.StatusOK,
			wantStatus: "ready",
			wantChecks: map[string]interface{}{
				"ai_credentials": "configured",
				"gateway_token":  "missing",
				"channels":       "none",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			ReadinessCheck(newTestDeps(t, tt.worker))(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			body := decode(t, w)
			assert.Equal(t, tt.wantStatus, body["status"])
			assert.Equal(t, tt.wantChecks, body["checks"])
		})
	}
}

func TestStatusHandler(t *testing.T) {
	deps := newTestDeps(t, containerenv.WorkerEnv{
		GatewayBaseURL: "https://gw.example/openai/",
		DevMode:        "true",
	})

	w := httptest.NewRecorder()
	StatusHandler(deps)(w, httptest.NewRequest(http.MethodGet, "/api/v1/status", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, app.Version, body["version"])
	assert.Equal(t, "test", body["environment"])
	assert.Equal(t, "openai", body["provider"])
	assert.Equal(t, true, body["dev_mode"])
}

func TestDebugEnvHandler(t *testing.T) {
	deps := newTestDeps(t, containerenv.WorkerEnv{
		AnthropicAPIKey: "sk-ant-api03-0123456789",
		Model:           "claude-sonnet-4",
	})

	req := httptest.NewRequest(http.MethodGet, "/debug/env", nil)
	req = req.WithContext(middleware.WithIdentity(req.Context(), &access.Identity{Email: "admin@example.com"}))
	w := httptest.NewRecorder()

	DebugEnvHandler(deps)(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "sk-ant-api03-0123456789")

	data := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, "anthropic", data["provider"])
	assert.Equal(t, []interface{}{containerenv.KeyAnthropicAPIKey, containerenv.KeyModel}, data["keys"])
	assert.Equal(t, "admin@example.com", data["caller"])

	env := data["env"].(map[string]interface{})
	assert.Equal(t, "sk-a****", env[containerenv.KeyAnthropicAPIKey])
	assert.Equal(t, "claude-sonnet-4", env[containerenv.KeyModel])
}

func TestDebugKeysHandler(t *testing.T) {
	deps := newTestDeps(t, containerenv.WorkerEnv{GatewayToken: "token", WorkerURL: "https://w.example"})

	w := httptest.NewRecorder()
	DebugKeysHandler(deps)(w, httptest.NewRequest(http.MethodGet, "/debug/env/keys", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data []KeyStatus `json:"data"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	require.Len(t, body.Data, len(containerenv.KnownKeys()))

	set := map[string]KeyStatus{}
	for _, k := range body.Data {
		if k.Set {
			set[k.Key] = k
		}
	}
	assert.Equal(t, map[string]KeyStatus{
		containerenv.KeyGatewayToken: {Key: containerenv.KeyGatewayToken, Set: true, Secret: true},
		containerenv.KeyWorkerURL:    {Key: containerenv.KeyWorkerURL, Set: true, Secret: false},
	}, set)
}

func TestDebugDotenvHandler(t *testing.T) {
	t.Run("renders redacted dotenv", func(t *testing.T) {
		deps := newTestDeps(t, containerenv.WorkerEnv{
			OpenAIAPIKey: "sk-proj-0123456789abcdef",
			Model:        "gpt-4o",
		})

		w := httptest.NewRecorder()
		DebugDotenvHandler(deps)(w, httptest.NewRequest(http.MethodGet, "/debug/env/dotenv", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
		assert.Equal(t, "MODEL=\"gpt-4o\"\nOPENAI_API_KEY=\"sk-p****\"\n", w.Body.String())
	})

	t.Run("unrenderable value is an internal error", func(t *testing.T) {
		deps := newTestDeps(t, containerenv.WorkerEnv{Model: "007"})

		w := httptest.NewRecorder()
		DebugDotenvHandler(deps)(w, httptest.NewRequest(http.MethodGet, "/debug/env/dotenv", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "007")
	})
}
