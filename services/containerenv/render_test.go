package containerenv

import (
	"os"
	"path/filepath"
	"testing"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/upb/moltbot-gateway/services"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestKnownKeys(t *testing.T) {
	keys := KnownKeys()

	assert.Len(t, keys, 19)
	assert.IsNonDecreasing(t, keys)
	assert.Contains(t, keys, KeyGatewayToken)
	assert.NotContains(t, keys, BindingGatewayToken)

	// callers get their own copy
	keys[0] = "MUTATED"
	assert.NotContains(t, KnownKeys(), "MUTATED")
}

func TestIsSecret(t *testing.T) {
	for _, k := range []string{KeyAnthropicAPIKey, KeyOpenAIAPIKey, KeyGatewayToken, KeySlackAppToken, KeyCDPSecret} {
		assert.True(t, IsSecret(k), k)
	}
	for _, k := range []string{KeyModel, KeyAIProvider, KeyWorkerURL, KeyTelegramDMPolicy, KeyGatewayBaseURL} {
		assert.False(t, IsSecret(k), k)
	}
}

func TestEnvVars_Redact(t *testing.T) {
	vars := EnvVars{
		KeyAnthropicAPIKey: "sk-ant-api03-abcdefghijkl",
		KeyGatewayToken:    "short",
		KeyModel:           "claude-sonnet-4",
	}

	redacted := vars.Redact()

	assert.Equal(t, "sk-a****", redacted[KeyAnthropicAPIKey])
	assert.Equal(t, "****", redacted[KeyGatewayToken])
	assert.Equal(t, "claude-sonnet-4", redacted[KeyModel])
	assert.Equal(t, "sk-ant-api03-abcdefghijkl", vars[KeyAnthropicAPIKey], "input must stay intact")
}

func TestEnvVars_RedactMultibyte(t *testing.T) {
	vars := EnvVars{
		KeyCDPSecret:    "ñandú-secreto-largo",
		KeyGatewayToken: "ééééé",
	}

	redacted := vars.Redact()

	assert.Equal(t, "ñand****", redacted[KeyCDPSecret])
	assert.True(t, utf8.ValidString(redacted[KeyCDPSecret]))
	assert.Equal(t, "****", redacted[KeyGatewayToken])
}

func TestEnvVars_Render(t *testing.T) {
	vars := EnvVars{
		KeyWorkerURL: "https://worker.example",
		KeyModel:     "gpt-4o",
	}

	out, err := vars.Render()
	require.NoError(t, err)
	assert.Equal(t, "MODEL=\"gpt-4o\"\nWORKER_URL=\"https://worker.example\"", out)

	parsed, err := godotenv.Unmarshal(out)
	require.NoError(t, err)
	assert.Equal(t, map[string]string(vars), parsed)
}

func TestEnvVars_RenderRejectsLossyIntegers(t *testing.T) {
	vars := EnvVars{KeyGatewayToken: "0042"}

	_, err := vars.Render()
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrRenderFailed)
	assert.Contains(t, err.Error(), KeyGatewayToken)
	assert.Equal(t, KeyGatewayToken, services.GetErrorDetails(err)["key"])

	out, err := EnvVars{KeyGatewayToken: "42"}.Render()
	require.NoError(t, err)
	assert.Equal(t, "CLAWDBOT_GATEWAY_TOKEN=42", out)
}

func TestEnvVars_WriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "container.env")
	vars := BuildEnvVars(WorkerEnv{
		GatewayAPIKey:  "gw-key",
		GatewayBaseURL: "https://gw.example/openai/",
	})

	require.NoError(t, vars.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `AI_GATEWAY_BASE_URL="https://gw.example/openai"`)

	parsed, err := godotenv.Read(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string(vars), parsed)
}

func TestEnvVars_WriteFileFailure(t *testing.T) {
	vars := EnvVars{KeyModel: "gpt-4o"}

	err := vars.WriteFile(filepath.Join(t.TempDir(), "missing", "container.env"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write env file")
}

func TestEnvVars_Channels(t *testing.T) {
	vars := EnvVars{
		KeySlackBotToken:    "xoxb",
		KeyTelegramBotToken: "123:abc",
		KeyDiscordDMPolicy:  "open",
	}

	assert.Equal(t, []string{"telegram", "slack"}, vars.Channels())
	assert.Empty(t, EnvVars{}.Channels())
}

func TestEnvVars_MarshalLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	vars := EnvVars{
		KeyOpenAIAPIKey: "sk-proj-0123456789abcdef",
		KeyModel:        "gpt-4o",
	}
	logger.Info("container env", zap.Object("env", vars))

	require.Equal(t, 1, logs.Len())
	logged := logs.All()[0].ContextMap()["env"].(map[string]interface{})
	assert.Equal(t, "sk-p****", logged[KeyOpenAIAPIKey])
	assert.Equal(t, "gpt-4o", logged[KeyModel])
}

func TestSummary_MarshalLogObject(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := zap.New(core)

	env := WorkerEnv{
		GatewayAPIKey:  "gw-0123456789abcdef",
		GatewayBaseURL: "https://gw.example/openai",
	}
	logger.Info("container env resolved", zap.Object("env", Summarize(env, BuildEnvVars(env))))

	require.Equal(t, 1, logs.Len())
	logged := logs.All()[0].ContextMap()["env"].(map[string]interface{})
	assert.Equal(t, "openai", logged["provider"])
	assert.EqualValues(t, 3, logged["count"])
	assert.Equal(t, []interface{}{KeyGatewayBaseURL, KeyOpenAIAPIKey, KeyOpenAIBaseURL}, logged["keys"])

	values := logged["values"].(map[string]interface{})
	assert.Equal(t, "gw-0****", values[KeyOpenAIAPIKey])
}
