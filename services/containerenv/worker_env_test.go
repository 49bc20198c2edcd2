package containerenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromMap(t *testing.T) {
	env := FromMap(map[string]string{
		"AI_GATEWAY_API_KEY":    "gw-key",
		"MOLTBOT_GATEWAY_TOKEN": "token",
		"SLACK_APP_TOKEN":       "xapp",
		"UNRELATED":             "ignored",
	})

	assert.Equal(t, WorkerEnv{
		GatewayAPIKey: "gw-key",
		GatewayToken:  "token",
		SlackAppToken: "xapp",
	}, env)
}

func TestFromLookup(t *testing.T) {
	calls := map[string]int{}
	env := FromLookup(func(key string) (string, bool) {
		calls[key]++
		if key == BindingWorkerURL {
			return "https://worker.example", true
		}
		return "", false
	})

	assert.Equal(t, "https://worker.example", env.WorkerURL)
	assert.Len(t, calls, 20)
	for name, n := range calls {
		assert.Equal(t, 1, n, "binding %s looked up more than once", name)
	}
}

func TestWorkerEnv_Merge(t *testing.T) {
	base := WorkerEnv{
		AIProvider:      "anthropic",
		AnthropicAPIKey: "base-key",
		WorkerURL:       "https://base.example",
	}
	overlay := WorkerEnv{
		AIProvider: "openai",
		WorkerURL:  "",
		Model:      "gpt-4o",
	}

	merged := base.Merge(overlay)

	assert.Equal(t, "openai", merged.AIProvider)
	assert.Equal(t, "base-key", merged.AnthropicAPIKey)
	assert.Equal(t, "https://base.example", merged.WorkerURL)
	assert.Equal(t, "gpt-4o", merged.Model)

	// neither side is modified
	assert.Equal(t, "anthropic", base.AIProvider)
	assert.Empty(t, overlay.WorkerURL)
}

func TestWorkerEnv_BindingNames(t *testing.T) {
	env := WorkerEnv{
		AIProvider: "openai",
		CDPSecret:  "secret",
	}

	assert.Equal(t, []string{BindingAIProvider, BindingCDPSecret}, env.BindingNames())
	assert.Empty(t, WorkerEnv{}.BindingNames())
}

func TestKnownBindings(t *testing.T) {
	names := KnownBindings()

	assert.Len(t, names, 20)
	assert.Equal(t, BindingAIProvider, names[0])
	assert.Contains(t, names, BindingDevMode)
	assert.Contains(t, names, BindingGatewayToken)
	assert.NotContains(t, names, KeyGatewayToken)
}
