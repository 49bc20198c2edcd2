package containerenv

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectProvider(t *testing.T) {
	tests := []struct {
		name string
		env  WorkerEnv
		want Provider
	}{
		{"defaults to anthropic", WorkerEnv{}, ProviderAnthropic},
		{"explicit openai", WorkerEnv{AIProvider: "openai"}, ProviderOpenAI},
		{"explicit anthropic", WorkerEnv{AIProvider: "anthropic"}, ProviderAnthropic},
		{"provider match is case sensitive", WorkerEnv{AIProvider: "OpenAI"}, ProviderAnthropic},
		{"openai gateway suffix", WorkerEnv{GatewayBaseURL: "https://gw.example/openai"}, ProviderOpenAI},
		{"openai gateway suffix with trailing slashes", WorkerEnv{GatewayBaseURL: "https://gw.example/openai//"}, ProviderOpenAI},
		{"suffix must be a path segment", WorkerEnv{GatewayBaseURL: "https://gw.example/notopenai"}, ProviderAnthropic},
		{"anthropic gateway", WorkerEnv{GatewayBaseURL: "https://gw.example/anthropic"}, ProviderAnthropic},
		{"direct openai url", WorkerEnv{OpenAIBaseURL: "https://api.example/v1"}, ProviderOpenAI},
		{"slash-only openai url is absent", WorkerEnv{OpenAIBaseURL: "/"}, ProviderAnthropic},
		{"direct openai url beats anthropic provider", WorkerEnv{AIProvider: "anthropic", OpenAIBaseURL: "https://api.example/v1"}, ProviderOpenAI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectProvider(tt.env))
		})
	}
}

func TestNormalizeBaseURL(t *testing.T) {
	assert.Equal(t, "https://x.example/openai", normalizeBaseURL("https://x.example/openai/"))
	assert.Equal(t, "https://x.example", normalizeBaseURL("https://x.example///"))
	assert.Equal(t, "https://x.example", normalizeBaseURL("https://x.example"))
	assert.Equal(t, "", normalizeBaseURL("//"))
	assert.Equal(t, "", normalizeBaseURL(""))
}

func TestProvider_String(t *testing.T) {
	assert.Equal(t, "openai", ProviderOpenAI.String())
	assert.Equal(t, "anthropic", ProviderAnthropic.String())
	assert.True(t, ProviderOpenAI.IsOpenAI())
	assert.False(t, ProviderAnthropic.IsOpenAI())
}
