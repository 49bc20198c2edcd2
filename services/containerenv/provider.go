package containerenv

import "strings"

// Provider is the API surface the container shapes its requests for.
type Provider string

const (
	ProviderAnthropic Provider = "anthropic"
	ProviderOpenAI    Provider = "openai"
)

// openAIGatewaySuffix marks a gateway endpoint that speaks the OpenAI API.
const openAIGatewaySuffix = "/openai"

// String returns the provider name.
func (p Provider) String() string {
	return string(p)
}

// IsOpenAI reports whether p is the OpenAI-compatible surface.
func (p Provider) IsOpenAI() bool {
	return p == ProviderOpenAI
}

// DetectProvider picks OpenAI when AI_PROVIDER says so, when the gateway URL
// points at an /openai endpoint, or when any direct OpenAI base URL is set.
// Everything else falls back to Anthropic.
//
// A direct OpenAI base URL selects OpenAI even when the key being routed is a
// gateway key; callers rely on that ordering.
func DetectProvider(env WorkerEnv) Provider {
	gatewayURL := normalizeBaseURL(env.GatewayBaseURL)
	openAIURL := normalizeBaseURL(env.OpenAIBaseURL)

	switch {
	case env.AIProvider == string(ProviderOpenAI):
		return ProviderOpenAI
	case strings.HasSuffix(gatewayURL, openAIGatewaySuffix):
		return ProviderOpenAI
	case openAIURL != "":
		return ProviderOpenAI
	default:
		return ProviderAnthropic
	}
}

// normalizeBaseURL strips every trailing slash.
func normalizeBaseURL(u string) string {
	return strings.TrimRight(u, "/")
}
