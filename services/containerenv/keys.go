package containerenv

import "sort"

// Worker binding names read from the gateway's environment.
const (
	BindingAIProvider       = "AI_PROVIDER"
	BindingGatewayAPIKey    = "AI_GATEWAY_API_KEY"
	BindingGatewayBaseURL   = "AI_GATEWAY_BASE_URL"
	BindingAnthropicAPIKey  = "ANTHROPIC_API_KEY"
	BindingAnthropicBaseURL = "ANTHROPIC_BASE_URL"
	BindingOpenAIAPIKey     = "OPENAI_API_KEY"
	BindingOpenAIBaseURL    = "OPENAI_BASE_URL"
	BindingModel            = "MODEL"
	BindingGatewayToken     = "MOLTBOT_GATEWAY_TOKEN"
	BindingDevMode          = "DEV_MODE"
	BindingBindMode         = "CLAWDBOT_BIND_MODE"
	BindingTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	BindingTelegramDMPolicy = "TELEGRAM_DM_POLICY"
	BindingDiscordBotToken  = "DISCORD_BOT_TOKEN"
	BindingDiscordDMPolicy  = "DISCORD_DM_POLICY"
	BindingSlackBotToken    = "SLACK_BOT_TOKEN"
	BindingSlackDMPolicy    = "SLACK_DM_POLICY"
	BindingSlackAppToken    = "SLACK_APP_TOKEN"
	BindingCDPSecret        = "CDP_SECRET"
	BindingWorkerURL        = "WORKER_URL"
)

// Environment variable names handed to the container.
const (
	KeyAnthropicAPIKey  = "ANTHROPIC_API_KEY"
	KeyOpenAIAPIKey     = "OPENAI_API_KEY"
	KeyAIProvider       = "AI_PROVIDER"
	KeyModel            = "MODEL"
	KeyGatewayBaseURL   = "AI_GATEWAY_BASE_URL"
	KeyOpenAIBaseURL    = "OPENAI_BASE_URL"
	KeyAnthropicBaseURL = "ANTHROPIC_BASE_URL"
	KeyGatewayToken     = "CLAWDBOT_GATEWAY_TOKEN"
	KeyDevMode          = "CLAWDBOT_DEV_MODE"
	KeyBindMode         = "CLAWDBOT_BIND_MODE"
	KeyTelegramBotToken = "TELEGRAM_BOT_TOKEN"
	KeyTelegramDMPolicy = "TELEGRAM_DM_POLICY"
	KeyDiscordBotToken  = "DISCORD_BOT_TOKEN"
	KeyDiscordDMPolicy  = "DISCORD_DM_POLICY"
	KeySlackBotToken    = "SLACK_BOT_TOKEN"
	KeySlackDMPolicy    = "SLACK_DM_POLICY"
	KeySlackAppToken    = "SLACK_APP_TOKEN"
	KeyCDPSecret        = "CDP_SECRET"
	KeyWorkerURL        = "WORKER_URL"
)

// knownKeys is the complete output key set. BuildEnvVars never emits
// anything outside of it.
var knownKeys = []string{
	KeyAnthropicAPIKey,
	KeyOpenAIAPIKey,
	KeyAIProvider,
	KeyModel,
	KeyGatewayBaseURL,
	KeyOpenAIBaseURL,
	KeyAnthropicBaseURL,
	KeyGatewayToken,
	KeyDevMode,
	KeyBindMode,
	KeyTelegramBotToken,
	KeyTelegramDMPolicy,
	KeyDiscordBotToken,
	KeyDiscordDMPolicy,
	KeySlackBotToken,
	KeySlackDMPolicy,
	KeySlackAppToken,
	KeyCDPSecret,
	KeyWorkerURL,
}

var secretKeys = map[string]bool{
	KeyAnthropicAPIKey:  true,
	KeyOpenAIAPIKey:     true,
	KeyGatewayToken:     true,
	KeyTelegramBotToken: true,
	KeyDiscordBotToken:  true,
	KeySlackBotToken:    true,
	KeySlackAppToken:    true,
	KeyCDPSecret:        true,
}

// KnownKeys returns the sorted set of every variable name BuildEnvVars can emit.
func KnownKeys() []string {
	keys := append([]string(nil), knownKeys...)
	sort.Strings(keys)
	return keys
}

// IsKnownKey reports whether key belongs to the output key set.
func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// IsSecret reports whether the value stored under key is a credential.
func IsSecret(key string) bool {
	return secretKeys[key]
}

// IsReserved reports whether key is a worker binding name or an output key.
// The container receives such names only through BuildEnvVars.
func IsReserved(key string) bool {
	if IsKnownKey(key) {
		return true
	}
	for _, name := range KnownBindings() {
		if name == key {
			return true
		}
	}
	return false
}
