// Package containerenv derives the environment handed to the agent container
// from the gateway's worker bindings.
package containerenv

// EnvVars maps environment variable names to values. Only keys with a
// non-empty value are ever present.
type EnvVars map[string]string

// BuildEnvVars translates worker bindings into the container environment.
//
// Gateway credentials take precedence over direct provider credentials, and
// the gateway key is routed to the OpenAI or Anthropic variable depending on
// the detected provider. The function never fails: bindings that are missing
// or empty simply produce no key.
func BuildEnvVars(env WorkerEnv) EnvVars {
	vars := make(EnvVars)

	gatewayURL := normalizeBaseURL(env.GatewayBaseURL)
	openAIURL := normalizeBaseURL(env.OpenAIBaseURL)
	provider := DetectProvider(env)

	if env.GatewayAPIKey != "" {
		if provider.IsOpenAI() {
			vars[KeyOpenAIAPIKey] = env.GatewayAPIKey
		} else {
			vars[KeyAnthropicAPIKey] = env.GatewayAPIKey
		}
	}

	// Direct keys only fill what the gateway key left unset.
	if vars[KeyAnthropicAPIKey] == "" && env.AnthropicAPIKey != "" {
		vars[KeyAnthropicAPIKey] = env.AnthropicAPIKey
	}
	if vars[KeyOpenAIAPIKey] == "" && env.OpenAIAPIKey != "" {
		vars[KeyOpenAIAPIKey] = env.OpenAIAPIKey
	}

	vars.set(KeyAIProvider, env.AIProvider)
	vars.set(KeyModel, env.Model)

	switch {
	case gatewayURL != "":
		vars[KeyGatewayBaseURL] = gatewayURL
		if provider.IsOpenAI() {
			vars[KeyOpenAIBaseURL] = gatewayURL
		} else {
			vars[KeyAnthropicBaseURL] = gatewayURL
		}
	case openAIURL != "":
		vars[KeyOpenAIBaseURL] = openAIURL
	case env.AnthropicBaseURL != "":
		vars[KeyAnthropicBaseURL] = env.AnthropicBaseURL
	}

	// The container reads the gateway token and dev flag under its own prefix.
	vars.set(KeyGatewayToken, env.GatewayToken)
	vars.set(KeyDevMode, env.DevMode)

	vars.set(KeyBindMode, env.BindMode)
	vars.set(KeyTelegramBotToken, env.TelegramBotToken)
	vars.set(KeyTelegramDMPolicy, env.TelegramDMPolicy)
	vars.set(KeyDiscordBotToken, env.DiscordBotToken)
	vars.set(KeyDiscordDMPolicy, env.DiscordDMPolicy)
	vars.set(KeySlackBotToken, env.SlackBotToken)
	vars.set(KeySlackDMPolicy, env.SlackDMPolicy)
	vars.set(KeySlackAppToken, env.SlackAppToken)
	vars.set(KeyCDPSecret, env.CDPSecret)
	vars.set(KeyWorkerURL, env.WorkerURL)

	return vars
}

func (v EnvVars) set(key, value string) {
	if value != "" {
		v[key] = value
	}
}

// Has reports whether key carries a value.
func (v EnvVars) Has(key string) bool {
	return v[key] != ""
}

// HasAICredentials reports whether the container can reach a model provider.
func (v EnvVars) HasAICredentials() bool {
	return v.Has(KeyAnthropicAPIKey) || v.Has(KeyOpenAIAPIKey)
}

// Environ returns the variables as KEY=value pairs in sorted key order.
func (v EnvVars) Environ() []string {
	keys := v.Keys()
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+"="+v[k])
	}
	return out
}
