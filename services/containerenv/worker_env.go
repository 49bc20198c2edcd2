package containerenv

// WorkerEnv holds the bindings the gateway was started with. An empty field
// is treated exactly like a missing binding.
type WorkerEnv struct {
	AIProvider       string `yaml:"AI_PROVIDER"`
	GatewayAPIKey    string `yaml:"AI_GATEWAY_API_KEY"`
	GatewayBaseURL   string `yaml:"AI_GATEWAY_BASE_URL"`
	AnthropicAPIKey  string `yaml:"ANTHROPIC_API_KEY"`
	AnthropicBaseURL string `yaml:"ANTHROPIC_BASE_URL"`
	OpenAIAPIKey     string `yaml:"OPENAI_API_KEY"`
	OpenAIBaseURL    string `yaml:"OPENAI_BASE_URL"`
	Model            string `yaml:"MODEL"`
	GatewayToken     string `yaml:"MOLTBOT_GATEWAY_TOKEN"`
	DevMode          string `yaml:"DEV_MODE"`
	BindMode         string `yaml:"CLAWDBOT_BIND_MODE"`
	TelegramBotToken string `yaml:"TELEGRAM_BOT_TOKEN"`
	TelegramDMPolicy string `yaml:"TELEGRAM_DM_POLICY"`
	DiscordBotToken  string `yaml:"DISCORD_BOT_TOKEN"`
	DiscordDMPolicy  string `yaml:"DISCORD_DM_POLICY"`
	SlackBotToken    string `yaml:"SLACK_BOT_TOKEN"`
	SlackDMPolicy    string `yaml:"SLACK_DM_POLICY"`
	SlackAppToken    string `yaml:"SLACK_APP_TOKEN"`
	CDPSecret        string `yaml:"CDP_SECRET"`
	WorkerURL        string `yaml:"WORKER_URL"`
}

// bindings pairs every binding name with a pointer to its field.
func (e *WorkerEnv) bindings() []struct {
	name  string
	value *string
} {
	return []struct {
		name  string
		value *string
	}{
		{BindingAIProvider, &e.AIProvider},
		{BindingGatewayAPIKey, &e.GatewayAPIKey},
		{BindingGatewayBaseURL, &e.GatewayBaseURL},
		{BindingAnthropicAPIKey, &e.AnthropicAPIKey},
		{BindingAnthropicBaseURL, &e.AnthropicBaseURL},
		{BindingOpenAIAPIKey, &e.OpenAIAPIKey},
		{BindingOpenAIBaseURL, &e.OpenAIBaseURL},
		{BindingModel, &e.Model},
		{BindingGatewayToken, &e.GatewayToken},
		{BindingDevMode, &e.DevMode},
		{BindingBindMode, &e.BindMode},
		{BindingTelegramBotToken, &e.TelegramBotToken},
		{BindingTelegramDMPolicy, &e.TelegramDMPolicy},
		{BindingDiscordBotToken, &e.DiscordBotToken},
		{BindingDiscordDMPolicy, &e.DiscordDMPolicy},
		{BindingSlackBotToken, &e.SlackBotToken},
		{BindingSlackDMPolicy, &e.SlackDMPolicy},
		{BindingSlackAppToken, &e.SlackAppToken},
		{BindingCDPSecret, &e.CDPSecret},
		{BindingWorkerURL, &e.WorkerURL},
	}
}

// KnownBindings returns every binding name in declaration order.
func KnownBindings() []string {
	var env WorkerEnv
	bindings := env.bindings()
	names := make([]string, 0, len(bindings))
	for _, b := range bindings {
		names = append(names, b.name)
	}
	return names
}

// FromLookup fills a WorkerEnv from a lookup function such as os.LookupEnv.
func FromLookup(lookup func(string) (string, bool)) WorkerEnv {
	var env WorkerEnv
	for _, b := range env.bindings() {
		if v, ok := lookup(b.name); ok {
			*b.value = v
		}
	}
	return env
}

// FromMap fills a WorkerEnv from binding names to values.
func FromMap(m map[string]string) WorkerEnv {
	return FromLookup(func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	})
}

// Merge returns a copy of e where every non-empty field of overlay wins.
func (e WorkerEnv) Merge(overlay WorkerEnv) WorkerEnv {
	merged := e
	src := overlay.bindings()
	for i, b := range merged.bindings() {
		if v := *src[i].value; v != "" {
			*b.value = v
		}
	}
	return merged
}

// BindingNames returns the names of the non-empty bindings in declaration order.
func (e WorkerEnv) BindingNames() []string {
	var names []string
	for _, b := range e.bindings() {
		if *b.value != "" {
			names = append(names, b.name)
		}
	}
	return names
}
