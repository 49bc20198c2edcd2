package containerenv

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/upb/moltbot-gateway/services"
	"go.uber.org/zap/zapcore"
)

const (
	redactedMask = "****"
	// hintLen characters of a secret are kept when the secret is long
	// enough that the hint does not give it away.
	hintLen      = 4
	minHintedLen = 12
)

// Keys returns the set keys in sorted order.
func (v EnvVars) Keys() []string {
	keys := make([]string, 0, len(v))
	for k := range v {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Redact returns a copy of v with every credential masked.
func (v EnvVars) Redact() EnvVars {
	out := make(EnvVars, len(v))
	for k, val := range v {
		if IsSecret(k) {
			out[k] = redactValue(val)
			continue
		}
		out[k] = val
	}
	return out
}

func redactValue(val string) string {
	runes := []rune(val)
	if len(runes) < minHintedLen {
		return redactedMask
	}
	return string(runes[:hintLen]) + redactedMask
}

// Render serializes v in dotenv format, one sorted KEY="value" line per key.
// Integer values are written unquoted, so a value such as "0042" that would
// not survive that conversion is rejected.
func (v EnvVars) Render() (string, error) {
	for _, k := range v.Keys() {
		if n, err := strconv.Atoi(v[k]); err == nil && strconv.Itoa(n) != v[k] {
			return "", services.ErrRenderFailed.Wrap(fmt.Errorf("%s is not representable in dotenv", k)).
				WithDetail("key", k)
		}
	}
	out, err := godotenv.Marshal(v)
	if err != nil {
		return "", services.ErrRenderFailed.Wrap(err)
	}
	return out, nil
}

// WriteFile writes v to path in dotenv format.
func (v EnvVars) WriteFile(path string) error {
	if _, err := v.Render(); err != nil {
		return err
	}
	if err := godotenv.Write(v, path); err != nil {
		return fmt.Errorf("failed to write env file %s: %w", path, err)
	}
	return nil
}

// Channels returns the chat platforms that have a bot token configured.
func (v EnvVars) Channels() []string {
	var channels []string
	for _, c := range []struct {
		name string
		key  string
	}{
		{"telegram", KeyTelegramBotToken},
		{"discord", KeyDiscordBotToken},
		{"slack", KeySlackBotToken},
	} {
		if v.Has(c.key) {
			channels = append(channels, c.name)
		}
	}
	return channels
}

// MarshalLogObject logs the key names and redacted values, never raw secrets.
func (v EnvVars) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	redacted := v.Redact()
	for _, k := range redacted.Keys() {
		enc.AddString(k, redacted[k])
	}
	return nil
}

// Summary is the log view of a derived environment: the provider, the set
// keys and their redacted values.
type Summary struct {
	Provider Provider
	Vars     EnvVars
}

// Summarize pairs the derived variables with the provider detected from env.
func Summarize(env WorkerEnv, vars EnvVars) Summary {
	return Summary{Provider: DetectProvider(env), Vars: vars}
}

// MarshalLogObject implements zapcore.ObjectMarshaler.
func (s Summary) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("provider", s.Provider.String())
	enc.AddInt("count", len(s.Vars))
	if err := enc.AddArray("keys", zapcore.ArrayMarshalerFunc(func(arr zapcore.ArrayEncoder) error {
		for _, k := range s.Vars.Keys() {
			arr.AppendString(k)
		}
		return nil
	})); err != nil {
		return err
	}
	return enc.AddObject("values", s.Vars)
}
