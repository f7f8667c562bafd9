package main

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/Vovarama1992/aigizi-wa-bridge/internal/ai"
	"github.com/Vovarama1992/aigizi-wa-bridge/internal/relay"
)

func initViperDefaults() {
	viper.SetDefault("server.port", "8000")

	viper.SetDefault("llm.provider", "gemini")
	viper.SetDefault("llm.max_tokens", ai.DefaultMaxTokens)
	viper.SetDefault("llm.timeout", ai.DefaultTimeout)
	viper.SetDefault("llm.rate_per_minute", 0)

	viper.SetDefault("fonnte.send_url", relay.DefaultFonnteSendURL)
	viper.SetDefault("fonnte.country_code", relay.DefaultCountryCode)
	viper.SetDefault("fonnte.timeout", relay.DefaultSendTimeout)

	viper.SetDefault("webhook.ping_on_get", false)

	viper.SetDefault("logging.format", "text")
	viper.SetDefault("logging.add_source", false)
	viper.SetDefault("logging.mask_numbers", false)

	viper.SetDefault("shutdown_timeout", 10*time.Second)
}

// bindLegacyEnv keeps the plain variable names used by existing deployments working
// alongside the AIGIZI_ prefixed ones.
func bindLegacyEnv() {
	_ = viper.BindEnv("server.port", envPrefix+"_SERVER_PORT", "PORT")
	_ = viper.BindEnv("llm.provider", envPrefix+"_LLM_PROVIDER", "LLM_PROVIDER")
	_ = viper.BindEnv("llm.api_key", envPrefix+"_LLM_API_KEY")
	_ = viper.BindEnv("llm.base_url", envPrefix+"_LLM_BASE_URL", "LLM_BASE_URL")
	_ = viper.BindEnv("llm.model", envPrefix+"_LLM_MODEL", "LLM_MODEL")
	_ = viper.BindEnv("fonnte.token", envPrefix+"_FONNTE_TOKEN", "FONNTE_TOKEN")
	_ = viper.BindEnv("fonnte.send_url", envPrefix+"_FONNTE_SEND_URL", "FONNTE_SEND_URL")
	_ = viper.BindEnv("webhook.test_recipient", envPrefix+"_WEBHOOK_TEST_RECIPIENT", "TEST_RECIPIENT")
}

// providerKeyEnv maps llm.provider to the plain API key variable it reads.
var providerKeyEnv = map[string]string{
	"":          "GEMINI_API_KEY",
	"gemini":    "GEMINI_API_KEY",
	"openai":    "OPENAI_API_KEY",
	"anthropic": "ANTHROPIC_API_KEY",
}

// resolveAPIKey prefers llm.api_key, then the selected provider's own variable.
// Keys meant for other providers are never picked up.
func resolveAPIKey(provider, configured string) string {
	if key := strings.TrimSpace(configured); key != "" {
		return key
	}
	env, ok := providerKeyEnv[strings.ToLower(strings.TrimSpace(provider))]
	if !ok {
		return ""
	}
	return strings.TrimSpace(os.Getenv(env))
}
