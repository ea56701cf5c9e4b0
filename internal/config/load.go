package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load initializes the configuration from file and environment variables.
func Load(cfgFile string) {
	// explicit .env loading; a missing .env is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("QADRAFT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Standard env vars take over when the prefixed ones are absent.
	bindFallback("jira.url", "JIRA_URL")
	bindFallback("jira.username", "JIRA_EMAIL", "JIRA_USERNAME")
	bindFallback("jira.api_token", "JIRA_API_TOKEN")
	bindFallback("github.token", "GITHUB_TOKEN")
	bindFallback("notifications.slack.token", "SLACK_BOT_USER_TOKEN")

	viper.SetDefault("provider", "anthropic")
	viper.SetDefault("model", "claude-sonnet-4-20250514")
	viper.SetDefault("github.api_url", "https://api.github.com")
	viper.SetDefault("jira.description_field", "description")
	viper.SetDefault("max_diff_bytes", 2000)
	viper.SetDefault("max_context_bytes", 8000)
	viper.SetDefault("max_payload_bytes", 120000)
	viper.SetDefault("export_path", "qadraft_export.json")
	viper.SetDefault("store.type", "sqlite")
	viper.SetDefault("metrics_port", 2112)
	viper.SetDefault("verbose", false)
	viper.SetDefault("preview", false)

	slackEnabled := os.Getenv("SLACK_BOT_USER_TOKEN") != ""
	viper.SetDefault("notifications.slack.enabled", slackEnabled)
	viper.SetDefault("notifications.slack.channel", "#qa")

	// If a config file is found, read it in. Absence is not an error.
	_ = viper.ReadInConfig()

	// The api_key fallback is provider-aware, so a key saved for the
	// configured provider wins over the other provider's key. Resolved after
	// the config file so a file-set provider counts.
	switch viper.GetString("provider") {
	case "openai":
		bindFallback("api_key", "OPENAI_API_KEY", "ANTHROPIC_API_KEY")
	default:
		bindFallback("api_key", "ANTHROPIC_API_KEY", "OPENAI_API_KEY")
	}
}

func bindFallback(key string, envVars ...string) {
	for _, name := range envVars {
		if v := os.Getenv(name); v != "" {
			viper.SetDefault(key, v)
			return
		}
	}
}
