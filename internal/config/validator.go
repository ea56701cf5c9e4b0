package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// ValidateConfig validates configuration values and returns an error if any
// are invalid or missing. Call after Load.
func ValidateConfig() error {
	var errors []string

	for _, key := range []string{"jira.url", "jira.username", "jira.api_token"} {
		if viper.GetString(key) == "" {
			errors = append(errors, fmt.Sprintf("%s is required", key))
		}
	}

	if viper.GetString("github.token") == "" {
		errors = append(errors, "github.token is required")
	}

	provider := viper.GetString("provider")
	switch provider {
	case "anthropic", "openai", "mock":
	default:
		errors = append(errors, fmt.Sprintf("unknown provider: %q", provider))
	}
	if provider != "mock" && viper.GetString("api_key") == "" {
		errors = append(errors, "api_key is required for provider "+provider)
	}

	for _, key := range []string{"max_diff_bytes", "max_context_bytes", "max_payload_bytes"} {
		if viper.GetInt(key) <= 0 {
			errors = append(errors, fmt.Sprintf("%s must be positive, got: %d", key, viper.GetInt(key)))
		}
	}

	if viper.IsSet("metrics_port") {
		port := viper.GetInt("metrics_port")
		if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("metrics_port must be between 1 and 65535, got: %d", port))
		}
	}

	switch viper.GetString("store.type") {
	case "", "sqlite", "postgres":
	default:
		errors = append(errors, fmt.Sprintf("unknown store.type: %q", viper.GetString("store.type")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errors, "\n  "))
	}
	return nil
}

// ValidateAndExit validates the configuration and exits with a non-zero code
// if validation fails.
func ValidateAndExit() {
	if err := ValidateConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
