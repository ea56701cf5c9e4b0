// Package config loads settings from config.yaml, .env and environment
// variables, and materializes them into a typed Config for the pipeline.
package config

import "github.com/spf13/viper"

// Config is the fully resolved runtime configuration.
type Config struct {
	Jira            JiraConfig
	GitHub          GitHubConfig
	Provider        string
	Model           string
	APIKey          string
	Store           StoreConfig
	Slack           SlackConfig
	ExportPath      string
	MaxDiffBytes    int
	MaxContextBytes int
	MaxPayloadBytes int
	MetricsPort     int
	Preview         bool
}

// JiraConfig is the ticket-tracker connection and field mapping.
type JiraConfig struct {
	URL              string
	Username         string
	APIToken         string
	JQL              string
	DescriptionField string
	CriteriaField    string
	TestCasesField   string
}

// GitHubConfig is the code-host connection.
type GitHubConfig struct {
	Token  string
	APIURL string
}

// StoreConfig selects the run-history backend.
type StoreConfig struct {
	Type string
	DSN  string
}

// SlackConfig controls run-summary notifications.
type SlackConfig struct {
	Enabled bool
	Token   string
	Channel string
}

// FromViper reads the loaded viper state into a Config.
func FromViper() Config {
	return Config{
		Jira: JiraConfig{
			URL:              viper.GetString("jira.url"),
			Username:         viper.GetString("jira.username"),
			APIToken:         viper.GetString("jira.api_token"),
			JQL:              viper.GetString("jira.jql"),
			DescriptionField: viper.GetString("jira.description_field"),
			CriteriaField:    viper.GetString("jira.criteria_field"),
			TestCasesField:   viper.GetString("jira.testcases_field"),
		},
		GitHub: GitHubConfig{
			Token:  viper.GetString("github.token"),
			APIURL: viper.GetString("github.api_url"),
		},
		Provider: viper.GetString("provider"),
		Model:    viper.GetString("model"),
		APIKey:   viper.GetString("api_key"),
		Store: StoreConfig{
			Type: viper.GetString("store.type"),
			DSN:  viper.GetString("store.dsn"),
		},
		Slack: SlackConfig{
			Enabled: viper.GetBool("notifications.slack.enabled"),
			Token:   viper.GetString("notifications.slack.token"),
			Channel: viper.GetString("notifications.slack.channel"),
		},
		ExportPath:      viper.GetString("export_path"),
		MaxDiffBytes:    viper.GetInt("max_diff_bytes"),
		MaxContextBytes: viper.GetInt("max_context_bytes"),
		MaxPayloadBytes: viper.GetInt("max_payload_bytes"),
		MetricsPort:     viper.GetInt("metrics_port"),
		Preview:         viper.GetBool("preview"),
	}
}
