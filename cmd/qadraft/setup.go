package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Wrapper for survey functions to allow mocking in tests
var askOneFunc = survey.AskOne

// setupCmd represents the setup command
var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Interactively set up QAdraft configuration",
	Long:  `Runs an interactive wizard to configure the Jira connection, the code host token, the AI provider and notifications.`,
	RunE:  runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	fmt.Println("Welcome to QAdraft Setup!")
	fmt.Println("-------------------------")

	answers := struct {
		JiraURL      string
		JiraUser     string
		JiraToken    string
		GithubToken  string
		Provider     string
		Model        string
		ApiKey       string
		JQL          string
		SaveToEnv    bool
		EnableSlack  bool
		SlackChannel string
		SlackToken   string
	}{}

	// 1. Jira connection
	if err := askOneFunc(&survey.Input{
		Message: "Jira URL (e.g. https://yourcompany.atlassian.net):",
		Default: viper.GetString("jira.url"),
	}, &answers.JiraURL, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	if err := askOneFunc(&survey.Input{
		Message: "Jira username / email:",
		Default: viper.GetString("jira.username"),
	}, &answers.JiraUser, survey.WithValidator(survey.Required)); err != nil {
		return err
	}
	if err := askOneFunc(&survey.Password{
		Message: "Jira API token (leave empty to keep current):",
	}, &answers.JiraToken); err != nil {
		return err
	}

	// 2. Code host
	if err := askOneFunc(&survey.Password{
		Message: "GitHub token (leave empty to keep current):",
	}, &answers.GithubToken); err != nil {
		return err
	}

	// 3. Provider and model
	if err := askOneFunc(&survey.Select{
		Message: "Choose your AI Provider:",
		Options: []string{"anthropic", "openai", "mock"},
		Default: "anthropic",
	}, &answers.Provider); err != nil {
		return err
	}

	defaultModel := "claude-sonnet-4-20250514"
	if answers.Provider == "openai" {
		defaultModel = "gpt-4-turbo"
	}
	if err := askOneFunc(&survey.Input{
		Message: "Enter the Model name:",
		Default: defaultModel,
	}, &answers.Model); err != nil {
		return err
	}

	if answers.Provider != "mock" {
		if err := askOneFunc(&survey.Password{
			Message: "Enter your API Key (leave empty to skip):",
		}, &answers.ApiKey); err != nil {
			return err
		}
	}

	// 4. Default query
	if err := askOneFunc(&survey.Input{
		Message: "Default JQL query:",
		Default: `status = "In QA" ORDER BY updated DESC`,
	}, &answers.JQL); err != nil {
		return err
	}

	if answers.ApiKey != "" || answers.JiraToken != "" || answers.GithubToken != "" {
		if err := askOneFunc(&survey.Confirm{
			Message: "Do you want to save the secrets to a local .env file?",
			Default: true,
		}, &answers.SaveToEnv); err != nil {
			return err
		}
	}

	// 5. Notifications
	if err := askOneFunc(&survey.Confirm{
		Message: "Enable Slack notifications?",
		Default: false,
	}, &answers.EnableSlack); err != nil {
		return err
	}
	if answers.EnableSlack {
		if err := askOneFunc(&survey.Input{
			Message: "Slack Channel:",
			Default: "#qa",
		}, &answers.SlackChannel); err != nil {
			return err
		}
		if err := askOneFunc(&survey.Password{
			Message: "Slack Bot Token:",
		}, &answers.SlackToken); err != nil {
			return err
		}
	}

	// --- Saving Configuration ---

	viper.Set("jira.url", answers.JiraURL)
	viper.Set("jira.username", answers.JiraUser)
	viper.Set("jira.jql", answers.JQL)
	viper.Set("provider", answers.Provider)
	viper.Set("model", answers.Model)
	if answers.EnableSlack {
		viper.Set("notifications.slack.enabled", true)
		viper.Set("notifications.slack.channel", answers.SlackChannel)
	}

	configFile := viper.ConfigFileUsed()
	if configFile == "" {
		configFile = "config.yaml"
	}
	if err := viper.WriteConfigAs(configFile); err != nil {
		fmt.Printf("Warning: Could not write %s: %v\n", configFile, err)
	} else {
		fmt.Printf("Configuration saved to %s\n", configFile)
	}

	if answers.SaveToEnv {
		secrets := map[string]string{}
		if answers.JiraToken != "" {
			secrets["JIRA_API_TOKEN"] = answers.JiraToken
		}
		if answers.GithubToken != "" {
			secrets["GITHUB_TOKEN"] = answers.GithubToken
		}
		if answers.ApiKey != "" {
			switch answers.Provider {
			case "openai":
				secrets["OPENAI_API_KEY"] = answers.ApiKey
			default:
				secrets["ANTHROPIC_API_KEY"] = answers.ApiKey
			}
		}
		if answers.SlackToken != "" {
			secrets["SLACK_BOT_USER_TOKEN"] = answers.SlackToken
		}
		if err := appendEnvSecrets(".env", secrets); err != nil {
			fmt.Printf("Error writing .env: %v\n", err)
		} else if len(secrets) > 0 {
			fmt.Println("Secrets saved to .env")
		}
	}

	fmt.Println("\nSetup complete! Run 'qadraft run' to draft test cases.")
	return nil
}

// appendEnvSecrets appends the given keys to the .env file, skipping keys
// that already exist.
func appendEnvSecrets(path string, secrets map[string]string) error {
	if len(secrets) == 0 {
		return nil
	}

	existing, _ := os.ReadFile(path)
	existingStr := string(existing)

	var lines []string
	for key, value := range secrets {
		if strings.Contains(existingStr, key+"=") {
			fmt.Printf("Note: %s already exists in .env, skipping.\n", key)
			continue
		}
		lines = append(lines, fmt.Sprintf("%s=%s", key, value))
	}
	if len(lines) == 0 {
		return nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	content := ""
	if len(existing) > 0 && !strings.HasSuffix(existingStr, "\n") {
		content = "\n"
	}
	content += strings.Join(lines, "\n") + "\n"
	_, err = f.WriteString(content)
	return err
}
