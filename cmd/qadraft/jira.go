package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"qadraft/internal/config"
	"qadraft/internal/jira"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var jiraAskOne = survey.AskOne

// jiraCmd represents the jira command
var jiraCmd = &cobra.Command{
	Use:   "jira",
	Short: "Jira integration commands",
	Long:  "Commands for inspecting the Jira connection, tickets and fields",
}

var jiraTestAuthCmd = &cobra.Command{
	Use:   "test-auth",
	Short: "Test Jira authentication",
	Long: `Test Jira authentication using credentials from environment variables or config.

Environment variables:
  JIRA_URL       - Jira instance URL (e.g., https://yourcompany.atlassian.net)
  JIRA_EMAIL     - Jira username or email
  JIRA_API_TOKEN - Jira API token

Or configure in config.yaml:
  jira:
    url: https://yourcompany.atlassian.net
    username: user@example.com
    api_token: your-api-token`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		client, err := newJiraClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit(1)
			return
		}

		if err := client.Authenticate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Error: Authentication failed: %v\n", err)
			exit(1)
			return
		}

		fmt.Println("Success: Jira authentication successful!")
	},
}

var jiraGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Get a Jira ticket by key",
	Long:  `Fetch and display a Jira ticket by its key (e.g., PROJ-123), including the resolved description and acceptance criteria text.`,
	Run: func(cmd *cobra.Command, args []string) {
		ticketKey, _ := cmd.Flags().GetString("key")
		if ticketKey == "" {
			fmt.Fprintf(os.Stderr, "Error: --key flag is required\n")
			fmt.Fprintf(os.Stderr, "Usage: %s jira get --key PROJ-123\n", os.Args[0])
			exit(1)
			return
		}

		ctx := context.Background()
		client, err := newJiraClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit(1)
			return
		}

		cfg := config.FromViper()
		criteriaField := cfg.Jira.CriteriaField
		if criteriaField == "" {
			criteriaField, _ = client.FindCriteriaField(ctx)
		}

		tickets, err := client.SearchTickets(ctx, fmt.Sprintf("key = %s", ticketKey), cfg.Jira.DescriptionField, criteriaField)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exit(1)
			return
		}
		if len(tickets) == 0 {
			fmt.Fprintf(os.Stderr, "Error: ticket %s not found\n", ticketKey)
			exit(1)
			return
		}

		t := tickets[0]
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "Key:\t%s\n", t.Key)
		fmt.Fprintf(w, "Summary:\t%s\n", t.Summary)
		fmt.Fprintf(w, "Status:\t%s\n", t.Status)
		fmt.Fprintf(w, "Assignee:\t%s\n", t.Assignee)
		w.Flush()
		if t.Description != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nDescription:\n%s\n", t.Description)
		}
		if t.AcceptanceCriteria != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "\nAcceptance criteria:\n%s\n", t.AcceptanceCriteria)
		}
	},
}

var jiraFieldsCmd = &cobra.Command{
	Use:   "fields",
	Short: "List ticket fields and pick the test cases field",
	Long: `Lists all field definitions of the Jira instance, marking the field that
looks like an acceptance criteria field. With --select, prompts for a field
and saves it as jira.testcases_field in the config file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		client, err := newJiraClient()
		if err != nil {
			return err
		}

		fields, err := client.ListFields(ctx)
		if err != nil {
			return err
		}

		criteriaID := jira.MatchCriteriaField(fields)

		if selectField, _ := cmd.Flags().GetBool("select"); selectField {
			options := make([]string, 0, len(fields))
			byDisplay := make(map[string]string, len(fields))
			for _, f := range fields {
				display := fmt.Sprintf("%s (%s)", f.Name, f.ID)
				options = append(options, display)
				byDisplay[display] = f.ID
			}

			var selected string
			if err := jiraAskOne(&survey.Select{
				Message:  "Field that receives generated test cases:",
				Options:  options,
				PageSize: 15,
			}, &selected); err != nil {
				return err
			}

			viper.Set("jira.testcases_field", byDisplay[selected])
			configFile := viper.ConfigFileUsed()
			if configFile == "" {
				configFile = "config.yaml"
			}
			if err := viper.WriteConfigAs(configFile); err != nil {
				return fmt.Errorf("failed to write config: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved jira.testcases_field = %s to %s\n", byDisplay[selected], configFile)
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "ID\tNAME\tCUSTOM\t\n")
		for _, f := range fields {
			marker := ""
			if f.ID == criteriaID {
				marker = "<- acceptance criteria"
			}
			fmt.Fprintf(w, "%s\t%s\t%t\t%s\n", f.ID, f.Name, f.Custom, marker)
		}
		return w.Flush()
	},
}

func init() {
	jiraGetCmd.Flags().String("key", "", "Ticket key (e.g., PROJ-123)")
	jiraFieldsCmd.Flags().Bool("select", false, "Interactively pick the test cases field")

	jiraCmd.AddCommand(jiraTestAuthCmd)
	jiraCmd.AddCommand(jiraGetCmd)
	jiraCmd.AddCommand(jiraFieldsCmd)
	rootCmd.AddCommand(jiraCmd)
}

// newJiraClient builds a client from the loaded configuration.
func newJiraClient() (*jira.Client, error) {
	cfg := config.FromViper()
	if cfg.Jira.URL == "" || cfg.Jira.Username == "" || cfg.Jira.APIToken == "" {
		return nil, fmt.Errorf("jira is not configured: set jira.url, jira.username and jira.api_token")
	}
	return jira.NewClient(cfg.Jira.URL, cfg.Jira.Username, cfg.Jira.APIToken), nil
}
