package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"qadraft/internal/agent"
	"qadraft/internal/config"
	"qadraft/internal/correlate"
	"qadraft/internal/db"
	"qadraft/internal/export"
	"qadraft/internal/generate"
	"qadraft/internal/github"
	"qadraft/internal/jira"
	"qadraft/internal/notify"
	"qadraft/internal/pipeline"
	"qadraft/internal/telemetry"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var runAskOne = survey.AskOne

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Draft test cases for every ticket a JQL query matches",
	Long: `Runs the full drafting pipeline: searches Jira with the given JQL,
finds the implementing pull requests per ticket, fetches their diffs,
generates test cases and writes them back to the configured ticket field.
Every ticket outcome is appended to the JSON export artifact.

With --preview the assembled context is exported per ticket but no test
cases are generated and no ticket is modified.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("jql", "", "JQL query selecting the tickets to process (prompted if empty)")
	runCmd.Flags().Bool("preview", false, "Assemble contexts only; skip generation and ticket updates")
	runCmd.Flags().StringP("output", "o", "", "Export file path (default qadraft_export.json)")
	runCmd.Flags().String("field", "", "Jira field ID that receives the test cases")
	runCmd.Flags().Bool("metrics", false, "Expose Prometheus metrics while the run is active")

	viper.BindPFlag("jira.jql", runCmd.Flags().Lookup("jql"))
	viper.BindPFlag("preview", runCmd.Flags().Lookup("preview"))
	viper.BindPFlag("jira.testcases_field", runCmd.Flags().Lookup("field"))

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	if err := config.ValidateConfig(); err != nil {
		return err
	}
	cfg := config.FromViper()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	jql := cfg.Jira.JQL
	if jql == "" {
		if err := runAskOne(&survey.Input{
			Message: "JQL query:",
			Default: `status = "In QA" ORDER BY updated DESC`,
		}, &jql, survey.WithValidator(survey.Required)); err != nil {
			return err
		}
	}

	jiraClient := jira.NewClient(cfg.Jira.URL, cfg.Jira.Username, cfg.Jira.APIToken)
	if err := jiraClient.Authenticate(ctx); err != nil {
		return fmt.Errorf("jira authentication failed: %w", err)
	}

	// The acceptance criteria field is discovered from the field catalog when
	// not configured explicitly.
	criteriaField := cfg.Jira.CriteriaField
	if criteriaField == "" {
		found, err := jiraClient.FindCriteriaField(ctx)
		if err != nil {
			slog.Warn("acceptance criteria field discovery failed", "error", err)
		} else if found != "" {
			slog.Info("discovered acceptance criteria field", "id", found)
			criteriaField = found
		}
	}

	ghClient := github.NewClient(cfg.GitHub.APIURL, cfg.GitHub.Token)
	correlator := correlate.New(ghClient, ghClient, cfg.MaxDiffBytes, cfg.MaxContextBytes)

	provider, err := agent.NewAgent(cfg.Provider, cfg.APIKey, cfg.Model)
	if err != nil {
		return err
	}

	exportPath := cfg.ExportPath
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		exportPath = out
	}
	writer, err := export.NewWriter(exportPath)
	if err != nil {
		return err
	}

	store, err := db.NewStore(db.StoreConfig{Type: cfg.Store.Type, ConnectionString: cfg.Store.DSN})
	if err != nil {
		slog.Warn("history store unavailable, continuing without it", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	var metrics *telemetry.Metrics
	if serveMetrics, _ := cmd.Flags().GetBool("metrics"); serveMetrics {
		metrics = telemetry.NewMetrics()
		metrics.Serve(cfg.MetricsPort)
	}

	var notifier notify.Notifier = notify.NopNotifier{}
	if cfg.Slack.Enabled && cfg.Slack.Token != "" {
		notifier = notify.NewSlackNotifier(cfg.Slack.Token, cfg.Slack.Channel)
	}

	runner := &pipeline.Runner{
		Source:           jiraClient,
		Correlator:       correlator,
		Generator:        &generate.Generator{Agent: provider, MaxPayloadBytes: cfg.MaxPayloadBytes},
		Export:           writer,
		Store:            store,
		Metrics:          metrics,
		Notifier:         notifier,
		TestCasesFieldID: cfg.Jira.TestCasesField,
		DescriptionField: cfg.Jira.DescriptionField,
		CriteriaField:    criteriaField,
		Preview:          cfg.Preview,
	}
	if runner.TestCasesFieldID == "" && !cfg.Preview {
		slog.Warn("no test cases field configured, generated cases are exported only")
	}

	summary, err := runner.Run(ctx, jql)
	if err != nil {
		return err
	}

	fmt.Fprint(os.Stdout, pipeline.RenderSummary(summary, writer.Path()))
	if summary.Failed > 0 {
		exit(1)
	}
	return nil
}
