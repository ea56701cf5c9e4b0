package main

import (
	"fmt"
	"text/tabwriter"

	"qadraft/internal/config"
	"qadraft/internal/db"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
)

// storeFactory is swapped out in tests.
var storeFactory = func() (db.Store, error) {
	cfg := config.FromViper()
	return db.NewStore(db.StoreConfig{Type: cfg.Store.Type, ConnectionString: cfg.Store.DSN})
}

// historyCmd represents the history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past drafting runs",
	Long:  `Lists the per-ticket outcomes of previous runs from the local history store.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeFactory()
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		results, err := store.History(limit)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}
		if len(results) == 0 {
			cmd.Println("No history found.")
			return nil
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "TICKET\tSTATUS\tREPOSITORIES\tWHEN\t\n")
		for _, r := range results {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t\n", r.TicketKey, r.Status, r.Repositories, r.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

// historyShowCmd renders the latest generated test cases for a ticket.
var historyShowCmd = &cobra.Command{
	Use:   "show <ticket-key>",
	Short: "Show the latest generated test cases for a ticket",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := storeFactory()
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		cases, err := store.LatestTestCases(args[0])
		if err != nil {
			return fmt.Errorf("failed to load test cases: %w", err)
		}
		if cases == "" {
			cmd.Printf("No test cases recorded for %s.\n", args[0])
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(100),
		)
		if err != nil {
			// Plain output still beats no output.
			cmd.Println(cases)
			return nil
		}
		out, err := renderer.Render(cases)
		if err != nil {
			cmd.Println(cases)
			return nil
		}
		cmd.Print(out)
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "Maximum number of entries to show")
	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
