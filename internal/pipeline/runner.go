// Package pipeline drives a full drafting run: search tickets, correlate
// code changes, generate test cases and write them back, recording every
// outcome in the export artifact.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"qadraft/internal/correlate"
	"qadraft/internal/db"
	"qadraft/internal/export"
	"qadraft/internal/generate"
	"qadraft/internal/jira"
	"qadraft/internal/notify"
	"qadraft/internal/telemetry"
)

// Runner wires the pipeline stages together. Store, Metrics and Notifier are
// optional; a nil value disables that concern.
type Runner struct {
	Source     jira.Source
	Correlator *correlate.Correlator
	Generator  *generate.Generator
	Export     *export.Writer
	Store      db.Store
	Metrics    *telemetry.Metrics
	Notifier   notify.Notifier

	// TestCasesFieldID is the ticket field that receives generated test
	// cases. Empty disables write-back.
	TestCasesFieldID string
	// DescriptionField and CriteriaField name the ticket fields read during
	// search.
	DescriptionField string
	CriteriaField    string

	// Preview skips generation and write-back, recording only the assembled
	// context per ticket.
	Preview bool
}

// Summary aggregates the per-ticket outcomes of one run.
type Summary struct {
	Total     int
	Succeeded int
	Partial   int
	Failed    int
	Previewed int
	Started   time.Time
	Finished  time.Time
}

// Run processes every ticket the query matches. Per-ticket failures are
// recorded and never abort the run; only an unusable ticket search is an
// error.
func (r *Runner) Run(ctx context.Context, jql string) (Summary, error) {
	summary := Summary{Started: time.Now()}

	tickets, err := r.Source.SearchTickets(ctx, jql, r.DescriptionField, r.CriteriaField)
	if err != nil {
		return summary, fmt.Errorf("ticket search failed: %w", err)
	}
	summary.Total = len(tickets)
	slog.Info("tickets found", "count", len(tickets), "jql", jql)

	for _, ticket := range tickets {
		status := r.processTicket(ctx, ticket)
		switch status {
		case export.StatusSuccess:
			summary.Succeeded++
		case export.StatusPartial:
			summary.Partial++
		case export.StatusFailed:
			summary.Failed++
		case export.StatusPreview:
			summary.Previewed++
		}
		if r.Metrics != nil {
			r.Metrics.TicketsProcessed.WithLabelValues(status).Inc()
		}
	}

	summary.Finished = time.Now()
	r.notifySummary(ctx, summary)
	return summary, nil
}

// processTicket runs the pipeline for one ticket and returns the recorded
// status.
func (r *Runner) processTicket(ctx context.Context, ticket jira.Ticket) string {
	slog.Info("processing ticket", "key", ticket.Key, "summary", ticket.Summary)

	rec := export.Record{Ticket: ticket, ProcessedAt: time.Now()}

	// A failed discovery downgrades the ticket to zero changes; generation
	// still runs on the ticket fields alone.
	selection := correlate.SelectionResult{}
	candidates, err := r.Correlator.Discover(ctx, ticket.Key)
	if err != nil {
		slog.Warn("change discovery failed, proceeding without code context", "key", ticket.Key, "error", err)
		rec.Warnings = append(rec.Warnings, err.Error())
	} else {
		selection = r.Correlator.SelectRepresentatives(ctx, candidates)
	}

	for repo, fetchErr := range r.Correlator.FetchAll(ctx, selection) {
		rec.Warnings = append(rec.Warnings, fmt.Sprintf("diff fetch failed for %s: %v", repo, fetchErr))
	}
	if r.Metrics != nil {
		r.Metrics.ChangesFetched.Add(float64(len(selection)))
	}

	gc := generate.Build(ticket, selection)
	rec.Changes = selection
	rec.TestingNotes = gc.Notes

	if r.Preview {
		rec.Status = export.StatusPreview
		rec.RenderedContext = gc.Render(r.Generator.MaxPayloadBytes)
		return r.record(rec)
	}

	start := time.Now()
	testCases, rendered, err := r.Generator.Generate(ctx, gc)
	rec.RenderedContext = rendered
	if r.Metrics != nil {
		r.Metrics.ObserveGeneration(start)
	}
	if err != nil {
		slog.Error("test case generation failed", "key", ticket.Key, "error", err)
		if r.Metrics != nil {
			r.Metrics.GenerationFailures.Inc()
		}
		rec.Status = export.StatusFailed
		rec.FailureReason = err.Error()
		return r.record(rec)
	}
	rec.TestCases = testCases

	if r.TestCasesFieldID != "" {
		if err := r.Source.UpdateField(ctx, ticket.Key, r.TestCasesFieldID, testCases); err != nil {
			// The generated cases are kept in the export even when the
			// write-back fails.
			slog.Error("field update failed", "key", ticket.Key, "field", r.TestCasesFieldID, "error", err)
			if r.Metrics != nil {
				r.Metrics.FieldUpdateFailures.Inc()
			}
			rec.Status = export.StatusPartial
			rec.FailureReason = fmt.Sprintf("field update failed: %v", err)
			return r.record(rec)
		}
		rec.UpdatedInJira = true
	}

	rec.Status = export.StatusSuccess
	return r.record(rec)
}

// record appends the export record and mirrors it into the history store.
// Both are best-effort; the status is returned either way.
func (r *Runner) record(rec export.Record) string {
	if r.Export != nil {
		if err := r.Export.Append(rec); err != nil {
			slog.Error("export write failed", "key", rec.Ticket.Key, "error", err)
		}
	}
	if r.Store != nil {
		res := db.Result{
			TicketKey:    rec.Ticket.Key,
			Status:       rec.Status,
			Reason:       rec.FailureReason,
			Repositories: strings.Join(correlate.SelectionResult(rec.Changes).Repositories(), ","),
			TestCases:    rec.TestCases,
		}
		if err := r.Store.SaveResult(res); err != nil {
			slog.Warn("history save failed", "key", rec.Ticket.Key, "error", err)
		}
	}
	return rec.Status
}

func (r *Runner) notifySummary(ctx context.Context, s Summary) {
	if r.Notifier == nil {
		return
	}
	msg := fmt.Sprintf("QA drafting run finished: %d tickets, %d succeeded, %d partial, %d failed, %d previewed (%.0fs)",
		s.Total, s.Succeeded, s.Partial, s.Failed, s.Previewed, s.Finished.Sub(s.Started).Seconds())
	if err := r.Notifier.Notify(ctx, msg); err != nil {
		slog.Warn("run summary notification failed", "error", err)
	}
}
