// Package correlate matches a Jira ticket to the pull requests that
// implement it and reduces them to one representative change per repository.
//
// The correlation itself is a best-effort text match: the ticket key is
// searched for in pull request titles. Both sides of that heuristic sit
// behind the Searcher and Fetcher interfaces so a stricter ticket-to-change
// link could replace it without touching the rest of the pipeline.
package correlate

import (
	"context"
	"fmt"
	"log/slog"

	"qadraft/internal/github"
)

// Searcher discovers candidate changes for a ticket key.
type Searcher interface {
	SearchPullRequests(ctx context.Context, ticketKey string) ([]github.PullRequest, error)
}

// Fetcher retrieves change details and file diffs from the code host.
type Fetcher interface {
	GetPullRequest(ctx context.Context, repo string, number int) (*github.PullRequest, error)
	ListFiles(ctx context.Context, repo string, number int) ([]github.FileDelta, error)
}

// Correlator finds and selects the code changes behind a ticket.
type Correlator struct {
	Searcher Searcher
	Fetcher  Fetcher

	// MaxDiffBytes bounds the diff text kept per file; MaxChangeBytes bounds
	// the total diff text kept per change. Zero means unbounded.
	MaxDiffBytes   int
	MaxChangeBytes int
}

// New creates a Correlator with the given bounds.
func New(searcher Searcher, fetcher Fetcher, maxDiffBytes, maxChangeBytes int) *Correlator {
	return &Correlator{
		Searcher:       searcher,
		Fetcher:        fetcher,
		MaxDiffBytes:   maxDiffBytes,
		MaxChangeBytes: maxChangeBytes,
	}
}

// Discover returns every pull request whose title references the ticket key,
// across any repository. A search failure is returned to the caller so the
// ticket can proceed with zero changes instead of aborting the run.
func (c *Correlator) Discover(ctx context.Context, ticketKey string) ([]github.PullRequest, error) {
	prs, err := c.Searcher.SearchPullRequests(ctx, ticketKey)
	if err != nil {
		return nil, fmt.Errorf("discovery failed for %s: %w", ticketKey, err)
	}
	return prs, nil
}

// FetchChanges populates the file deltas and aggregate summary of a selected
// change, bounding the retained diff text. The pull request is modified in
// place.
func (c *Correlator) FetchChanges(ctx context.Context, pr *github.PullRequest) error {
	files, err := c.Fetcher.ListFiles(ctx, pr.Repository, pr.Number)
	if err != nil {
		return fmt.Errorf("failed to fetch changes for %s#%d: %w", pr.Repository, pr.Number, err)
	}

	summary := &github.ChangeSummary{TotalFiles: len(files)}
	budget := c.MaxChangeBytes

	for i := range files {
		summary.Additions += files[i].Additions
		summary.Deletions += files[i].Deletions

		if files[i].Patch == "" {
			continue
		}
		limit := c.MaxDiffBytes
		if c.MaxChangeBytes > 0 {
			if budget <= 0 {
				files[i].Patch = TruncationMarker
				continue
			}
			if limit == 0 || budget < limit {
				limit = budget
			}
		}
		files[i].Patch = Truncate(files[i].Patch, limit)
		budget -= len(files[i].Patch)
	}

	pr.Files = files
	pr.Summary = summary
	return nil
}

// FetchAll fetches changes for every selected pull request. A failure for
// one repository is logged and reported but never blocks the others; the
// returned map lists the repositories whose fetch failed.
func (c *Correlator) FetchAll(ctx context.Context, selection SelectionResult) map[string]error {
	failed := make(map[string]error)
	for _, repo := range selection.Repositories() {
		pr := selection[repo]
		if err := c.FetchChanges(ctx, &pr); err != nil {
			slog.Warn("code change fetch failed", "repository", repo, "number", pr.Number, "error", err)
			failed[repo] = err
			continue
		}
		selection[repo] = pr
	}
	return failed
}
