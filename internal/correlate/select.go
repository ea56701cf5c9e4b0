package correlate

import (
	"context"
	"log/slog"
	"sort"

	"qadraft/internal/github"
)

// SelectionResult maps repository name to the single representative change
// chosen for a ticket. Absent repositories had no usable change.
type SelectionResult map[string]github.PullRequest

// Repositories returns the repository names in sorted order, for
// reproducible iteration.
func (s SelectionResult) Repositories() []string {
	repos := make([]string, 0, len(s))
	for repo := range s {
		repos = append(repos, repo)
	}
	sort.Strings(repos)
	return repos
}

// SelectRepresentatives reduces discovered candidates to at most one change
// per repository: declined changes are excluded, and among the remainder the
// lowest pull request number wins.
//
// The lowest-number rule assumes ascending numbers track creation order, so
// the earliest non-abandoned change is treated as the canonical
// implementation. That is a policy choice, not a guarantee the code host
// makes.
func (c *Correlator) SelectRepresentatives(ctx context.Context, candidates []github.PullRequest) SelectionResult {
	byRepo := make(map[string][]github.PullRequest)
	for _, pr := range candidates {
		byRepo[pr.Repository] = append(byRepo[pr.Repository], pr)
	}

	result := make(SelectionResult)
	for repo, prs := range byRepo {
		sort.Slice(prs, func(i, j int) bool { return prs[i].Number < prs[j].Number })

		for _, pr := range prs {
			state := pr.State
			// The search API reports closed for both merged and declined
			// changes; resolve via a detailed fetch before judging.
			if state == github.StateClosed && c.Fetcher != nil {
				detailed, err := c.Fetcher.GetPullRequest(ctx, repo, pr.Number)
				if err != nil {
					slog.Warn("could not resolve change state, skipping candidate",
						"repository", repo, "number", pr.Number, "error", err)
					continue
				}
				state = detailed.State
			}
			if state == github.StateDeclined {
				slog.Debug("skipping declined change", "repository", repo, "number", pr.Number)
				continue
			}
			pr.State = state
			result[repo] = pr
			break
		}
	}
	return result
}
