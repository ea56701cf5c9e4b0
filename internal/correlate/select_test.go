package correlate

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"qadraft/internal/github"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSearcher returns a canned candidate list.
type fakeSearcher struct {
	prs []github.PullRequest
	err error
}

func (f *fakeSearcher) SearchPullRequests(ctx context.Context, ticketKey string) ([]github.PullRequest, error) {
	return f.prs, f.err
}

// fakeFetcher resolves detailed states and file lists from maps keyed by
// "repo#number".
type fakeFetcher struct {
	states map[string]github.ChangeState
	files  map[string][]github.FileDelta
	errs   map[string]error

	fetchCalls []string
}

func key(repo string, number int) string { return fmt.Sprintf("%s#%d", repo, number) }

func (f *fakeFetcher) GetPullRequest(ctx context.Context, repo string, number int) (*github.PullRequest, error) {
	k := key(repo, number)
	f.fetchCalls = append(f.fetchCalls, k)
	if err, ok := f.errs[k]; ok {
		return nil, err
	}
	state, ok := f.states[k]
	if !ok {
		state = github.StateMerged
	}
	return &github.PullRequest{Repository: repo, Number: number, State: state}, nil
}

func (f *fakeFetcher) ListFiles(ctx context.Context, repo string, number int) ([]github.FileDelta, error) {
	k := key(repo, number)
	if err, ok := f.errs[k]; ok {
		return nil, err
	}
	return f.files[k], nil
}

func TestSelectRepresentatives(t *testing.T) {
	ctx := context.Background()

	t.Run("one change per repository", func(t *testing.T) {
		c := New(nil, &fakeFetcher{}, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 12, State: github.StateOpen},
			{Repository: "acme/web", Number: 15, State: github.StateOpen},
			{Repository: "acme/api", Number: 3, State: github.StateMerged},
		}

		result := c.SelectRepresentatives(ctx, candidates)

		require.Len(t, result, 2)
		assert.Equal(t, 12, result["acme/web"].Number)
		assert.Equal(t, 3, result["acme/api"].Number)
	})

	t.Run("lowest number wins regardless of input order", func(t *testing.T) {
		c := New(nil, &fakeFetcher{}, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 42, State: github.StateOpen},
			{Repository: "acme/web", Number: 7, State: github.StateMerged},
			{Repository: "acme/web", Number: 19, State: github.StateOpen},
		}

		result := c.SelectRepresentatives(ctx, candidates)

		require.Len(t, result, 1)
		assert.Equal(t, 7, result["acme/web"].Number)
	})

	t.Run("declined changes are skipped", func(t *testing.T) {
		fetcher := &fakeFetcher{states: map[string]github.ChangeState{
			"acme/web#5":  github.StateDeclined,
			"acme/web#11": github.StateMerged,
		}}
		c := New(nil, fetcher, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 5, State: github.StateClosed},
			{Repository: "acme/web", Number: 11, State: github.StateClosed},
		}

		result := c.SelectRepresentatives(ctx, candidates)

		require.Len(t, result, 1)
		assert.Equal(t, 11, result["acme/web"].Number)
		assert.Equal(t, github.StateMerged, result["acme/web"].State)
	})

	t.Run("repository with only declined changes is absent", func(t *testing.T) {
		fetcher := &fakeFetcher{states: map[string]github.ChangeState{
			"acme/web#5": github.StateDeclined,
		}}
		c := New(nil, fetcher, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 5, State: github.StateClosed},
		}

		result := c.SelectRepresentatives(ctx, candidates)
		assert.Empty(t, result)
	})

	t.Run("open changes skip the detail fetch", func(t *testing.T) {
		fetcher := &fakeFetcher{}
		c := New(nil, fetcher, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 12, State: github.StateOpen},
		}

		c.SelectRepresentatives(ctx, candidates)
		assert.Empty(t, fetcher.fetchCalls)
	})

	t.Run("unresolvable candidate is skipped, not fatal", func(t *testing.T) {
		fetcher := &fakeFetcher{
			errs:   map[string]error{"acme/web#5": errors.New("boom")},
			states: map[string]github.ChangeState{"acme/web#9": github.StateMerged},
		}
		c := New(nil, fetcher, 0, 0)
		candidates := []github.PullRequest{
			{Repository: "acme/web", Number: 5, State: github.StateClosed},
			{Repository: "acme/web", Number: 9, State: github.StateClosed},
		}

		result := c.SelectRepresentatives(ctx, candidates)

		require.Len(t, result, 1)
		assert.Equal(t, 9, result["acme/web"].Number)
	})
}

func TestSelectionResult_Repositories(t *testing.T) {
	sel := SelectionResult{
		"zeta/api": {Number: 1},
		"acme/web": {Number: 2},
		"mid/svc":  {Number: 3},
	}
	assert.Equal(t, []string{"acme/web", "mid/svc", "zeta/api"}, sel.Repositories())
}
