package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the public GitHub API endpoint.
const DefaultBaseURL = "https://api.github.com"

// Client handles GitHub API interactions.
type Client struct {
	BaseURL    string
	Token      string
	HTTPClient *http.Client
}

// NewClient creates a new GitHub client. baseURL may be empty to use the
// public API endpoint.
func NewClient(baseURL, token string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTPClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

func (c *Client) newRequest(ctx context.Context, method, path string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", "qadraft")
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	return req, nil
}

// SearchPullRequests finds pull requests across all repositories whose title
// contains the given ticket key. Closed results are reported as closed; use
// GetPullRequest to distinguish merged from declined.
func (c *Client) SearchPullRequests(ctx context.Context, ticketKey string) ([]PullRequest, error) {
	query := fmt.Sprintf("%s in:title type:pr", ticketKey)
	req, err := c.newRequest(ctx, "GET", "/search/issues?q="+url.QueryEscape(query))
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("search failed with status: %d, body: %s", resp.StatusCode, string(body))
	}

	var result struct {
		Items []struct {
			Number        int    `json:"number"`
			Title         string `json:"title"`
			Body          string `json:"body"`
			State         string `json:"state"`
			HTMLURL       string `json:"html_url"`
			RepositoryURL string `json:"repository_url"`
			User          struct {
				Login string `json:"login"`
			} `json:"user"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	var prs []PullRequest
	for _, item := range result.Items {
		repo := strings.TrimPrefix(item.RepositoryURL, c.BaseURL+"/repos/")
		// The public search API always reports api.github.com repository
		// URLs regardless of the configured base.
		if idx := strings.Index(repo, "/repos/"); idx >= 0 {
			repo = repo[idx+len("/repos/"):]
		}
		if repo == "" {
			continue
		}
		prs = append(prs, PullRequest{
			Repository: repo,
			Number:     item.Number,
			Title:      item.Title,
			Body:       item.Body,
			State:      ChangeState(item.State),
			Author:     item.User.Login,
			URL:        item.HTMLURL,
		})
	}
	return prs, nil
}

// GetPullRequest fetches a single pull request and resolves its lifecycle
// state: a closed pull request with no merge timestamp is declined.
func (c *Client) GetPullRequest(ctx context.Context, repo string, number int) (*PullRequest, error) {
	req, err := c.newRequest(ctx, "GET", fmt.Sprintf("/repos/%s/pulls/%d", repo, number))
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch pull request with status: %d", resp.StatusCode)
	}

	var result struct {
		Number   int    `json:"number"`
		Title    string `json:"title"`
		Body     string `json:"body"`
		State    string `json:"state"`
		MergedAt string `json:"merged_at"`
		HTMLURL  string `json:"html_url"`
		User     struct {
			Login string `json:"login"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	state := ChangeState(result.State)
	if state == StateClosed {
		if result.MergedAt != "" {
			state = StateMerged
		} else {
			state = StateDeclined
		}
	}

	return &PullRequest{
		Repository: repo,
		Number:     result.Number,
		Title:      result.Title,
		Body:       result.Body,
		State:      state,
		Author:     result.User.Login,
		URL:        result.HTMLURL,
	}, nil
}

// ListFiles fetches the file-level diff of a pull request.
func (c *Client) ListFiles(ctx context.Context, repo string, number int) ([]FileDelta, error) {
	req, err := c.newRequest(ctx, "GET", fmt.Sprintf("/repos/%s/pulls/%d/files", repo, number))
	if err != nil {
		return nil, err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch pull request files with status: %d", resp.StatusCode)
	}

	var files []struct {
		Filename  string `json:"filename"`
		Status    string `json:"status"`
		Additions int    `json:"additions"`
		Deletions int    `json:"deletions"`
		Patch     string `json:"patch"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&files); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	deltas := make([]FileDelta, 0, len(files))
	for _, f := range files {
		deltas = append(deltas, FileDelta{
			Filename:  f.Filename,
			Status:    f.Status,
			Additions: f.Additions,
			Deletions: f.Deletions,
			Patch:     f.Patch,
		})
	}
	return deltas, nil
}
