package github

// ChangeState is the lifecycle state of a pull request.
type ChangeState string

const (
	StateOpen     ChangeState = "open"
	StateMerged   ChangeState = "merged"
	StateClosed   ChangeState = "closed"
	StateDeclined ChangeState = "declined"
)

// PullRequest represents a proposed code change in one repository.
type PullRequest struct {
	Repository string         `json:"repository"`
	Number     int            `json:"number"`
	Title      string         `json:"title"`
	Body       string         `json:"body,omitempty"`
	State      ChangeState    `json:"state"`
	Author     string         `json:"author,omitempty"`
	URL        string         `json:"url,omitempty"`
	Files      []FileDelta    `json:"files,omitempty"`
	Summary    *ChangeSummary `json:"summary,omitempty"`
}

// FileDelta is the line-level change to a single file within a pull request.
type FileDelta struct {
	Filename  string `json:"filename"`
	Status    string `json:"status"` // added, modified, deleted, renamed
	Additions int    `json:"additions"`
	Deletions int    `json:"deletions"`
	Patch     string `json:"patch,omitempty"`
}

// ChangeSummary aggregates the file deltas of one pull request.
type ChangeSummary struct {
	TotalFiles int `json:"total_files"`
	Additions  int `json:"additions"`
	Deletions  int `json:"deletions"`
}
