package devops

import "time"

// Repository represents a GitHub repository.
type Repository struct {
	Owner         string    `json:"owner"`
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"`
	Description   string    `json:"description,omitempty"`
	Private       bool      `json:"private"`
	DefaultBranch string    `json:"default_branch,omitempty"`
	URL           string    `json:"url,omitempty"`
	Stars         int       `json:"stars"`
	Forks         int       `json:"forks"`
	UpdatedAt     time.Time `json:"updated_at,omitempty"`
}

// Issue represents a GitHub issue.
type Issue struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Body      string    `json:"body,omitempty"`
	Author    string    `json:"author,omitempty"`
	Labels    []string  `json:"labels,omitempty"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// PullRequest represents a GitHub pull request.
type PullRequest struct {
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	State     string    `json:"state"`
	Body      string    `json:"body,omitempty"`
	Author    string    `json:"author,omitempty"`
	Head      string    `json:"head"`
	Base      string    `json:"base"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// Branch represents a GitHub branch head.
type Branch struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

// RepoContent is a file fetched from a repository.
type RepoContent struct {
	Path    string `json:"path"`
	SHA     string `json:"sha,omitempty"`
	Size    int    `json:"size"`
	Content string `json:"content,omitempty"`
	URL     string `json:"url,omitempty"`
}
