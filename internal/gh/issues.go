package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListIssues lists issues on a repository. State is "open", "closed", or
// "all"; empty defaults to "open". Pull requests are excluded.
func (s *Service) ListIssues(ctx context.Context, owner, repo, state string) ([]devops.Issue, error) {
	const op = "list_issues"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}
	if state == "" {
		state = "open"
	}

	opts := &github.IssueListByRepoOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var issues []devops.Issue
	for {
		var page []*github.Issue
		var resp *github.Response
		err := s.do(ctx, op, func() error {
			var callErr error
			page, resp, callErr = s.client.Issues.ListByRepo(ctx, owner, repo, opts)
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, i := range page {
			// The issues endpoint also returns pull requests.
			if i.IsPullRequest() {
				continue
			}
			issues = append(issues, toIssue(i))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return issues, nil
}

// GetIssue returns a single issue by number.
func (s *Service) GetIssue(ctx context.Context, owner, repo string, number int) (*devops.Issue, error) {
	const op = "get_issue"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var i *github.Issue
	err = s.do(ctx, op, func() error {
		var callErr error
		i, _, callErr = s.client.Issues.Get(ctx, owner, repo, number)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	issue := toIssue(i)
	return &issue, nil
}

// CreateIssue opens a new issue.
func (s *Service) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (*devops.Issue, error) {
	const op = "create_issue"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	req := &github.IssueRequest{Title: github.String(title)}
	if body != "" {
		req.Body = github.String(body)
	}
	if len(labels) > 0 {
		req.Labels = &labels
	}

	var i *github.Issue
	err = s.do(ctx, op, func() error {
		var callErr error
		i, _, callErr = s.client.Issues.Create(ctx, owner, repo, req)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	issue := toIssue(i)
	return &issue, nil
}
