package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListPullRequests lists pull requests on a repository. State is "open",
// "closed", or "all"; empty defaults to "open".
func (s *Service) ListPullRequests(ctx context.Context, owner, repo, state string) ([]devops.PullRequest, error) {
	const op = "list_pull_requests"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}
	if state == "" {
		state = "open"
	}

	opts := &github.PullRequestListOptions{
		State:       state,
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var pulls []devops.PullRequest
	for {
		var page []*github.PullRequest
		var resp *github.Response
		err := s.do(ctx, op, func() error {
			var callErr error
			page, resp, callErr = s.client.PullRequests.List(ctx, owner, repo, opts)
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, p := range page {
			pulls = append(pulls, toPullRequest(p))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return pulls, nil
}

// GetPullRequest returns a single pull request by number.
func (s *Service) GetPullRequest(ctx context.Context, owner, repo string, number int) (*devops.PullRequest, error) {
	const op = "get_pull_request"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var p *github.PullRequest
	err = s.do(ctx, op, func() error {
		var callErr error
		p, _, callErr = s.client.PullRequests.Get(ctx, owner, repo, number)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	pr := toPullRequest(p)
	return &pr, nil
}

// CreatePullRequest opens a pull request from head into base.
func (s *Service) CreatePullRequest(ctx context.Context, owner, repo, title, body, head, base string) (*devops.PullRequest, error) {
	const op = "create_pull_request"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	req := &github.NewPullRequest{
		Title: github.String(title),
		Head:  github.String(head),
		Base:  github.String(base),
	}
	if body != "" {
		req.Body = github.String(body)
	}

	var p *github.PullRequest
	err = s.do(ctx, op, func() error {
		var callErr error
		p, _, callErr = s.client.PullRequests.Create(ctx, owner, repo, req)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	pr := toPullRequest(p)
	return &pr, nil
}
