package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/devops"
)

// ListBranches lists branches of a repository.
func (s *Service) ListBranches(ctx context.Context, owner, repo string) ([]devops.Branch, error) {
	const op = "list_branches"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	opts := &github.BranchListOptions{ListOptions: github.ListOptions{PerPage: 100}}
	var branches []devops.Branch
	for {
		var page []*github.Branch
		var resp *github.Response
		err := s.do(ctx, op, func() error {
			var callErr error
			page, resp, callErr = s.client.Repositories.ListBranches(ctx, owner, repo, opts)
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, b := range page {
			branches = append(branches, toBranch(b))
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return branches, nil
}

// GetBranch returns a single branch head.
func (s *Service) GetBranch(ctx context.Context, owner, repo, name string) (*devops.Branch, error) {
	const op = "get_branch"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var b *github.Branch
	err = s.do(ctx, op, func() error {
		var callErr error
		b, _, callErr = s.client.Repositories.GetBranch(ctx, owner, repo, name, 0)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	branch := toBranch(b)
	return &branch, nil
}

// CreateBranch creates a new branch pointing at the head of a source branch.
// When source is empty the repository default branch is used.
func (s *Service) CreateBranch(ctx context.Context, owner, repo, name, source string) (*devops.Branch, error) {
	const op = "create_branch"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	if source == "" {
		r, err := s.GetRepository(ctx, owner, repo)
		if err != nil {
			return nil, err
		}
		source = r.DefaultBranch
	}

	base, err := s.GetBranch(ctx, owner, repo, source)
	if err != nil {
		return nil, err
	}

	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + name),
		Object: &github.GitObject{SHA: github.String(base.SHA)},
	}
	err = s.do(ctx, op, func() error {
		_, _, callErr := s.client.Git.CreateRef(ctx, owner, repo, ref)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &devops.Branch{Name: name, SHA: base.SHA}, nil
}
