package gh

import (
	"context"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/devops"
)

// CreateRepositoryOpts describes a new repository.
type CreateRepositoryOpts struct {
	Name        string
	Description string
	Private     bool
	AutoInit    bool
}

// ListRepositories lists repositories for a user, or for the authenticated
// user when owner is empty and no default owner is set.
func (s *Service) ListRepositories(ctx context.Context, owner string) ([]devops.Repository, error) {
	const op = "list_repositories"
	if owner == "" {
		owner = s.owner
	}

	list := github.ListOptions{PerPage: 100}
	var repos []devops.Repository
	for {
		var page []*github.Repository
		var resp *github.Response
		err := s.do(ctx, op, func() error {
			var callErr error
			if owner == "" {
				opts := &github.RepositoryListByAuthenticatedUserOptions{
					Sort:        "updated",
					ListOptions: list,
				}
				page, resp, callErr = s.client.Repositories.ListByAuthenticatedUser(ctx, opts)
			} else {
				opts := &github.RepositoryListByUserOptions{
					Sort:        "updated",
					ListOptions: list,
				}
				page, resp, callErr = s.client.Repositories.ListByUser(ctx, owner, opts)
			}
			return callErr
		})
		if err != nil {
			return nil, err
		}
		for _, r := range page {
			repos = append(repos, toRepository(r))
		}
		if resp.NextPage == 0 {
			break
		}
		list.Page = resp.NextPage
	}
	return repos, nil
}

// GetRepository returns a single repository.
func (s *Service) GetRepository(ctx context.Context, owner, name string) (*devops.Repository, error) {
	const op = "get_repository"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var r *github.Repository
	err = s.do(ctx, op, func() error {
		var callErr error
		r, _, callErr = s.client.Repositories.Get(ctx, owner, name)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	repo := toRepository(r)
	return &repo, nil
}

// CreateRepository creates a repository for the authenticated user.
func (s *Service) CreateRepository(ctx context.Context, opts CreateRepositoryOpts) (*devops.Repository, error) {
	input := &github.Repository{
		Name:        github.String(opts.Name),
		Description: github.String(opts.Description),
		Private:     github.Bool(opts.Private),
		AutoInit:    github.Bool(opts.AutoInit),
	}

	var r *github.Repository
	err := s.do(ctx, "create_repository", func() error {
		var callErr error
		r, _, callErr = s.client.Repositories.Create(ctx, "", input)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	repo := toRepository(r)
	return &repo, nil
}

// DeleteRepository permanently deletes a repository.
func (s *Service) DeleteRepository(ctx context.Context, owner, name string) error {
	const op = "delete_repository"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return err
	}

	return s.do(ctx, op, func() error {
		_, callErr := s.client.Repositories.Delete(ctx, owner, name)
		return callErr
	})
}

// GetReadme returns the decoded README of a repository.
func (s *Service) GetReadme(ctx context.Context, owner, name string) (*devops.RepoContent, error) {
	const op = "get_readme"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var file *github.RepositoryContent
	err = s.do(ctx, op, func() error {
		var callErr error
		file, _, callErr = s.client.Repositories.GetReadme(ctx, owner, name, nil)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return decodeContent(op, file)
}
