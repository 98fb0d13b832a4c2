package gh

import (
	"context"
	"fmt"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/classify"
	"github.com/srbarik25/opsagent/internal/devops"
)

// GetFile returns a single decoded file from a repository. Ref may be a
// branch, tag, or commit SHA; empty means the default branch.
func (s *Service) GetFile(ctx context.Context, owner, repo, path, ref string) (*devops.RepoContent, error) {
	const op = "get_file_contents"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	var file *github.RepositoryContent
	err = s.do(ctx, op, func() error {
		var callErr error
		file, _, _, callErr = s.client.Repositories.GetContents(ctx, owner, repo, path, opts)
		return callErr
	})
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, classify.Classify("github", op, &classify.RawError{
			Code:    "ValidationError",
			Message: fmt.Sprintf("'%s' is a directory, not a file", path),
		})
	}

	return decodeContent(op, file)
}

// CreateFile creates a new file on a branch. Branch may be empty for the
// default branch.
func (s *Service) CreateFile(ctx context.Context, owner, repo, path, branch, message string, content []byte) (*devops.RepoContent, error) {
	const op = "create_file"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
	}
	if branch != "" {
		opts.Branch = github.String(branch)
	}

	var resp *github.RepositoryContentResponse
	err = s.do(ctx, op, func() error {
		var callErr error
		resp, _, callErr = s.client.Repositories.CreateFile(ctx, owner, repo, path, opts)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &devops.RepoContent{
		Path: path,
		SHA:  resp.Content.GetSHA(),
		URL:  resp.Content.GetHTMLURL(),
	}, nil
}

// UpdateFile replaces the contents of an existing file. The sha must be the
// blob SHA of the file being replaced.
func (s *Service) UpdateFile(ctx context.Context, owner, repo, path, branch, message, sha string, content []byte) (*devops.RepoContent, error) {
	const op = "update_file"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return nil, err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		Content: content,
		SHA:     github.String(sha),
	}
	if branch != "" {
		opts.Branch = github.String(branch)
	}

	var resp *github.RepositoryContentResponse
	err = s.do(ctx, op, func() error {
		var callErr error
		resp, _, callErr = s.client.Repositories.UpdateFile(ctx, owner, repo, path, opts)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return &devops.RepoContent{
		Path: path,
		SHA:  resp.Content.GetSHA(),
		URL:  resp.Content.GetHTMLURL(),
	}, nil
}

// DeleteFile removes a file. The sha must be the blob SHA of the file being
// deleted.
func (s *Service) DeleteFile(ctx context.Context, owner, repo, path, branch, message, sha string) error {
	const op = "delete_file"
	owner, err := s.resolveOwner(op, owner)
	if err != nil {
		return err
	}

	opts := &github.RepositoryContentFileOptions{
		Message: github.String(message),
		SHA:     github.String(sha),
	}
	if branch != "" {
		opts.Branch = github.String(branch)
	}

	return s.do(ctx, op, func() error {
		_, _, callErr := s.client.Repositories.DeleteFile(ctx, owner, repo, path, opts)
		return callErr
	})
}

func decodeContent(op string, file *github.RepositoryContent) (*devops.RepoContent, error) {
	text, err := file.GetContent()
	if err != nil {
		return nil, classify.Classify("github", op, fmt.Errorf("decode content: %w", err))
	}
	return &devops.RepoContent{
		Path:    file.GetPath(),
		SHA:     file.GetSHA(),
		Size:    file.GetSize(),
		Content: text,
		URL:     file.GetHTMLURL(),
	}, nil
}
