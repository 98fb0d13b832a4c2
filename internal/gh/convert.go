package gh

import (
	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/devops"
)

func toRepository(r *github.Repository) devops.Repository {
	repo := devops.Repository{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Private:       r.GetPrivate(),
		DefaultBranch: r.GetDefaultBranch(),
		URL:           r.GetHTMLURL(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		UpdatedAt:     r.GetUpdatedAt().Time,
	}
	if owner := r.GetOwner(); owner != nil {
		repo.Owner = owner.GetLogin()
	}
	return repo
}

func toIssue(i *github.Issue) devops.Issue {
	issue := devops.Issue{
		Number:    i.GetNumber(),
		Title:     i.GetTitle(),
		State:     i.GetState(),
		Body:      i.GetBody(),
		URL:       i.GetHTMLURL(),
		CreatedAt: i.GetCreatedAt().Time,
	}
	if user := i.GetUser(); user != nil {
		issue.Author = user.GetLogin()
	}
	for _, l := range i.Labels {
		issue.Labels = append(issue.Labels, l.GetName())
	}
	return issue
}

func toPullRequest(p *github.PullRequest) devops.PullRequest {
	pr := devops.PullRequest{
		Number:    p.GetNumber(),
		Title:     p.GetTitle(),
		State:     p.GetState(),
		Body:      p.GetBody(),
		URL:       p.GetHTMLURL(),
		CreatedAt: p.GetCreatedAt().Time,
	}
	if user := p.GetUser(); user != nil {
		pr.Author = user.GetLogin()
	}
	if head := p.GetHead(); head != nil {
		pr.Head = head.GetRef()
	}
	if base := p.GetBase(); base != nil {
		pr.Base = base.GetRef()
	}
	return pr
}

func toBranch(b *github.Branch) devops.Branch {
	branch := devops.Branch{
		Name:      b.GetName(),
		Protected: b.GetProtected(),
	}
	if commit := b.GetCommit(); commit != nil {
		branch.SHA = commit.GetSHA()
	}
	return branch
}
