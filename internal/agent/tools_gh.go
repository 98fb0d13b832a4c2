package agent

import (
	"context"

	"google.golang.org/genai"

	"github.com/srbarik25/opsagent/internal/gh"
)

// GitHubTools builds the tool set exposing GitHub operations to the model.
func GitHubTools(svc *gh.Service) []*Tool {
	return []*Tool{
		{
			Name:        "list_github_repositories",
			Description: "List GitHub repositories for a user. Omit owner for the configured default.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
			}),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				repos, err := svc.ListRepositories(ctx, stringArg(args, "owner"))
				if err != nil {
					return nil, err
				}
				return listResult("repositories", repos)
			},
		},
		{
			Name:        "get_github_repository",
			Description: "Get details of a GitHub repository.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
			}, "repo"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				repo, err := svc.GetRepository(ctx, stringArg(args, "owner"), stringArg(args, "repo"))
				if err != nil {
					return nil, err
				}
				return asMap(repo)
			},
		},
		{
			Name:        "get_repository_readme",
			Description: "Fetch the decoded README of a repository.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
			}, "repo"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				readme, err := svc.GetReadme(ctx, stringArg(args, "owner"), stringArg(args, "repo"))
				if err != nil {
					return nil, err
				}
				return asMap(readme)
			},
		},
		{
			Name:        "get_file_contents",
			Description: "Fetch a single decoded file from a repository. Ref may be a branch, tag, or commit SHA.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
				"path":  {Type: genai.TypeString},
				"ref":   {Type: genai.TypeString},
			}, "repo", "path"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				file, err := svc.GetFile(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"),
					stringArg(args, "path"), stringArg(args, "ref"))
				if err != nil {
					return nil, err
				}
				return asMap(file)
			},
		},
		{
			Name:        "list_github_issues",
			Description: "List issues on a repository. State is open, closed, or all.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
				"state": {Type: genai.TypeString},
			}, "repo"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				issues, err := svc.ListIssues(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"), stringArg(args, "state"))
				if err != nil {
					return nil, err
				}
				return listResult("issues", issues)
			},
		},
		{
			Name:        "get_github_issue",
			Description: "Get a single issue by number.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner":  {Type: genai.TypeString},
				"repo":   {Type: genai.TypeString},
				"number": {Type: genai.TypeInteger},
			}, "repo", "number"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				issue, err := svc.GetIssue(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"), intArg(args, "number"))
				if err != nil {
					return nil, err
				}
				return asMap(issue)
			},
		},
		{
			Name:        "create_github_issue",
			Description: "Open a new issue on a repository.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
				"title": {Type: genai.TypeString},
				"body":  {Type: genai.TypeString},
			}, "repo", "title"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				issue, err := svc.CreateIssue(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"),
					stringArg(args, "title"), stringArg(args, "body"), nil)
				if err != nil {
					return nil, err
				}
				return asMap(issue)
			},
		},
		{
			Name:        "list_pull_requests",
			Description: "List pull requests on a repository. State is open, closed, or all.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
				"state": {Type: genai.TypeString},
			}, "repo"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				pulls, err := svc.ListPullRequests(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"), stringArg(args, "state"))
				if err != nil {
					return nil, err
				}
				return listResult("pull_requests", pulls)
			},
		},
		{
			Name:        "list_branches",
			Description: "List branches of a repository.",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner": {Type: genai.TypeString},
				"repo":  {Type: genai.TypeString},
			}, "repo"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				branches, err := svc.ListBranches(ctx, stringArg(args, "owner"), stringArg(args, "repo"))
				if err != nil {
					return nil, err
				}
				return listResult("branches", branches)
			},
		},
		{
			Name:        "create_branch",
			Description: "Create a new branch from a source branch (default branch when source is omitted).",
			Parameters: objectSchema(map[string]*genai.Schema{
				"owner":  {Type: genai.TypeString},
				"repo":   {Type: genai.TypeString},
				"name":   {Type: genai.TypeString},
				"source": {Type: genai.TypeString},
			}, "repo", "name"),
			Run: func(ctx context.Context, args map[string]any) (map[string]any, error) {
				branch, err := svc.CreateBranch(ctx,
					stringArg(args, "owner"), stringArg(args, "repo"),
					stringArg(args, "name"), stringArg(args, "source"))
				if err != nil {
					return nil, err
				}
				return asMap(branch)
			},
		},
	}
}
