// Package credentials resolves AWS and GitHub credentials for service
// wrappers. The Manager is constructed explicitly at startup and passed to
// whoever needs it; there is no global instance.
//
// Resolution order:
//
//	AWS:    explicit env keys -> shared config files (optionally a named profile)
//	GitHub: GITHUB_TOKEN env  -> OS keyring (written by "opsagent auth login github")
package credentials

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awscreds "github.com/aws/aws-sdk-go-v2/credentials"

	"github.com/srbarik25/opsagent/internal/devops"
)

// GitHubService is the keyring entry name used for the GitHub token.
const GitHubService = "github"

// Manager resolves credentials from the environment and the OS keyring.
type Manager struct {
	store TokenStore
	env   func(string) string
}

// NewManager creates a Manager backed by the given token store. A nil store
// disables keyring lookups (environment variables still work).
func NewManager(store TokenStore) *Manager {
	return &Manager{store: store, env: os.Getenv}
}

// NewManagerWithEnv creates a Manager with an injected environment lookup.
// Intended for testing.
func NewManagerWithEnv(store TokenStore, env func(string) string) *Manager {
	return &Manager{store: store, env: env}
}

// AWSConfig builds an aws.Config for the given region. Explicit keys in the
// environment win; otherwise the AWS shared config chain is used, honoring
// profile when non-empty. Absent credentials are reported as
// devops.ErrNoCredentials so the classifier maps them to a credential error.
func (m *Manager) AWSConfig(ctx context.Context, region, profile string) (aws.Config, error) {
	if key, secret := m.env("AWS_ACCESS_KEY_ID"), m.env("AWS_SECRET_ACCESS_KEY"); key != "" && secret != "" {
		cfg, err := awsconfig.LoadDefaultConfig(ctx,
			awsconfig.WithRegion(region),
			awsconfig.WithCredentialsProvider(
				awscreds.NewStaticCredentialsProvider(key, secret, m.env("AWS_SESSION_TOKEN")),
			),
		)
		if err != nil {
			return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
		}
		return cfg, nil
	}

	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if profile != "" {
		opts = append(opts, awsconfig.WithSharedConfigProfile(profile))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("load AWS config: %w", err)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, fmt.Errorf("load AWS credentials: %w", devops.ErrNoCredentials)
	}

	return cfg, nil
}

// GitHubToken resolves the GitHub API token.
func (m *Manager) GitHubToken() (string, error) {
	if token := m.env("GITHUB_TOKEN"); token != "" {
		return token, nil
	}

	if m.store != nil {
		token, err := m.store.GetToken(GitHubService)
		if err == nil && token != "" {
			return token, nil
		}
		if err != nil && !errors.Is(err, ErrTokenNotFound) {
			return "", fmt.Errorf("github token lookup: %w", err)
		}
	}

	return "", fmt.Errorf("github token: %w", devops.ErrNoCredentials)
}
