package credentials

import (
	"errors"
	"testing"

	"github.com/srbarik25/opsagent/internal/devops"
)

func envFrom(vars map[string]string) func(string) string {
	return func(key string) string { return vars[key] }
}

func TestGitHubToken_EnvWins(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken(GitHubService, "from-keyring")

	m := NewManagerWithEnv(store, envFrom(map[string]string{"GITHUB_TOKEN": "from-env"}))

	token, err := m.GitHubToken()
	if err != nil {
		t.Fatalf("GitHubToken() error: %v", err)
	}
	if token != "from-env" {
		t.Errorf("token = %q, want %q", token, "from-env")
	}
}

func TestGitHubToken_FallsBackToStore(t *testing.T) {
	store := NewMemoryStore()
	store.SetToken(GitHubService, "from-keyring")

	m := NewManagerWithEnv(store, envFrom(nil))

	token, err := m.GitHubToken()
	if err != nil {
		t.Fatalf("GitHubToken() error: %v", err)
	}
	if token != "from-keyring" {
		t.Errorf("token = %q, want %q", token, "from-keyring")
	}
}

func TestGitHubToken_MissingEverywhere(t *testing.T) {
	m := NewManagerWithEnv(NewMemoryStore(), envFrom(nil))

	_, err := m.GitHubToken()
	if !errors.Is(err, devops.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestGitHubToken_NilStore(t *testing.T) {
	m := NewManagerWithEnv(nil, envFrom(nil))

	_, err := m.GitHubToken()
	if !errors.Is(err, devops.ErrNoCredentials) {
		t.Fatalf("expected ErrNoCredentials, got %v", err)
	}
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	if _, err := store.GetToken("github"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound, got %v", err)
	}

	if err := store.SetToken("github", "tok"); err != nil {
		t.Fatalf("SetToken error: %v", err)
	}
	token, err := store.GetToken("github")
	if err != nil || token != "tok" {
		t.Fatalf("GetToken = %q, %v; want %q, nil", token, err, "tok")
	}

	if err := store.DeleteToken("github"); err != nil {
		t.Fatalf("DeleteToken error: %v", err)
	}
	if err := store.DeleteToken("github"); !errors.Is(err, ErrTokenNotFound) {
		t.Fatalf("expected ErrTokenNotFound on double delete, got %v", err)
	}
}
