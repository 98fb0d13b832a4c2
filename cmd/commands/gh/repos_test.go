package gh

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/google/go-github/v60/github"
	"github.com/spf13/cobra"

	ghsvc "github.com/srbarik25/opsagent/internal/gh"
)

// useMockServer points newService at a local API server for the test.
func useMockServer(t *testing.T, defaultOwner string, mux *http.ServeMux) {
	t.Helper()
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	orig := newService
	t.Cleanup(func() { newService = orig })
	newService = func(cmd *cobra.Command) (*ghsvc.Service, error) {
		client := github.NewClient(nil)
		base, err := url.Parse(server.URL + "/")
		if err != nil {
			return nil, err
		}
		client.BaseURL = base
		return ghsvc.NewServiceWithClient(client, defaultOwner), nil
	}
}

func execGH(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	cmd := NewCommand()
	cmd.PersistentFlags().String("owner", "", "")
	cmd.PersistentFlags().Bool("json", false, "")

	var outBuf, errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func TestReposCommand_ListsTable(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[
			{"name": "hello", "full_name": "octocat/hello", "stargazers_count": 3, "description": "demo"},
			{"name": "world", "full_name": "octocat/world", "private": true}
		]`)
	})
	useMockServer(t, "", mux)

	stdout, _, err := execGH(t, "repos", "--owner", "octocat")
	if err != nil {
		t.Fatalf("repos error: %v", err)
	}

	for _, want := range []string{"NAME", "STARS", "octocat/hello", "demo", "octocat/world", "true"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestIssuesCommand_List(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/hello/issues", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"number": 7, "title": "flaky test", "state": "open", "user": {"login": "dev1"}}]`)
	})
	useMockServer(t, "octocat", mux)

	stdout, _, err := execGH(t, "issues", "hello")
	if err != nil {
		t.Fatalf("issues error: %v", err)
	}
	for _, want := range []string{"#7", "open", "dev1", "flaky test"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestReposShowCommand_NotFoundSurfaces(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octocat/missing", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message": "Not Found"}`)
	})
	useMockServer(t, "octocat", mux)

	_, _, err := execGH(t, "repos", "show", "missing")
	if err == nil || !strings.Contains(err.Error(), "resource not found") {
		t.Errorf("err = %v, want classified not-found", err)
	}
}
