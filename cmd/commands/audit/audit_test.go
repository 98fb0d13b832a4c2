package audit

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/srbarik25/opsagent/internal/auditlog"
)

func useTempRepo(t *testing.T) auditlog.Repository {
	t.Helper()
	path := filepath.Join(t.TempDir(), "audit.db")

	orig := openRepo
	t.Cleanup(func() { openRepo = orig })
	openRepo = func() (auditlog.Repository, error) {
		return auditlog.OpenAt(path)
	}

	repo, err := auditlog.OpenAt(path)
	if err != nil {
		t.Fatalf("OpenAt error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func execAudit(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	repo := useTempRepo(t)
	if err := repo.Save(&auditlog.OperationRecord{
		Command:   "ec2 stop",
		Args:      []string{"i-123"},
		Provider:  "aws",
		Outcome:   auditlog.OutcomeError,
		ErrorKind: "PermissionDenied",
	}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	out, err := execAudit(t, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	for _, want := range []string{"ec2 stop", "error", "PermissionDenied", "i-123"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestListCommand_Empty(t *testing.T) {
	useTempRepo(t)

	out, err := execAudit(t, "list")
	if err != nil {
		t.Fatalf("list error: %v", err)
	}
	if !strings.Contains(out, "No recorded operations.") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestPruneCommand(t *testing.T) {
	repo := useTempRepo(t)
	if err := repo.Save(&auditlog.OperationRecord{Command: "gh repos"}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	out, err := execAudit(t, "prune", "--days", "0")
	if err != nil {
		t.Fatalf("prune error: %v", err)
	}
	if !strings.Contains(out, "Removed 1 records") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
