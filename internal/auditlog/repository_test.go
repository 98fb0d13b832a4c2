package auditlog

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func openTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := OpenAt(filepath.Join(t.TempDir(), "audit.db"))
	if err != nil {
		t.Fatalf("OpenAt error: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSaveAndListRecent(t *testing.T) {
	repo := openTestRepo(t)

	first := &OperationRecord{Command: "ec2 list", Provider: "aws"}
	if err := repo.Save(first); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if first.ID == 0 {
		t.Error("Save did not assign an ID")
	}
	if first.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want default %q", first.Outcome, OutcomeOK)
	}

	second := &OperationRecord{
		Command:   "ec2 stop",
		Args:      []string{"--id", "i-123"},
		Provider:  "aws",
		Outcome:   OutcomeError,
		ErrorKind: "PermissionDenied",
		CreatedAt: time.Now().UTC().Add(time.Minute),
	}
	if err := repo.Save(second); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	records, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("got %d records, want 2", len(records))
	}
	if records[0].Command != "ec2 stop" {
		t.Errorf("newest record = %q, want %q", records[0].Command, "ec2 stop")
	}
	if diff := cmp.Diff([]string{"--id", "i-123"}, records[0].Args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
	if records[0].ErrorKind != "PermissionDenied" {
		t.Errorf("ErrorKind = %q, want PermissionDenied", records[0].ErrorKind)
	}
}

func TestListRecent_Limit(t *testing.T) {
	repo := openTestRepo(t)

	for i := 0; i < 5; i++ {
		if err := repo.Save(&OperationRecord{Command: "gh repos"}); err != nil {
			t.Fatalf("Save error: %v", err)
		}
	}

	records, err := repo.ListRecent(3)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("got %d records, want 3", len(records))
	}
}

func TestDeleteOlderThan(t *testing.T) {
	repo := openTestRepo(t)

	old := &OperationRecord{Command: "ec2 list", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}
	if err := repo.Save(old); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	fresh := &OperationRecord{Command: "ec2 show"}
	if err := repo.Save(fresh); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	removed, err := repo.DeleteOlderThan(24 * time.Hour)
	if err != nil {
		t.Fatalf("DeleteOlderThan error: %v", err)
	}
	if removed != 1 {
		t.Errorf("removed = %d, want 1", removed)
	}

	records, err := repo.ListRecent(10)
	if err != nil {
		t.Fatalf("ListRecent error: %v", err)
	}
	if len(records) != 1 || records[0].Command != "ec2 show" {
		t.Errorf("unexpected surviving records: %+v", records)
	}
}

func TestSanitizeArgs(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{
			name: "separate flag value",
			in:   []string{"--id", "i-1", "--token", "ghp_secret"},
			want: []string{"--id", "i-1", "--token", "<redacted>"},
		},
		{
			name: "equals form",
			in:   []string{"--key-material=PRIVATE"},
			want: []string{"--key-material=<redacted>"},
		},
		{
			name: "trailing flag without value",
			in:   []string{"--token"},
			want: []string{"--token", "<redacted>"},
		},
		{
			name: "nothing sensitive",
			in:   []string{"list", "--region", "us-east-1"},
			want: []string{"list", "--region", "us-east-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, SanitizeArgs(tt.in)); diff != "" {
				t.Errorf("SanitizeArgs mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
