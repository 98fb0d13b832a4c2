package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLoadFrom_MissingFileReturnsZeroConfig(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if diff := cmp.Diff(&Config{}, cfg); diff != "" {
		t.Errorf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad_JSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	want := &Config{DefaultRegion: "us-west-2", DefaultOwner: "acme", Model: "gemini-2.0-flash"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveAndLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	want := &Config{DefaultRegion: "eu-central-1", Environment: "staging"}
	if err := want.SaveTo(path); err != nil {
		t.Fatalf("SaveTo error: %v", err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFrom_YAMLHandWritten(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "default_region: ap-south-1\ndefault_owner: octo\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom error: %v", err)
	}
	if got.DefaultRegion != "ap-south-1" || got.DefaultOwner != "octo" {
		t.Errorf("got %+v, want region ap-south-1 owner octo", got)
	}
}

func TestGetSet(t *testing.T) {
	cfg := &Config{}

	for _, key := range Keys() {
		if err := cfg.Set(key, "value-"+key); err != nil {
			t.Fatalf("Set(%q) error: %v", key, err)
		}
		got, err := cfg.Get(key)
		if err != nil {
			t.Fatalf("Get(%q) error: %v", key, err)
		}
		if got != "value-"+key {
			t.Errorf("Get(%q) = %q, want %q", key, got, "value-"+key)
		}
	}

	if err := cfg.Set("bogus", "x"); err == nil {
		t.Error("Set with unknown key did not error")
	}
	if _, err := cfg.Get("bogus"); err == nil {
		t.Error("Get with unknown key did not error")
	}
}

func TestPathOverride(t *testing.T) {
	override := filepath.Join(t.TempDir(), "custom.json")
	SetPath(override)
	t.Cleanup(ResetPath)

	got, err := Path()
	if err != nil {
		t.Fatalf("Path error: %v", err)
	}
	if got != override {
		t.Errorf("Path() = %q, want %q", got, override)
	}
}
