package devops

import "testing"

func TestContextWith(t *testing.T) {
	base := Context{
		UserID:      "u-1",
		AWSRegion:   "us-east-1",
		Environment: "dev",
		Metadata:    map[string]string{"team": "platform"},
	}

	got := base.WithAWSRegion("eu-west-1").WithEnvironment("prod").WithGitHubOrg("octo-org")
	if got.AWSRegion != "eu-west-1" || got.Environment != "prod" || got.GitHubOrg != "octo-org" {
		t.Errorf("derived context = %+v", got)
	}
	if got.UserID != "u-1" {
		t.Errorf("UserID = %q, want carried over", got.UserID)
	}

	// The original must not observe changes through the derived copy.
	got.Metadata["team"] = "infra"
	if base.Metadata["team"] != "platform" {
		t.Errorf("base metadata mutated: %v", base.Metadata)
	}
	if base.AWSRegion != "us-east-1" || base.Environment != "dev" {
		t.Errorf("base context mutated: %+v", base)
	}
}

func TestContextMetadatum(t *testing.T) {
	c := Context{Metadata: map[string]string{"cost_center": "cc-42"}}

	if got := c.Metadatum("cost_center", "none"); got != "cc-42" {
		t.Errorf("Metadatum(cost_center) = %q", got)
	}
	if got := c.Metadatum("missing", "none"); got != "none" {
		t.Errorf("Metadatum(missing) = %q, want default", got)
	}
	if got := (Context{}).Metadatum("any", "fallback"); got != "fallback" {
		t.Errorf("Metadatum on empty context = %q", got)
	}
}
