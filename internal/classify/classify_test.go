package classify

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/srbarik25/opsagent/internal/devops"
)

func TestClassify_ResourceNotFound(t *testing.T) {
	tests := []struct {
		name         string
		code         string
		message      string
		wantType     string
		wantID       string
	}{
		{
			name:     "instance from code",
			code:     "InvalidInstanceID.NotFound",
			message:  "The instance ID 'i-0abcd1234' does not exist",
			wantType: "instance",
			wantID:   "i-0abcd1234",
		},
		{
			name:     "security group from message",
			code:     "InvalidGroup.NotFound",
			message:  "The security group 'sg-12345' does not exist",
			wantType: "security group",
			wantID:   "sg-12345",
		},
		{
			name:     "key pair",
			code:     "InvalidKeyPair.NotFound",
			message:  "The key pair 'deploy-key' does not exist",
			wantType: "key pair",
			wantID:   "deploy-key",
		},
		{
			name:     "vpc",
			code:     "InvalidVpcID.NotFound",
			message:  "The vpc ID 'vpc-99' does not exist",
			wantType: "VPC",
			wantID:   "vpc-99",
		},
		{
			name:    "no extractable details",
			code:    "ResourceNotFoundException",
			message: "no such thing",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify("aws", "get_instance", &RawError{Code: tt.code, Message: tt.message})

			if got.Kind != KindResourceNotFound {
				t.Fatalf("Kind = %v, want ResourceNotFound", got.Kind)
			}
			if got.Suggestion == "" {
				t.Error("Suggestion is empty")
			}
			if got.ResourceType != tt.wantType {
				t.Errorf("ResourceType = %q, want %q", got.ResourceType, tt.wantType)
			}
			if got.ResourceID != tt.wantID {
				t.Errorf("ResourceID = %q, want %q", got.ResourceID, tt.wantID)
			}
			if !strings.Contains(got.Message, "get_instance") {
				t.Errorf("Message %q does not name the operation", got.Message)
			}
		})
	}
}

func TestClassify_CodeGroupings(t *testing.T) {
	tests := []struct {
		code string
		want Kind
	}{
		{"ResourceNotFoundException", KindResourceNotFound},
		{"NoSuchEntity", KindResourceNotFound},
		{"NoSuchBucket", KindResourceNotFound},
		{"InvalidKeyPair.Duplicate", KindResourceNotFound},
		{"AccessDenied", KindPermissionDenied},
		{"UnauthorizedOperation", KindPermissionDenied},
		{"ValidationError", KindInvalidInput},
		{"InvalidParameterValue", KindInvalidInput},
		{"MalformedQueryString", KindInvalidInput},
		{"Throttling", KindRateLimited},
		{"ThrottlingException", KindRateLimited},
		{"RequestLimitExceeded", KindRateLimited},
		{"LimitExceeded", KindResourceLimitExceeded},
		{"InstanceLimitExceeded", KindResourceLimitExceeded},
		{"Unauthorized", KindAuthenticationFailed},
		{"BadCredentials", KindAuthenticationFailed},
		{"SomethingNovel", KindGeneric},
		{"", KindGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			got := Classify("aws", "describe_things", &RawError{Code: tt.code, Message: "boom"})
			if got.Kind != tt.want {
				t.Errorf("Classify(%q).Kind = %v, want %v", tt.code, got.Kind, tt.want)
			}
			if got.Suggestion == "" {
				t.Errorf("Classify(%q) returned empty suggestion", tt.code)
			}
		})
	}
}

func TestClassify_RateLimitedWaitSeconds(t *testing.T) {
	got := Classify("aws", "list_instances", &RawError{
		Code:    "Throttling",
		Message: "Rate exceeded, try again in 42 seconds",
	})

	if got.Kind != KindRateLimited {
		t.Fatalf("Kind = %v, want RateLimited", got.Kind)
	}
	if got.WaitSeconds != 42 {
		t.Errorf("WaitSeconds = %d, want 42", got.WaitSeconds)
	}
	if !strings.Contains(got.Suggestion, "42") {
		t.Errorf("Suggestion %q does not mention the wait time", got.Suggestion)
	}
}

func TestClassify_RateLimitedWithoutWaitTime(t *testing.T) {
	got := Classify("github", "list_repositories", &RawError{
		Code:    "RateLimited",
		Message: "API rate limit exceeded",
	})

	if got.Kind != KindRateLimited {
		t.Fatalf("Kind = %v, want RateLimited", got.Kind)
	}
	if got.WaitSeconds != 0 {
		t.Errorf("WaitSeconds = %d, want 0", got.WaitSeconds)
	}
	if got.Suggestion == "" {
		t.Error("Suggestion is empty")
	}
}

func TestClassify_PermissionDenied(t *testing.T) {
	got := Classify("aws", "stop_instance", &RawError{
		Code:    "AccessDenied",
		Message: "User is not authorized",
	})

	if got.Kind != KindPermissionDenied {
		t.Fatalf("Kind = %v, want PermissionDenied", got.Kind)
	}
	if !strings.Contains(got.Message, "stop_instance") {
		t.Errorf("Message %q does not contain the operation name", got.Message)
	}
	if !strings.Contains(got.Message, "User is not authorized") {
		t.Errorf("Message %q does not contain the raw message", got.Message)
	}
	if !strings.Contains(got.Suggestion, "IAM permissions") {
		t.Errorf("Suggestion %q does not mention IAM permissions", got.Suggestion)
	}
}

func TestClassify_MissingCredentials(t *testing.T) {
	err := fmt.Errorf("load AWS credentials: %w", devops.ErrNoCredentials)
	got := Classify("aws", "list_instances", err)

	if got.Kind != KindAuthenticationFailed {
		t.Fatalf("Kind = %v, want AuthenticationFailed", got.Kind)
	}
	for _, want := range []string{"AWS_ACCESS_KEY_ID", "aws configure", "profile"} {
		if !strings.Contains(got.Suggestion, want) {
			t.Errorf("Suggestion %q does not mention %q", got.Suggestion, want)
		}
	}
}

func TestClassify_GenericFallback(t *testing.T) {
	got := Classify("aws", "get_ami", errors.New("something odd happened"))

	if got.Kind != KindGeneric {
		t.Fatalf("Kind = %v, want Generic", got.Kind)
	}
	if !strings.Contains(got.Message, "get_ami") || !strings.Contains(got.Message, "something odd happened") {
		t.Errorf("Message %q missing operation or raw message", got.Message)
	}
	if got.Suggestion == "" {
		t.Error("Suggestion is empty")
	}
}

func TestClassify_NetworkSuggestion(t *testing.T) {
	tests := []struct {
		msg  string
		want bool
	}{
		{"Connection reset by peer", true},
		{"request TIMEOUT after 30s", true},
		{"disk full", false},
	}

	for _, tt := range tests {
		got := Classify("aws", "op", errors.New(tt.msg))
		has := strings.Contains(got.Suggestion, "network connection")
		if has != tt.want {
			t.Errorf("Classify(%q): network suggestion = %v, want %v", tt.msg, has, tt.want)
		}
	}
}

func TestClassify_NeverPanics(t *testing.T) {
	inputs := []error{
		nil,
		errors.New(""),
		&RawError{},
		&RawError{Code: "Throttling"},
		fmt.Errorf("wrapped: %w", &RawError{Code: "AccessDenied", Message: ""}),
	}

	for _, err := range inputs {
		got := Classify("aws", "op", err)
		if got == nil {
			t.Fatalf("Classify(%v) returned nil", err)
		}
		if got.Suggestion == "" {
			t.Errorf("Classify(%v) returned empty suggestion", err)
		}
		if !strings.Contains(got.Message, "op") {
			t.Errorf("Classify(%v) message %q does not name the operation", err, got.Message)
		}
	}
}

func TestClassify_Deterministic(t *testing.T) {
	err := &RawError{Code: "Throttling", Message: "try again in 7 seconds"}

	first := Classify("aws", "start_instance", err)
	second := Classify("aws", "start_instance", err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated classification differs (-first +second):\n%s", diff)
	}
}
