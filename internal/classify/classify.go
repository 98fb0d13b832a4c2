// Package classify normalizes heterogeneous cloud and API failures into a
// small taxonomy of actionable error kinds with remediation suggestions.
//
// Service wrappers convert SDK errors into a *RawError (structured code +
// message) or pass generic errors through unchanged, then call Classify.
// The package imports no provider SDKs, so the CLI and agent layers can
// branch on Kind without provider-specific knowledge.
package classify

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/srbarik25/opsagent/internal/devops"
)

// Kind is the closed taxonomy of normalized failure categories.
type Kind int

const (
	KindGeneric Kind = iota
	KindResourceNotFound
	KindPermissionDenied
	KindInvalidInput
	KindRateLimited
	KindResourceLimitExceeded
	KindAuthenticationFailed
)

// String returns the canonical name of the kind.
func (k Kind) String() string {
	switch k {
	case KindResourceNotFound:
		return "ResourceNotFound"
	case KindPermissionDenied:
		return "PermissionDenied"
	case KindInvalidInput:
		return "InvalidInput"
	case KindRateLimited:
		return "RateLimited"
	case KindResourceLimitExceeded:
		return "ResourceLimitExceeded"
	case KindAuthenticationFailed:
		return "AuthenticationFailed"
	default:
		return "Generic"
	}
}

// RawError is the structured error shape produced at the service-wrapper
// boundary from SDK client errors. Code carries the provider-specific error
// code spelling (e.g. "InvalidInstanceID.NotFound").
type RawError struct {
	Code    string
	Message string
}

func (e *RawError) Error() string {
	if e.Code == "" {
		return e.Message
	}
	return e.Code + ": " + e.Message
}

// Error is a classified failure. Every instance has exactly one Kind and a
// non-empty Suggestion; Message always names the failed operation.
type Error struct {
	Kind       Kind
	Provider   string // "aws" or "github"
	Op         string
	Message    string
	Suggestion string

	// ResourceType and ResourceID are best-effort extractions, populated
	// only for KindResourceNotFound.
	ResourceType string
	ResourceID   string

	// WaitSeconds is the provider-suggested backoff, populated only for
	// KindRateLimited when the message carries one; zero otherwise.
	WaitSeconds int
}

func (e *Error) Error() string { return e.Message }

// Code spellings grouped under each kind. These groupings are a contract:
// callers pattern-match on Kind, never on message text.
var (
	notFoundCodes = codeSet(
		"ResourceNotFoundException", "NoSuchEntity", "NoSuchBucket",
		"NotFound", "InvalidInstanceID.NotFound", "InvalidGroup.NotFound",
		"InvalidSecurityGroupID.NotFound", "InvalidKeyPair.NotFound",
		"InvalidKeyPair.Duplicate", "InvalidVpcID.NotFound",
		"InvalidAMIID.NotFound",
	)
	permissionCodes = codeSet("AccessDenied", "UnauthorizedOperation")
	invalidCodes    = codeSet("ValidationError", "InvalidParameterValue", "MalformedQueryString")
	rateCodes       = codeSet("Throttling", "ThrottlingException", "RequestLimitExceeded", "RateLimited")
	limitCodes      = codeSet("LimitExceeded", "InstanceLimitExceeded", "ResourceLimitExceeded")
	authCodes       = codeSet("Unauthorized", "BadCredentials", "AuthFailure")
)

var (
	quotedIDPattern = regexp.MustCompile(`'([a-zA-Z0-9-]+)'`)
	waitPattern     = regexp.MustCompile(`try again in (\d+) seconds`)
)

const credentialSuggestion = "Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY environment variables, " +
	"configure the AWS CLI with 'aws configure', or specify a named profile."

// Classify maps err to exactly one classified Error for the given provider
// and operation name. It is total: unrecognized errors become KindGeneric,
// a nil err yields a generic "unknown error", and no path panics.
func Classify(provider, op string, err error) *Error {
	if err == nil {
		err = errors.New("unknown error")
	}

	var raw *RawError
	if errors.As(err, &raw) {
		return classifyRaw(provider, op, raw)
	}

	if errors.Is(err, devops.ErrNoCredentials) {
		return &Error{
			Kind:       KindAuthenticationFailed,
			Provider:   provider,
			Op:         op,
			Message:    fmt.Sprintf("%s failed: %v", op, err),
			Suggestion: credentialSuggestion,
		}
	}

	return generic(provider, op, err.Error())
}

func classifyRaw(provider, op string, raw *RawError) *Error {
	switch {
	case notFoundCodes[raw.Code]:
		e := &Error{
			Kind:     KindResourceNotFound,
			Provider: provider,
			Op:       op,
			Message:  fmt.Sprintf("%s failed: resource not found", op),
		}
		e.ResourceType = resourceType(raw.Code, raw.Message)
		if m := quotedIDPattern.FindStringSubmatch(raw.Message); m != nil {
			e.ResourceID = m[1]
		}
		e.Suggestion = notFoundSuggestion(e.ResourceType, e.ResourceID)
		return e

	case permissionCodes[raw.Code]:
		return &Error{
			Kind:       KindPermissionDenied,
			Provider:   provider,
			Op:         op,
			Message:    fmt.Sprintf("%s failed: permission denied - %s", op, raw.Message),
			Suggestion: "Check your IAM permissions and ensure your credentials have the necessary access rights.",
		}

	case invalidCodes[raw.Code]:
		return &Error{
			Kind:       KindInvalidInput,
			Provider:   provider,
			Op:         op,
			Message:    fmt.Sprintf("%s failed: invalid parameters - %s", op, raw.Message),
			Suggestion: "Check the input parameters and ensure they meet the requirements.",
		}

	case rateCodes[raw.Code]:
		e := &Error{
			Kind:     KindRateLimited,
			Provider: provider,
			Op:       op,
			Message:  fmt.Sprintf("%s failed: rate limit exceeded - %s", op, raw.Message),
		}
		if m := waitPattern.FindStringSubmatch(raw.Message); m != nil {
			// The capture group is all digits, so Atoi cannot fail.
			e.WaitSeconds, _ = strconv.Atoi(m[1])
		}
		if e.WaitSeconds > 0 {
			e.Suggestion = fmt.Sprintf("Wait for %d seconds before retrying.", e.WaitSeconds)
		} else {
			e.Suggestion = "Reduce the frequency of API calls or implement exponential backoff."
		}
		return e

	case limitCodes[raw.Code]:
		return &Error{
			Kind:       KindResourceLimitExceeded,
			Provider:   provider,
			Op:         op,
			Message:    fmt.Sprintf("%s failed: resource limit exceeded - %s", op, raw.Message),
			Suggestion: "Request a limit increase from the provider or delete unused resources.",
		}

	case authCodes[raw.Code]:
		return &Error{
			Kind:       KindAuthenticationFailed,
			Provider:   provider,
			Op:         op,
			Message:    fmt.Sprintf("%s failed: authentication failed - %s", op, raw.Message),
			Suggestion: credentialSuggestion,
		}

	default:
		return generic(provider, op, raw.Error())
	}
}

func generic(provider, op, msg string) *Error {
	e := &Error{
		Kind:     KindGeneric,
		Provider: provider,
		Op:       op,
		Message:  fmt.Sprintf("%s failed: %s", op, msg),
	}
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "connection") || strings.Contains(lower, "timeout") {
		e.Suggestion = "Check your network connection and try again."
	} else {
		e.Suggestion = "Check the provider documentation for this operation or retry with different parameters."
	}
	return e
}

// resourceType scans the error code and message for known resource nouns.
// Best-effort; returns "" when nothing matches.
func resourceType(code, msg string) string {
	lowerCode := strings.ToLower(code)
	lowerMsg := strings.ToLower(msg)

	switch {
	case strings.Contains(lowerCode, "instance") || strings.Contains(lowerMsg, "instance"):
		return "instance"
	case strings.Contains(lowerMsg, "security group"):
		return "security group"
	case strings.Contains(lowerMsg, "key pair"):
		return "key pair"
	case strings.Contains(lowerCode, "vpc") || strings.Contains(lowerMsg, "vpc"):
		return "VPC"
	case strings.Contains(lowerMsg, "repository"):
		return "repository"
	}
	return ""
}

func notFoundSuggestion(resourceType, resourceID string) string {
	switch {
	case resourceType != "" && resourceID != "":
		return fmt.Sprintf("Check if the %s '%s' exists and you have permission to access it.", resourceType, resourceID)
	case resourceType != "":
		return fmt.Sprintf("Check if the %s exists and you have permission to access it.", resourceType)
	default:
		return "Check if the resource exists and you have permission to access it."
	}
}

func codeSet(codes ...string) map[string]bool {
	set := make(map[string]bool, len(codes))
	for _, c := range codes {
		set[c] = true
	}
	return set
}
