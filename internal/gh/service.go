// Package gh wraps the GitHub REST API behind provider-neutral domain types.
//
// Like the ec2 package, every call funnels through do(), which retries rate
// limits and converts API failures into classified errors keyed by HTTP
// status.
package gh

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"

	"github.com/srbarik25/opsagent/internal/classify"
	"github.com/srbarik25/opsagent/internal/devops"
	"github.com/srbarik25/opsagent/internal/retry"
)

// Service provides GitHub operations. A default owner, when set, is used for
// calls that omit one.
type Service struct {
	client *github.Client
	owner  string
	retry  retry.Config
}

// NewService creates a Service. An empty token yields an unauthenticated
// client, which works for public repositories at a lower rate limit.
func NewService(token, defaultOwner string) *Service {
	client := github.NewClient(nil)
	if token != "" {
		client = client.WithAuthToken(token)
	}
	return &Service{client: client, owner: defaultOwner, retry: retry.DefaultConfig()}
}

// NewServiceWithClient creates a Service around an existing client.
// Intended for testing against a local HTTP server.
func NewServiceWithClient(client *github.Client, defaultOwner string) *Service {
	return &Service{client: client, owner: defaultOwner, retry: retry.Config{MaxAttempts: 1}}
}

// resolveOwner picks the explicit owner, falling back to the configured
// default.
func (s *Service) resolveOwner(op, owner string) (string, error) {
	if owner != "" {
		return owner, nil
	}
	if s.owner != "" {
		return s.owner, nil
	}
	return "", classify.Classify("github", op,
		fmt.Errorf("%w: pass an owner or set a default with 'opsagent config set default_owner'", devops.ErrMissingOwner))
}

func (s *Service) do(ctx context.Context, op string, fn func() error) error {
	if err := retry.Do(ctx, s.retry, ghRetryable, fn); err != nil {
		return wrap(op, err)
	}
	return nil
}

func ghRetryable(err error) bool {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return true
	}
	var are *github.AbuseRateLimitError
	if errors.As(err, &are) {
		return true
	}
	return retry.IsRetryable(err)
}

// wrap converts a go-github error into a classified error. HTTP statuses map
// onto the shared code table so GitHub and AWS failures classify the same
// way.
func wrap(op string, err error) error {
	var rle *github.RateLimitError
	if errors.As(err, &rle) {
		return classify.Classify("github", op, &classify.RawError{
			Code:    "RateLimited",
			Message: rle.Message,
		})
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) {
		return classify.Classify("github", op, &classify.RawError{
			Code:    codeForStatus(ghErr.Response.StatusCode),
			Message: ghErr.Message,
		})
	}

	return classify.Classify("github", op, err)
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NotFound"
	case http.StatusForbidden:
		return "AccessDenied"
	case http.StatusUnauthorized:
		return "Unauthorized"
	case http.StatusUnprocessableEntity:
		return "ValidationError"
	case http.StatusTooManyRequests:
		return "RateLimited"
	default:
		return ""
	}
}
