package devops

import "errors"

// Sentinel errors shared across service wrappers.
// Wrappers and the credential manager wrap these so the classifier and the
// CLI can handle error categories uniformly without importing provider SDKs.
//
//	return fmt.Errorf("load AWS credentials: %w", devops.ErrNoCredentials)
var (
	// ErrNoCredentials indicates that no usable credentials could be
	// found in the environment, config files, or the OS keyring.
	ErrNoCredentials = errors.New("no credentials found")

	// ErrMissingOwner indicates a GitHub repository was referenced
	// without an owner and no default owner is configured.
	ErrMissingOwner = errors.New("repository owner is required")
)
