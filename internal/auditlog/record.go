package auditlog

import "time"

// OperationRecord captures a single CLI or agent operation for local audit.
type OperationRecord struct {
	ID int64 `json:"id"`

	// Command is the operation identifier, e.g. "ec2 stop" or "agent run".
	Command string `json:"command"`

	// Args are the sanitized invocation arguments.
	Args []string `json:"args,omitempty"`

	// Provider is "aws", "github", or "" for local operations.
	Provider string `json:"provider,omitempty"`

	// Outcome is "ok" or "error".
	Outcome string `json:"outcome"`

	// ErrorKind is the classified error kind name when Outcome is "error".
	ErrorKind string `json:"error_kind,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}

// Outcome constants.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)
