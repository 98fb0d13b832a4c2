// Package guardrail screens agent input and output text for dangerous
// commands and leaking secrets using ordered pattern-matching rules.
//
// Both checks are pure functions over their input string: no I/O, no shared
// state, safe to call concurrently from any number of agent turns. All
// patterns are RE2, so evaluation cost is linear in the input; the checks
// sit on the hot path of every agent turn.
package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

// Verdict is the result of a guardrail check. A flagged verdict is a normal
// return value, not an error; the hosting framework decides whether to block
// the turn.
type Verdict struct {
	Flagged   bool   `json:"flagged"`
	Reasoning string `json:"reasoning"`
}

// rule pairs a compiled pattern with the label quoted in the reasoning when
// it matches. Rule order is significant: the first match wins and names the
// explanation.
type rule struct {
	re    *regexp.Regexp
	label string
}

// Destructive shell, SQL, and system operation patterns, checked first and
// in order against raw user input.
var dangerousCommandRules = []rule{
	{regexp.MustCompile(`(?i)rm\s+-rf\s+[/~]`), "recursive deletion of root or home directory"},
	{regexp.MustCompile(`(?i)dd\s+if=/dev/zero\s+of=/dev/[hs]d[a-z]`), "disk wipe"},
	{regexp.MustCompile(regexp.QuoteMeta(`:(){ :|:& };:`)), "fork bomb"},
	{regexp.MustCompile(`(?i)wget\s+.+\s+\|\s+(ba)?sh`), "download piped to shell"},
	{regexp.MustCompile(`(?i)curl\s+.+\s+\|\s+(ba)?sh`), "download piped to shell"},
	{regexp.MustCompile(`(?i)sudo\s+rm\s+-rf\s+--no-preserve-root\s+/`), "deletion of root with no-preserve-root"},
	{regexp.MustCompile(`(?i)mkfs\s+/dev/[hs]d[a-z]`), "disk format"},
	{regexp.MustCompile(`(?i)DROP\s+TABLE`), "SQL table drop"},
	{regexp.MustCompile(`(?i)DELETE\s+FROM\s+.+\s+WHERE`), "SQL deletion"},
	{regexp.MustCompile(`(?i)shutdown\s+-h\s+now`), "system shutdown"},
	{regexp.MustCompile(`(?i)\bhalt\b`), "system halt"},
	{regexp.MustCompile(`(?i)\bpoweroff\b`), "system power off"},
	{regexp.MustCompile(`(?i)sudo\s+passwd\s+root`), "root password change"},
	{regexp.MustCompile(`(?i)chmod\s+-R\s+777\s+/`), "recursive permission change on root"},
	{regexp.MustCompile(`(?i)chown\s+-R\s+[^:\s]+:[^:\s]+\s+/`), "recursive ownership change on root"},
}

// Credential-shaped substrings in input text; supplying literal credentials
// to the agent is flagged the same way as a dangerous command.
var credentialInputRules = []rule{
	{regexp.MustCompile(`(?i)(AWS_ACCESS_KEY_ID|AWS_SECRET_ACCESS_KEY)`), "AWS credential information"},
	{regexp.MustCompile(`(?i)(github_token|ghp_[a-zA-Z0-9]{36})`), "GitHub token information"},
	{regexp.MustCompile(`-----BEGIN\s+(RSA|DSA|EC|OPENSSH)\s+PRIVATE\s+KEY-----`), "private key information"},
}

// Scope-widening phrases flag only when a destructive verb co-occurs
// anywhere in the same text. Scope alone is never sufficient, so broad
// read-only queries ("list all regions") pass.
var scopePatterns = []rule{
	{regexp.MustCompile(`(?i)all\s+regions`), "all regions"},
	{regexp.MustCompile(`(?i)all\s+accounts`), "all accounts"},
	{regexp.MustCompile(`(?i)all\s+resources`), "all resources"},
	{regexp.MustCompile(`(?i)all\s+instances`), "all instances"},
	{regexp.MustCompile(`(?i)all\s+databases`), "all databases"},
	{regexp.MustCompile(`(?i)all\s+(repos|repositories)`), "all repositories"},
}

var destructiveVerbs = []string{"delete", "remove", "terminate", "stop", "kill"}

// CheckDangerousInput screens raw user input for destructive command
// patterns, literal credentials, and scope+verb combinations. The first
// matching rule is quoted in the reasoning.
func CheckDangerousInput(text string) Verdict {
	for _, r := range dangerousCommandRules {
		if r.re.MatchString(text) {
			return Verdict{
				Flagged:   true,
				Reasoning: fmt.Sprintf("input contains potentially dangerous command pattern: %s", r.label),
			}
		}
	}

	for _, r := range credentialInputRules {
		if r.re.MatchString(text) {
			return Verdict{
				Flagged:   true,
				Reasoning: fmt.Sprintf("input contains %s", r.label),
			}
		}
	}

	lower := strings.ToLower(text)
	for _, scope := range scopePatterns {
		if !scope.re.MatchString(text) {
			continue
		}
		for _, verb := range destructiveVerbs {
			if strings.Contains(lower, verb) {
				return Verdict{
					Flagged: true,
					Reasoning: fmt.Sprintf("input combines excessive scope '%s' with destructive operation '%s'",
						scope.label, verb),
				}
			}
		}
	}

	return Verdict{Flagged: false, Reasoning: "input does not contain any known dangerous patterns"}
}
