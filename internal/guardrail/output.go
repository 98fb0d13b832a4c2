package guardrail

import (
	"fmt"
	"regexp"
	"strings"
)

// Output rules are tuned for leaked data rather than commands. RE2 has no
// lookaround, so the token-shape rules emulate boundaries with explicit
// non-member character classes on both sides.
var sensitiveOutputRules = []rule{
	// 20 uppercase alphanumerics, the AWS access-key-ID shape. Deliberately
	// case-sensitive; everything else below is case-insensitive.
	{regexp.MustCompile(`(^|[^A-Z0-9])[A-Z0-9]{20}([^A-Z0-9]|$)`), "AWS access key"},
	{regexp.MustCompile(`(^|[^A-Za-z0-9/+=])[A-Za-z0-9/+=]{40}([^A-Za-z0-9/+=]|$)`), "AWS secret key"},
	{regexp.MustCompile(`ghp_[a-zA-Z0-9]{36}`), "GitHub token"},
	{regexp.MustCompile(`github_pat_[a-zA-Z0-9_]{22,}`), "GitHub personal access token"},
	{regexp.MustCompile(`-----BEGIN\s+(RSA|DSA|EC|OPENSSH)\s+PRIVATE\s+KEY`), "SSH private key"},
	// RFC1918 ranges only; public addresses are never flagged.
	{regexp.MustCompile(`\b10\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`), "private IP address"},
	{regexp.MustCompile(`\b172\.(1[6-9]|2[0-9]|3[01])\.\d{1,3}\.\d{1,3}\b`), "private IP address"},
	{regexp.MustCompile(`\b192\.168\.\d{1,3}\.\d{1,3}\b`), "private IP address"},
}

var emailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`)

// credentialMentions are checked as standalone words on key:value / key=value
// shaped lines. A bare mention with no '='/':' on the line never flags.
var credentialMentions = []struct {
	name string
	re   *regexp.Regexp
}{
	{"access key", regexp.MustCompile(`(?i)\baccess\s+key\b`)},
	{"secret key", regexp.MustCompile(`(?i)\bsecret\s+key\b`)},
	{"private key", regexp.MustCompile(`(?i)\bprivate\s+key\b`)},
	{"api key", regexp.MustCompile(`(?i)\bapi[\s_-]?key\b`)},
	{"token", regexp.MustCompile(`(?i)\btoken\b`)},
	{"password", regexp.MustCompile(`(?i)\bpassword\b`)},
	{"credential", regexp.MustCompile(`(?i)\bcredentials?\b`)},
	{"secret", regexp.MustCompile(`(?i)\bsecret\b`)},
}

// CheckSensitiveOutput screens model-generated output for secret-shaped
// tokens, private addresses, and credential-bearing lines before the text is
// returned to the user. The first matching rule short-circuits and is named
// in the reasoning.
//
// A lone email address is not sufficient to flag; ordinary contact info
// passes unless another sensitive indicator co-occurs.
func CheckSensitiveOutput(text string) Verdict {
	for _, r := range sensitiveOutputRules {
		if r.re.MatchString(text) {
			return Verdict{
				Flagged:   true,
				Reasoning: fmt.Sprintf("output contains sensitive information: %s", r.label),
			}
		}
	}

	if emails := emailPattern.FindAllString(text, 2); len(emails) > 1 {
		return Verdict{
			Flagged:   true,
			Reasoning: "output contains sensitive information: multiple email addresses",
		}
	}

	for _, line := range strings.Split(text, "\n") {
		if !strings.ContainsAny(line, "=:") {
			continue
		}
		for _, mention := range credentialMentions {
			if mention.re.MatchString(line) {
				return Verdict{
					Flagged:   true,
					Reasoning: fmt.Sprintf("output appears to contain %s", mention.name),
				}
			}
		}
	}

	return Verdict{Flagged: false, Reasoning: "output does not contain any known sensitive information patterns"}
}
