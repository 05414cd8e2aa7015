package guard

import "regexp"

// Rule defines a secret detection pattern (ids follow gitleaks naming).
type Rule struct {
	RuleID      string
	Description string
	Regex       *regexp.Regexp
}

// DefaultRules holds patterns for credentials that tend to leak into
// published shell examples.
var DefaultRules = []Rule{
	{
		RuleID:      "aws-access-key",
		Description: "AWS Access Key",
		Regex:       regexp.MustCompile(`\b((?:A3T[A-Z0-9]|AKIA|ASIA|ABIA|ACCA)[A-Z2-7]{16})\b`),
	},
	{
		RuleID:      "github-pat",
		Description: "GitHub Personal Access Token",
		Regex:       regexp.MustCompile(`ghp_[0-9a-zA-Z]{36}`),
	},
	{
		RuleID:      "github-fine-grained-pat",
		Description: "GitHub Fine-Grained PAT",
		Regex:       regexp.MustCompile(`github_pat_\w{82}`),
	},
	{
		RuleID:      "gitlab-pat",
		Description: "GitLab Personal Access Token",
		Regex:       regexp.MustCompile(`glpat-[0-9a-zA-Z\-_]{20}`),
	},
	{
		RuleID:      "npm-access-token",
		Description: "npm Access Token",
		Regex:       regexp.MustCompile(`\bnpm_[a-zA-Z0-9]{36}\b`),
	},
	{
		RuleID:      "pypi-upload-token",
		Description: "PyPI Upload Token",
		Regex:       regexp.MustCompile(`pypi-AgEIcHlwaS5vcmc[A-Za-z0-9\-_]{50,}`),
	},
	{
		RuleID:      "private-key",
		Description: "Private Key",
		Regex:       regexp.MustCompile(`(?i)-----BEGIN[ A-Z0-9_-]{0,100}PRIVATE KEY-----`),
	},
	{
		RuleID:      "password-in-url",
		Description: "Password in URL",
		Regex:       regexp.MustCompile(`(?i)(mongodb|postgres(?:ql)?|mysql|redis|amqp)://[^:\s/]+:([^@\s]+)@`),
	},
	{
		RuleID:      "cli-password-flag",
		Description: "Password passed on the command line",
		Regex:       regexp.MustCompile(`(?i)--password[= ]["']?([^\s"'<>$]{8,})`),
	},
	{
		RuleID:      "bearer-token",
		Description: "Bearer Token",
		Regex:       regexp.MustCompile(`(?i)bearer\s+([a-zA-Z0-9_\-\.]{20,})`),
	},
}
