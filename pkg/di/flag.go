package di

import "github.com/gha-enforce-sha/gha-enforce-sha/pkg/cli/flag"

// Flags holds the command-line flags of the check and list commands.
type Flags struct {
	*flag.GlobalFlags

	SHALength   int
	Exempt      []string
	Format      string
	Concurrency int

	LineTemplate string
	FailedOnly   bool

	IsGitHubActions bool

	Version string
	Args    []string
}
