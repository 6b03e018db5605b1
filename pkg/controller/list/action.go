package list

// ReferenceInfo is a reference passed to the line template.
type ReferenceInfo struct {
	FilePath  string // Path to the file
	Line      int    // 1-based line number
	Column    int    // 1-based column number
	Raw       string // The reference as written
	Identity  string // owner/repo[/path]
	RepoOwner string // First segment of Identity
	RepoName  string // Second segment of Identity
	Specifier string // Text after the last @
	Kind      string // sha_pinned, tag_or_branch, missing, or malformed
	Passed    bool
	Job       string
	Step      int
}
