package domain

import "time"

// FileItem represents a single indexed file
type FileItem struct {
	Path          string // absolute path
	RelativePath  string // path relative to the index root, used for matching
	Name          string // base name shown in the result list
	Extension     string
	Directory     string // directory portion of RelativePath ("" at the root)
	Size          int64
	Modified      time.Time
	FrecencyScore int    // combined frequency+recency usage score
	GitStatus     string // one of the GitStatus* tags
	IsCurrent     bool   // the file the picker was opened from
}

// Git status tags attached to file items
const (
	GitStatusClear          = "clear" // not in a repository
	GitStatusClean          = "clean"
	GitStatusUntracked      = "untracked"
	GitStatusModified       = "modified"
	GitStatusDeleted        = "deleted"
	GitStatusRenamed        = "renamed"
	GitStatusStagedNew      = "staged_new"
	GitStatusStagedModified = "staged_modified"
	GitStatusStagedDeleted  = "staged_deleted"
	GitStatusIgnored        = "ignored"
)

// Score explains how a file item was ranked for a query
type Score struct {
	Total          int
	BaseScore      int // raw fuzzy match score
	FilenameBonus  int // query matched inside the base name
	FrecencyBoost  int
	CurrentPenalty int // demotion applied to the currently open file
	MatchType      string
}

// SearchResult is the engine's answer for one query; the item list is
// replaced wholesale on every search and never mutated in place.
type SearchResult struct {
	Items        []FileItem
	Scores       []Score
	TotalMatched int
	TotalFiles   int
}

// ScanProgress represents the current state of the background index scan
type ScanProgress struct {
	IsScanning bool
	Scanned    int
	Total      int // file count of the previous completed scan, 0 on the first
}
