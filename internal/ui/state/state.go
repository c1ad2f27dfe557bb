package state

import (
	"fpick/internal/domain"
)

// SessionState contains all mutable state owned by one picker session. It
// is created on open and fully torn down on close; only the externally
// persisted frecency data survives across sessions. All access is confined
// to the update loop, so no locking is needed.
type SessionState struct {
	Active bool

	// Query and results
	Query        string
	Results      []domain.FileItem // replaced wholesale per search, never mutated
	Scores       []domain.Score
	TotalMatched int
	TotalFiles   int

	// Cursor is 1-based, clamped to [1, len(Results)], 1 when empty
	Cursor int

	// DisplayedPath is the single pending-preview marker: the path whose
	// preview is currently shown or awaiting an async load. A deferred
	// load whose path no longer matches is discarded.
	DisplayedPath string

	// LastStatus is the last rendered status line, for render-skip
	LastStatus string

	// Notice is a non-fatal message surfaced to the user
	Notice string

	// InitialRenderDone flips exactly once, after the first debounced
	// refresh completes; empty-query signals before that are spurious.
	InitialRenderDone bool
}

// NewSessionState creates a fresh session state
func NewSessionState() *SessionState {
	return &SessionState{Cursor: 1}
}

// SetResults replaces the result list atomically and re-clamps the cursor
func (s *SessionState) SetResults(res domain.SearchResult) {
	s.Results = res.Items
	s.Scores = res.Scores
	s.TotalMatched = res.TotalMatched
	s.TotalFiles = res.TotalFiles
	s.ClampCursor()
}

// ClampCursor forces the cursor into [1, len(Results)], or 1 when empty
func (s *SessionState) ClampCursor() {
	if len(s.Results) == 0 {
		s.Cursor = 1
		return
	}
	if s.Cursor < 1 {
		s.Cursor = 1
	}
	if s.Cursor > len(s.Results) {
		s.Cursor = len(s.Results)
	}
}

// MoveCursor shifts the cursor by delta and clamps
func (s *SessionState) MoveCursor(delta int) {
	s.Cursor += delta
	s.ClampCursor()
}

// CursorItem returns the item under the cursor, if any
func (s *SessionState) CursorItem() (domain.FileItem, bool) {
	if len(s.Results) == 0 {
		return domain.FileItem{}, false
	}
	return s.Results[s.Cursor-1], true
}

// Reset tears the state down to its post-close shape
func (s *SessionState) Reset() {
	s.Active = false
	s.Query = ""
	s.Results = nil
	s.Scores = nil
	s.TotalMatched = 0
	s.TotalFiles = 0
	s.Cursor = 1
	s.DisplayedPath = ""
	s.LastStatus = ""
	s.Notice = ""
	s.InitialRenderDone = false
}
