package ui

import (
	"fpick/internal/eventbus"
)

// EventMsg wraps a domain event forwarded from the event bus
type EventMsg struct {
	Event eventbus.DomainEvent
}

// debounceFiredMsg is the debounce timer firing. Arming a new timer bumps
// the model's generation, so a stale generation here is an orphaned timer
// and must be ignored.
type debounceFiredMsg struct {
	gen uint64
}

// renderMsg executes the single queued full render
type renderMsg struct{}

// scanTickMsg is one poll of the scan progress monitor, generation-guarded
// like the debounce timer so a rebuilt session orphans old ticks.
type scanTickMsg struct {
	gen uint64
}

// previewLoadMsg is the deferred step of an async preview load; the
// handler re-checks the pending-target marker before doing any work.
type previewLoadMsg struct {
	path string
}

// pagerDoneMsg reports the result of a full-file pager run
type pagerDoneMsg struct {
	err error
}
