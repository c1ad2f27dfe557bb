package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventScanStarted   EventType = "ScanStarted"
	EventScanCompleted EventType = "ScanCompleted"
	EventIndexUpdated  EventType = "IndexUpdated"
	EventError         EventType = "Error"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// ScanStartedEvent is emitted when the background index scan begins
type ScanStartedEvent struct {
	Root string
}

func (e ScanStartedEvent) Type() EventType { return EventScanStarted }

// ScanCompletedEvent is emitted when the background index scan finishes
type ScanCompletedEvent struct {
	FilesFound int
}

func (e ScanCompletedEvent) Type() EventType { return EventScanCompleted }

// IndexUpdatedEvent is emitted when the searchable file set changes
type IndexUpdatedEvent struct {
	TotalFiles int
}

func (e IndexUpdatedEvent) Type() EventType { return EventIndexUpdated }

// ErrorEvent is emitted when a background operation fails
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }
