package provisioning

import (
	"fmt"
	"maps"
	"time"

	"github.com/rs/zerolog"
)

// Observer defines the interface for structured observability during provisioning.
type Observer interface {
	Printf(format string, v ...any)

	// Event emits a structured event
	Event(event Event)

	// WithFields returns a new Observer with additional context fields
	WithFields(fields map[string]string) Observer
}

// Event represents a structured provisioning event.
type Event struct {
	Type      EventType         // Type of event
	Phase     string            // Phase name (e.g., "function", "dns")
	Message   string            // Human-readable message
	Resource  string            // Resource name if applicable
	Timestamp time.Time         // When the event occurred
	Fields    map[string]string // Additional contextual fields
}

// EventType represents the type of provisioning event.
type EventType string

const (
	EventPhaseStarted   EventType = "phase.started"
	EventPhaseCompleted EventType = "phase.completed"
	EventPhaseFailed    EventType = "phase.failed"
	EventPhaseSkipped   EventType = "phase.skipped"

	EventResourceDeploying EventType = "resource.deploying"
	EventResourceDeployed  EventType = "resource.deployed"
	EventResourceRemoving  EventType = "resource.removing"
	EventResourceRemoved   EventType = "resource.removed"
	EventResourceFailed    EventType = "resource.failed"
)

// LogObserver implements Observer on top of a zerolog logger.
type LogObserver struct {
	logger zerolog.Logger
	fields map[string]string
}

// NewLogObserver creates an observer writing to logger.
func NewLogObserver(logger zerolog.Logger) *LogObserver {
	return &LogObserver{logger: logger, fields: map[string]string{}}
}

// NopObserver discards everything.
func NopObserver() Observer {
	return NewLogObserver(zerolog.Nop())
}

func (o *LogObserver) Printf(format string, v ...any) {
	o.with(nil).Info().Msgf(format, v...)
}

func (o *LogObserver) Event(event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}

	logger := o.with(event.Fields)
	var e *zerolog.Event
	switch event.Type {
	case EventPhaseFailed, EventResourceFailed:
		e = logger.Error()
	case EventPhaseSkipped:
		e = logger.Warn()
	default:
		e = logger.Info()
	}

	e = e.Str("event", string(event.Type)).Time("at", event.Timestamp)
	if event.Phase != "" {
		e = e.Str("phase", event.Phase)
	}
	if event.Resource != "" {
		e = e.Str("resource", event.Resource)
	}
	e.Msg(event.Message)
}

func (o *LogObserver) WithFields(fields map[string]string) Observer {
	merged := make(map[string]string, len(o.fields)+len(fields))
	maps.Copy(merged, o.fields)
	maps.Copy(merged, fields)
	return &LogObserver{logger: o.logger, fields: merged}
}

// with returns the logger carrying the observer fields plus extra. Event
// fields win over observer fields.
func (o *LogObserver) with(extra map[string]string) *zerolog.Logger {
	ctx := o.logger.With()
	for k, v := range o.fields {
		if _, ok := extra[k]; !ok {
			ctx = ctx.Str(k, v)
		}
	}
	for k, v := range extra {
		ctx = ctx.Str(k, v)
	}
	logger := ctx.Logger()
	return &logger
}

// Helper functions for common events

// LogPhaseStart logs a phase start event.
func LogPhaseStart(observer Observer, phase string) {
	observer.Event(Event{
		Type:    EventPhaseStarted,
		Phase:   phase,
		Message: "starting",
	})
}

// LogPhaseComplete logs a phase completion event.
func LogPhaseComplete(observer Observer, phase string, duration time.Duration) {
	observer.Event(Event{
		Type:    EventPhaseCompleted,
		Phase:   phase,
		Message: fmt.Sprintf("completed in %v", duration.Round(time.Millisecond)),
	})
}

// LogPhaseFailed logs a phase failure event.
func LogPhaseFailed(observer Observer, phase string, err error) {
	observer.Event(Event{
		Type:    EventPhaseFailed,
		Phase:   phase,
		Message: fmt.Sprintf("failed: %v", err),
	})
}

// LogPhaseSkipped logs a phase that had nothing to do.
func LogPhaseSkipped(observer Observer, phase, reason string) {
	observer.Event(Event{
		Type:    EventPhaseSkipped,
		Phase:   phase,
		Message: "skipped: " + reason,
	})
}

// LogResourceDeploying logs a resource deployment start event.
func LogResourceDeploying(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeploying,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("deploying %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceDeployed logs a successful resource deployment event.
func LogResourceDeployed(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceDeployed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s deployed", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceRemoving logs a resource removal start event.
func LogResourceRemoving(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceRemoving,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("removing %s", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceRemoved logs a successful resource removal event.
func LogResourceRemoved(observer Observer, phase, resourceType, resourceName string) {
	observer.Event(Event{
		Type:     EventResourceRemoved,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s removed", resourceType),
		Fields:   map[string]string{"type": resourceType},
	})
}

// LogResourceFailed logs a failed deployment or removal.
func LogResourceFailed(observer Observer, phase, resourceType, resourceName string, err error) {
	observer.Event(Event{
		Type:     EventResourceFailed,
		Phase:    phase,
		Resource: resourceName,
		Message:  fmt.Sprintf("%s failed: %v", resourceType, err),
		Fields:   map[string]string{"type": resourceType},
	})
}
