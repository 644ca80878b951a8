package paneflow

import (
	"context"
	"time"
)

// FieldValues is the full set of field values held by a single form,
// keyed by field name.
type FieldValues map[string]string

// Clone returns an independent copy of the field values.
func (v FieldValues) Clone() FieldValues {
	out := make(FieldValues, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// SubmitFunc is the submit callback a form registers with its pane.
// The pane invokes it synchronously during the submit fan-out.
type SubmitFunc func(ctx context.Context) error

// ChangeFunc receives field-change notifications from a form.
type ChangeFunc func(key, value string)

// EventKind identifies a registry event variant.
type EventKind int

const (
	// EventRegister adds a form id to the registry.
	EventRegister EventKind = iota
	// EventDeregister removes a form id from the registry.
	EventDeregister
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventRegister:
		return "register"
	case EventDeregister:
		return "deregister"
	default:
		return "unknown"
	}
}

// Event is a registry state transition. The closed set of kinds is
// consumed exhaustively by FormRegistry.Apply.
type Event struct {
	Kind   EventKind
	FormID string
}

// FormFactory is a function that creates a new instance of a Form.
// It's used by the registry to instantiate forms from definition ids.
type FormFactory func() *Form

// PaneRunnerFunc is the core function type for executing a pane's
// submit fan-out.
type PaneRunnerFunc func(ctx context.Context, pane *Pane, logger Logger) error

// PaneMiddleware represents a function that wraps pane submission.
// It allows performing operations before and after the fan-out runs.
type PaneMiddleware func(next PaneRunnerFunc) PaneRunnerFunc

// FlowRunnerFunc is the core function type for executing a flow trigger.
type FlowRunnerFunc func(ctx context.Context, flow *Flow, logger Logger) error

// FlowMiddleware represents a function that wraps trigger execution.
// Middleware can perform actions before and after the active pane
// submits, inject data into the flow store, or modify the context.
type FlowMiddleware func(next FlowRunnerFunc) FlowRunnerFunc

// FlowOption is a function that configures a Flow.
type FlowOption func(*Flow)

// Logger provides a simple interface for flow logging
type Logger interface {
	// Debug logs a message at debug level
	Debug(format string, args ...interface{})

	// Info logs a message at info level
	Info(format string, args ...interface{})

	// Warn logs a message at warning level
	Warn(format string, args ...interface{})

	// Error logs a message at error level
	Error(format string, args ...interface{})
}

// TriggerResult contains the outcome of a single flow trigger.
type TriggerResult struct {
	FlowID string
	// Step is the step index whose pane was submitted.
	Step   int
	PaneID string
	// Terminal reports whether the submitted step was the last one.
	Terminal bool
	Success  bool
	Error    error
	Duration time.Duration
}

// PaneInfo holds serializable pane information kept in the flow's
// key-value store.
type PaneInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FormIDs     []string `json:"formIds"`
}

// FormInfo holds serializable form information kept in the flow's
// key-value store.
type FormInfo struct {
	ID     string `json:"id"`
	PaneID string `json:"paneId"`
}

// FlowInfo holds serializable flow information kept in the flow's
// key-value store.
type FlowInfo struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	PaneIDs     []string `json:"paneIds"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// Store key prefixes for organizing different entities in the flow store
const (
	// PrefixFlow is used for flow metadata
	PrefixFlow = "flow:"

	// PrefixPane is used for pane metadata
	PrefixPane = "pane:"

	// PrefixForm is used for form metadata
	PrefixForm = "form:"

	// PrefixData is used for submitted form values
	PrefixData = "data:"
)

// Common tags used across the flow store
const (
	// TagSystem identifies system-managed entries
	TagSystem = "system"

	// TagSubmitted identifies captured form value snapshots
	TagSubmitted = "submitted"
)

// Common property keys used in metadata
const (
	// PropOrder tracks the position of a pane within its flow
	PropOrder = "order"

	// PropStatus tracks the current status
	PropStatus = "status"

	// PropCreatedBy tracks who/what created an entry
	PropCreatedBy = "createdBy"
)

// Status values for flow components
const (
	// StatusPending means the pane has not been mounted yet
	StatusPending = "pending"

	// StatusActive means the pane is mounted and accepting registrations
	StatusActive = "active"

	// StatusRunning means the pane's submit fan-out is in progress
	StatusRunning = "running"

	// StatusSubmitted means the pane submitted successfully
	StatusSubmitted = "submitted"

	// StatusFailed means a form callback failed during submission
	StatusFailed = "failed"
)
