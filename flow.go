package paneflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"

	"github.com/davidroman0O/paneflow/store"
)

// Flow is the step controller for a submission flow. It owns an
// ordered sequence of panes, keeps exactly one pane mounted at a time,
// and on each trigger submits the active pane before advancing.
//
// The step index starts at 0 and advances by one per successful
// trigger until the last pane is reached. The last step is terminal:
// further triggers resubmit the same pane and the index stays fixed.
type Flow struct {
	// ID is the unique identifier for the flow
	ID string
	// Name is a human-readable name for the flow
	Name string
	// Description provides details about the flow's purpose
	Description string
	// Tags for organization and filtering
	Tags []string

	// Store is the central key-value store for flow data. It records
	// pane metadata, submission statuses, and submitted value
	// snapshots for the flow's lifetime. It is in-memory only.
	Store *store.KVStore

	mu deadlock.Mutex

	panes   []*Pane
	step    int
	started bool

	logger     Logger
	middleware []FlowMiddleware
}

// WithLogger sets the logger used by the flow and its panes.
func WithLogger(logger Logger) FlowOption {
	return func(f *Flow) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithMiddleware adds trigger middleware to the flow.
func WithMiddleware(middleware ...FlowMiddleware) FlowOption {
	return func(f *Flow) {
		f.middleware = append(f.middleware, middleware...)
	}
}

// WithPanes adds panes to the flow in step order.
func WithPanes(panes ...*Pane) FlowOption {
	return func(f *Flow) {
		for _, p := range panes {
			f.addPane(p)
		}
	}
}

// NewFlow creates a new flow with the given properties. An empty id is
// replaced with a generated one.
func NewFlow(id, name, description string, opts ...FlowOption) *Flow {
	if id == "" {
		id = uuid.NewString()
	}
	f := &Flow{
		ID:          id,
		Name:        name,
		Description: description,
		Tags:        []string{},
		Store:       store.NewKVStore(),
		panes:       []*Pane{},
		logger:      NewDefaultLogger(),
		middleware:  []FlowMiddleware{},
	}

	for _, opt := range opts {
		opt(f)
	}

	f.saveToStore()
	return f
}

// Use adds middleware to the flow's middleware chain.
// This middleware wraps every trigger.
func (f *Flow) Use(middleware ...FlowMiddleware) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.middleware = append(f.middleware, middleware...)
}

// AddTag adds a tag to the flow if it doesn't already exist.
func (f *Flow) AddTag(tag string) {
	for _, t := range f.Tags {
		if t == tag {
			return
		}
	}
	f.Tags = append(f.Tags, tag)
	f.saveToStore()
}

// HasTag checks if the flow has a specific tag.
func (f *Flow) HasTag(tag string) bool {
	for _, t := range f.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddPane appends a pane as the flow's next step and records it in the
// flow store with a pending status.
func (f *Flow) AddPane(p *Pane) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addPane(p)
}

// addPane must be called with f.mu held (or before the flow is shared).
func (f *Flow) addPane(p *Pane) {
	p.setLogger(f.logger)
	f.panes = append(f.panes, p)

	meta := store.NewMetadata()
	meta.Tags = append(meta.Tags, p.Tags...)
	meta.Description = p.Description
	meta.SetProperty(PropOrder, len(f.panes)-1)
	meta.SetProperty(PropStatus, StatusPending)
	meta.SetProperty(PropCreatedBy, "flow:"+f.ID)

	f.Store.PutWithMetadata(PrefixPane+p.ID, p.toPaneInfo(), meta)
	f.saveToStore()
}

// GetPane retrieves a configured pane by id.
func (f *Flow) GetPane(paneID string) (*Pane, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, p := range f.panes {
		if p.ID == paneID {
			return p, nil
		}
	}
	return nil, fmt.Errorf("pane '%s' not found in flow '%s'", paneID, f.ID)
}

// PaneCount returns the number of configured steps.
func (f *Flow) PaneCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.panes)
}

// Step returns the current step index.
func (f *Flow) Step() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

// Terminal reports whether the flow sits at its last step.
func (f *Flow) Terminal() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.started && f.step == len(f.panes)-1
}

// ActivePane returns the pane bound to the current step, or nil when
// the flow has no panes or has not started.
func (f *Flow) ActivePane() *Pane {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.started || f.step >= len(f.panes) {
		return nil
	}
	return f.panes[f.step]
}

// Start mounts the first pane. Triggering an unstarted flow starts it
// implicitly, so calling Start is optional. Starting a started flow is
// a no-op.
func (f *Flow) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.start()
}

// start must be called with f.mu held.
func (f *Flow) start() error {
	if f.started {
		return nil
	}
	if len(f.panes) == 0 {
		return ErrNoPanes
	}
	f.started = true
	f.step = 0
	f.mountStep(0)
	return nil
}

// mountStep mounts the pane at step index i, merges its initial data
// into the flow store, and marks the pane and its configured forms
// active. Must be called with f.mu held.
func (f *Flow) mountStep(i int) {
	p := f.panes[i]
	f.logger.Debug("mounting step %d/%d: %s", i+1, len(f.panes), p.ID)

	for key, value := range p.InitialData() {
		if err := f.Store.Put(key, value); err != nil {
			f.logger.Warn("skipping initial data key '%s' on pane '%s': %v", key, p.ID, err)
		}
	}

	p.Mount()
	f.Store.SetProperty(PrefixPane+p.ID, PropStatus, StatusActive)
	for _, form := range p.Forms() {
		f.recordFormStatus(p, form, StatusActive)
	}
}

// unmountStep unmounts the pane at step index i. Its form
// registrations are lost; field values entered on the step are not
// carried forward. Must be called with f.mu held.
func (f *Flow) unmountStep(i int) {
	p := f.panes[i]
	f.logger.Debug("unmounting step %d/%d: %s", i+1, len(f.panes), p.ID)
	p.Unmount()
}

// Trigger submits the active pane and, when the flow sits at a
// non-terminal step, advances to the next one. At the terminal step
// the pane is resubmitted and the step stays fixed. A failed submit
// does not advance.
func (f *Flow) Trigger(ctx context.Context) TriggerResult {
	startTime := time.Now()

	if ctx == nil {
		ctx = context.Background()
	}

	f.mu.Lock()
	if err := f.start(); err != nil {
		f.mu.Unlock()
		return TriggerResult{
			FlowID:   f.ID,
			Step:     0,
			Success:  false,
			Error:    err,
			Duration: time.Since(startTime),
		}
	}

	step := f.step
	pane := f.panes[step]
	terminal := step == len(f.panes)-1
	logger := f.logger
	middleware := make([]FlowMiddleware, len(f.middleware))
	copy(middleware, f.middleware)
	f.mu.Unlock()

	var handler FlowRunnerFunc = func(ctx context.Context, flow *Flow, logger Logger) error {
		return flow.submitStep(ctx, step, pane)
	}

	// Apply middleware in reverse order
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	err := handler(ctx, f, logger)

	if err == nil && !terminal {
		f.mu.Lock()
		// Advance only when the step was not changed by a concurrent
		// trigger in the meantime.
		if f.step == step {
			f.unmountStep(step)
			f.step = step + 1
			f.mountStep(f.step)
		}
		f.mu.Unlock()
	}

	return TriggerResult{
		FlowID:   f.ID,
		Step:     step,
		PaneID:   pane.ID,
		Terminal: terminal,
		Success:  err == nil,
		Error:    err,
		Duration: time.Since(startTime),
	}
}

// submitStep runs the pane's submit fan-out and records statuses and
// submitted value snapshots in the flow store.
func (f *Flow) submitStep(ctx context.Context, step int, pane *Pane) error {
	paneKey := PrefixPane + pane.ID
	f.Store.SetProperty(paneKey, PropStatus, StatusRunning)
	f.logger.Info("submitting step %d: %s", step, pane.ID)

	if err := pane.Submit(ctx); err != nil {
		f.Store.SetProperty(paneKey, PropStatus, StatusFailed)
		return fmt.Errorf("pane '%s' failed: %w", pane.ID, err)
	}

	f.snapshotPane(pane)
	f.Store.SetProperty(paneKey, PropStatus, StatusSubmitted)
	f.logger.Info("submitted step %d: %s", step, pane.ID)
	return nil
}

// snapshotPane captures the current values of the pane's mounted forms
// under data: keys so they remain observable after the step unmounts.
func (f *Flow) snapshotPane(pane *Pane) {
	for _, form := range pane.Forms() {
		if !form.Mounted() {
			continue
		}

		meta := store.NewMetadata()
		meta.AddTag(TagSubmitted)
		meta.SetProperty(PropCreatedBy, "pane:"+pane.ID)

		key := PrefixData + pane.ID + ":" + form.ID()
		f.Store.PutWithMetadata(key, form.Values(), meta)
		f.recordFormStatus(pane, form, StatusSubmitted)
	}
}

// recordFormStatus updates the status property of the form's store
// entry, creating the entry for forms that registered after the pane
// mounted.
func (f *Flow) recordFormStatus(pane *Pane, form *Form, status string) {
	key := PrefixForm + pane.ID + ":" + form.ID()
	if err := f.Store.SetProperty(key, PropStatus, status); err != nil {
		meta := store.NewMetadata()
		meta.SetProperty(PropStatus, status)
		meta.SetProperty(PropCreatedBy, "pane:"+pane.ID)
		f.Store.PutWithMetadata(key, FormInfo{ID: form.ID(), PaneID: pane.ID}, meta)
	}
}

// RunToCompletion triggers the flow until the terminal step has
// submitted once, collecting the per-trigger results. It stops early
// at the first failed trigger.
func (f *Flow) RunToCompletion(ctx context.Context) []TriggerResult {
	var results []TriggerResult
	for {
		result := f.Trigger(ctx)
		results = append(results, result)
		if !result.Success || result.Terminal {
			return results
		}
	}
}

// saveToStore saves or updates the flow metadata in the store.
func (f *Flow) saveToStore() {
	info := FlowInfo{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		Tags:        f.Tags,
		PaneIDs:     f.paneIDs(),
		CreatedAt:   time.Now().Format(time.RFC3339),
		UpdatedAt:   time.Now().Format(time.RFC3339),
	}

	meta := store.NewMetadata()
	meta.Tags = append(meta.Tags, f.Tags...)
	meta.Tags = append(meta.Tags, TagSystem)
	meta.Description = f.Description

	f.Store.PutWithMetadata(PrefixFlow+f.ID, info, meta)
}

func (f *Flow) paneIDs() []string {
	ids := make([]string, len(f.panes))
	for i, p := range f.panes {
		ids[i] = p.ID
	}
	return ids
}
