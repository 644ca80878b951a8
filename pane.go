package paneflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// Pane is a coordination unit owning a set of child forms within a
// flow step. It aggregates the submit behavior of every currently
// registered form and exposes it as a single Submit call.
type Pane struct {
	// ID is the unique identifier for the pane
	ID string
	// Name is a human-readable name for the pane
	Name string
	// Description provides details about the pane's purpose
	Description string
	// Tags for organization and filtering
	Tags []string

	mu deadlock.RWMutex

	// registry tracks the currently registered form ids in order
	registry *FormRegistry

	// callbacks maps a registered form id to its submit callback
	callbacks map[string]SubmitFunc

	// forms holds the configured child forms, mounted and unmounted
	// together with the pane
	forms []*Form

	// onSubmit is the optional pane-level callback, invoked after all
	// form callbacks during the fan-out
	onSubmit SubmitFunc

	// initialData contains key-value data merged into the flow store
	// when the pane mounts
	initialData map[string]any

	// middleware contains the middleware functions applied around the
	// submit fan-out
	middleware []PaneMiddleware

	mounted bool
	logger  Logger
}

// NewPane creates a new pane with the given properties. An empty id is
// replaced with a generated one.
func NewPane(id, name, description string) *Pane {
	if id == "" {
		id = uuid.NewString()
	}
	return &Pane{
		ID:          id,
		Name:        name,
		Description: description,
		Tags:        []string{},
		registry:    NewFormRegistry(),
		callbacks:   map[string]SubmitFunc{},
		forms:       []*Form{},
		initialData: map[string]any{},
		middleware:  []PaneMiddleware{},
		logger:      NewDefaultLogger(),
	}
}

// NewPaneWithTags creates a new pane with the given properties and tags.
func NewPaneWithTags(id, name, description string, tags []string) *Pane {
	p := NewPane(id, name, description)
	p.Tags = tags
	return p
}

// AddTag adds a tag to the pane if it doesn't already exist.
func (p *Pane) AddTag(tag string) {
	for _, t := range p.Tags {
		if t == tag {
			return
		}
	}
	p.Tags = append(p.Tags, tag)
}

// HasTag checks if the pane has a specific tag.
func (p *Pane) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// AddForm adds a child form to the pane. Forms are mounted in the
// order they are added. If the pane is already mounted the form is
// registered immediately.
func (p *Pane) AddForm(f *Form) {
	p.mu.Lock()
	p.forms = append(p.forms, f)
	mounted := p.mounted
	p.mu.Unlock()

	if mounted {
		f.Mount(p)
	}
}

// Forms returns the configured child forms in the order they were added.
func (p *Pane) Forms() []*Form {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Form, len(p.forms))
	copy(out, p.forms)
	return out
}

// OnSubmit sets the pane-level submit callback. It runs after every
// registered form's callback during the fan-out.
func (p *Pane) OnSubmit(fn SubmitFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onSubmit = fn
}

// SetInitialData adds or updates a key-value pair merged into the flow
// store when the pane mounts.
func (p *Pane) SetInitialData(key string, value any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.initialData[key] = value
}

// InitialData returns a copy of the pane's initial data.
func (p *Pane) InitialData() map[string]any {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make(map[string]any, len(p.initialData))
	for k, v := range p.initialData {
		out[k] = v
	}
	return out
}

// Use adds middleware to the pane's middleware chain.
// Middleware is executed in the order it is added.
func (p *Pane) Use(middleware ...PaneMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware...)
}

// RegisterForm records the submit callback for formID and adds the id
// to the registry. Registering an id that is already present keeps its
// position and replaces the callback (last write wins).
func (p *Pane) RegisterForm(formID string, onSubmit SubmitFunc) {
	p.mu.Lock()
	replaced := p.registry.Contains(formID)
	if err := p.registry.Apply(Event{Kind: EventRegister, FormID: formID}); err != nil {
		// Register is a member of the closed event set.
		panic(err)
	}
	p.callbacks[formID] = onSubmit
	logger := p.logger
	p.mu.Unlock()

	if replaced {
		logger.Debug("form '%s' re-registered on pane '%s'; submit callback replaced", formID, p.ID)
	}
}

// DeregisterForm removes the registration for formID. Deregistering an
// absent id is a no-op.
func (p *Pane) DeregisterForm(formID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.registry.Apply(Event{Kind: EventDeregister, FormID: formID}); err != nil {
		panic(err)
	}
	delete(p.callbacks, formID)
}

// FormIDs returns the registered form identifiers in registration order.
func (p *Pane) FormIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.registry.FormIDs()
}

// Mount registers every configured form with the pane.
func (p *Pane) Mount() {
	p.mu.Lock()
	if p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = true
	forms := make([]*Form, len(p.forms))
	copy(forms, p.forms)
	p.mu.Unlock()

	for _, f := range forms {
		f.Mount(p)
	}
}

// Unmount deregisters every configured form from the pane.
func (p *Pane) Unmount() {
	p.mu.Lock()
	if !p.mounted {
		p.mu.Unlock()
		return
	}
	p.mounted = false
	forms := make([]*Form, len(p.forms))
	copy(forms, p.forms)
	p.mu.Unlock()

	for _, f := range forms {
		f.Unmount()
	}
}

// Mounted reports whether the pane is currently mounted.
func (p *Pane) Mounted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.mounted
}

// Submit invokes every registered form's submit callback in
// registration order, then the pane-level callback if one is set. The
// fan-out is fail-fast: the first failing callback stops it and its
// error propagates, wrapped with the form id. Submitting a pane with
// zero registered forms succeeds.
func (p *Pane) Submit(ctx context.Context) error {
	p.mu.RLock()
	logger := p.logger
	middleware := make([]PaneMiddleware, len(p.middleware))
	copy(middleware, p.middleware)
	p.mu.RUnlock()

	if ctx == nil {
		ctx = context.Background()
	}

	var handler PaneRunnerFunc = submitForms

	// Apply middleware in reverse order
	for i := len(middleware) - 1; i >= 0; i-- {
		handler = middleware[i](handler)
	}

	return handler(ctx, p, logger)
}

// submitForms is the core fan-out logic wrapped by pane middleware.
func submitForms(ctx context.Context, p *Pane, logger Logger) error {
	ids := p.FormIDs()
	if len(ids) == 0 {
		logger.Debug("pane '%s' has no registered forms", p.ID)
	}

	for i, id := range ids {
		if err := ctx.Err(); err != nil {
			return err
		}

		p.mu.RLock()
		cb := p.callbacks[id]
		p.mu.RUnlock()

		if cb == nil {
			continue
		}

		logger.Debug("submitting form %d/%d: %s", i+1, len(ids), id)
		if err := cb(ctx); err != nil {
			return fmt.Errorf("form '%s' failed: %w", id, err)
		}
	}

	p.mu.RLock()
	paneCb := p.onSubmit
	p.mu.RUnlock()

	if paneCb != nil {
		if err := paneCb(ctx); err != nil {
			return fmt.Errorf("pane '%s' callback failed: %w", p.ID, err)
		}
	}
	return nil
}

// setLogger is called by the owning flow so pane-level logging shares
// the flow's logger.
func (p *Pane) setLogger(logger Logger) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if logger != nil {
		p.logger = logger
	}
}

// toPaneInfo converts a Pane to its serializable form for the flow store.
func (p *Pane) toPaneInfo() PaneInfo {
	p.mu.RLock()
	defer p.mu.RUnlock()

	formIDs := make([]string, 0, len(p.forms))
	for _, f := range p.forms {
		formIDs = append(formIDs, f.ID())
	}
	return PaneInfo{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Tags:        p.Tags,
		FormIDs:     formIDs,
	}
}
