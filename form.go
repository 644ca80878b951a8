package paneflow

import (
	"context"

	"github.com/google/uuid"
	"github.com/sasha-s/go-deadlock"
)

// FormConfig carries the capabilities injected into a form at
// construction: its identity, initial field values, and the callbacks
// its owner wants to receive.
type FormConfig struct {
	// ID uniquely identifies the form within its pane. When empty, a
	// random id is generated.
	ID string

	// Initial seeds the form's field values.
	Initial FieldValues

	// OnSubmit is invoked with the form's current values during the
	// pane's submit fan-out. A nil OnSubmit makes submission a no-op
	// for this form.
	OnSubmit func(ctx context.Context, values FieldValues) error

	// OnChange, when set, receives every field change.
	OnChange ChangeFunc
}

// Form is a unit of user input with its own field values and a submit
// callback. A form is registered with exactly one pane at a time,
// between Mount and Unmount.
type Form struct {
	mu       deadlock.RWMutex
	id       string
	values   FieldValues
	onSubmit func(ctx context.Context, values FieldValues) error
	onChange ChangeFunc
	pane     *Pane
}

// NewForm creates a form from the given configuration.
func NewForm(cfg FormConfig) *Form {
	id := cfg.ID
	if id == "" {
		id = uuid.NewString()
	}

	values := cfg.Initial.Clone()
	if values == nil {
		values = FieldValues{}
	}

	return &Form{
		id:       id,
		values:   values,
		onSubmit: cfg.OnSubmit,
		onChange: cfg.OnChange,
	}
}

// ID returns the form's identifier.
func (f *Form) ID() string {
	return f.id
}

// Values returns a copy of the form's current field values.
func (f *Form) Values() FieldValues {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values.Clone()
}

// SetField replaces the value set with one identical except the given
// key takes the given value; all other keys are preserved. No
// validation is performed.
func (f *Form) SetField(key, value string) {
	f.mu.Lock()
	next := f.values.Clone()
	next[key] = value
	f.values = next
	onChange := f.onChange
	f.mu.Unlock()

	if onChange != nil {
		onChange(key, value)
	}
}

// Mount registers the form's submit behavior with the given pane.
// Mounting onto a new pane deregisters from the previous one first.
func (f *Form) Mount(p *Pane) {
	f.mu.Lock()
	prev := f.pane
	f.pane = p
	f.mu.Unlock()

	if prev != nil && prev != p {
		prev.DeregisterForm(f.id)
	}
	p.RegisterForm(f.id, f.submit)
}

// Unmount deregisters the form from its pane. Unmounting an unmounted
// form is a no-op.
func (f *Form) Unmount() {
	f.mu.Lock()
	p := f.pane
	f.pane = nil
	f.mu.Unlock()

	if p != nil {
		p.DeregisterForm(f.id)
	}
}

// Mounted reports whether the form is currently registered with a pane.
func (f *Form) Mounted() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.pane != nil
}

// submit is the callback registered with the pane.
func (f *Form) submit(ctx context.Context) error {
	if f.onSubmit == nil {
		return nil
	}
	return f.onSubmit(ctx, f.Values())
}
