package paneflow

import (
	"github.com/sasha-s/go-deadlock"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// FormRegistry tracks which form identifiers are currently active
// within a pane. Identifiers are kept in registration order and each
// identifier appears at most once.
type FormRegistry struct {
	mu    deadlock.RWMutex
	forms *orderedmap.OrderedMap[string, struct{}]
}

// NewFormRegistry constructs an empty registry.
func NewFormRegistry() *FormRegistry {
	return &FormRegistry{
		forms: orderedmap.New[string, struct{}](),
	}
}

// Register appends formID to the registry if absent. Registering an
// already-present id is a no-op on ordering. It reports whether the id
// was newly added.
func (r *FormRegistry) Register(formID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.forms.Get(formID); exists {
		return false
	}
	r.forms.Set(formID, struct{}{})
	return true
}

// Deregister removes formID from the registry. Removing an absent id
// is a no-op. It reports whether the id was present.
func (r *FormRegistry) Deregister(formID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, present := r.forms.Delete(formID)
	return present
}

// Contains reports whether formID is currently registered.
func (r *FormRegistry) Contains(formID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.forms.Get(formID)
	return ok
}

// FormIDs returns the registered identifiers in registration order.
func (r *FormRegistry) FormIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, r.forms.Len())
	for pair := r.forms.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Key)
	}
	return out
}

// Len returns the number of registered identifiers.
func (r *FormRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.forms.Len()
}

// Apply consumes a registry event. The event kinds form a closed set;
// an event outside it returns an UnknownEventError.
func (r *FormRegistry) Apply(ev Event) error {
	switch ev.Kind {
	case EventRegister:
		r.Register(ev.FormID)
		return nil
	case EventDeregister:
		r.Deregister(ev.FormID)
		return nil
	default:
		return &UnknownEventError{Kind: ev.Kind}
	}
}
