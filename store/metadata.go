package store

import "time"

// Metadata holds descriptive information about a store entry.
// Tags support grouping and lookup; Properties hold arbitrary
// key-value annotations such as status or ordering.
type Metadata struct {
	Description string
	Tags        []string
	Properties  map[string]any
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewMetadata creates an empty Metadata with timestamps set to now.
func NewMetadata() *Metadata {
	now := time.Now()
	return &Metadata{
		Tags:       []string{},
		Properties: map[string]any{},
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// AddTag adds a tag if it is not already present.
func (m *Metadata) AddTag(tag string) {
	for _, t := range m.Tags {
		if t == tag {
			return
		}
	}
	m.Tags = append(m.Tags, tag)
	m.UpdatedAt = time.Now()
}

// RemoveTag removes all occurrences of a tag.
func (m *Metadata) RemoveTag(tag string) {
	out := m.Tags[:0]
	for _, t := range m.Tags {
		if t != tag {
			out = append(out, t)
		}
	}
	m.Tags = out
	m.UpdatedAt = time.Now()
}

// HasTag reports whether the metadata carries the given tag.
func (m *Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// HasAllTags reports whether every given tag is present.
func (m *Metadata) HasAllTags(tags []string) bool {
	for _, tag := range tags {
		if !m.HasTag(tag) {
			return false
		}
	}
	return true
}

// SetProperty sets a property value, creating the property map if needed.
func (m *Metadata) SetProperty(key string, value any) {
	if m.Properties == nil {
		m.Properties = map[string]any{}
	}
	m.Properties[key] = value
	m.UpdatedAt = time.Now()
}

// GetProperty returns a property value and whether it exists.
func (m *Metadata) GetProperty(key string) (any, bool) {
	if m.Properties == nil {
		return nil, false
	}
	v, ok := m.Properties[key]
	return v, ok
}
