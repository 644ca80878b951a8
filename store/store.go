package store

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/invopop/jsonschema"
)

type entry struct {
	typ      reflect.Type
	value    any
	metadata *Metadata
}

// KVStore is a threadsafe, type-aware in-memory store.
type KVStore struct {
	mu   sync.RWMutex
	data map[string]entry
}

// NewKVStore constructs an empty store.
func NewKVStore() *KVStore {
	return &KVStore{data: make(map[string]entry)}
}

// Put stores any Go value under key, capturing its concrete type.
// Existing metadata for the key is preserved.
func (s *KVStore) Put(key string, value any) error {
	return s.PutWithMetadata(key, value, nil)
}

// PutWithMetadata stores a value together with metadata. When metadata
// is nil, any existing metadata for the key is kept.
func (s *KVStore) PutWithMetadata(key string, value any, metadata *Metadata) error {
	if key == "" {
		return ErrEmptyKey
	}

	var typ reflect.Type
	if value != nil {
		typ = reflect.TypeOf(value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	meta := metadata
	if meta == nil {
		if existing, ok := s.data[key]; ok {
			meta = existing.metadata
		}
	}
	s.data[key] = entry{typ: typ, value: value, metadata: meta}
	return nil
}

// Get retrieves a value of type T for the given key. The stored value
// must have been put with exactly type T, or with a type implementing
// T when T is an interface.
func Get[T any](s *KVStore, key string) (T, error) {
	var zero T
	if key == "" {
		return zero, ErrEmptyKey
	}

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return zero, ErrNotFound
	}

	want := reflect.TypeOf((*T)(nil)).Elem()
	if want.Kind() == reflect.Interface {
		if e.typ == nil || !e.typ.Implements(want) {
			return zero, fmt.Errorf("%w: wanted interface %v, got %v", ErrTypeMismatch, want, e.typ)
		}
		return e.value.(T), nil
	}

	if e.typ != want {
		return zero, fmt.Errorf("%w: wanted %v, got %v", ErrTypeMismatch, want, e.typ)
	}

	result, ok := e.value.(T)
	if !ok {
		return zero, fmt.Errorf("%w: stored value %T cannot be converted to %v", ErrTypeMismatch, e.value, want)
	}
	return result, nil
}

// GetOrDefault retrieves a value of type T, falling back to defaultValue
// when the key is absent.
func GetOrDefault[T any](s *KVStore, key string, defaultValue T) (T, error) {
	value, err := Get[T](s, key)
	if err == ErrNotFound {
		return defaultValue, nil
	}
	return value, err
}

// Delete removes a key from the store, reporting whether it existed.
func (s *KVStore) Delete(key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		return true
	}
	return false
}

// Clear removes all keys from the store.
func (s *KVStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]entry)
}

// ListKeys returns all stored keys in lexical order.
func (s *KVStore) ListKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.data))
	for k := range s.data {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Count returns the number of entries in the store.
func (s *KVStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Snapshot returns a shallow copy of all key-value pairs. The returned
// map is owned by the caller; stored values are not deep-copied.
func (s *KVStore) Snapshot() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]any, len(s.data))
	for k, e := range s.data {
		out[k] = e.value
	}
	return out
}

// CopyFrom copies all entries from source into s, overwriting entries
// that share a key. It returns the number of copied keys.
func (s *KVStore) CopyFrom(source *KVStore) (int, error) {
	if source == nil {
		return 0, nil
	}

	source.mu.RLock()
	entries := make(map[string]entry, len(source.data))
	for k, e := range source.data {
		entries[k] = e
	}
	source.mu.RUnlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for k, e := range entries {
		s.data[k] = e
	}
	return len(entries), nil
}

// GetMetadata returns the metadata for a key, creating empty metadata
// for entries stored without any.
func (s *KVStore) GetMetadata(key string) (*Metadata, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	if e.metadata == nil {
		e.metadata = NewMetadata()
		s.data[key] = e
	}
	return e.metadata, nil
}

// AddTag adds a tag to the metadata for a key.
func (s *KVStore) AddTag(key, tag string) error {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return err
	}
	meta.AddTag(tag)
	return nil
}

// RemoveTag removes a tag from the metadata for a key.
func (s *KVStore) RemoveTag(key, tag string) error {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return err
	}
	meta.RemoveTag(tag)
	return nil
}

// HasTag reports whether a key's metadata carries a tag.
func (s *KVStore) HasTag(key, tag string) (bool, error) {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return false, err
	}
	return meta.HasTag(tag), nil
}

// FindKeysByTag returns all keys whose metadata carries the tag,
// in lexical order.
func (s *KVStore) FindKeysByTag(tag string) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k, e := range s.data {
		if e.metadata != nil && e.metadata.HasTag(tag) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// SetProperty sets a metadata property on a key.
func (s *KVStore) SetProperty(key, propertyKey string, propertyValue any) error {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return err
	}
	meta.SetProperty(propertyKey, propertyValue)
	return nil
}

// GetProperty returns a metadata property from a key.
func (s *KVStore) GetProperty(key, propertyKey string) (any, error) {
	meta, err := s.GetMetadata(key)
	if err != nil {
		return nil, err
	}
	val, ok := meta.GetProperty(propertyKey)
	if !ok {
		return nil, fmt.Errorf("property '%s' not found on key '%s'", propertyKey, key)
	}
	return val, nil
}

// FindKeysByProperty returns all keys whose metadata holds the given
// property with the given value, in lexical order.
func (s *KVStore) FindKeysByProperty(propertyKey string, propertyValue any) []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	for k, e := range s.data {
		if e.metadata == nil {
			continue
		}
		if val, ok := e.metadata.GetProperty(propertyKey); ok && reflect.DeepEqual(val, propertyValue) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// GetTypeSchema returns a JSON Schema representation of the stored
// value's type.
func (s *KVStore) GetTypeSchema(key string) (map[string]any, error) {
	if key == "" {
		return nil, ErrEmptyKey
	}

	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if e.typ == nil {
		return nil, fmt.Errorf("key '%s' holds a nil value with no type", key)
	}
	return TypeToSchema(e.typ), nil
}

// TypeToSchema converts a reflect.Type to a JSON schema map.
func TypeToSchema(t reflect.Type) map[string]any {
	instance := reflect.New(t).Interface()
	reflector := jsonschema.Reflector{
		ExpandedStruct:            t.Kind() == reflect.Struct,
		DoNotReference:            true,
		AllowAdditionalProperties: false,
	}
	schema := reflector.Reflect(instance)

	data, err := json.Marshal(schema)
	if err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}

	var schemaMap map[string]any
	if err := json.Unmarshal(data, &schemaMap); err != nil {
		return map[string]any{"type": "object", "properties": map[string]any{}}
	}
	return schemaMap
}
