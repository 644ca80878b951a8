// Package store provides a type-safe in-memory key-value store used by
// flows to track pane and form state.
//
// The store preserves the concrete Go type of every value it holds and
// refuses to hand a value back as a different type. Entries carry
// optional metadata (tags, free-form properties, timestamps) which the
// flow uses to record registration order and submission status.
//
// Core features include:
//   - Type-safe retrieval using generics
//   - Metadata for entries including tags and properties
//   - JSON Schema introspection of stored value types
//   - Thread-safe operations
package store
