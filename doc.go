// Package paneflow provides headless coordination of form submission
// across multi-step flows.
//
// paneflow models a submission flow as a sequence of panes, each
// owning a set of child forms. Forms register their submit behavior
// with their pane when mounted; triggering the flow submits every
// registered form of the active pane in registration order and then
// advances to the next step.
//
// Core components include:
//   - Flows: The step controller owning an ordered sequence of panes
//   - Panes: Coordination units aggregating child form submission
//   - Forms: Units of user input with field values and a submit callback
//   - State Store: A type-safe key-value store for flow data
//
// Key features include ordered synchronous fan-out, registration
// lifecycle tied to pane mounting, middleware at pane and flow level,
// tag-based metadata, and type-safe state storage.
package paneflow
