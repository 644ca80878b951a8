package main

import (
	"context"
	"fmt"

	"github.com/davidroman0O/paneflow"
	"github.com/davidroman0O/paneflow/store"
)

// Demonstrates the three core components: forms hold field values,
// panes aggregate form submission, and the flow controls which pane
// is active.
func main() {
	var submissions []string

	nameForm := paneflow.NewForm(paneflow.FormConfig{
		ID: "name",
		OnSubmit: func(ctx context.Context, values paneflow.FieldValues) error {
			submissions = append(submissions, "name")
			return nil
		},
	})
	addressForm := paneflow.NewForm(paneflow.FormConfig{
		ID: "address",
		OnSubmit: func(ctx context.Context, values paneflow.FieldValues) error {
			submissions = append(submissions, "address")
			return nil
		},
	})

	pane := paneflow.NewPaneWithTags("user", "User Pane", "Step one", []string{"demo"})
	pane.AddForm(nameForm)
	pane.AddForm(addressForm)
	pane.OnSubmit(func(ctx context.Context) error {
		submissions = append(submissions, "pane")
		return nil
	})

	flow := paneflow.NewFlow("demo", "Core Concepts Demo", "",
		paneflow.WithPanes(pane))

	flow.Trigger(context.Background())

	// Callbacks ran in registration order, pane callback last.
	fmt.Printf("submission order: %v\n", submissions)

	// The flow store tracks pane status.
	status, _ := flow.Store.GetProperty(paneflow.PrefixPane+"user", paneflow.PropStatus)
	fmt.Printf("pane status: %v\n", status)

	// Submitted values are captured under data: keys.
	snapshot, err := store.Get[paneflow.FieldValues](flow.Store, paneflow.PrefixData+"user:name")
	if err == nil {
		fmt.Printf("captured values: %v\n", snapshot)
	}
}
