package main

import (
	"context"
	"fmt"

	"github.com/davidroman0O/paneflow"
)

func main() {
	form := paneflow.NewForm(paneflow.FormConfig{
		ID:      "greeting",
		Initial: paneflow.FieldValues{"name": "World"},
		OnSubmit: func(ctx context.Context, values paneflow.FieldValues) error {
			fmt.Printf("Hello, %s!\n", values["name"])
			return nil
		},
	})

	pane := paneflow.NewPane("hello", "Hello Pane", "Demonstrates a single form")
	pane.AddForm(form)

	flow := paneflow.NewFlow("hello-flow", "Hello Flow", "A minimal flow",
		paneflow.WithPanes(pane))

	if result := flow.Trigger(context.Background()); !result.Success {
		fmt.Printf("Error triggering flow: %v\n", result.Error)
		return
	}

	fmt.Println("Flow completed successfully!")
}
