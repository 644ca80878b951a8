package main

import (
	"context"
	"fmt"
	"time"

	"github.com/davidroman0O/paneflow"
)

// Demonstrates writing custom pane middleware: a timing wrapper that
// reports how long each submit fan-out takes.
func main() {
	timing := func(next paneflow.PaneRunnerFunc) paneflow.PaneRunnerFunc {
		return func(ctx context.Context, pane *paneflow.Pane, logger paneflow.Logger) error {
			start := time.Now()
			err := next(ctx, pane, logger)
			fmt.Printf("pane %s submitted in %v\n", pane.ID, time.Since(start).Round(time.Microsecond))
			return err
		}
	}

	pane := paneflow.NewPane("timed", "Timed Pane", "")
	pane.Use(timing)
	pane.AddForm(paneflow.NewForm(paneflow.FormConfig{
		ID: "slow",
		OnSubmit: func(ctx context.Context, values paneflow.FieldValues) error {
			time.Sleep(10 * time.Millisecond)
			return nil
		},
	}))

	flow := paneflow.NewFlow("middleware-demo", "Middleware Demo", "",
		paneflow.WithPanes(pane))

	if result := flow.Trigger(context.Background()); !result.Success {
		fmt.Printf("Error: %v\n", result.Error)
	}
}
