package paneflow

import (
	"context"
	"time"
)

// Some stock middleware functions

// LoggingPaneMiddleware creates a middleware that logs the submit
// fan-out around the wrapped pane.
func LoggingPaneMiddleware() PaneMiddleware {
	return func(next PaneRunnerFunc) PaneRunnerFunc {
		return func(ctx context.Context, pane *Pane, logger Logger) error {
			logger.Info("Middleware: Submitting pane %s (%d forms)", pane.ID, len(pane.FormIDs()))

			start := time.Now()
			err := next(ctx, pane, logger)
			duration := time.Since(start)

			if err != nil {
				logger.Error("Middleware: Pane %s failed after %v: %v",
					pane.ID, duration.Round(time.Millisecond), err)
			} else {
				logger.Info("Middleware: Pane %s submitted in %v",
					pane.ID, duration.Round(time.Millisecond))
			}

			return err
		}
	}
}

// LoggingFlowMiddleware creates a middleware that logs each trigger.
func LoggingFlowMiddleware() FlowMiddleware {
	return func(next FlowRunnerFunc) FlowRunnerFunc {
		return func(ctx context.Context, flow *Flow, logger Logger) error {
			logger.Info("Middleware: Triggering flow %s at step %d", flow.ID, flow.Step())

			start := time.Now()
			err := next(ctx, flow, logger)
			duration := time.Since(start)

			if err != nil {
				logger.Error("Middleware: Flow %s trigger failed after %v: %v",
					flow.ID, duration.Round(time.Millisecond), err)
			} else {
				logger.Info("Middleware: Flow %s trigger completed in %v",
					flow.ID, duration.Round(time.Millisecond))
			}

			return err
		}
	}
}

// StoreInjectionMiddleware creates a flow middleware that injects
// values into the flow store before the active pane submits.
func StoreInjectionMiddleware(keyValues map[string]interface{}) FlowMiddleware {
	return func(next FlowRunnerFunc) FlowRunnerFunc {
		return func(ctx context.Context, flow *Flow, logger Logger) error {
			for key, value := range keyValues {
				flow.Store.Put(key, value)
			}
			return next(ctx, flow, logger)
		}
	}
}

// TimeLimitMiddleware creates a flow middleware that enforces a time
// limit on the submit fan-out. The fan-out checks the context between
// form callbacks.
func TimeLimitMiddleware(limit time.Duration) FlowMiddleware {
	return func(next FlowRunnerFunc) FlowRunnerFunc {
		return func(ctx context.Context, flow *Flow, logger Logger) error {
			ctx, cancel := context.WithTimeout(ctx, limit)
			defer cancel()

			return next(ctx, flow, logger)
		}
	}
}
