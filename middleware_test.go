package paneflow

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/davidroman0O/paneflow/store"
)

func TestLoggingMiddleware(t *testing.T) {
	t.Run("pane_level", func(t *testing.T) {
		pane := NewPane("user", "User Pane", "")
		logger := newCaptureLogger()
		pane.setLogger(logger)
		pane.Use(LoggingPaneMiddleware())
		pane.RegisterForm("name", func(ctx context.Context) error { return nil })

		require.NoError(t, pane.Submit(context.Background()))
		assert.NotEmpty(t, logger.level("info"))
	})

	t.Run("pane_level_failure", func(t *testing.T) {
		pane := NewPane("user", "User Pane", "")
		logger := newCaptureLogger()
		pane.setLogger(logger)
		pane.Use(LoggingPaneMiddleware())
		pane.RegisterForm("name", func(ctx context.Context) error {
			return errors.New("intentional test failure")
		})

		assert.Error(t, pane.Submit(context.Background()))
		assert.NotEmpty(t, logger.level("error"))
	})

	t.Run("flow_level", func(t *testing.T) {
		logger := newCaptureLogger()
		pane := NewPane("user", "User Pane", "")
		flow := NewFlow("wizard", "Wizard", "",
			WithLogger(logger),
			WithMiddleware(LoggingFlowMiddleware()),
			WithPanes(pane),
		)

		result := flow.Trigger(context.Background())
		require.True(t, result.Success)
		assert.NotEmpty(t, logger.level("info"))
	})
}

func TestStoreInjectionMiddleware(t *testing.T) {
	pane := NewPane("user", "User Pane", "")

	var seen string
	flow := NewFlow("wizard", "Wizard", "", WithPanes(pane))
	flow.Use(StoreInjectionMiddleware(map[string]interface{}{
		"config:locale": "en-GB",
	}))
	pane.OnSubmit(func(ctx context.Context) error {
		locale, err := store.Get[string](flow.Store, "config:locale")
		if err != nil {
			return err
		}
		seen = locale
		return nil
	})

	result := flow.Trigger(context.Background())
	require.True(t, result.Success)
	assert.Equal(t, "en-GB", seen)
}

func TestTimeLimitMiddleware(t *testing.T) {
	pane := NewPane("user", "User Pane", "")

	var log []string
	pane.AddForm(NewForm(FormConfig{
		ID: "slow",
		OnSubmit: func(ctx context.Context, values FieldValues) error {
			log = append(log, "slow")
			time.Sleep(20 * time.Millisecond)
			return nil
		},
	}))
	pane.AddForm(NewForm(FormConfig{
		ID: "after",
		OnSubmit: func(ctx context.Context, values FieldValues) error {
			log = append(log, "after")
			return nil
		},
	}))

	flow := NewFlow("wizard", "Wizard", "",
		WithMiddleware(TimeLimitMiddleware(5*time.Millisecond)),
		WithPanes(pane),
	)

	result := flow.Trigger(context.Background())
	assert.False(t, result.Success)
	assert.ErrorIs(t, result.Error, context.DeadlineExceeded)
	assert.Equal(t, []string{"slow"}, log, "the fan-out should stop at the expired context")
	assert.Equal(t, 0, flow.Step())
}

func TestMetricsMiddleware(t *testing.T) {
	t.Run("counts_submissions_by_result", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)

		pane := NewPane("user", "User Pane", "")
		pane.Use(MetricsMiddleware(metrics))

		fail := true
		pane.RegisterForm("name", func(ctx context.Context) error {
			if fail {
				return errors.New("intentional test failure")
			}
			return nil
		})

		assert.Error(t, pane.Submit(context.Background()))
		fail = false
		assert.NoError(t, pane.Submit(context.Background()))
		assert.NoError(t, pane.Submit(context.Background()))

		assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Submissions.WithLabelValues("user", "failure")))
		assert.Equal(t, 2.0, testutil.ToFloat64(metrics.Submissions.WithLabelValues("user", "success")))
	})

	t.Run("observes_durations", func(t *testing.T) {
		reg := prometheus.NewRegistry()
		metrics := NewMetrics(reg)

		pane := NewPane("user", "User Pane", "")
		pane.Use(MetricsMiddleware(metrics))
		require.NoError(t, pane.Submit(context.Background()))

		count, err := testutil.GatherAndCount(reg, "paneflow_submit_duration_seconds")
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}

func TestTracingMiddleware(t *testing.T) {
	t.Run("records_a_span_per_submit", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		tracer := provider.Tracer("paneflow-test")

		pane := NewPane("user", "User Pane", "")
		pane.Use(TracingMiddleware(tracer))
		pane.RegisterForm("name", func(ctx context.Context) error { return nil })
		pane.RegisterForm("address", func(ctx context.Context) error { return nil })

		require.NoError(t, pane.Submit(context.Background()))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.Equal(t, "pane.submit", spans[0].Name())

		attrs := spans[0].Attributes()
		values := map[string]interface{}{}
		for _, attr := range attrs {
			values[string(attr.Key)] = attr.Value.AsInterface()
		}
		assert.Equal(t, "user", values["pane.id"])
		assert.Equal(t, int64(2), values["pane.form_count"])
	})

	t.Run("marks_failed_submits", func(t *testing.T) {
		recorder := tracetest.NewSpanRecorder()
		provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
		tracer := provider.Tracer("paneflow-test")

		pane := NewPane("user", "User Pane", "")
		pane.Use(TracingMiddleware(tracer))
		pane.RegisterForm("name", func(ctx context.Context) error {
			return errors.New("intentional test failure")
		})

		assert.Error(t, pane.Submit(context.Background()))

		spans := recorder.Ended()
		require.Len(t, spans, 1)
		assert.NotEmpty(t, spans[0].Events(), "the error should be recorded on the span")
	})
}
