package metrics

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/getsentry/sentry-go"
)

const (
	// HTTP status code threshold for considering a request successful
	successStatusCodeThreshold = http.StatusBadRequest
)

// SentryMetrics handles custom metrics for Sentry
type SentryMetrics struct {
	enabled bool
}

// NewSentryMetrics creates a new Sentry metrics client
func NewSentryMetrics() *SentryMetrics {
	return &SentryMetrics{
		enabled: true, // Always enabled if Sentry is configured
	}
}

// RecordAPIRequest records API request metrics
func (m *SentryMetrics) RecordAPIRequest(ctx context.Context, endpoint string, statusCode int, duration time.Duration) {
	if !m.enabled {
		return
	}

	// Create a span for API request tracking using the request context
	span := sentry.StartSpan(ctx, "api.request")
	defer span.Finish()

	// Set span tags
	span.SetTag("endpoint", endpoint)
	span.SetTag("status_code", fmt.Sprintf("%d", statusCode))
	span.SetTag("success", fmt.Sprintf("%t", statusCode < successStatusCodeThreshold))

	// Set span data
	span.SetData("duration_ms", duration.Milliseconds())
	span.SetData("endpoint", endpoint)
	span.SetData("status_code", statusCode)

	// Set span status based on response
	if statusCode < successStatusCodeThreshold {
		span.Status = sentry.SpanStatusOK
	} else {
		span.Status = sentry.SpanStatusInternalError
	}

	// Set span description
	span.Description = fmt.Sprintf("API Request: %s", endpoint)
}

// RecordSonification records one pipeline run: style, source size, resulting
// note count and complexity.
func (m *SentryMetrics) RecordSonification(ctx context.Context, style string, sourceBytes, noteCount, complexity int) {
	if !m.enabled {
		return
	}

	if transaction := sentry.TransactionFromContext(ctx); transaction != nil {
		transaction.SetTag("sonify.style", style)
		transaction.SetData("sonify.source_bytes", sourceBytes)
		transaction.SetData("sonify.note_count", noteCount)
		transaction.SetData("sonify.complexity", complexity)
	}

	span := sentry.StartSpan(ctx, "sonify.pipeline")
	defer span.Finish()

	span.SetTag("style", style)
	span.SetData("source_bytes", sourceBytes)
	span.SetData("note_count", noteCount)
	span.SetData("complexity", complexity)

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("Sonification: %s", style)
}

// RecordMIDIEncoding records how large the encoded file came out.
func (m *SentryMetrics) RecordMIDIEncoding(ctx context.Context, trackCount, byteSize int, duration time.Duration) {
	if !m.enabled {
		return
	}

	span := sentry.StartSpan(ctx, "midi.encode")
	defer span.Finish()

	span.SetData("track_count", trackCount)
	span.SetData("byte_size", byteSize)
	span.SetData("duration_ms", duration.Milliseconds())

	span.Status = sentry.SpanStatusOK
	span.Description = fmt.Sprintf("MIDI Encoding: %d tracks", trackCount)
}

// RecordCustomMetric sends a custom metric with arbitrary data
func (m *SentryMetrics) RecordCustomMetric(metricName string, data map[string]interface{}) {
	if !m.enabled {
		return
	}

	sentry.WithScope(func(scope *sentry.Scope) {
		scope.SetTag("metric_type", "custom")
		scope.SetTag("metric_name", metricName)

		scope.SetContext("custom_metric", data)

		sentry.CaptureMessage("Custom Metric: " + metricName)
	})
}

// RecordPerformanceMetric records performance data
func (m *SentryMetrics) RecordPerformanceMetric(operation string, duration time.Duration, metadata map[string]interface{}) {
	if !m.enabled {
		return
	}

	// Use Sentry's performance monitoring
	ctx := context.Background()
	span := sentry.StartSpan(ctx, operation)
	span.Description = operation
	span.SetData("duration_ms", duration.Milliseconds())

	// Add metadata
	for key, value := range metadata {
		span.SetData(key, value)
	}

	span.Finish()
}
