package middleware

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/snapcontext/snapcontext/internal/api/middleware"

// Metrics holds the OpenTelemetry instruments for HTTP traffic.
type Metrics struct {
	requestDuration  metric.Float64Histogram
	requestTotal     metric.Int64Counter
	requestsInFlight metric.Int64UpDownCounter
	responseSize     metric.Int64Histogram
}

// NewMetrics creates a Metrics instance with initialized instruments.
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)

	requestDuration, err := meter.Float64Histogram(
		"http.server.request.duration",
		metric.WithDescription("Duration of HTTP server requests in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	requestTotal, err := meter.Int64Counter(
		"http.server.request.total",
		metric.WithDescription("Total number of HTTP server requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	requestsInFlight, err := meter.Int64UpDownCounter(
		"http.server.requests_in_flight",
		metric.WithDescription("Number of HTTP requests currently being processed"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	responseSize, err := meter.Int64Histogram(
		"http.server.response.size",
		metric.WithDescription("Size of HTTP server responses in bytes"),
		metric.WithUnit("By"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		requestDuration:  requestDuration,
		requestTotal:     requestTotal,
		requestsInFlight: requestsInFlight,
		responseSize:     responseSize,
	}, nil
}

// Middleware returns an HTTP middleware that records metrics per request.
func (m *Metrics) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			attrs := []attribute.KeyValue{
				attribute.String("http.method", r.Method),
				attribute.String("http.route", r.URL.Path),
			}
			m.requestsInFlight.Add(r.Context(), 1, metric.WithAttributes(attrs...))
			defer m.requestsInFlight.Add(r.Context(), -1, metric.WithAttributes(attrs...))

			wrapped := newResponseWriter(w)
			next.ServeHTTP(wrapped, r)

			duration := time.Since(start).Seconds()

			attrs = append(attrs, attribute.String("http.status_code", strconv.Itoa(wrapped.statusCode)))
			if wrapped.statusCode >= 400 {
				attrs = append(attrs, attribute.Bool("error", true))
			}

			m.requestDuration.Record(r.Context(), duration, metric.WithAttributes(attrs...))
			m.requestTotal.Add(r.Context(), 1, metric.WithAttributes(attrs...))
			m.responseSize.Record(r.Context(), wrapped.written, metric.WithAttributes(attrs...))
		})
	}
}

// FetchMetrics holds instruments for context fetch outcomes.
type FetchMetrics struct {
	fetchTotal      metric.Int64Counter
	fetchDuration   metric.Float64Histogram
	cacheHits       metric.Int64Counter
	weatherTimeouts metric.Int64Counter
}

// NewFetchMetrics creates instruments for monitoring context fetches.
func NewFetchMetrics() (*FetchMetrics, error) {
	meter := otel.Meter(meterName)

	fetchTotal, err := meter.Int64Counter(
		"context.fetch.total",
		metric.WithDescription("Total number of context fetches"),
		metric.WithUnit("{fetch}"),
	)
	if err != nil {
		return nil, err
	}

	fetchDuration, err := meter.Float64Histogram(
		"context.fetch.duration",
		metric.WithDescription("Duration of context fetches in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	cacheHits, err := meter.Int64Counter(
		"context.cache.hit",
		metric.WithDescription("Number of context fetches served from the cache"),
		metric.WithUnit("{hit}"),
	)
	if err != nil {
		return nil, err
	}

	weatherTimeouts, err := meter.Int64Counter(
		"context.weather.timeout",
		metric.WithDescription("Number of fetches whose weather branch failed or timed out"),
		metric.WithUnit("{timeout}"),
	)
	if err != nil {
		return nil, err
	}

	return &FetchMetrics{
		fetchTotal:      fetchTotal,
		fetchDuration:   fetchDuration,
		cacheHits:       cacheHits,
		weatherTimeouts: weatherTimeouts,
	}, nil
}

// RecordFetch records the outcome of one context fetch. Metrics use a
// background context so a canceled request cannot drop the data point.
func (m *FetchMetrics) RecordFetch(scene string, duration time.Duration, fromCache, weatherTimedOut bool, err error) {
	attrs := []attribute.KeyValue{
		attribute.String("context.scene", scene),
	}
	if err != nil {
		attrs = append(attrs, attribute.Bool("error", true))
	}

	ctx := context.TODO()
	m.fetchTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.fetchDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
	if fromCache {
		m.cacheHits.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
	if weatherTimedOut {
		m.weatherTimeouts.Add(ctx, 1, metric.WithAttributes(attrs...))
	}
}
