// Package telemetry provides OpenTelemetry instrumentation for the Aptos Go SDK.
//
// This package allows you to add distributed tracing and metrics to your Aptos SDK usage.
// It wraps the HTTP client to automatically create spans and record metrics for all API calls.
//
// # Basic Usage
//
// To enable telemetry, wrap your HTTP client with the instrumented client:
//
//	import (
//		aptos "github.com/movecraft-labs/aptos-sdk"
//		"github.com/movecraft-labs/aptos-sdk/telemetry"
//	)
//
//	// Create instrumented HTTP client
//	httpClient, err := telemetry.NewInstrumentedHTTPClient(
//		telemetry.WithServiceName("my-app"),
//	)
//
// The result is a standard *http.Client. aptos.WithHTTPClient takes an
// aptos.HTTPDoer, whose Do method also receives a context, so the
// *http.Client is not accepted by it directly.
//
// # Traces
//
// The package creates spans for each API call with the following attributes:
//   - http.method: GET, POST, etc.
//   - http.url: The full URL of the request
//   - http.status_code: Response status code
//   - aptos.operation: The type of operation (info, account, submit_transaction, etc.)
//   - error.type: "transport_error" or "http_error" when the request failed
//
// # Metrics
//
// The package records the following metrics:
//   - aptos.client.request.duration: Histogram of request durations
//   - aptos.client.request.count: Counter of total requests
//   - aptos.client.request.error.count: Counter of failed requests
//
// # Configuration
//
// You must set up your OpenTelemetry provider before creating the instrumented client.
// The package uses the global tracer and meter providers by default.
//
// Example setup:
//
//	import (
//		"go.opentelemetry.io/otel"
//		"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
//		"go.opentelemetry.io/otel/sdk/trace"
//	)
//
//	// Set up exporter
//	exporter, _ := otlptracehttp.New(ctx)
//	tp := trace.NewTracerProvider(trace.WithBatcher(exporter))
//	otel.SetTracerProvider(tp)
//
// # Environment Variables
//
// The package itself reads no environment variables. Standard OpenTelemetry
// variables such as OTEL_SERVICE_NAME, OTEL_EXPORTER_OTLP_ENDPOINT and
// OTEL_TRACES_SAMPLER apply only through the providers and exporters that the
// application sets up.
package telemetry
