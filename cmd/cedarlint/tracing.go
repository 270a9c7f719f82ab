// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// tracer correlates the parse and lower stages of a single file's lint
// run with matching trace and span IDs in its log records, the same
// global-tracer pattern the teacher uses for command dispatch.
var tracer = otel.Tracer("cedarlint")

// setupTracing installs a TracerProvider that samples every span and
// records it locally but attaches no exporter or processor — cedarlint
// is a short-lived CLI invocation, not a traced service, so spans exist
// only to mint the correlation IDs obslog stamps onto log records.
func setupTracing() {
	otel.SetTracerProvider(sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	))
}
