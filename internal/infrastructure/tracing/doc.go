/*
Package tracing provides lightweight request tracing for the host bridge.

Every bridge request gets a span. The trace id is taken from the X-Trace-ID
header when the host supplies one so the host can correlate its own logs with
engine logs; otherwise a request id is generated. Spans are collected on a
buffered channel and logged through zap by a single collector goroutine.

# Usage

	tracer := tracing.New("profile-engine", logger)
	defer tracer.Close()

	router.Use(tracing.HTTPMiddleware(tracer))

	// Manual span creation
	span, ctx := tracer.StartSpan(ctx, "rotation.start")
	defer tracer.Finish(span)
	span.SetTag("profile_id", profileID)

Headers:
  - X-Trace-ID: identifier for the whole host request flow
  - X-Span-ID: identifier for the current operation
*/
package tracing
