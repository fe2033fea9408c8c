package middleware

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/spiralnet/launchpad/observability"
)

// Telemetry returns middleware that records a span and request metrics for
// every non-probe request. Metrics may be nil when the meter provider is not
// initialized; spans still record through the global tracer (a no-op when
// telemetry is disabled).
func Telemetry(metrics *observability.ServerMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isProbePath(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			ctx, span := observability.StartSpan(r.Context(), "http.request",
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					attribute.String("http.method", r.Method),
					attribute.String("http.target", r.URL.Path),
				),
			)
			defer span.End()

			if metrics != nil {
				metrics.RecordStart(ctx)
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r.WithContext(ctx))
			duration := time.Since(start)

			span.SetAttributes(attribute.Int("http.status_code", sw.status))
			if metrics != nil {
				metrics.RecordEnd(ctx, r.Method, strconv.Itoa(sw.status), duration)
			}
		})
	}
}
