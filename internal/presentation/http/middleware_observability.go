package httppresentation

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/waveshop/waveshop/internal/observability"
	"github.com/waveshop/waveshop/internal/pkg/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// ObservabilityMiddleware combines, per request:
//   - W3C trace context extraction and a server span
//   - X-Request-ID generation + echo
//   - request-scoped logger injection
//   - HTTP RED metrics with low-cardinality route labels
func ObservabilityMiddleware(base *zap.Logger, metrics *observability.Metrics) func(http.Handler) http.Handler {
	prop := otel.GetTextMapPropagator()
	tracer := otel.Tracer("waveshop/http")

	var requests *prometheus.CounterVec
	var durations *prometheus.HistogramVec
	if metrics != nil {
		requests = metrics.Counter("http_requests_total",
			"Total HTTP requests.", "method", "route", "status")
		durations = metrics.Histogram("http_request_duration_seconds",
			"HTTP request duration in seconds.", nil, "method", "route")
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := prop.Extract(r.Context(), propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, "HTTP "+r.Method,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(attribute.String("http.method", r.Method)),
			)

			rid := r.Header.Get("X-Request-ID")
			if rid == "" {
				rid = uuid.NewString()
			}
			w.Header().Set("X-Request-ID", rid)

			fields := []zap.Field{zap.String("request_id", rid)}
			if sc := span.SpanContext(); sc.IsValid() {
				fields = append(fields,
					zap.String("trace_id", sc.TraceID().String()),
					zap.String("span_id", sc.SpanID().String()),
				)
			}
			ctx = logging.WithContext(ctx, base.With(fields...))

			start := time.Now()
			lrw := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(lrw, r.WithContext(ctx))

			route := chi.RouteContext(ctx).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			span.SetAttributes(
				attribute.String("http.route", route),
				attribute.Int("http.status_code", lrw.status),
			)
			span.End()

			if requests != nil {
				requests.WithLabelValues(r.Method, route, strconv.Itoa(lrw.status)).Inc()
			}
			if durations != nil {
				durations.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
			}
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (w *statusRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
