package middleware

import (
	"math"
	"net"
	"net/http"
	"time"

	"francoggm/wiinpay-pix-relay/internal/metrics"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// AccessLog emits one http_request event per request once the response is done.
func AccessLog(logger *zap.Logger, m *metrics.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				elapsed := time.Since(start)
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}

				logger.Info("http_request",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.RequestURI()),
					zap.Int("status", status),
					zap.Float64("duration_ms", DurationMillis(elapsed)),
					zap.String("ip", clientIP(r.RemoteAddr)),
					zap.String("user_agent", r.UserAgent()),
				)

				m.ObserveHTTPRequest(r.Method, routePattern(r), status, elapsed)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

// DurationMillis converts d to milliseconds rounded to three decimal places.
func DurationMillis(d time.Duration) float64 {
	return math.Round(float64(d)/float64(time.Millisecond)*1000) / 1000
}

func clientIP(remoteAddr string) string {
	host, _, err := net.SplitHostPort(remoteAddr)
	if err != nil {
		return remoteAddr
	}
	return host
}

// routePattern keeps metric label cardinality bounded to registered routes.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
