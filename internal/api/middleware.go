package api

import (
	"fmt"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"roombooker/internal/metrics"
)

const requestIDHeader = "X-Request-Id"

func loggingMiddleware(logger zerolog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := strings.TrimSpace(r.Header.Get(requestIDHeader))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(requestIDHeader, requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)
		dur := time.Since(start)

		metrics.IncHTTP(endpointLabel(r.URL.Path), strconv.Itoa(recorder.status))

		logger.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Dur("duration", dur).
			Msg("http request")
	})
}

// endpointLabel collapses item paths so booking ids do not blow up metric
// cardinality.
func endpointLabel(path string) string {
	switch {
	case path == "/api/bookings":
		return "bookings"
	case strings.HasPrefix(path, "/api/bookings/"):
		return "booking"
	case path == "/api/auth":
		return "auth"
	case path == "/api/health":
		return "health"
	default:
		return "other"
	}
}

func recoverMiddleware(logger zerolog.Logger, environment string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := debug.Stack()
				logger.Error().
					Interface("panic", rec).
					Bytes("stack", stack).
					Str("path", r.URL.Path).
					Msg("handler panicked")

				w.WriteHeader(http.StatusInternalServerError)
				if environment != "production" {
					fmt.Fprintf(w, "%v\n\n%s", rec, stack)
				}
			}
		}()
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
