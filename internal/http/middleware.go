package http

import (
	"net/http"

	"golang.org/x/time/rate"

	"github.com/goliatone/go-docs/internal/metrics"
)

// router registers routes with optional instrumentation and rate limiting.
type router struct {
	mux     *http.ServeMux
	metrics *metrics.Metrics
	limiter *rate.Limiter
}

func (rt router) handle(pattern string, handler http.HandlerFunc) {
	var next http.Handler = handler
	if rt.limiter != nil {
		next = limit(rt.limiter, next)
	}
	rt.mux.Handle(pattern, rt.metrics.Instrument(pattern, next))
}

// newLimiter returns nil when perSecond is not positive.
func newLimiter(perSecond float64, burst int) *rate.Limiter {
	if perSecond <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = int(perSecond) + 1
	}
	return rate.NewLimiter(rate.Limit(perSecond), burst)
}

func limit(limiter *rate.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !limiter.Allow() {
			w.Header().Set("Retry-After", "1")
			writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "rate_limited"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
