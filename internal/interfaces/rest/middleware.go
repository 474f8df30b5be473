package rest

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
)

type contextKey string

const identityKey contextKey = "identity"

var (
	operationsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "auctiond_http_requests_total",
		Help: "Number of HTTP requests served, by route and status code.",
	}, []string{"route", "code"})

	operationsLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "auctiond_http_request_duration_seconds",
		Help:    "HTTP request latency, by route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})
)

type statusRecorder struct {
	http.ResponseWriter
	code int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.code = code
	r.ResponseWriter.WriteHeader(code)
}

// authMiddleware validates the bearer token and injects the caller identity,
// taken from the token subject, into the request context. Identities never
// come from request bodies.
func authMiddleware(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeError(w, http.StatusUnauthorized, "authorization header required")
				return
			}

			tokenString := strings.TrimPrefix(authHeader, "Bearer ")
			token, err := jwt.Parse(
				tokenString,
				func(token *jwt.Token) (interface{}, error) {
					return secret, nil
				},
				jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			)
			if err != nil || !token.Valid {
				writeError(w, http.StatusUnauthorized, "invalid token")
				return
			}

			identity, err := token.Claims.GetSubject()
			if err != nil || identity == "" {
				writeError(w, http.StatusUnauthorized, "token subject required")
				return
			}

			ctx := context.WithValue(r.Context(), identityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func identityFromContext(ctx context.Context) string {
	identity, _ := ctx.Value(identityKey).(string)
	return identity
}

// loggerMiddleware logs every request with its route, status and latency.
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.WithFields(log.Fields{
			"method":  r.Method,
			"path":    r.URL.Path,
			"status":  rec.code,
			"elapsed": time.Since(start).String(),
		}).Debug("http request")
	})
}

// metricsMiddleware records the prometheus counters and latency histogram of
// a route.
func metricsMiddleware(route string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, code: http.StatusOK}
		next.ServeHTTP(rec, r)

		operationsCounter.WithLabelValues(route, http.StatusText(rec.code)).Inc()
		operationsLatency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	})
}

// rateLimitMiddleware paces requests through a leaky-bucket limiter. Used on
// the bid path to keep bursts of re-bids from starving other auctions.
func rateLimitMiddleware(limiter ratelimit.Limiter, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		limiter.Take()
		next.ServeHTTP(w, r)
	})
}
