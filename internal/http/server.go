// Package http exposes the dashboard JSON API.
package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"heybanco/internal/cache"
	"heybanco/internal/chat"
	"heybanco/internal/places"
	"heybanco/internal/services"
)

// ChatCompleter is the assistant backend; nil disables the chat endpoint.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []chat.Message) (string, error)
}

type Server struct {
	http.Server
	analysis *services.AnalysisService
	chat     ChatCompleter
	places   *places.TopPlaces

	rateLimiter *rateLimiter
	metrics     securityMetrics

	// now supplies the reference date for handlers that default to the
	// current day; tests pin it.
	now func() time.Time

	summaryCache *cache.LRU[*services.CalendarSummary]
	dayCache     *cache.LRU[*services.DaySummary]
	reviewCache  *cache.LRU[*services.SpendReview]

	cancelCleanup context.CancelFunc
	shutdownOnce  sync.Once
}

// NewServer configures routes and caches, returning a ready-to-run server.
func NewServer(addr string, analysis *services.AnalysisService, chatSvc ChatCompleter) *Server {
	mux := http.NewServeMux()

	s := &Server{
		Server: http.Server{
			Addr:    addr,
			Handler: mux,
		},
		analysis:     analysis,
		chat:         chatSvc,
		rateLimiter:  newRateLimiter(60),
		now:          time.Now,
		summaryCache: cache.NewLRU[*services.CalendarSummary](100, 5*time.Minute),
		dayCache:     cache.NewLRU[*services.DaySummary](200, 5*time.Minute),
		reviewCache:  cache.NewLRU[*services.SpendReview](10, 5*time.Minute),
	}

	tp, err := places.Load()
	if err != nil {
		slog.Warn("Failed loading places dataset", "error", err)
	}
	s.places = tp

	cleanupCtx, cancel := context.WithCancel(context.Background())
	s.cancelCleanup = cancel
	go cache.RunCleanup(cleanupCtx, 10*time.Minute, s.summaryCache, s.dayCache, s.reviewCache)

	mux.HandleFunc("/healthz", handleHealth)
	mux.HandleFunc("/readyz", handleReady)
	mux.HandleFunc("/api/recurring-charges", s.withSecurityHeaders(s.handleRecurringCharges))
	mux.HandleFunc("/api/calendar/summary", s.withSecurityHeaders(s.handleCalendarSummary))
	mux.HandleFunc("/api/calendar/day", s.withSecurityHeaders(s.handleCalendarDay))
	mux.HandleFunc("/api/upcoming", s.withSecurityHeaders(s.handleUpcoming))
	mux.HandleFunc("/api/monthly-change", s.withSecurityHeaders(s.handleMonthlyChange))
	mux.HandleFunc("/api/predicted-future", s.withSecurityHeaders(s.handlePredictedFuture))
	mux.HandleFunc("/api/top-places", s.withSecurityHeaders(s.handleTopPlaces))
	mux.HandleFunc("/api/goals", s.withSecurityHeaders(s.handleGoals))
	mux.HandleFunc("/api/chat", s.withSecurityHeaders(s.handleChat))

	return s
}

// Shutdown stops the cleanup goroutines before draining connections.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cancelCleanup != nil {
			s.cancelCleanup()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request
// logging to responses.
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		clientIP := extractClientIP(r)
		requestID := generateRequestID()

		ctx := context.WithValue(r.Context(), requestIDKey{}, requestID)
		r = r.WithContext(ctx)

		slog.InfoContext(ctx, "Request started",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"client_ip", clientIP,
			"user_agent", r.Header.Get("User-Agent"))

		// Rate limit the endpoints that do real work per call.
		if r.Method == http.MethodPost && !s.rateLimiter.allow(clientIP, &s.metrics) {
			slog.WarnContext(ctx, "Rate limit exceeded", "client_ip", clientIP, "method", r.Method, "url", r.URL.Path)
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'none'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		duration := time.Since(start)
		slog.InfoContext(ctx, "Request completed",
			"request_id", requestID,
			"method", r.Method,
			"url", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"client_ip", clientIP)
	}
}

type requestIDKey struct{}

func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}
