package server

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/juju/ratelimit"

	"github.com/openrx/pharmacy-api/config"
	"github.com/openrx/pharmacy-api/handlers"
	"github.com/openrx/pharmacy-api/logging"
)

// RealIPMiddleware extracts the real IP from X-Forwarded-For header
func RealIPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// Take the first IP from the comma-separated list
			if idx := strings.Index(xff, ","); idx != -1 {
				xff = xff[:idx]
			}
			r.RemoteAddr = strings.TrimSpace(xff)
		}
		next.ServeHTTP(w, r)
	})
}

// RequestSizeMiddleware limits the size of request headers and body
func RequestSizeMiddleware(cfg *config.Config) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if contentLength := r.Header.Get("Content-Length"); contentLength != "" {
				if length, err := strconv.ParseInt(contentLength, 10, 64); err == nil {
					if length > cfg.MaxRequestBody {
						logging.Warn("Request body too large",
							"content_length", length,
							"max_allowed", cfg.MaxRequestBody,
							"remote_addr", r.RemoteAddr)

						handlers.RespondWithError(w, http.StatusRequestEntityTooLarge,
							fmt.Sprintf("Request body too large. Maximum allowed size is %d bytes", cfg.MaxRequestBody))
						return
					}
				}
			}

			headerSize := int64(0)
			for key, values := range r.Header {
				headerSize += int64(len(key))
				for _, value := range values {
					headerSize += int64(len(value))
				}
			}

			if headerSize > cfg.MaxHeaderSize {
				logging.Warn("Request headers too large",
					"header_size", headerSize,
					"max_allowed", cfg.MaxHeaderSize,
					"remote_addr", r.RemoteAddr)

				handlers.RespondWithError(w, http.StatusRequestHeaderFieldsTooLarge,
					fmt.Sprintf("Request headers too large. Maximum allowed size is %d bytes", cfg.MaxHeaderSize))
				return
			}

			// Cap the actual body read as well, in case Content-Length lied
			r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxRequestBody)

			next.ServeHTTP(w, r)
		})
	}
}

// RateLimiter manages per-client rate limiting
type RateLimiter struct {
	clients map[string]*ratelimit.Bucket
	mu      sync.RWMutex

	startOnce sync.Once
	stopOnce  sync.Once
	stop      chan struct{}
}

// NewRateLimiter creates a new rate limiter
func NewRateLimiter() *RateLimiter {
	return &RateLimiter{
		clients: make(map[string]*ratelimit.Bucket),
		stop:    make(chan struct{}),
	}
}

func (rl *RateLimiter) getBucket(clientIP string) *ratelimit.Bucket {
	rl.mu.RLock()
	bucket, exists := rl.clients[clientIP]
	rl.mu.RUnlock()

	if !exists {
		rl.mu.Lock()
		if bucket, exists = rl.clients[clientIP]; !exists {
			// Create bucket: 5 tokens per second, max 600 tokens
			bucket = ratelimit.NewBucketWithRate(5, 600)
			rl.clients[clientIP] = bucket
		}
		rl.mu.Unlock()
	}

	return bucket
}

// StartCleanup launches the background sweep that drops clients whose
// buckets have refilled completely. It starts at most one goroutine.
func (rl *RateLimiter) StartCleanup() {
	rl.startOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(30 * time.Minute)
			defer ticker.Stop()

			for {
				select {
				case <-rl.stop:
					return
				case <-ticker.C:
					rl.sweep()
				}
			}
		}()
	})
}

// StopCleanup terminates the background sweep. Safe to call more than once.
func (rl *RateLimiter) StopCleanup() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for ip, bucket := range rl.clients {
		if bucket.Available() == bucket.Capacity() {
			delete(rl.clients, ip)
		}
	}
}

var globalRateLimiter = NewRateLimiter()

// getTokenCost weighs endpoints by how expensive they are to serve. Reads
// are cheap, catalog dumps and the extraction pipeline cost more.
func getTokenCost(r *http.Request) int64 {
	path := r.URL.Path

	switch path {
	case "/health", "/metrics":
		return 1
	case "/catalog":
		return 20 // full catalog dump
	case "/prescriptions":
		return 50 // extraction pipeline
	case "/checkout":
		return 10
	}

	switch {
	case strings.HasPrefix(path, "/catalog/"):
		return 5
	case strings.HasPrefix(path, "/medicine/"):
		return 5
	case strings.HasPrefix(path, "/cart"):
		return 5
	}

	return 5 // default cost
}

// RateLimitHandler implements rate limiting using token bucket
func RateLimitHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		bucket := globalRateLimiter.getBucket(r.RemoteAddr)
		tokenCost := getTokenCost(r)

		w.Header().Set("X-RateLimit-Limit", "600")
		w.Header().Set("X-RateLimit-Rate", "5")

		if bucket.TakeAvailable(tokenCost) < tokenCost {
			w.Header().Set("X-RateLimit-Remaining", "0")
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(bucket.Available(), 10))

		next.ServeHTTP(w, r)
	})
}
