package server

import (
	"crypto/subtle"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/stormvale/vocation-engine/internal/logger"
)

// Abuse-monitoring thresholds. Counters roll over once per window.
const (
	counterWindow            = 5 * time.Minute
	failedAuthAlertThreshold = 5
	requestsPerWindowLimit   = 1000
	rateLimitLogEvery        = 100
)

// AuthMiddleware gates every non-public route behind the API key header.
// Key comparison is constant-time so response timing leaks nothing about
// how much of a guessed key matched.
func AuthMiddleware(apiKey string, trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, path := range PublicPaths {
				if strings.HasPrefix(r.URL.Path, path) {
					next.ServeHTTP(w, r)
					return
				}
			}

			providedKey := r.Header.Get(HeaderAPIKey)
			if subtle.ConstantTimeCompare([]byte(providedKey), []byte(apiKey)) != 1 {
				ip := extractIP(r, trustedProxies)
				detector.RecordFailedAuth(ip)

				logger.FromContext(r.Context()).Warn(LogMsgAuthFailed,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"has_key", providedKey != "",
					"ip", ip)

				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequestSizeLimitMiddleware caps the request body a handler will read.
func RequestSizeLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// SuspiciousActivityDetector keeps per-IP counters of auth failures and
// request volume over a rolling window.
type SuspiciousActivityDetector struct {
	mu            sync.Mutex
	authFailures  map[string]int
	requestCounts map[string]int
	windowStart   time.Time
}

func NewSuspiciousActivityDetector() *SuspiciousActivityDetector {
	return &SuspiciousActivityDetector{
		authFailures:  make(map[string]int),
		requestCounts: make(map[string]int),
		windowStart:   time.Now(),
	}
}

// RecordFailedAuth counts an auth failure and alerts once the IP crosses the
// threshold within the current window.
func (d *SuspiciousActivityDetector) RecordFailedAuth(ip string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.authFailures[ip]++

	if d.authFailures[ip] >= failedAuthAlertThreshold {
		slog.Warn(SecurityAlertFailedAuth, "ip", ip, "count", d.authFailures[ip])
	}
}

// RecordRequest counts a request toward the IP's window budget and reports
// whether it is still within the limit.
func (d *SuspiciousActivityDetector) RecordRequest(ip string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rollWindowLocked()
	d.requestCounts[ip]++

	if d.requestCounts[ip] > requestsPerWindowLimit {
		// Log a sample of the overflow, not every blocked request.
		if d.requestCounts[ip]%rateLimitLogEvery == 0 {
			slog.Warn(SecurityAlertHighRate, "ip", ip, "count_in_window", d.requestCounts[ip])
		}
		return false
	}
	return true
}

// rollWindowLocked clears the counters when the window has elapsed.
// Caller holds d.mu.
func (d *SuspiciousActivityDetector) rollWindowLocked() {
	if time.Since(d.windowStart) > counterWindow {
		d.requestCounts = make(map[string]int)
		d.authFailures = make(map[string]int)
		d.windowStart = time.Now()
	}
}

// SecurityLoggingMiddleware enforces the per-IP request budget.
func SecurityLoggingMiddleware(trustedProxies []string, detector *SuspiciousActivityDetector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !detector.RecordRequest(extractIP(r, trustedProxies)) {
				http.Error(w, ErrMsgTooManyRequests, http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// extractIP resolves the client address. X-Forwarded-For is honored only when
// the direct peer is a listed proxy, and then only its rightmost entry, which
// is the hop that proxy actually saw.
func extractIP(r *http.Request, trustedProxies []string) string {
	remoteIP, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteIP = r.RemoteAddr
	}

	for _, proxy := range trustedProxies {
		if proxy != remoteIP {
			continue
		}
		if forwarded := r.Header.Get(HeaderForwardedFor); forwarded != "" {
			hops := strings.Split(forwarded, ",")
			return strings.TrimSpace(hops[len(hops)-1])
		}
		break
	}

	return remoteIP
}

// SecurityHeadersMiddleware stamps the standard browser hardening headers on
// every response.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set(HeaderContentType, HeaderValueNoSniff)
			w.Header().Set(HeaderFrameOptions, HeaderValueSameOrigin)
			w.Header().Set(HeaderXSSProtection, HeaderValueXSSBlock)
			w.Header().Set(HeaderReferrerPolicy, HeaderValueReferrerStrictOrigin)
			next.ServeHTTP(w, r)
		})
	}
}
