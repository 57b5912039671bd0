package middleware

import (
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"travelbook/internal/apperror"
	handlers "travelbook/internal/handler"
)

const (
	limiterIdleTTL = 10 * time.Minute
	pruneInterval  = time.Minute
)

type clientLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter throttles requests per client IP with a token bucket.
// The client IP is the connection's remote address unless it belongs to a trusted proxy.
type RateLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*clientLimiter
	lastPrune time.Time
	rate      rate.Limit
	burst     int
	trusted   []netip.Prefix
	log       *logrus.Logger
	now       func() time.Time
}

func NewRateLimiter(rps float64, burst int, log *logrus.Logger) *RateLimiter {
	return &RateLimiter{
		limiters: make(map[string]*clientLimiter),
		rate:     rate.Limit(rps),
		burst:    burst,
		log:      log,
		now:      time.Now,
	}
}

// TrustProxies accepts X-Forwarded-For only from the given proxy IPs or CIDRs.
func (rl *RateLimiter) TrustProxies(proxies []string) error {
	trusted := make([]netip.Prefix, 0, len(proxies))
	for _, proxy := range proxies {
		if !strings.Contains(proxy, "/") {
			addr, err := netip.ParseAddr(proxy)
			if err != nil {
				return fmt.Errorf("invalid trusted proxy %q: %w", proxy, err)
			}
			trusted = append(trusted, netip.PrefixFrom(addr.Unmap(), addr.Unmap().BitLen()))
			continue
		}

		prefix, err := netip.ParsePrefix(proxy)
		if err != nil {
			return fmt.Errorf("invalid trusted proxy %q: %w", proxy, err)
		}
		trusted = append(trusted, prefix.Masked())
	}

	rl.trusted = trusted
	return nil
}

// getLimiter returns the client's limiter. Limiters idle for longer than limiterIdleTTL
// are dropped, at most once per pruneInterval.
func (rl *RateLimiter) getLimiter(key string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastPrune) >= pruneInterval {
		for k, cl := range rl.limiters {
			if now.Sub(cl.lastSeen) > limiterIdleTTL {
				delete(rl.limiters, k)
			}
		}
		rl.lastPrune = now
	}

	cl, ok := rl.limiters[key]
	if !ok {
		cl = &clientLimiter{limiter: rate.NewLimiter(rl.rate, rl.burst)}
		rl.limiters[key] = cl
	}
	cl.lastSeen = now

	return cl.limiter
}

func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := rl.clientIP(r)

		if !rl.getLimiter(key).Allow() {
			rl.log.WithFields(logrus.Fields{
				"client": key,
				"method": r.Method,
				"path":   r.URL.Path,
			}).Warn("rate limit exceeded")

			w.Header().Set("Retry-After", "1")
			handlers.WriteError(w, nil, apperror.TooManyRequests("Too many requests, slow down"))
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientIP returns the remote address host. Behind a trusted proxy it walks
// X-Forwarded-For from the right and returns the first hop that is not a trusted proxy.
func (rl *RateLimiter) clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}

	if !rl.isTrusted(host) {
		return host
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop == "" {
			continue
		}
		if _, err := netip.ParseAddr(hop); err != nil {
			break
		}
		if !rl.isTrusted(hop) {
			return hop
		}
	}

	return host
}

func (rl *RateLimiter) isTrusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()

	for _, prefix := range rl.trusted {
		if prefix.Contains(addr) {
			return true
		}
	}
	return false
}
