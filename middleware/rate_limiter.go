package middleware

import (
	"net"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"
)

// In-memory per-IP fixed-window rate limiter with trusted-proxy support.

type timestamps []int64 // unix nanos

func nowUnix() int64 { return time.Now().UnixNano() }

// IPRateLimiter implements per-IP fixed-window counters.
type IPRateLimiter struct {
	window      time.Duration
	mu          sync.Mutex
	state       map[string]timestamps
	trustedCIDR []string
	maxReq      int
}

func NewIPRateLimiter(maxReq int, window time.Duration) *IPRateLimiter {
	l := &IPRateLimiter{
		window: window,
		state:  make(map[string]timestamps),
		maxReq: maxReq,
	}
	if v := os.Getenv("TRUSTED_PROXIES"); v != "" {
		l.trustedCIDR = strings.Split(v, ",")
	}
	go l.cleanupLoop()
	return l
}

// clientIPGeneric returns the client IP string. X-Forwarded-For is honored
// only when the remote addr is inside one of the trusted CIDRs or IPs.
func clientIPGeneric(r *http.Request, trustedCIDR []string) string {
	remoteHost, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		remoteHost = r.RemoteAddr
	}
	trusted := false
	for _, c := range trustedCIDR {
		c = strings.TrimSpace(c)
		if c == "" {
			continue
		}
		if strings.Contains(c, "/") {
			if _, ipnet, err := net.ParseCIDR(c); err == nil {
				if ip := net.ParseIP(remoteHost); ip != nil && ipnet.Contains(ip) {
					trusted = true
					break
				}
			}
		} else if c == remoteHost {
			trusted = true
			break
		}
	}
	if trusted {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			parts := strings.Split(xff, ",")
			if first := strings.TrimSpace(parts[0]); first != "" {
				return first
			}
		}
		if xr := strings.TrimSpace(r.Header.Get("X-Real-IP")); xr != "" {
			return xr
		}
	}
	return remoteHost
}

func (l *IPRateLimiter) allow(ip string) bool {
	now := nowUnix()
	cutoff := now - l.window.Nanoseconds()

	l.mu.Lock()
	defer l.mu.Unlock()

	ts := l.state[ip]
	kept := ts[:0]
	for _, t := range ts {
		if t > cutoff {
			kept = append(kept, t)
		}
	}
	if len(kept) >= l.maxReq {
		l.state[ip] = kept
		return false
	}
	l.state[ip] = append(kept, now)
	return true
}

func (l *IPRateLimiter) cleanupLoop() {
	tick := time.NewTicker(time.Minute)
	defer tick.Stop()
	for range tick.C {
		cutoff := nowUnix() - l.window.Nanoseconds()
		l.mu.Lock()
		for ip, ts := range l.state {
			kept := ts[:0]
			for _, t := range ts {
				if t > cutoff {
					kept = append(kept, t)
				}
			}
			if len(kept) == 0 {
				delete(l.state, ip)
			} else {
				l.state[ip] = kept
			}
		}
		l.mu.Unlock()
	}
}

func (l *IPRateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIPGeneric(r, l.trustedCIDR)
		if !l.allow(ip) {
			writeJSON(w, http.StatusTooManyRequests, map[string]interface{}{
				"success": false,
				"message": "Too many requests",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}
