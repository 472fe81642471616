package middleware

import (
	"encoding/json"
	"math"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"teamTasks/internal/logger"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type RateLimitOptions struct {
	TrustHeaders bool
	Interval     time.Duration // один токен восстанавливается за Interval
	Burst        int
	CacheSize    int
	TTL          time.Duration // забытые клиенты вытесняются из кэша
}

// RateLimit ограничивает частоту запросов с одного адреса.
// Лимитеры клиентов живут в LRU-кэше с истечением
func RateLimit(opts RateLimitOptions) func(http.Handler) http.Handler {
	cache := expirable.NewLRU[string, *rate.Limiter](opts.CacheSize, nil, opts.TTL)

	// Get и Add под одной блокировкой: у клиента ровно один лимитер
	var mtx sync.Mutex
	getLimiter := func(ip string) *rate.Limiter {
		mtx.Lock()
		defer mtx.Unlock()

		limiter, exists := cache.Get(ip)
		if !exists {
			limiter = rate.NewLimiter(rate.Every(opts.Interval), opts.Burst)
			cache.Add(ip, limiter)
		}
		return limiter
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := getIp(r, opts.TrustHeaders)
			limiter := getLimiter(ip)

			reservation := limiter.Reserve()
			if !reservation.OK() || reservation.Delay() > 0 {
				retryAfter := 1
				if reservation.OK() {
					retryAfter = int(math.Ceil(reservation.Delay().Seconds()))
					reservation.Cancel()
				}

				logger.Warn("HTTP: Превышен лимит запросов",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("client_ip", ip))

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				w.WriteHeader(http.StatusTooManyRequests)

				_ = json.NewEncoder(w).Encode(map[string]any{
					"error":       "rate_limit_exceeded",
					"message":     "Слишком много запросов. Попробуйте позже.",
					"retry_after": retryAfter,
					"request_id":  GetRequestID(r.Context()),
				})
				return
			}

			remaining := int(math.Max(0, math.Floor(limiter.Tokens())))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(opts.Burst))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

			next.ServeHTTP(w, r)
		})
	}
}

func getIp(r *http.Request, trustHeaders bool) string {
	if trustHeaders {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			first, _, _ := strings.Cut(xff, ",")
			return strings.TrimSpace(first)
		}
		if xri := r.Header.Get("X-Real-Ip"); xri != "" {
			return xri
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
