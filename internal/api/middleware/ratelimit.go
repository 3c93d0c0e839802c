package middleware

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/m04kA/SMC-RageRoomService/internal/api/handlers"
)

const msgTooManyRequests = "Too many requests. Please try again later."

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter ограничитель частоты запросов по IP клиента (token bucket)
type RateLimiter struct {
	mu                sync.Mutex
	visitors          map[string]*visitor
	limit             rate.Limit
	burst             int
	trustForwardedFor bool
	idleTTL           time.Duration
	lastSweep         time.Time
	now               func() time.Time
	logger            Logger
}

// NewRateLimiter создает ограничитель: perMinute запросов в минуту с запасом burst
// trustForwardedFor включается только за своим reverse proxy, иначе клиент подделает X-Forwarded-For
func NewRateLimiter(perMinute, burst int, trustForwardedFor bool, logger Logger) *RateLimiter {
	if perMinute <= 0 {
		perMinute = 10
	}
	if burst <= 0 {
		burst = 1
	}

	return &RateLimiter{
		visitors:          make(map[string]*visitor),
		limit:             rate.Every(time.Minute / time.Duration(perMinute)),
		burst:             burst,
		trustForwardedFor: trustForwardedFor,
		idleTTL:           10 * time.Minute,
		now:               time.Now,
		logger:            logger,
	}
}

// Middleware отвечает 429, когда клиент исчерпал лимит
func (rl *RateLimiter) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r, rl.trustForwardedFor)
		if !rl.allow(ip) {
			rl.logger.Warn("%s %s - Rate limit exceeded: ip=%s, request_id=%s",
				r.Method, r.URL.Path, ip, RequestIDFromContext(r.Context()))
			handlers.RespondError(w, http.StatusTooManyRequests, msgTooManyRequests)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (rl *RateLimiter) allow(ip string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	rl.evictIdle(now)

	v, ok := rl.visitors[ip]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.limit, rl.burst)}
		rl.visitors[ip] = v
	}
	v.lastSeen = now

	return v.limiter.AllowN(now, 1)
}

// evictIdle вызывается под мьютексом; полный проход не чаще раза в idleTTL
func (rl *RateLimiter) evictIdle(now time.Time) {
	if now.Sub(rl.lastSweep) < rl.idleTTL {
		return
	}
	rl.lastSweep = now

	for ip, v := range rl.visitors {
		if now.Sub(v.lastSeen) > rl.idleTTL {
			delete(rl.visitors, ip)
		}
	}
}

// clientIP адрес клиента для лимита
// С trustForwardedFor берется последний адрес X-Forwarded-For: его дописал наш прокси,
// а начало заголовка приходит от клиента. Без доверия к прокси - только RemoteAddr
func clientIP(r *http.Request, trustForwardedFor bool) string {
	if trustForwardedFor {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			hops := strings.Split(fwd, ",")
			if ip := strings.TrimSpace(hops[len(hops)-1]); ip != "" {
				return ip
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
