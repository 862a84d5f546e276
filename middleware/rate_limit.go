package middleware

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"toorrii_site/services/query"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

var rateLimited = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "toorrii_site",
		Subsystem: "http",
		Name:      "rate_limited_total",
		Help:      "Requests rejected by a rate limiter.",
	},
	[]string{"limiter"},
)

func init() {
	query.Registry.MustRegister(rateLimited)
}

// RateLimitConfig defines a fixed-window limit
type RateLimitConfig struct {
	// Name labels the limiter in metrics and logs
	Name string
	// Requests is the number of requests a key may make per window
	Requests int
	Window   time.Duration
	// KeyFunc identifies the client, c.RealIP() by default
	KeyFunc func(c echo.Context) string
	// Message is the error returned once the limit is reached
	Message string
}

type window struct {
	count     int
	expiresAt time.Time
}

// RateLimiter counts requests per client key in fixed windows
type RateLimiter struct {
	config RateLimitConfig
	now    func() time.Time

	mu      sync.Mutex
	windows map[string]*window

	stop     chan struct{}
	stopOnce sync.Once
}

// NewRateLimiter creates a limiter and starts its cleanup loop
func NewRateLimiter(config RateLimitConfig) *RateLimiter {
	if config.KeyFunc == nil {
		config.KeyFunc = func(c echo.Context) string {
			return c.RealIP()
		}
	}
	if config.Message == "" {
		config.Message = "Too many requests. Please try again later."
	}
	if config.Name == "" {
		config.Name = "default"
	}

	rl := &RateLimiter{
		config:  config,
		now:     time.Now,
		windows: make(map[string]*window),
		stop:    make(chan struct{}),
	}
	go rl.cleanup(time.Minute)
	return rl
}

// Allow records a request for key. When the limit is reached it returns
// false and how long until the window resets.
func (rl *RateLimiter) Allow(key string) (bool, time.Duration) {
	now := rl.now()

	rl.mu.Lock()
	defer rl.mu.Unlock()

	w, ok := rl.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		rl.windows[key] = &window{count: 1, expiresAt: now.Add(rl.config.Window)}
		return true, 0
	}
	if w.count >= rl.config.Requests {
		return false, w.expiresAt.Sub(now)
	}
	w.count++
	return true, 0
}

// Middleware rejects requests over the limit with 429 and Retry-After
func (rl *RateLimiter) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, wait := rl.Allow(rl.config.KeyFunc(c))
			if ok {
				return next(c)
			}

			rateLimited.WithLabelValues(rl.config.Name).Inc()
			retryAfter := int(wait.Seconds()) + 1
			c.Response().Header().Set("Retry-After", strconv.Itoa(retryAfter))
			return echo.NewHTTPError(http.StatusTooManyRequests, rl.config.Message)
		}
	}
}

// Stop ends the cleanup loop
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stop) })
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops expired windows
func (rl *RateLimiter) sweep() {
	now := rl.now()
	rl.mu.Lock()
	for key, w := range rl.windows {
		if !now.Before(w.expiresAt) {
			delete(rl.windows, key)
		}
	}
	rl.mu.Unlock()
}

// PDFRateLimiter limits legal PDF downloads to 10 per minute per IP. A cache
// miss starts a headless browser.
var PDFRateLimiter = NewRateLimiter(RateLimitConfig{
	Name:     "pdf",
	Requests: 10,
	Window:   time.Minute,
	Message:  "Too many downloads. Please wait a minute before trying again.",
})

// ContentAPIRateLimiter limits JSON content requests to 60 per minute per IP
var ContentAPIRateLimiter = NewRateLimiter(RateLimitConfig{
	Name:     "content_api",
	Requests: 60,
	Window:   time.Minute,
	Message:  "Rate limit exceeded. Please slow down your requests.",
})
