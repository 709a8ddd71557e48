package middleware

import (
	"net/http"
	"sync"
	"time"

	"gasolinera/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// In-process rate limiting per source IP. The station backend serves a
// handful of pump terminals on a local network, so a fixed window kept in
// memory is enough; nothing here needs to survive a restart.

const (
	loginMaxIntentos = 20
	loginVentana     = time.Minute
	purgeInterval    = 5 * time.Minute
)

// ventanaIP counts requests from one IP within the current window.
type ventanaIP struct {
	count     int
	windowEnd time.Time
	mu        sync.Mutex
}

// contadorIP is a window counter map shared by the login and API limiters.
type contadorIP struct {
	mu      sync.Mutex
	entries map[string]*ventanaIP
}

func nuevoContadorIP() *contadorIP {
	return &contadorIP{entries: make(map[string]*ventanaIP)}
}

// incrementa bumps the IP's counter, resetting it when the window lapsed,
// and reports whether the new count exceeds the limit.
func (c *contadorIP) incrementa(ip string, limit int, window time.Duration) (excedido bool, windowEnd time.Time) {
	c.mu.Lock()
	entry, exists := c.entries[ip]
	if !exists {
		entry = &ventanaIP{}
		c.entries[ip] = entry
	}
	c.mu.Unlock()

	entry.mu.Lock()
	defer entry.mu.Unlock()

	now := time.Now()
	if now.After(entry.windowEnd) {
		entry.count = 0
		entry.windowEnd = now.Add(window)
	}
	entry.count++
	return entry.count > limit, entry.windowEnd
}

// purga drops entries whose window already ended and returns how many went.
func (c *contadorIP) purga(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	purged := 0
	for ip, entry := range c.entries {
		entry.mu.Lock()
		if now.After(entry.windowEnd) {
			delete(c.entries, ip)
			purged++
		}
		entry.mu.Unlock()
	}
	return purged
}

var (
	loginContador = nuevoContadorIP()
	apiContador   = nuevoContadorIP()
)

// LoginRateLimiter slows down credential guessing against cashier accounts:
// 20 login attempts per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	return func(c *gin.Context) {
		if excedido, _ := loginContador.incrementa(c.ClientIP(), loginMaxIntentos, loginVentana); excedido {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiados intentos de login. Intente en 1 minuto."))
			return
		}
		c.Next()
	}
}

// RateLimiter caps requests per IP over a fixed window for the whole API.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		excedido, windowEnd := apiContador.incrementa(c.ClientIP(), limit, window)
		if excedido {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, apierror.New("Demasiadas solicitudes. Intente nuevamente en un momento."))
			return
		}
		c.Next()
	}
}

func init() {
	go purgeExpiredEntries()
}

// purgeExpiredEntries keeps both maps from accumulating IPs that never
// come back.
func purgeExpiredEntries() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		purgedLogin := loginContador.purga(now)
		purgedAPI := apiContador.purga(now)
		if purgedLogin > 0 || purgedAPI > 0 {
			log.Debug().
				Int("login_entries_purged", purgedLogin).
				Int("api_entries_purged", purgedAPI).
				Msg("rate limiter maps purged")
		}
	}
}
