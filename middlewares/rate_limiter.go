package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/time/rate"
)

// MaxTrackedClients bounds how many client limiters are kept; the least
// recently seen client is evicted first.
const MaxTrackedClients = 10000

// RateLimit rejects requests beyond perSecond (with burst) per client IP
// with 429. A non-positive rate disables limiting.
func RateLimit(perSecond float64, burst int) gin.HandlerFunc {
	if perSecond <= 0 {
		return func(c *gin.Context) { c.Next() }
	}
	if burst < 1 {
		burst = 1
	}
	clients, err := lru.New(MaxTrackedClients)
	if err != nil {
		panic(err)
	}
	var mu sync.Mutex

	limiterFor := func(ip string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		if l, ok := clients.Get(ip); ok {
			return l.(*rate.Limiter)
		}
		l := rate.NewLimiter(rate.Limit(perSecond), burst)
		clients.Add(ip, l)
		return l
	}

	return func(c *gin.Context) {
		if !limiterFor(c.ClientIP()).Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"erro": "Muitas tentativas, tente novamente em instantes"})
			return
		}
		c.Next()
	}
}
