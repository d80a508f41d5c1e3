package middlewares

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

var (
	limiters = make(map[string]*rate.Limiter)
	mu       sync.Mutex
)

func getLimiter(key string, r rate.Limit, b int) *rate.Limiter {
	mu.Lock()
	defer mu.Unlock()

	limiter, exists := limiters[key]
	if !exists {
		limiter = rate.NewLimiter(r, b)
		limiters[key] = limiter
	}
	return limiter
}

// RateLimitMiddleware allows b requests at once and r per second after
// that for each key. scope keeps separate budgets for separate routes.
func RateLimitMiddleware(scope string, r rate.Limit, b int, keyFunc func(*gin.Context) string) gin.HandlerFunc {
	return func(c *gin.Context) {
		limiter := getLimiter(scope+":"+keyFunc(c), r, b)

		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Muitas tentativas. Aguarde um pouco e tente novamente."})
			return
		}

		c.Next()
	}
}

func ClientIP(c *gin.Context) string {
	return c.ClientIP()
}
