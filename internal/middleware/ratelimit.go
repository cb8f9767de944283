package middleware

import (
	"sync"

	"lapak/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// ApiKeyRateLimiter throttles external API requests per key, consuming the
// per-minute budget stored on the key. Limiters are process-wide and keyed
// by the secret; the key service only persists the limits, enforcement
// happens here.
type ApiKeyRateLimiter struct {
	keyRepo  repositories.ApiKeyRepository
	limiters map[string]*rate.Limiter
	mu       sync.Mutex
}

// NewApiKeyRateLimiter creates a new ApiKeyRateLimiter.
func NewApiKeyRateLimiter(keyRepo repositories.ApiKeyRepository) *ApiKeyRateLimiter {
	return &ApiKeyRateLimiter{
		keyRepo:  keyRepo,
		limiters: make(map[string]*rate.Limiter),
	}
}

// Handler returns a fiber middleware enforcing the limit. It runs after
// ResolvePrincipal, so the key is already known to be valid; requests
// without a key header pass through untouched.
func (l *ApiKeyRateLimiter) Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		secret := c.Get(ApiKeyHeader)
		if secret == "" {
			return c.Next()
		}

		limiter := l.limiterFor(secret)
		if limiter != nil && !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Rate limit exceeded",
			})
		}
		return c.Next()
	}
}

func (l *ApiKeyRateLimiter) limiterFor(secret string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limiter, ok := l.limiters[secret]; ok {
		return limiter
	}

	key, err := l.keyRepo.GetByKey(secret)
	if err != nil {
		// Unknown key; validation already rejected it upstream.
		return nil
	}

	limiter := rate.NewLimiter(rate.Limit(float64(key.RequestsPerMinute)/60.0), key.RequestsPerMinute)
	l.limiters[secret] = limiter
	return limiter
}
