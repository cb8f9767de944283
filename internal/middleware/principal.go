package middleware

import (
	"log"
	"strings"

	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// PrincipalKey is the fiber locals key holding the resolved principal.
const PrincipalKey = "principal"

// ApiKeyHeader carries API key credentials for external integration paths.
const ApiKeyHeader = "X-API-Key"

// ExternalPathPrefix marks the paths authenticated by API key instead of
// bearer token.
const ExternalPathPrefix = "/api/v1/external/"

// ResolvePrincipal turns the request credentials into exactly one principal
// before any handler runs. External paths take an API key, everything else
// takes an optional bearer token, and both schemes produce the same
// principal shape so downstream authorization never branches on how the
// request was authenticated. Requests without credentials proceed as
// anonymous; handlers decide what anonymous may see.
func ResolvePrincipal(authService *services.AuthService, apiKeyService *services.ApiKeyService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.HasPrefix(c.Path(), ExternalPathPrefix) {
			apiKey := c.Get(ApiKeyHeader)
			if apiKey == "" {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "API key is required",
				})
			}

			sellerID, err := apiKeyService.Validate(apiKey)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"message": "Invalid or expired API key",
				})
			}

			// Best-effort usage stamp. Must never block or fail the request.
			go func(secret string) {
				if err := apiKeyService.MarkUsed(secret); err != nil {
					log.Printf("Failed to update API key last-used timestamp: %v", err)
				}
			}(apiKey)

			c.Locals(PrincipalKey, models.Principal{
				Kind:     models.PrincipalApiKey,
				SellerID: sellerID,
			})
			return c.Next()
		}

		authHeader := c.Get("Authorization")
		if authHeader == "" {
			c.Locals(PrincipalKey, models.Principal{Kind: models.PrincipalAnonymous})
			return c.Next()
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authorization header format must be 'Bearer <token>'",
			})
		}

		claims, err := authService.ValidateToken(parts[1])
		if err != nil {
			log.Printf("JWT validation failed: %v", err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Invalid or expired token",
			})
		}

		c.Locals(PrincipalKey, services.PrincipalFromClaims(claims))
		return c.Next()
	}
}

// PrincipalFromCtx returns the principal resolved for the request.
func PrincipalFromCtx(c *fiber.Ctx) models.Principal {
	if p, ok := c.Locals(PrincipalKey).(models.Principal); ok {
		return p
	}
	return models.Principal{Kind: models.PrincipalAnonymous}
}

// AuthRequired rejects anonymous requests.
func AuthRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if PrincipalFromCtx(c).Kind == models.PrincipalAnonymous {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication is required",
			})
		}
		return c.Next()
	}
}

// AdminRequired rejects everything but admin principals.
func AdminRequired() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := PrincipalFromCtx(c)
		if p.Kind == models.PrincipalAnonymous {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Authentication is required",
			})
		}
		if !p.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"message": "Admin role is required",
			})
		}
		return c.Next()
	}
}
