package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewIdentityMiddleware resolves the caller identity. A valid bearer token
// wins; without one every request is attributed to the configured demo
// identity so the API stays usable before auth is rolled out.
func NewIdentityMiddleware(demoUserId string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		ctx.Locals("user_id", resolveUserId(ctx, demoUserId))
		return ctx.Next()
	}
}

func resolveUserId(ctx *fiber.Ctx, demoUserId string) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && authHeader[:7] == "Bearer " {
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err == nil && token.Valid {
			if claims, ok := token.Claims.(jwt.MapClaims); ok {
				if userId, ok := claims["user_id"].(string); ok && userId != "" {
					return userId
				}
			}
		}
	}

	return demoUserId
}
