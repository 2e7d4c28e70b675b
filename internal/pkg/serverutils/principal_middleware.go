package serverutils

import (
	"strings"

	"admin-chatbot-be/internal/constant"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const principalKey = "admin_id"

var anonymous = uuid.MustParse(constant.AnonymousAdminID)

// PrincipalMiddleware attaches the admin id from a bearer token. Requests
// without a token run as the anonymous principal; a token that is present
// but invalid is rejected.
func PrincipalMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		header := ctx.Get(fiber.HeaderAuthorization)
		if header == "" {
			ctx.Locals(principalKey, anonymous)
			return ctx.Next()
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return fiber.NewError(fiber.StatusUnauthorized, "Missing token")
		}

		token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			return []byte(secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
		}
		id, err := adminIdFromClaims(claims)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid claims")
		}

		ctx.Locals(principalKey, id)
		return ctx.Next()
	}
}

func adminIdFromClaims(claims jwt.MapClaims) (uuid.UUID, error) {
	for _, key := range []string{"admin_id", "user_id", "sub"} {
		if v, ok := claims[key].(string); ok && v != "" {
			return uuid.Parse(v)
		}
	}
	return uuid.Nil, jwt.ErrTokenInvalidClaims
}

// Principal returns the admin id set by PrincipalMiddleware, or the
// anonymous id when the route is not behind it.
func Principal(ctx *fiber.Ctx) uuid.UUID {
	if id, ok := ctx.Locals(principalKey).(uuid.UUID); ok {
		return id
	}
	return anonymous
}

func IsAnonymous(id uuid.UUID) bool {
	return id == anonymous
}
