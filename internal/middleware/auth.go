package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"lessonforge/internal/domain"
)

const (
	AuthorizationHeader = "Authorization"
	BearerSchema        = "Bearer "
	TeacherIDKey        = "teacherID" // Key for storing the teacher id in fiber.Ctx locals
)

// TeacherClaims are the JWT claims issued to a teacher account.
type TeacherClaims struct {
	TeacherID string `json:"teacherId"`
	jwt.RegisteredClaims
}

// Protected requires a valid teacher JWT on the route. The teacher id from
// the claims ends up in c.Locals under TeacherIDKey.
func Protected(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(AuthorizationHeader)
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "MISSING_AUTH_HEADER",
				Message: "Authorization header is missing",
				Status:  fiber.StatusUnauthorized,
			})
		}

		if !strings.HasPrefix(authHeader, BearerSchema) {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_AUTH_SCHEME",
				Message: "Authorization scheme is not Bearer",
				Status:  fiber.StatusUnauthorized,
			})
		}

		tokenString := strings.TrimPrefix(authHeader, BearerSchema)
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "EMPTY_TOKEN",
				Message: "Token is empty",
				Status:  fiber.StatusUnauthorized,
			})
		}

		claims, err := parseTeacherToken(tokenString, jwtSecret)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(ErrorResponse{
				Code:    "INVALID_TOKEN",
				Message: err.Error(),
				Status:  fiber.StatusUnauthorized,
			})
		}

		c.Locals(TeacherIDKey, claims.TeacherID)
		return c.Next()
	}
}

func parseTeacherToken(tokenString, jwtSecret string) (*TeacherClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &TeacherClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return nil, domain.NewUnauthorizedError("invalid token")
	}

	claims, ok := token.Claims.(*TeacherClaims)
	if !ok || !token.Valid {
		return nil, domain.NewUnauthorizedError("invalid token claims")
	}
	if claims.TeacherID == "" {
		return nil, domain.NewUnauthorizedError("token carries no teacher id")
	}
	return claims, nil
}
