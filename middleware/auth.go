package middleware

import (
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const userIDKey = "user_id"

// AuthMiddleware validates bearer tokens issued by the external identity
// provider. The whole check is gated by WITH_AUTH: when the flag is off,
// every request passes through anonymously, matching the deployment where
// split sessions are shared by URL alone.
//
// Tokens are HS256 JWTs signed with JWT_SECRET; expiry is enforced, nothing
// is refreshed here.
func AuthMiddleware() gin.HandlerFunc {
	enabled := os.Getenv("WITH_AUTH") == "true"
	secret := []byte(os.Getenv("JWT_SECRET"))

	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Missing authorization token"})
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			return secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, err := claims.GetSubject(); err == nil {
				c.Set(userIDKey, sub)
			}
		}

		c.Next()
	}
}

// GetUserID returns the authenticated subject, or "" when auth is disabled
// or the request is anonymous.
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
