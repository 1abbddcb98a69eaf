package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stockpilot/inventory-api/internal/config"
	"github.com/stockpilot/inventory-api/internal/tokens"
)

const (
	ContextUserID   = "userID"
	ContextUserRole = "userRole"
	ContextTokenID  = "tokenID"
	ContextTokenExp = "tokenExp"
)

func abortUnauthenticated(c *gin.Context, code string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error_code": code,
		"message":    "Unauthenticated.",
	})
}

func AuthMiddleware(cfg *config.Config, revoker *tokens.Revoker) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abortUnauthenticated(c, "missing_authorization_header")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			abortUnauthenticated(c, "invalid_authorization_header")
			return
		}

		tokenString := parts[1]

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {

			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrTokenMalformed
			}
			return []byte(cfg.JWTSecret), nil
		})
		if err != nil || !token.Valid {
			abortUnauthenticated(c, "invalid_token")
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			abortUnauthenticated(c, "invalid_token_claims")
			return
		}

		userID, ok := claims["sub"].(float64)
		if !ok {
			abortUnauthenticated(c, "invalid_token_payload")
			return
		}
		role, _ := claims["role"].(string)
		jti, _ := claims["jti"].(string)

		if revoker != nil {
			revoked, err := revoker.IsRevoked(c.Request.Context(), jti)
			if err != nil || revoked {
				abortUnauthenticated(c, "token_revoked")
				return
			}
		}

		c.Set(ContextUserID, uint(userID))
		c.Set(ContextUserRole, role)
		c.Set(ContextTokenID, jti)
		if exp, ok := claims["exp"].(float64); ok {
			c.Set(ContextTokenExp, int64(exp))
		}

		c.Next()
	}
}
