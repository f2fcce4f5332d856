package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// CompanyClaims are the token claims the engine cares about: the subject is
// the user, the company claim is the bookkeeping scope every operation runs
// under.
type CompanyClaims struct {
	CompanyID string `json:"companyID"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the bearer token and stores user id and company
// scope in the context. Every engine route requires it.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			logger.Warn("Authorization header missing")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			logger.Warn("Authorization header format invalid")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header format must be Bearer {token}"})
			return
		}

		token, err := jwt.ParseWithClaims(parts[1], &CompanyClaims{}, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(jwtSecret), nil
		})
		if err != nil {
			logger.Warn("Invalid token", "error", err)
			msg := "Invalid token"
			if errors.Is(err, jwt.ErrTokenExpired) {
				msg = "Token has expired"
			} else if errors.Is(err, jwt.ErrTokenNotValidYet) {
				msg = "Token not valid yet"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
			return
		}

		claims, ok := token.Claims.(*CompanyClaims)
		if !ok || !token.Valid || claims.Subject == "" || claims.CompanyID == "" {
			logger.Error("Token valid but claims incomplete")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			return
		}

		c.Set(string(userIDKey), claims.Subject)
		c.Set(string(companyIDKey), claims.CompanyID)

		ctx := context.WithValue(c.Request.Context(), userIDKey, claims.Subject)
		ctx = context.WithValue(ctx, companyIDKey, claims.CompanyID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// RequireCompanyScope rejects requests whose path company id does not match
// the token's company claim. Keeps one company's books invisible to another.
func RequireCompanyScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		pathCompany := c.Param("companyID")
		tokenCompany, ok := GetCompanyIDFromContext(c)
		if !ok || pathCompany == "" || pathCompany != tokenCompany {
			GetLoggerFromCtx(c.Request.Context()).Warn("Company scope mismatch",
				"path_company", pathCompany)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}
		c.Next()
	}
}
