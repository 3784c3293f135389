package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/frencon/backend/internal/models"
)

// SessionCookie is the server-verified session cookie set on login.
const SessionCookie = "__session"

const userKey = "current_user"

// Auth rejects requests without a valid session. The token is taken from
// the __session cookie, falling back to an Authorization: Bearer header.
func Auth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromRequest(c, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// OptionalAuth populates the session user when a valid credential is
// present but lets anonymous requests through. Read-only views use this so
// tables still render, just without editable cells.
func OptionalAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := userFromRequest(c, secret); err == nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// CurrentUser returns the authenticated user for this request, or nil.
func CurrentUser(c *gin.Context) *models.AuthUser {
	if v, ok := c.Get(userKey); ok {
		if user, ok := v.(*models.AuthUser); ok {
			return user
		}
	}
	return nil
}

func userFromRequest(c *gin.Context, secret string) (*models.AuthUser, error) {
	tokenString := ""
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		tokenString = cookie
	} else if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			tokenString = parts[1]
		}
	}
	if tokenString == "" {
		return nil, jwt.ErrTokenMalformed
	}

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, jwt.ErrTokenInvalidClaims
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	email, _ := claims["email"].(string)
	name, _ := claims["name"].(string)

	return &models.AuthUser{ID: sub, Email: email, DisplayName: name}, nil
}
