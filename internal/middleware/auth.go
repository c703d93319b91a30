package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ctxUserID = "user_id"
	ctxEmail  = "user_email"
	ctxRole   = "user_role"
)

// Claims are the token claims issued by the auth service
type Claims struct {
	Email    string `json:"email"`
	UserRole string `json:"user_role"`
	jwt.RegisteredClaims
}

// Authenticator verifies HS256 bearer tokens
type Authenticator struct {
	secret []byte
}

// NewAuthenticator creates an authenticator. An empty secret rejects every token.
func NewAuthenticator(secret string) *Authenticator {
	return &Authenticator{secret: []byte(secret)}
}

// Parse validates a raw token and returns its claims
func (a *Authenticator) Parse(tokenString string) (*Claims, error) {
	if len(a.secret) == 0 {
		return nil, errors.New("token secret not configured")
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// RequireAuth rejects requests without a valid bearer token
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			return
		}

		claims, err := a.Parse(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid token is present
// and lets anonymous requests through
func (a *Authenticator) OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := bearerToken(c); ok {
			if claims, err := a.Parse(tokenString); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRole rejects authenticated callers without the given role.
// It must run after RequireAuth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(ctxRole) != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID, if any
func UserID(c *gin.Context) (string, bool) {
	id := c.GetString(ctxUserID)
	return id, id != ""
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func setClaims(c *gin.Context, claims *Claims) {
	c.Set(ctxUserID, claims.Subject)
	c.Set(ctxEmail, claims.Email)
	c.Set(ctxRole, claims.UserRole)
}
