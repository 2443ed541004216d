package middleware

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/consultoria/portal/internal/models"
	"github.com/consultoria/portal/internal/services"
	"github.com/consultoria/portal/internal/utils"
	"github.com/consultoria/portal/pkg/logger"
	"github.com/consultoria/portal/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	ContextUser    = "user"
	ContextClaims  = "session_claims"
	ContextUserID  = "user_id"
	ContextRole    = "role"
	MsgLoginNeeded = "Please log in to access this page."
	MsgNoAccess    = "Unauthorized access."
)

// UserLoader resolves the user a session points at.
type UserLoader interface {
	GetUserByID(ctx context.Context, id uint) (*models.User, error)
}

// SessionCookie describes how the session cookie is written.
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set stores token in the response until expireAt.
func (sc SessionCookie) Set(c *gin.Context, token string, expireAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    token,
		Path:     "/",
		Expires:  expireAt,
		MaxAge:   int(time.Until(expireAt).Seconds()),
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear removes the session cookie from the client.
func (sc SessionCookie) Clear(c *gin.Context) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     sc.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   sc.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// LoadSession attaches the logged in user, if any, to the request. It never
// rejects a request; the guards below do that.
func LoadSession(tokens *utils.SessionTokens, users UserLoader, cookie SessionCookie) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(cookie.Name)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		claims, err := tokens.Parse(raw)
		if err != nil {
			cookie.Clear(c)
			c.Next()
			return
		}

		user, err := users.GetUserByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, services.ErrNotFound) {
				cookie.Clear(c)
				c.Next()
				return
			}
			logger.FromGin(c).Error().Err(err).Uint("user_id", claims.UserID).Msg("failed to load session user")
			response.Error(c, err)
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextClaims, claims)
		c.Set(ContextUserID, user.ID)
		c.Set(ContextRole, user.Role)
		c.Next()
	}
}

// LoginRequired sends anonymous visitors to the login page.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUser(c) == nil {
			response.RedirectWithError(c, "/login", MsgLoginNeeded)
			return
		}
		c.Next()
	}
}

// RoleRequired admits only users holding role; others go back to the landing page.
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			response.RedirectWithError(c, "/login", MsgLoginNeeded)
			return
		}
		if err := services.RequireRole(user, role); err != nil {
			logger.FromGin(c).Warn().
				Uint("user_id", user.ID).
				Str("role", user.Role.String()).
				Str("required", role.String()).
				Str("path", c.Request.URL.Path).
				Msg("role check failed")
			response.RedirectWithError(c, "/", MsgNoAccess)
			return
		}
		c.Next()
	}
}

// GetUser returns the session user or nil.
func GetUser(c *gin.Context) *models.User {
	if v, exists := c.Get(ContextUser); exists {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

// GetClaims returns the parsed session or nil.
func GetClaims(c *gin.Context) *utils.Claims {
	if v, exists := c.Get(ContextClaims); exists {
		if claims, ok := v.(*utils.Claims); ok {
			return claims
		}
	}
	return nil
}

// GetUserID gets the current user ID from context
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextUserID); exists {
		return id.(uint)
	}
	return 0
}
