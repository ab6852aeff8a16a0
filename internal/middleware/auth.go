package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/user"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
)

const ContextPrincipal = "principal"

type TokenParser interface {
	Parse(raw string) (uuid.UUID, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware resolves the bearer token into a Principal. The user row is
// re-read on every request so role and status changes apply immediately.
func AuthMiddleware(tokens TokenParser, users UserFinder) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			httperr.Unauthorized(c, "missing_authorization_header", "Authentication required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			httperr.Unauthorized(c, "invalid_authorization_header", "Authentication required")
			return
		}

		userID, err := tokens.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid token")
			return
		}

		u, err := users.FindByID(c.Request.Context(), userID)
		if httperr.KindOf(err) == httperr.KindNotFound {
			httperr.Unauthorized(c, "invalid_token", "User not found")
			return
		}
		if err != nil {
			httperr.Respond(c, err)
			return
		}

		if u.Status != string(user.StatusActive) {
			httperr.Forbidden(c, "account_inactive", "Account is inactive")
			return
		}

		c.Set(ContextPrincipal, auth.Principal{
			UserID: u.ID,
			Role:   user.Role(u.Role),
			Email:  u.Email,
		})

		c.Next()
	}
}

// PrincipalFrom returns the caller set by AuthMiddleware.
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	v, ok := c.Get(ContextPrincipal)
	if !ok {
		return auth.Principal{}, false
	}
	p, ok := v.(auth.Principal)
	return p, ok
}

// ======================================================
// Role guards
// ======================================================

func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			httperr.Unauthorized(c, "unauthorized", "Authentication required")
			return
		}
		if !p.HasRole(roles...) {
			httperr.Forbidden(c, "forbidden", "Insufficient permissions")
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc {
	return RequireRole(user.RoleAdmin)
}

// RequireStaff admits staff members and admins.
func RequireStaff() gin.HandlerFunc {
	return RequireRole(user.RoleStaff, user.RoleAdmin)
}
