package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
	"github.com/skillbridge/skillbridge_backend/internal/dto"
)

func abortForbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
		Success: false,
		Message: message,
	})
}

// RequireRoles restricts a route to actors holding one of the given roles.
// It must run after RequireAuth.
func RequireRoles(roles ...domain.UserRole) gin.HandlerFunc {
	allowed := make(map[domain.UserRole]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			abortForbidden(c, "Access denied")
			return
		}
		if _, ok := allowed[identity.Role]; !ok {
			abortForbidden(c, "Access denied")
			return
		}
		c.Next()
	}
}

// RequireVerifiedEmail rejects actors that have not confirmed their email
// address yet.
func RequireVerifiedEmail() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			abortForbidden(c, "Access denied")
			return
		}
		if !identity.EmailVerified {
			abortForbidden(c, "Email verification required")
			return
		}
		c.Next()
	}
}

// RequireApprovedCompany blocks companies that are still pending admin
// approval. Non-company actors pass through untouched, so the gate can sit
// on a whole route group.
func RequireApprovedCompany() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := GetIdentityFromContext(c)
		if !ok {
			abortForbidden(c, "Access denied")
			return
		}
		if identity.Kind == domain.ActorKindCompany && !identity.Approved {
			abortForbidden(c, "Company account is pending approval")
			return
		}
		c.Next()
	}
}
