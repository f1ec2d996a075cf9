package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/skillbridge/skillbridge_backend/internal/core/domain"
)

const identityCtxKey = "authIdentity"

// Identity describes the authenticated actor attached to a request.
type Identity struct {
	ID            string
	Kind          domain.ActorKind
	Role          domain.UserRole
	Name          string
	Email         string
	EmailVerified bool
	Approved      bool
}

// SetIdentity attaches the authenticated actor to the gin context.
func SetIdentity(c *gin.Context, actor *domain.Actor) {
	c.Set(identityCtxKey, Identity{
		ID:            actor.ID,
		Kind:          actor.Kind,
		Role:          actor.Role,
		Name:          actor.Name,
		Email:         actor.Email,
		EmailVerified: actor.Credentials.IsEmailVerified,
		Approved:      actor.Approved,
	})
}

// GetIdentityFromContext returns the authenticated actor on the request,
// if any.
func GetIdentityFromContext(c *gin.Context) (Identity, bool) {
	v, exists := c.Get(identityCtxKey)
	if !exists {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
