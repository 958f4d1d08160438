package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yigit/schooladmin/internal/app/models"
	"github.com/yigit/schooladmin/internal/pkg/auth"
)

const actorKey = "actor"

// ActorResolver turns an access token into the acting admin
type ActorResolver interface {
	ResolveActor(ctx context.Context, token string) (models.Actor, error)
}

// AuthMiddleware attaches the acting admin to each request
type AuthMiddleware struct {
	resolver ActorResolver
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(resolver ActorResolver) *AuthMiddleware {
	return &AuthMiddleware{resolver: resolver}
}

// ResolveActor reads the bearer token, when present, and stores the admin in
// the context. Requests without a token continue anonymously; the services
// refuse anonymous mutations. A token that does not resolve is rejected.
func (m *AuthMiddleware) ResolveActor() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// Browsers cannot set headers on websocket upgrades
			header = c.Query("token")
		}
		if header == "" {
			c.Set(actorKey, models.Actor{})
			c.Next()
			return
		}

		token, err := auth.ExtractBearerToken(strings.Trim(header, "\"'"))
		if err != nil {
			HandleAPIError(c, err)
			return
		}
		actor, err := m.resolver.ResolveActor(c.Request.Context(), token)
		if err != nil {
			HandleAPIError(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// GetActor returns the admin attached by ResolveActor
func GetActor(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok && actor.Known
}
