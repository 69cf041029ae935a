package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"apartment-be-svc/internal/billing"
	"apartment-be-svc/internal/service"
	"apartment-be-svc/pkg/utils"
)

const actorKey = "actor"

// TokenParser validates access tokens
type TokenParser interface {
	ParseAccessToken(token string) (*service.Actor, error)
}

// Auth requires a valid bearer access token and stores the caller in the context
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Missing bearer token")
			return
		}

		token := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
		actor, err := parser.ParseAccessToken(token)
		if err != nil {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			return
		}

		SetActor(c, *actor)
		c.Next()
	}
}

// RequireRole lets only callers with one of the given roles through
func RequireRole(roles ...billing.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := GetActor(c)
		if !ok {
			utils.UnauthorizedResponse(c, "Authentication required")
			return
		}
		for _, r := range roles {
			if actor.Role == r {
				c.Next()
				return
			}
		}
		utils.ForbiddenResponse(c, "You do not have permission to access this resource")
	}
}

// GetActor returns the caller stored by Auth
func GetActor(c *gin.Context) (service.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return service.Actor{}, false
	}
	actor, ok := v.(service.Actor)
	return actor, ok
}

// SetActor stores the caller in the context, where GetActor and RequireRole find it
func SetActor(c *gin.Context, actor service.Actor) {
	c.Set(actorKey, actor)
}
