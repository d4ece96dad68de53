package httputil

import "github.com/gin-gonic/gin"

const actorContextKey = "actor"

// SetActor stores the authenticated actor name in the gin context.
func SetActor(c *gin.Context, actor string) {
	c.Set(actorContextKey, actor)
}

// Actor returns the authenticated actor name, or "anonymous" when unset.
func Actor(c *gin.Context) string {
	actor := c.GetString(actorContextKey)
	if actor == "" {
		return "anonymous"
	}
	return actor
}
