// Package middleware provides the gin middleware chain: bearer credential
// resolution, trace propagation, and request logging.
package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/projectflow/projectflow/internal/service"
	"github.com/projectflow/projectflow/internal/structs"
	"github.com/projectflow/projectflow/pkg/resp"
)

const userContextKey = "current_user"

// Protect resolves the Authorization header into an authenticated user and
// attaches it to the request context. Requests without a valid credential
// are rejected before reaching the handler.
func Protect(users service.UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c.GetHeader("Authorization"))
		if token == "" {
			resp.Fail(c.Writer, resp.UnAuthorized("not authorized, no token"))
			c.Abort()
			return
		}

		user, err := users.ResolveCaller(c.Request.Context(), token)
		if err != nil {
			resp.Fail(c.Writer, resp.FromError(err))
			c.Abort()
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by Protect, or nil on
// unprotected routes.
func CurrentUser(c *gin.Context) *structs.User {
	if v, ok := c.Get(userContextKey); ok {
		if user, ok := v.(*structs.User); ok {
			return user
		}
	}
	return nil
}

func bearerToken(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
