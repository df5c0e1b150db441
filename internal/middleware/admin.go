package middleware

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"

	"bankbot/pkg/response"
)

const HeaderAdminToken = "X-Admin-Token"

// AdminAuth guards operator endpoints with the static admin token, sent as
// a bearer token or in X-Admin-Token.
func (m Middleware) AdminAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader(HeaderAdminToken)
		if token == "" {
			token = strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		}
		if m.adminToken == "" || subtle.ConstantTimeCompare([]byte(token), []byte(m.adminToken)) != 1 {
			response.Unauthorized(c)
			return
		}
		c.Next()
	}
}
