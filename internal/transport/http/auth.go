package httptransport

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// BasicAuthForPrefix guards every request under pathPrefix with HTTP basic
// auth. Other paths pass through untouched. An empty username disables the
// guard entirely, which keeps local development friction-free.
func BasicAuthForPrefix(pathPrefix, username, password string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if username == "" || !strings.HasPrefix(c.Request.URL.Path, pathPrefix) {
			c.Next()
			return
		}

		user, pass, ok := c.Request.BasicAuth()
		if !ok || !constantTimeEqual(user, username) || !constantTimeEqual(pass, password) {
			c.Header("WWW-Authenticate", `Basic realm="Restricted"`)
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Next()
	}
}

func constantTimeEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
