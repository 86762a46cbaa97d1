package middleware

import (
	"net/http"

	"agrirent/internal/handler/httperr"
	"agrirent/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const userIDKey = "actor_user_id"

var errMissingIdentity = errs.New("missing or invalid X-User-ID header")

// RequireIdentity resolves the acting user from the X-User-ID header set by
// the authenticating gateway. This service trusts the gateway and does not
// verify credentials itself.
func RequireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader("X-User-ID")
		if raw == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
			return
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingIdentity, "Unauthorized", nil)
			return
		}
		c.Set(userIDKey, id)
		c.Next()
	}
}

func GetUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(userIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
