package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"marketplace-backend/internal/auth"
	"marketplace-backend/internal/common"
)

const (
	ctxUserID = "userId"
	ctxEmail  = "email"
)

// TokenParser verifies a bearer token.
type TokenParser interface {
	Parse(token string) (*auth.Claims, error)
}

// Auth rejects requests without a valid "Authorization: Bearer <token>" header.
func Auth(tokens TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(tokenStr) == "" {
			common.Fail(c, common.Unauthorized(common.MsgTokenMissing, nil))
			return
		}

		claims, err := tokens.Parse(strings.TrimSpace(tokenStr))
		if err != nil {
			common.Fail(c, common.Unauthorized(common.MsgTokenInvalid, err))
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxEmail, claims.Email)
		c.Next()
	}
}

// UserID returns the identity attached by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(ctxUserID)
}
