package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
)

// CheckSingleDeviceSession rejects student requests whose token ID no
// longer matches the session stored in Redis, which happens after an admin
// reset or a login from another device. Staff tokens pass through.
func CheckSingleDeviceSession(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		if claims.TokenType != service.TokenTypeStudent {
			c.Next()
			return
		}

		if err := auth.ValidateStudentSession(c.Request.Context(), claims.UserID, claims.ID); err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionInvalidated)
			return
		}
		c.Next()
	}
}
