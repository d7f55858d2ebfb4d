package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/response"
)

// RequirePermission passes only staff tokens carrying the given permission
// code. Permissions are embedded in the JWT at login, so this never hits
// the database.
func RequirePermission(code string) gin.HandlerFunc {
	return RequireAnyPermission(code)
}

// RequireAnyPermission passes when the token holds at least one of the codes.
func RequireAnyPermission(codes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		for _, held := range claims.Permissions {
			for _, want := range codes {
				if held == want {
					c.Next()
					return
				}
			}
		}

		response.AbortFail(c, http.StatusForbidden, response.ErrPermissionDenied)
	}
}
