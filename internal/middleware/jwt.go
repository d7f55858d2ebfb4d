package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/smklab/lms-backend/internal/response"
	"github.com/smklab/lms-backend/internal/service"
)

// ContextKeyClaims is where validated JWT claims live on the gin context.
const ContextKeyClaims = "claims"

// requireTokenType builds a middleware that validates the bearer token and
// rejects it unless it was issued for the given surface.
func requireTokenType(auth *service.AuthService, want service.TokenType, mismatch response.ErrCode) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := bearerClaims(c, auth)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if claims.TokenType != want {
			response.AbortFail(c, http.StatusForbidden, mismatch)
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// RequireStudentJWT guards student portal routes.
func RequireStudentJWT(auth *service.AuthService) gin.HandlerFunc {
	return requireTokenType(auth, service.TokenTypeStudent, response.ErrStudentAccessOnly)
}

// RequireStaffJWT guards teacher and admin routes.
func RequireStaffJWT(auth *service.AuthService) gin.HandlerFunc {
	return requireTokenType(auth, service.TokenTypeStaff, response.ErrStaffAccessOnly)
}

// RequireStudentWSAuth authenticates WebSocket upgrades. Browsers cannot set
// headers on a WebSocket handshake, so the token arrives as ?token=.
func RequireStudentWSAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := c.Query("token")
		if tokenStr == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		if claims.TokenType != service.TokenTypeStudent {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
			return
		}

		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims returns the claims stored by the auth middleware, or nil when
// the route was reached without one.
func GetClaims(c *gin.Context) *service.Claims {
	v, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*service.Claims)
	return claims
}

func bearerClaims(c *gin.Context, auth *service.AuthService) (*service.Claims, error) {
	var tokenStr string
	if h := c.GetHeader("Authorization"); h != "" {
		if scheme, rest, found := strings.Cut(h, " "); found && strings.EqualFold(scheme, "bearer") {
			tokenStr = rest
		}
	}
	// EventSource cannot send headers, so SSE clients pass ?token= instead.
	if tokenStr == "" {
		tokenStr = c.Query("token")
	}
	if tokenStr == "" {
		return nil, errors.New("authorization header or token query required")
	}
	return auth.ValidateToken(tokenStr)
}
