package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"storefront/internal/domain/entities"
	"storefront/internal/usecase/interfaces"
	"storefront/pkg"

	"github.com/gin-gonic/gin"
)

const userContextKey = "storefront.user"

var (
	errUnauthenticated = pkg.NewDomainErrorSimple("UNAUTHENTICATED", "Authentication required", http.StatusUnauthorized)
	errForbidden       = pkg.NewDomainErrorSimple("FORBIDDEN", "Insufficient permissions", http.StatusForbidden)
)

// BearerAuth resolves "Authorization: Bearer <token>" to a user and stores it
// on the context. Missing or unknown tokens abort with 401.
func BearerAuth(auth interfaces.IAuthenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, ok := strings.Cut(header, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}

		user, err := auth.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			if !errors.Is(err, interfaces.ErrUnauthenticated) {
				log.Printf("[auth][middleware] authenticate failed err=%v", err)
			}
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the authenticated user holds one of
// roles. It must run after BearerAuth.
func RequireRole(roles ...entities.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(errUnauthenticated.HTTPStatus, errUnauthenticated.ToHTTPError())
			return
		}
		if !user.HasAnyRole(roles...) {
			log.Printf("[auth][middleware] forbidden user=%s role=%s path=%s", user.Email, user.Role, c.FullPath())
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

func CurrentUser(c *gin.Context) (entities.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return entities.User{}, false
	}
	u, ok := v.(entities.User)
	return u, ok
}
