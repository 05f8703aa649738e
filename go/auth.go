package retailserver

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	usersdomain "github.com/Apurer/retail-inventory-api/internal/domains/users/domain"
)

const principalKey = "retail.principal"

// RoleAdmin is the role allowed on administrative routes.
const RoleAdmin = usersdomain.RoleAdmin

// Authenticator resolves a bearer token into the caller identity.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (usersdomain.Principal, error)
}

// RequireAuthentication rejects requests without a valid bearer token and stores the principal.
func RequireAuthentication(auth Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := bearerToken(c.GetHeader("Authorization"))
		if !ok {
			responder.Unauthorized(c, "missing bearer token")
			return
		}
		if auth == nil {
			responder.Unauthorized(c, "authentication is not configured")
			return
		}
		principal, err := auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Set(principalKey, principal)
		c.Next()
	}
}

// RequireRole rejects authenticated callers lacking role. It must run after RequireAuthentication.
func RequireRole(role usersdomain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := PrincipalFrom(c)
		if !ok {
			responder.Unauthorized(c, "missing bearer token")
			return
		}
		if principal.Role != role {
			responder.Forbidden(c, "role "+string(role)+" required")
			return
		}
		c.Next()
	}
}

// PrincipalFrom returns the principal stored by RequireAuthentication.
func PrincipalFrom(c *gin.Context) (usersdomain.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return usersdomain.Principal{}, false
	}
	principal, ok := value.(usersdomain.Principal)
	return principal, ok
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
