package retailserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/retail-inventory-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/retail-inventory-api/internal/domains/users/ports"
)

// AuthAPI issues and revokes bearer sessions.
type AuthAPI struct {
	service usersports.Service
}

func NewAuthAPI(service usersports.Service) AuthAPI {
	return AuthAPI{service: service}
}

// Post /auth/login
// Exchange credentials for a bearer token
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.Login
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondBadRequest(c, err)
		return
	}
	session, err := api.service.Login(c.Request.Context(), payload.Email, payload.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, userhttpmapper.FromSession(session))
}

// Post /auth/logout
// Revoke the caller's bearer token
func (api *AuthAPI) Logout(c *gin.Context) {
	token, _ := bearerToken(c.GetHeader("Authorization"))
	if err := api.service.Logout(c.Request.Context(), token); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AdminAPI serves administrator only routes.
type AdminAPI struct{}

func NewAdminAPI() AdminAPI {
	return AdminAPI{}
}

// Get /admin/secret
// Confirm administrator access
func (api *AdminAPI) Secret(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Admin access granted"})
}
