package handler

import (
	"net/http"

	"finance-tracker/internal/models"
	"finance-tracker/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser pulls the authenticated user placed by the auth middleware.
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// requireUser writes the unauthorized envelope when no user is present.
func requireUser(c *gin.Context) (*models.User, bool) {
	user, ok := currentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "unauthorized")
	}
	return user, ok
}

// requireID validates a path id before it reaches the store.
func requireID(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if !util.IsUUID(id) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid id")
		return "", false
	}
	return id, true
}
