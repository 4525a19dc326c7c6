package handlers

import (
	"net/http"

	apperrors "propertyhub-api/internal/errors"
	"propertyhub-api/internal/middleware"
	"propertyhub-api/internal/models"

	"github.com/gin-gonic/gin"
)

// bindJSON decodes the body into dest; on failure it records a 400 and returns false.
func bindJSON(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		c.Error(apperrors.NewAppError(err.Error(), apperrors.MsgInvalidBody, apperrors.ErrCodeInvalidParameters, http.StatusBadRequest, err))
		return false
	}
	return true
}

func respond(c *gin.Context, status int, data interface{}) {
	c.JSON(status, models.DataResponse{Success: true, Data: data})
}

func respondMessage(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, models.DataResponse{Success: true, Message: message, Data: data})
}

func respondCount(c *gin.Context, count int, data interface{}) {
	c.JSON(http.StatusOK, models.DataResponse{Success: true, Count: &count, Data: data})
}

func currentUser(c *gin.Context) *models.User {
	return middleware.CurrentUser(c)
}
