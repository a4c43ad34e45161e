package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"varboard/internal/app"
	"varboard/internal/model"
	"varboard/internal/transport/http/middleware"
	"varboard/internal/transport/http/response"
)

// writeServiceError maps service sentinels to statuses. Unknown errors are
// answered with fallback so storage details do not leak.
func writeServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, app.ErrInvalidInput),
		errors.Is(err, app.ErrTypeRequired),
		errors.Is(err, model.ErrInvalidVariableType):
		response.Error(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrProjectNotFound),
		errors.Is(err, app.ErrTableNotFound),
		errors.Is(err, app.ErrVariableNotFound):
		response.Error(c, http.StatusNotFound, err.Error())
	case errors.Is(err, app.ErrNameTaken):
		response.Error(c, http.StatusConflict, err.Error())
	case errors.Is(err, app.ErrInvalidProjectToken):
		response.Error(c, http.StatusUnauthorized, err.Error())
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, fallback)
	}
}

func pathID(c *gin.Context, param, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		response.Error(c, http.StatusBadRequest, "invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "invalid token payload")
	}
	return userID, ok
}
