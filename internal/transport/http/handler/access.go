package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varboard/internal/app"
	"varboard/internal/transport/http/response"
)

const (
	accessGet = "get"
	accessSet = "set"
)

// AccessRequest authenticates with a project token, not a user session.
type AccessRequest struct {
	Token    string `json:"token"`
	Action   string `json:"action"`
	TableID  uint   `json:"table"`
	Variable string `json:"variable"`
	Value    string `json:"value,omitempty"`
	Type     string `json:"type,omitempty"`
}

type AccessHandler struct {
	projectService *app.ProjectService
}

func NewAccessHandler(projectService *app.ProjectService) *AccessHandler {
	return &AccessHandler{projectService: projectService}
}

func (h *AccessHandler) Handle(c *gin.Context) {
	var req AccessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	switch req.Action {
	case accessGet:
		variable, err := h.projectService.GetValue(req.Token, req.TableID, req.Variable)
		if err != nil {
			writeServiceError(c, err, "read variable failed")
			return
		}
		response.OK(c, gin.H{"value": variable.Value, "type": variable.Type})
	case accessSet:
		if err := h.projectService.SetValue(c.Request.Context(), req.Token, req.TableID, req.Variable, req.Value, req.Type); err != nil {
			writeServiceError(c, err, "write variable failed")
			return
		}
		response.Status(c, http.StatusOK)
	default:
		response.Error(c, http.StatusBadRequest, "unknown action")
	}
}
