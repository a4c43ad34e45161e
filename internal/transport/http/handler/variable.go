package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varboard/internal/transport/http/response"
)

type CreateVariableRequest struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// UpdateVariableRequest keeps the current name when NewName is empty.
type UpdateVariableRequest struct {
	NewName string `json:"new_name"`
	NewType string `json:"new_type"`
}

func (h *ProjectHandler) CreateVariable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID", "table")
	if !ok {
		return
	}
	var req CreateVariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if _, err := h.projectService.CreateVariable(c.Request.Context(), userID, projectID, tableID, req.Name, req.Type, req.Value); err != nil {
		writeServiceError(c, err, "create variable failed")
		return
	}
	response.Status(c, http.StatusOK)
}

func (h *ProjectHandler) ListVariables(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID", "table")
	if !ok {
		return
	}

	variables, err := h.projectService.ListVariables(userID, projectID, tableID)
	if err != nil {
		writeServiceError(c, err, "list variables failed")
		return
	}
	response.OK(c, variables)
}

func (h *ProjectHandler) UpdateVariable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID", "table")
	if !ok {
		return
	}
	var req UpdateVariableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	err := h.projectService.UpdateVariable(c.Request.Context(), userID, projectID, tableID, c.Param("name"), req.NewName, req.NewType)
	if err != nil {
		writeServiceError(c, err, "update variable failed")
		return
	}
	response.Status(c, http.StatusOK)
}

func (h *ProjectHandler) DeleteVariable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	tableID, ok := pathID(c, "tableID", "table")
	if !ok {
		return
	}

	if err := h.projectService.DeleteVariable(c.Request.Context(), userID, projectID, tableID, c.Param("name")); err != nil {
		writeServiceError(c, err, "delete variable failed")
		return
	}
	response.Status(c, http.StatusOK)
}
