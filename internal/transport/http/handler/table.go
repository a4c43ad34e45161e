package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varboard/internal/transport/http/response"
)

func (h *ProjectHandler) CreateTable(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	table, err := h.projectService.CreateTable(c.Request.Context(), userID, projectID, req.Name)
	if err != nil {
		writeServiceError(c, err, "create table failed")
		return
	}
	response.Created(c, gin.H{"table_id": table.ID})
}

func (h *ProjectHandler) ListTables(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}

	tables, err := h.projectService.ListTables(userID, projectID)
	if err != nil {
		writeServiceError(c, err, "list tables failed")
		return
	}

	out := make([]gin.H, 0, len(tables))
	for _, t := range tables {
		out = append(out, gin.H{"id": t.ID, "name": t.Name})
	}
	if len(out) == 0 {
		response.OK(c, nil)
		return
	}
	response.OK(c, out)
}

func (h *ProjectHandler) RenameTable(c *gin.Context) {
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
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	if err := h.projectService.RenameTable(c.Request.Context(), userID, projectID, tableID, req.Name); err != nil {
		writeServiceError(c, err, "rename table failed")
		return
	}
	response.Status(c, http.StatusOK)
}

func (h *ProjectHandler) DeleteTable(c *gin.Context) {
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

	if err := h.projectService.DeleteTable(c.Request.Context(), userID, projectID, tableID); err != nil {
		writeServiceError(c, err, "delete table failed")
		return
	}
	response.Status(c, http.StatusOK)
}
