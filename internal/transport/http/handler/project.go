package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"varboard/internal/app"
	"varboard/internal/repository"
	"varboard/internal/transport/http/response"
)

type ProjectHandler struct {
	projectService *app.ProjectService
	auditRepo      *repository.AuditRepository
}

type NameRequest struct {
	Name string `json:"name"`
}

func NewProjectHandler(projectService *app.ProjectService, auditRepo *repository.AuditRepository) *ProjectHandler {
	return &ProjectHandler{projectService: projectService, auditRepo: auditRepo}
}

func (h *ProjectHandler) Create(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	var req NameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request payload")
		return
	}

	project, err := h.projectService.CreateProject(c.Request.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(c, err, "create project failed")
		return
	}
	response.Created(c, gin.H{"project_id": project.ID})
}

// List answers null when the user has no projects.
func (h *ProjectHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projects, err := h.projectService.ListProjects(userID)
	if err != nil {
		writeServiceError(c, err, "list projects failed")
		return
	}
	response.OK(c, projects)
}

func (h *ProjectHandler) Get(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(userID, projectID)
	if err != nil {
		writeServiceError(c, err, "load project failed")
		return
	}
	response.OK(c, gin.H{
		"id":     project.ID,
		"name":   project.Name,
		"token":  project.Token,
		"tables": project.Tables,
	})
}

func (h *ProjectHandler) Rename(c *gin.Context) {
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

	if err := h.projectService.RenameProject(c.Request.Context(), userID, projectID, req.Name); err != nil {
		writeServiceError(c, err, "rename project failed")
		return
	}
	response.Status(c, http.StatusOK)
}

func (h *ProjectHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(c.Request.Context(), userID, projectID); err != nil {
		writeServiceError(c, err, "delete project failed")
		return
	}
	response.Status(c, http.StatusOK)
}

// Audit lists the most recent change records of a project.
func (h *ProjectHandler) Audit(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	projectID, ok := pathID(c, "projectID", "project")
	if !ok {
		return
	}
	if err := h.projectService.EnsureOwner(userID, projectID); err != nil {
		writeServiceError(c, err, "load audit failed")
		return
	}

	records, err := h.auditRepo.ListByProjectID(projectID, 100)
	if err != nil {
		writeServiceError(c, err, "load audit failed")
		return
	}
	response.OK(c, records)
}
