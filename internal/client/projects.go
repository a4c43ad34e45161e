package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"varboard/internal/model"
)

type nameBody struct {
	Name string `json:"name"`
}

// LoadProjects lists the caller's projects. An empty or null body is an
// empty list.
func (c *Client) LoadProjects(ctx context.Context) ([]model.Project, error) {
	raw, err := c.fetch(ctx, "/projects")
	if err != nil {
		return nil, err
	}

	projects := []model.Project{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return projects, nil
	}
	if err := json.Unmarshal(trimmed, &projects); err != nil {
		return nil, fmt.Errorf("decode projects failed: %w", err)
	}
	if projects == nil {
		projects = []model.Project{}
	}
	return projects, nil
}

func (c *Client) CreateProject(ctx context.Context, name string) error {
	return c.send(ctx, http.MethodPost, "/projects", nameBody{Name: name})
}

func (c *Client) UpdateProject(ctx context.Context, projectID uint, name string) error {
	return c.send(ctx, http.MethodPut, projectPath(projectID), nameBody{Name: name})
}

func (c *Client) DeleteProject(ctx context.Context, projectID uint) error {
	return c.send(ctx, http.MethodDelete, projectPath(projectID), nil)
}

func (c *Client) LoadProject(ctx context.Context, projectID uint) (*model.Project, error) {
	raw, err := c.fetch(ctx, projectPath(projectID))
	if err != nil {
		return nil, err
	}
	var project model.Project
	if err := json.Unmarshal(raw, &project); err != nil {
		return nil, fmt.Errorf("decode project failed: %w", err)
	}
	if project.Tables == nil {
		project.Tables = []model.Table{}
	}
	for i := range project.Tables {
		if project.Tables[i].Variables == nil {
			project.Tables[i].Variables = []model.Variable{}
		}
	}
	return &project, nil
}

func projectPath(projectID uint) string {
	return fmt.Sprintf("/projects/%d", projectID)
}
