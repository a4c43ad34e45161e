package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"varboard/internal/model"
)

type newVariableBody struct {
	Name  string             `json:"name"`
	Type  model.VariableType `json:"type"`
	Value string             `json:"value"`
}

type setVariableBody struct {
	NewType model.VariableType `json:"new_type"`
}

func (c *Client) CreateTable(ctx context.Context, projectID uint, name string) error {
	return c.send(ctx, http.MethodPost, projectPath(projectID)+"/tables", nameBody{Name: name})
}

func (c *Client) UpdateTableName(ctx context.Context, projectID, tableID uint, name string) error {
	return c.send(ctx, http.MethodPut, tablePath(projectID, tableID), nameBody{Name: name})
}

func (c *Client) DeleteTable(ctx context.Context, projectID, tableID uint) error {
	return c.send(ctx, http.MethodDelete, tablePath(projectID, tableID), nil)
}

// NewVar creates a variable with an empty value.
func (c *Client) NewVar(ctx context.Context, projectID, tableID uint, name string, typ model.VariableType) error {
	return c.send(ctx, http.MethodPost, tablePath(projectID, tableID)+"/variables", newVariableBody{
		Name:  name,
		Type:  typ,
		Value: "",
	})
}

// SetVariable retypes the variable called name. Only new_type is sent;
// the backend keeps the existing name.
func (c *Client) SetVariable(ctx context.Context, projectID, tableID uint, typ model.VariableType, name string) error {
	return c.send(ctx, http.MethodPut, variablePath(projectID, tableID, name), setVariableBody{NewType: typ})
}

func (c *Client) DeleteVariable(ctx context.Context, name string, projectID, tableID uint) error {
	return c.send(ctx, http.MethodDelete, variablePath(projectID, tableID, name), nil)
}

func tablePath(projectID, tableID uint) string {
	return fmt.Sprintf("/projects/%d/tables/%d", projectID, tableID)
}

func variablePath(projectID, tableID uint, name string) string {
	return tablePath(projectID, tableID) + "/variables/" + url.PathEscape(name)
}
