package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"varboard/internal/model"
)

type accessBody struct {
	Token   string             `json:"token"`
	Action  string             `json:"action"`
	TableID uint               `json:"table"`
	Name    string             `json:"variable"`
	Value   string             `json:"value,omitempty"`
	Type    model.VariableType `json:"type,omitempty"`
}

type Value struct {
	Value string             `json:"value"`
	Type  model.VariableType `json:"type"`
}

// GetValue reads a variable with a project token instead of the session.
func (c *Client) GetValue(ctx context.Context, projectToken string, tableID uint, name string) (*Value, error) {
	raw, err := c.access(ctx, accessBody{Token: projectToken, Action: "get", TableID: tableID, Name: name})
	if err != nil {
		return nil, err
	}
	var v Value
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("decode value failed: %w", err)
	}
	return &v, nil
}

// SetValue upserts a variable value with a project token.
func (c *Client) SetValue(ctx context.Context, projectToken string, tableID uint, name, value string, typ model.VariableType) error {
	_, err := c.access(ctx, accessBody{
		Token:   projectToken,
		Action:  "set",
		TableID: tableID,
		Name:    name,
		Value:   value,
		Type:    typ,
	})
	return err
}

func (c *Client) access(ctx context.Context, body accessBody) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/access", body, false)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read access response failed: %w", err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrVariableNotFound
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("access %s status %d: %s", body.Action, resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return raw, nil
}
