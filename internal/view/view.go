// Package view holds the dashboard's page controllers. Each controller loads
// its backing data through the API client, renders it as text and turns user
// commands into client calls followed by a full reload.
package view

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"varboard/internal/model"
)

const (
	LocationLogin     = "/"
	LocationDashboard = "/dashboard"

	projectLocationPrefix = "/project/"
)

var (
	ErrUnknownLocation  = errors.New("unknown location")
	ErrTableNotFound    = errors.New("table not found")
	ErrVariableNotFound = errors.New("variable not found")
	ErrNotEditing       = errors.New("variable is not being edited")
	ErrAlreadyEditing   = errors.New("variable is already being edited")
)

// API is the subset of the backend client the controllers drive.
// *client.Client satisfies it.
type API interface {
	Login(ctx context.Context, username, password string) (string, error)
	Register(ctx context.Context, username, password string) (string, error)

	LoadProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, name string) error
	UpdateProject(ctx context.Context, projectID uint, name string) error
	DeleteProject(ctx context.Context, projectID uint) error
	LoadProject(ctx context.Context, projectID uint) (*model.Project, error)

	CreateTable(ctx context.Context, projectID uint, name string) error
	UpdateTableName(ctx context.Context, projectID, tableID uint, name string) error
	DeleteTable(ctx context.Context, projectID, tableID uint) error

	NewVar(ctx context.Context, projectID, tableID uint, name string, typ model.VariableType) error
	SetVariable(ctx context.Context, projectID, tableID uint, typ model.VariableType, name string) error
	DeleteVariable(ctx context.Context, name string, projectID, tableID uint) error
}

// Prompter asks for a line of text. ok is false when the user cancelled.
type Prompter interface {
	Prompt(message, defaultValue string) (value string, ok bool)
}

type Confirmer interface {
	Confirm(message string) bool
}

type Alerter interface {
	Alert(message string)
}

type Navigator interface {
	Navigate(location string)
}

// ProjectLocation is the location of the project detail page.
func ProjectLocation(projectID uint) string {
	return projectLocationPrefix + strconv.FormatUint(uint64(projectID), 10)
}

// ParseProjectLocation extracts the project id from a detail page location.
func ParseProjectLocation(location string) (uint, error) {
	raw, found := strings.CutPrefix(location, projectLocationPrefix)
	if !found || raw == "" || strings.Contains(raw, "/") {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLocation, location)
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnknownLocation, location)
	}
	return uint(id), nil
}
