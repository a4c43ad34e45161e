package view

import (
	"context"
	"io"

	"varboard/internal/model"
)

const (
	promptProjectName  = "New project name:"
	defaultProjectName = "Project"
)

// DashboardController backs the project list page.
type DashboardController struct {
	api      API
	prompt   Prompter
	nav      Navigator
	out      io.Writer
	projects []model.Project
}

func NewDashboardController(api API, prompt Prompter, nav Navigator, out io.Writer) *DashboardController {
	return &DashboardController{api: api, prompt: prompt, nav: nav, out: out}
}

// Load fetches the project list and renders it.
func (d *DashboardController) Load(ctx context.Context) error {
	projects, err := d.api.LoadProjects(ctx)
	if err != nil {
		return err
	}
	if projects == nil {
		projects = []model.Project{}
	}
	d.projects = projects
	return renderProjects(d.out, d.projects)
}

// Projects returns what the last Load rendered.
func (d *DashboardController) Projects() []model.Project {
	return d.projects
}

func (d *DashboardController) CreateProject(ctx context.Context) error {
	name, ok := d.prompt.Prompt(promptProjectName, defaultProjectName)
	if !ok || name == "" {
		return nil
	}
	if err := d.api.CreateProject(ctx, name); err != nil {
		return err
	}
	return d.Load(ctx)
}

func (d *DashboardController) OpenProject(projectID uint) {
	d.nav.Navigate(ProjectLocation(projectID))
}
