package view

import (
	"context"
	"fmt"
	"io"

	"varboard/internal/logger"
	"varboard/internal/model"
)

const (
	promptTableName     = "New table name:"
	defaultTableName    = "Table"
	promptVariableName  = "New variable name:"
	defaultVariableName = "Variable"

	confirmDeleteProject  = "Are you sure you want to delete this project?"
	confirmDeleteTable    = "Are you sure you want to delete this table?"
	confirmDeleteVariable = "Are you sure you want to delete this variable?"
)

// ProjectController backs the project detail page: the project's tables and
// their variables.
type ProjectController struct {
	api       API
	prompt    Prompter
	confirm   Confirmer
	nav       Navigator
	out       io.Writer
	log       logger.Logger
	projectID uint

	project *model.Project
	rows    map[rowKey]*VariableRow
}

func NewProjectController(api API, projectID uint, prompt Prompter, confirm Confirmer, nav Navigator, out io.Writer, log logger.Logger) *ProjectController {
	return &ProjectController{
		api:       api,
		prompt:    prompt,
		confirm:   confirm,
		nav:       nav,
		out:       out,
		log:       log.WithComponent("view.project"),
		projectID: projectID,
		rows:      map[rowKey]*VariableRow{},
	}
}

func (p *ProjectController) ProjectID() uint {
	return p.projectID
}

// Project returns what the last Load rendered.
func (p *ProjectController) Project() *model.Project {
	return p.project
}

// Load fetches the whole project tree, resets every row to Viewing and
// renders.
func (p *ProjectController) Load(ctx context.Context) error {
	project, err := p.api.LoadProject(ctx, p.projectID)
	if err != nil {
		return err
	}
	p.project = project
	p.rows = map[rowKey]*VariableRow{}
	for _, t := range project.Tables {
		for _, v := range t.Variables {
			p.rows[rowKey{tableID: t.ID, name: v.Name}] = newVariableRow(t.ID, v)
		}
	}
	return p.render()
}

func (p *ProjectController) render() error {
	return renderProject(p.out, p.project, p.Row)
}

func (p *ProjectController) Rename(ctx context.Context) error {
	name, ok := p.prompt.Prompt(promptProjectName, defaultProjectName)
	if !ok || name == "" {
		return nil
	}
	if err := p.api.UpdateProject(ctx, p.projectID, name); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Delete removes the project and returns to the dashboard.
func (p *ProjectController) Delete(ctx context.Context) error {
	if !p.confirm.Confirm(confirmDeleteProject) {
		return nil
	}
	if err := p.api.DeleteProject(ctx, p.projectID); err != nil {
		return err
	}
	p.nav.Navigate(LocationDashboard)
	return nil
}

func (p *ProjectController) CreateTable(ctx context.Context) error {
	name, ok := p.prompt.Prompt(promptTableName, defaultTableName)
	if !ok || name == "" {
		return nil
	}
	if err := p.api.CreateTable(ctx, p.projectID, name); err != nil {
		return err
	}
	return p.Load(ctx)
}

func (p *ProjectController) RenameTable(ctx context.Context, tableID uint) error {
	name, ok := p.prompt.Prompt(promptTableName, defaultTableName)
	if !ok || name == "" {
		return nil
	}
	if err := p.api.UpdateTableName(ctx, p.projectID, tableID, name); err != nil {
		return err
	}
	return p.Load(ctx)
}

func (p *ProjectController) DeleteTable(ctx context.Context, tableID uint) error {
	if !p.confirm.Confirm(confirmDeleteTable) {
		return nil
	}
	if err := p.api.DeleteTable(ctx, p.projectID, tableID); err != nil {
		return err
	}
	return p.Load(ctx)
}

// NewVariable adds an empty string variable to the table.
func (p *ProjectController) NewVariable(ctx context.Context, tableID uint) error {
	name, ok := p.prompt.Prompt(promptVariableName, defaultVariableName)
	if !ok || name == "" {
		return nil
	}
	if err := p.api.NewVar(ctx, p.projectID, tableID, name, model.TypeString); err != nil {
		return err
	}
	return p.Load(ctx)
}

func (p *ProjectController) DeleteVariable(ctx context.Context, tableID uint, name string) error {
	if _, err := p.lookupRow(tableID, name); err != nil {
		return err
	}
	if !p.confirm.Confirm(confirmDeleteVariable) {
		return nil
	}
	if err := p.api.DeleteVariable(ctx, name, p.projectID, tableID); err != nil {
		return err
	}
	return p.Load(ctx)
}

// Row returns the rendered row for a variable, or nil.
func (p *ProjectController) Row(tableID uint, name string) *VariableRow {
	return p.rows[rowKey{tableID: tableID, name: name}]
}

// BeginEdit puts a row into the Editing state. No request is made.
func (p *ProjectController) BeginEdit(tableID uint, name string) error {
	row, err := p.lookupRow(tableID, name)
	if err != nil {
		return err
	}
	if err := row.BeginEdit(); err != nil {
		return err
	}
	return p.render()
}

// SaveEdit submits an Editing row. newName is collected by the edit form
// but the backend call only carries the type, so the variable keeps its
// name.
func (p *ProjectController) SaveEdit(ctx context.Context, tableID uint, name, newName, rawType string) error {
	row, err := p.lookupRow(tableID, name)
	if err != nil {
		return err
	}
	if row.State() != Editing {
		return ErrNotEditing
	}
	typ, err := model.ParseVariableType(rawType)
	if err != nil {
		return err
	}
	if newName != "" && newName != name {
		p.log.WithFields(map[string]interface{}{
			"table_id": tableID,
			"variable": name,
			"new_name": newName,
		}).Debugf("rename is not sent to the backend")
	}
	if err := p.api.SetVariable(ctx, p.projectID, tableID, typ, row.Variable.Name); err != nil {
		return err
	}
	return p.Load(ctx)
}

func (p *ProjectController) lookupRow(tableID uint, name string) (*VariableRow, error) {
	if p.project == nil || p.project.FindTable(tableID) == nil {
		return nil, fmt.Errorf("%w: %d", ErrTableNotFound, tableID)
	}
	row := p.Row(tableID, name)
	if row == nil {
		return nil, fmt.Errorf("%w: %s", ErrVariableNotFound, name)
	}
	return row, nil
}
