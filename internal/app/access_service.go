package app

import (
	"context"
	"errors"

	"varboard/internal/model"
)

var ErrInvalidProjectToken = errors.New("invalid project token")

// GetValue reads a variable with a project token instead of a user session.
func (s *ProjectService) GetValue(projectToken string, tableID uint, name string) (*model.Variable, error) {
	project, err := s.projectByToken(projectToken)
	if err != nil {
		return nil, err
	}
	table, err := s.tableRepo.GetInProject(tableID, project.ID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrVariableNotFound
	}
	variable, err := s.variableRepo.GetByName(tableID, name)
	if err != nil {
		return nil, err
	}
	if variable == nil {
		return nil, ErrVariableNotFound
	}
	return variable, nil
}

// SetValue creates or overwrites a variable. value must parse as the type.
func (s *ProjectService) SetValue(ctx context.Context, projectToken string, tableID uint, name, value, rawType string) error {
	project, err := s.projectByToken(projectToken)
	if err != nil {
		return err
	}
	if rawType == "" {
		return ErrTypeRequired
	}
	typ, err := model.ParseVariableType(rawType)
	if err != nil {
		return err
	}
	if err := typ.Check(value); err != nil {
		return errors.Join(ErrInvalidInput, err)
	}
	name, err = cleanName(name)
	if err != nil {
		return err
	}

	table, err := s.tableRepo.GetInProject(tableID, project.ID)
	if err != nil {
		return err
	}
	if table == nil {
		return ErrTableNotFound
	}

	if err := s.variableRepo.Upsert(&model.Variable{
		TableID: tableID,
		UserID:  project.UserID,
		Name:    name,
		Type:    typ,
		Value:   value,
	}); err != nil {
		return err
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityVariable,
		Action:    model.ActionUpdate,
		UserID:    project.UserID,
		ProjectID: project.ID,
		TableID:   tableID,
		Name:      name,
	})
	return nil
}

func (s *ProjectService) projectByToken(token string) (*model.Project, error) {
	if token == "" {
		return nil, ErrInvalidProjectToken
	}
	project, err := s.projectRepo.GetByToken(token)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrInvalidProjectToken
	}
	return project, nil
}
