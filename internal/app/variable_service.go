package app

import (
	"context"
	"errors"

	"varboard/internal/model"
	"varboard/internal/repository"
)

var ErrTypeRequired = errors.New("type is required")

func (s *ProjectService) CreateVariable(ctx context.Context, userID, projectID, tableID uint, name, rawType, value string) (*model.Variable, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	typ, err := model.ParseVariableType(rawType)
	if err != nil {
		return nil, err
	}
	if err := typ.Check(value); err != nil {
		return nil, errors.Join(ErrInvalidInput, err)
	}
	if _, err := s.ownedTable(userID, projectID, tableID); err != nil {
		return nil, err
	}

	variable := &model.Variable{
		TableID: tableID,
		UserID:  userID,
		Name:    name,
		Type:    typ,
		Value:   value,
	}
	if err := s.variableRepo.Create(variable); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityVariable,
		Action:    model.ActionCreate,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   tableID,
		Name:      name,
	})
	return variable, nil
}

// ListVariables returns nil when the table is empty.
func (s *ProjectService) ListVariables(userID, projectID, tableID uint) ([]model.Variable, error) {
	if _, err := s.ownedTable(userID, projectID, tableID); err != nil {
		return nil, err
	}
	variables, err := s.variableRepo.ListByTableID(tableID, userID)
	if err != nil {
		return nil, err
	}
	if len(variables) == 0 {
		return nil, nil
	}
	return variables, nil
}

// UpdateVariable retypes the variable. It is renamed only when newName is
// not blank. The stored value is left untouched.
func (s *ProjectService) UpdateVariable(ctx context.Context, userID, projectID, tableID uint, name, newName, rawType string) error {
	if rawType == "" {
		return ErrTypeRequired
	}
	typ, err := model.ParseVariableType(rawType)
	if err != nil {
		return err
	}
	if _, err := s.ownedTable(userID, projectID, tableID); err != nil {
		return err
	}

	newName, err = cleanName(newName)
	if err != nil {
		newName = ""
	}
	ok, err := s.variableRepo.Update(tableID, userID, name, newName, typ)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrNameTaken
		}
		return err
	}
	if !ok {
		return ErrVariableNotFound
	}

	eventName := name
	if newName != "" {
		eventName = newName
	}
	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityVariable,
		Action:    model.ActionUpdate,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   tableID,
		Name:      eventName,
	})
	return nil
}

func (s *ProjectService) DeleteVariable(ctx context.Context, userID, projectID, tableID uint, name string) error {
	if _, err := s.ownedTable(userID, projectID, tableID); err != nil {
		return err
	}
	ok, err := s.variableRepo.Delete(tableID, userID, name)
	if err != nil {
		return err
	}
	if !ok {
		return ErrVariableNotFound
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityVariable,
		Action:    model.ActionDelete,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   tableID,
		Name:      name,
	})
	return nil
}
