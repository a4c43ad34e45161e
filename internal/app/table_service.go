package app

import (
	"context"
	"errors"

	"varboard/internal/model"
	"varboard/internal/repository"
)

func (s *ProjectService) CreateTable(ctx context.Context, userID, projectID uint, name string) (*model.Table, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	if err := s.EnsureOwner(userID, projectID); err != nil {
		return nil, err
	}

	table := &model.Table{ProjectID: projectID, UserID: userID, Name: name}
	if err := s.tableRepo.Create(table); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrNameTaken
		}
		return nil, err
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityTable,
		Action:    model.ActionCreate,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   table.ID,
		Name:      name,
	})
	return table, nil
}

// ListTables returns nil when the project has no tables.
func (s *ProjectService) ListTables(userID, projectID uint) ([]model.Table, error) {
	if err := s.EnsureOwner(userID, projectID); err != nil {
		return nil, err
	}
	tables, err := s.tableRepo.ListByProjectID(projectID, userID)
	if err != nil {
		return nil, err
	}
	if len(tables) == 0 {
		return nil, nil
	}
	return tables, nil
}

func (s *ProjectService) RenameTable(ctx context.Context, userID, projectID, tableID uint, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}
	ok, err := s.tableRepo.Rename(tableID, projectID, userID, name)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return ErrNameTaken
		}
		return err
	}
	if !ok {
		return ErrTableNotFound
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityTable,
		Action:    model.ActionUpdate,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   tableID,
		Name:      name,
	})
	return nil
}

func (s *ProjectService) DeleteTable(ctx context.Context, userID, projectID, tableID uint) error {
	ok, err := s.tableRepo.Delete(tableID, projectID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTableNotFound
	}

	s.publish(ctx, model.ChangeEvent{
		Entity:    model.EntityTable,
		Action:    model.ActionDelete,
		UserID:    userID,
		ProjectID: projectID,
		TableID:   tableID,
	})
	return nil
}

func (s *ProjectService) ownedTable(userID, projectID, tableID uint) (*model.Table, error) {
	table, err := s.tableRepo.Get(tableID, projectID, userID)
	if err != nil {
		return nil, err
	}
	if table == nil {
		return nil, ErrTableNotFound
	}
	return table, nil
}
