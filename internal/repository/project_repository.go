package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"varboard/internal/model"
)

type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(project *model.Project) error {
	if err := r.db.Create(project).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create project failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("create project failed: %w", err)
	}
	return nil
}

// ListByUserID returns id and name only.
func (r *ProjectRepository) ListByUserID(userID uint) ([]model.Project, error) {
	var projects []model.Project
	if err := r.db.Select("id", "name").Where("user_id = ?", userID).Order("id ASC").Find(&projects).Error; err != nil {
		return nil, fmt.Errorf("list projects failed: %w", err)
	}
	return projects, nil
}

func (r *ProjectRepository) GetByIDAndUserID(projectID, userID uint) (*model.Project, error) {
	var project model.Project
	if err := r.db.Where("id = ? AND user_id = ?", projectID, userID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project failed: %w", err)
	}
	return &project, nil
}

// GetTree loads the project with all of its tables and their variables.
func (r *ProjectRepository) GetTree(projectID, userID uint) (*model.Project, error) {
	var project model.Project
	err := r.db.
		Preload("Tables", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Tables.Variables", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND user_id = ?", projectID, userID).
		First(&project).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project tree failed: %w", err)
	}
	for i := range project.Tables {
		if project.Tables[i].Variables == nil {
			project.Tables[i].Variables = []model.Variable{}
		}
	}
	return &project, nil
}

func (r *ProjectRepository) GetByToken(token string) (*model.Project, error) {
	var project model.Project
	if err := r.db.Where("token = ?", token).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project by token failed: %w", err)
	}
	return &project, nil
}

// RenameByIDAndUserID reports whether a row was changed.
func (r *ProjectRepository) RenameByIDAndUserID(projectID, userID uint, name string) (bool, error) {
	res := r.db.Model(&model.Project{}).Where("id = ? AND user_id = ?", projectID, userID).Update("name", name)
	if res.Error != nil {
		return false, fmt.Errorf("rename project failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DeleteByIDAndUserID removes the project together with its tables and
// variables.
func (r *ProjectRepository) DeleteByIDAndUserID(projectID, userID uint) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", projectID, userID).Delete(&model.Project{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true

		tableIDs := tx.Model(&model.Table{}).Select("id").Where("project_id = ?", projectID)
		if err := tx.Where("table_id IN (?)", tableIDs).Delete(&model.Variable{}).Error; err != nil {
			return err
		}
		return tx.Where("project_id = ?", projectID).Delete(&model.Table{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete project failed: %w", err)
	}
	return deleted, nil
}
