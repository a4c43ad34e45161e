package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"varboard/internal/model"
)

type TableRepository struct {
	db *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{db: db}
}

func (r *TableRepository) Create(table *model.Table) error {
	if err := r.db.Create(table).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create table failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("create table failed: %w", err)
	}
	return nil
}

func (r *TableRepository) ListByProjectID(projectID, userID uint) ([]model.Table, error) {
	var tables []model.Table
	if err := r.db.Select("id", "project_id", "name").
		Where("project_id = ? AND user_id = ?", projectID, userID).
		Order("id ASC").
		Find(&tables).Error; err != nil {
		return nil, fmt.Errorf("list tables failed: %w", err)
	}
	return tables, nil
}

func (r *TableRepository) Get(tableID, projectID, userID uint) (*model.Table, error) {
	var table model.Table
	if err := r.db.Where("id = ? AND project_id = ? AND user_id = ?", tableID, projectID, userID).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table failed: %w", err)
	}
	return &table, nil
}

// GetInProject looks a table up without an owner check. Used by project
// token access.
func (r *TableRepository) GetInProject(tableID, projectID uint) (*model.Table, error) {
	var table model.Table
	if err := r.db.Where("id = ? AND project_id = ?", tableID, projectID).First(&table).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get table failed: %w", err)
	}
	return &table, nil
}

func (r *TableRepository) Rename(tableID, projectID, userID uint, name string) (bool, error) {
	res := r.db.Model(&model.Table{}).
		Where("id = ? AND project_id = ? AND user_id = ?", tableID, projectID, userID).
		Update("name", name)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("rename table failed: %w", ErrDuplicate)
		}
		return false, fmt.Errorf("rename table failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Delete removes the table and its variables.
func (r *TableRepository) Delete(tableID, projectID, userID uint) (bool, error) {
	var deleted bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND project_id = ? AND user_id = ?", tableID, projectID, userID).Delete(&model.Table{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Where("table_id = ?", tableID).Delete(&model.Variable{}).Error
	})
	if err != nil {
		return false, fmt.Errorf("delete table failed: %w", err)
	}
	return deleted, nil
}
