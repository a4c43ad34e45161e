package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"varboard/internal/model"
)

type VariableRepository struct {
	db *gorm.DB
}

func NewVariableRepository(db *gorm.DB) *VariableRepository {
	return &VariableRepository{db: db}
}

func (r *VariableRepository) Create(variable *model.Variable) error {
	if err := r.db.Create(variable).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("create variable failed: %w", ErrDuplicate)
		}
		return fmt.Errorf("create variable failed: %w", err)
	}
	return nil
}

func (r *VariableRepository) ListByTableID(tableID, userID uint) ([]model.Variable, error) {
	var variables []model.Variable
	if err := r.db.Where("table_id = ? AND user_id = ?", tableID, userID).Order("id ASC").Find(&variables).Error; err != nil {
		return nil, fmt.Errorf("list variables failed: %w", err)
	}
	return variables, nil
}

func (r *VariableRepository) GetByName(tableID uint, name string) (*model.Variable, error) {
	var variable model.Variable
	if err := r.db.Where("table_id = ? AND name = ?", tableID, name).First(&variable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get variable failed: %w", err)
	}
	return &variable, nil
}

// Update changes the type, and the name when newName is not empty.
func (r *VariableRepository) Update(tableID, userID uint, name, newName string, typ model.VariableType) (bool, error) {
	updates := map[string]interface{}{"type": typ}
	if newName != "" {
		updates["name"] = newName
	}
	res := r.db.Model(&model.Variable{}).
		Where("table_id = ? AND name = ? AND user_id = ?", tableID, name, userID).
		Updates(updates)
	if res.Error != nil {
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return false, fmt.Errorf("update variable failed: %w", ErrDuplicate)
		}
		return false, fmt.Errorf("update variable failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *VariableRepository) Delete(tableID, userID uint, name string) (bool, error) {
	res := r.db.Where("table_id = ? AND name = ? AND user_id = ?", tableID, name, userID).Delete(&model.Variable{})
	if res.Error != nil {
		return false, fmt.Errorf("delete variable failed: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Upsert writes value and type, creating the variable when it is missing.
func (r *VariableRepository) Upsert(variable *model.Variable) error {
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "table_id"}, {Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "type", "updated_at"}),
	}).Create(variable).Error
	if err != nil {
		return fmt.Errorf("upsert variable failed: %w", err)
	}
	return nil
}
