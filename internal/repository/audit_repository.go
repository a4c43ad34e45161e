package repository

import (
	"fmt"

	"gorm.io/gorm"

	"varboard/internal/model"
)

type AuditRepository struct {
	db *gorm.DB
}

func NewAuditRepository(db *gorm.DB) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Create(record *model.AuditRecord) error {
	if err := r.db.Create(record).Error; err != nil {
		return fmt.Errorf("create audit record failed: %w", err)
	}
	return nil
}

// ListByProjectID returns the newest records first.
func (r *AuditRepository) ListByProjectID(projectID uint, limit int) ([]model.AuditRecord, error) {
	if limit <= 0 || limit > 200 {
		limit = 100
	}

	var records []model.AuditRecord
	if err := r.db.Where("project_id = ?", projectID).Order("id DESC").Limit(limit).Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list audit records failed: %w", err)
	}
	return records, nil
}
