package model

import "time"

const (
	EntityProject  = "project"
	EntityTable    = "table"
	EntityVariable = "variable"

	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// ChangeEvent describes one successful mutation. It travels over the broker
// as JSON and is persisted as an AuditRecord by the audit worker.
type ChangeEvent struct {
	Entity     string    `json:"entity"`
	Action     string    `json:"action"`
	UserID     uint      `json:"user_id"`
	ProjectID  uint      `json:"project_id"`
	TableID    uint      `json:"table_id,omitempty"`
	Name       string    `json:"name,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuditRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Entity     string    `gorm:"size:16;not null;index" json:"entity"`
	Action     string    `gorm:"size:16;not null" json:"action"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ProjectID  uint      `gorm:"not null;index" json:"project_id"`
	TableID    uint      `json:"table_id"`
	Name       string    `gorm:"size:128" json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewAuditRecord(ev ChangeEvent) *AuditRecord {
	return &AuditRecord{
		Entity:     ev.Entity,
		Action:     ev.Action,
		UserID:     ev.UserID,
		ProjectID:  ev.ProjectID,
		TableID:    ev.TableID,
		Name:       ev.Name,
		OccurredAt: ev.OccurredAt,
	}
}
