package model

import "time"

// Project is the top of the owned hierarchy. The list endpoint only fills
// ID and Name; the detail endpoint adds Token and Tables.
type Project struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	Name      string    `gorm:"size:128;not null" json:"name"`
	Token     string    `gorm:"size:64;not null;uniqueIndex" json:"token,omitempty"`
	Tables    []Table   `gorm:"foreignKey:ProjectID" json:"tables,omitempty"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

type Table struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	ProjectID uint       `gorm:"not null;uniqueIndex:idx_table_project_name" json:"-"`
	UserID    uint       `gorm:"not null;index" json:"-"`
	Name      string     `gorm:"size:128;not null;uniqueIndex:idx_table_project_name" json:"name"`
	Variables []Variable `gorm:"foreignKey:TableID" json:"variables"`
	CreatedAt time.Time  `json:"-"`
	UpdatedAt time.Time  `json:"-"`
}

func (Table) TableName() string {
	return "project_tables"
}

// FindTable returns the table with the given id, or nil.
func (p *Project) FindTable(id uint) *Table {
	for i := range p.Tables {
		if p.Tables[i].ID == id {
			return &p.Tables[i]
		}
	}
	return nil
}

// FindVariable returns the variable with the given name, or nil.
func (t *Table) FindVariable(name string) *Variable {
	for i := range t.Variables {
		if t.Variables[i].Name == name {
			return &t.Variables[i]
		}
	}
	return nil
}
