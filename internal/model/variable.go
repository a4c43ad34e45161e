package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidVariableType = errors.New("invalid variable type")

type VariableType string

const (
	TypeString VariableType = "string"
	TypeInt    VariableType = "int"
	TypeFloat  VariableType = "float"
	TypeBool   VariableType = "bool"
)

// VariableTypes lists the selectable types in display order.
var VariableTypes = []VariableType{TypeString, TypeInt, TypeFloat, TypeBool}

// Variable is identified by Name inside its table.
type Variable struct {
	ID        uint         `gorm:"primaryKey" json:"-"`
	TableID   uint         `gorm:"not null;uniqueIndex:idx_variable_table_name" json:"-"`
	UserID    uint         `gorm:"not null;index" json:"-"`
	Name      string       `gorm:"size:128;not null;uniqueIndex:idx_variable_table_name" json:"name"`
	Type      VariableType `gorm:"size:16;not null" json:"type"`
	Value     string       `gorm:"type:text" json:"value"`
	CreatedAt time.Time    `json:"-"`
	UpdatedAt time.Time    `json:"-"`
}

func ParseVariableType(raw string) (VariableType, error) {
	t := VariableType(strings.ToLower(strings.TrimSpace(raw)))
	if t == "boolean" {
		t = TypeBool
	}
	if !t.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidVariableType, raw)
	}
	return t, nil
}

func (t VariableType) Valid() bool {
	switch t {
	case TypeString, TypeInt, TypeFloat, TypeBool:
		return true
	}
	return false
}

// Check reports whether value is representable as t. The empty value is
// accepted for every type since new variables start empty.
func (t VariableType) Check(value string) error {
	if value == "" {
		return nil
	}
	var err error
	switch t {
	case TypeString:
	case TypeInt:
		_, err = strconv.ParseInt(value, 10, 64)
	case TypeFloat:
		_, err = strconv.ParseFloat(value, 64)
	case TypeBool:
		_, err = strconv.ParseBool(value)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidVariableType, string(t))
	}
	if err != nil {
		return fmt.Errorf("value %q is not a valid %s", value, t)
	}
	return nil
}
