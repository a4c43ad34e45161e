package view

import "varboard/internal/model"

type RowState int

const (
	Viewing RowState = iota
	Editing
)

func (s RowState) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

const (
	ActionDelete = "Delete"
	ActionUpdate = "Update"
	ActionSave   = "Save"
)

// VariableRow is one rendered variable. Rows are rebuilt in the Viewing
// state on every reload; Editing is only left by saving.
type VariableRow struct {
	TableID  uint
	Variable model.Variable
	state    RowState
}

func newVariableRow(tableID uint, v model.Variable) *VariableRow {
	return &VariableRow{TableID: tableID, Variable: v, state: Viewing}
}

func (r *VariableRow) State() RowState {
	return r.state
}

// Actions lists the buttons the row currently shows.
func (r *VariableRow) Actions() []string {
	if r.state == Editing {
		return []string{ActionDelete, ActionSave}
	}
	return []string{ActionDelete, ActionUpdate}
}

// BeginEdit swaps the type for a selector and hides the Update action.
func (r *VariableRow) BeginEdit() error {
	if r.state == Editing {
		return ErrAlreadyEditing
	}
	r.state = Editing
	return nil
}

type rowKey struct {
	tableID uint
	name    string
}
