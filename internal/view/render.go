package view

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"varboard/internal/model"
)

func renderProjects(out io.Writer, projects []model.Project) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Projects")
	if len(projects) == 0 {
		fmt.Fprintln(tw, "  (none)")
		return tw.Flush()
	}
	fmt.Fprintln(tw, "  ID\tNAME")
	for _, p := range projects {
		fmt.Fprintf(tw, "  %d\t%s\n", p.ID, p.Name)
	}
	return tw.Flush()
}

func renderProject(out io.Writer, project *model.Project, row func(tableID uint, name string) *VariableRow) error {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "# %s\n", project.Name)
	if project.Token != "" {
		fmt.Fprintf(tw, "token: %s\n", project.Token)
	}
	if len(project.Tables) == 0 {
		fmt.Fprintln(tw, "  (no tables)")
	}
	for _, t := range project.Tables {
		fmt.Fprintf(tw, "\n## [%d] %s\n", t.ID, t.Name)
		fmt.Fprintln(tw, "  Name\tType\tValue\tActions")
		for _, v := range t.Variables {
			typ := string(v.Type)
			actions := []string{ActionDelete, ActionUpdate}
			if r := row(t.ID, v.Name); r != nil {
				actions = r.Actions()
				if r.State() == Editing {
					typ = typeSelector(v.Type)
				}
			}
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", v.Name, typ, v.Value, strings.Join(actions, " "))
		}
	}
	return tw.Flush()
}

// typeSelector marks the current choice among the selectable types.
func typeSelector(current model.VariableType) string {
	parts := make([]string, 0, len(model.VariableTypes))
	for _, t := range model.VariableTypes {
		if t == current {
			parts = append(parts, "<"+string(t)+">")
			continue
		}
		parts = append(parts, string(t))
	}
	return strings.Join(parts, "|")
}
