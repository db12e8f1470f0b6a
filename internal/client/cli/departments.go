package cli

import (
	"context"
	"fmt"

	"github.com/dmskit/dmscli/internal/client/gateway"
)

func (a *App) listDepartments(ctx context.Context) {
	_ = a.departments.FetchAll(ctx)
	snap := a.departments.Snapshot()
	if snap.Err != "" {
		fmt.Fprintf(a.out, "! %s\n", snap.Err)
	}
	if len(snap.Records) == 0 {
		fmt.Fprintln(a.out, "No departments")
		return
	}
	for _, d := range snap.Records {
		fmt.Fprintf(a.out, "%s  %s  %s\n", d.Id, d.Name, d.Description)
	}
}

func (a *App) departmentCommand(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: dep add|edit|rm ...")
		return
	}
	switch args[0] {
	case "add":
		in, err := a.promptNameDescription()
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		d, err := a.departments.Create(ctx, gateway.DepartmentInput(in))
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.departments.Snapshot().Err)
			return
		}
		fmt.Fprintf(a.out, "Created department %s\n", d.Id)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: dep edit <id>")
			return
		}
		in, err := a.promptNameDescription()
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		if _, err := a.departments.Update(ctx, args[1], gateway.DepartmentInput(in)); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.departments.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Updated")
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: dep rm <id>")
			return
		}
		if err := a.departments.Delete(ctx, args[1]); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.departments.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Deleted")
	default:
		fmt.Fprintln(a.out, "Unknown subcommand:", args[0])
	}
}

// nameDescription is shared by department and category prompts.
type nameDescription struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (a *App) promptNameDescription() (nameDescription, error) {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return nameDescription{}, err
	}
	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return nameDescription{}, err
	}
	return nameDescription{Name: name, Description: description}, nil
}
