package cli

import (
	"context"
	"fmt"

	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/models"
)

func (a *App) renderUsers() {
	snap := a.users.Snapshot()
	if snap.Err != "" {
		fmt.Fprintf(a.out, "! %s\n", snap.Err)
	}
	if len(snap.Records) == 0 {
		fmt.Fprintln(a.out, "No users")
		return
	}
	for _, u := range snap.Records {
		active := "active"
		if !u.Active {
			active = "inactive"
		}
		fmt.Fprintf(a.out, "%s  %-6s %-8s  %s <%s>\n", u.Id, u.Role, active, u.Name, u.Email)
	}
}

// listUsers handles "users" and "users dep <id>". Listing accounts is an
// admin surface.
func (a *App) listUsers(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	switch {
	case len(args) == 0:
		_ = a.users.FetchAll(ctx)
	case args[0] == "dep" && len(args) > 1:
		_ = a.users.FetchByDepartment(ctx, args[1])
	default:
		fmt.Fprintln(a.out, "Usage: users [dep <id>]")
		return
	}
	a.renderUsers()
}

func (a *App) userCommand(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: user add|edit|rm ...")
		return
	}
	switch args[0] {
	case "add":
		a.addUser(ctx)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: user edit <id>")
			return
		}
		a.editUser(ctx, args[1])
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: user rm <id>")
			return
		}
		if err := a.users.Delete(ctx, args[1]); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.users.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Deleted")
	default:
		fmt.Fprintln(a.out, "Unknown subcommand:", args[0])
	}
}

func (a *App) promptUserInput(defaults gateway.UserInput) (gateway.UserInput, error) {
	name, err := GetSimpleText(a.reader, "Name", a.out)
	if err != nil {
		return defaults, err
	}
	email, err := GetSimpleText(a.reader, "Email", a.out)
	if err != nil {
		return defaults, err
	}
	role, err := GetSimpleText(a.reader, "Role (admin/user)", a.out)
	if err != nil {
		return defaults, err
	}
	departmentID, err := GetSimpleText(a.reader, "Department id (optional)", a.out)
	if err != nil {
		return defaults, err
	}

	in := defaults
	if name != "" {
		in.Name = name
	}
	if email != "" {
		in.Email = email
	}
	if role != "" {
		in.Role = models.Role(role)
	}
	if departmentID != "" {
		in.DepartmentId = departmentID
	}
	if in.Role == "" {
		in.Role = models.RoleUser
	}
	return in, nil
}

func (a *App) addUser(ctx context.Context) {
	in, err := a.promptUserInput(gateway.UserInput{Active: true})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	in.Password = password

	u, err := a.users.Create(ctx, in)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.users.Snapshot().Err)
		return
	}
	fmt.Fprintf(a.out, "Created user %s\n", u.Id)
}

func (a *App) editUser(ctx context.Context, id string) {
	current, err := a.gw.GetUser(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Leave a field empty to keep its current value")
	in, err := a.promptUserInput(gateway.UserInput{
		Name:         current.Name,
		Email:        current.Email,
		Role:         current.Role,
		Active:       current.Active,
		DepartmentId: current.DepartmentId,
	})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if _, err := a.users.Update(ctx, id, in); err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.users.Snapshot().Err)
		return
	}
	fmt.Fprintln(a.out, "Updated")
}
