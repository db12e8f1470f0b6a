package cli

import (
	"context"
	"fmt"
	"strings"
)

func (a *App) getStatus() string {
	s := a.session.Current()
	if !s.SignedIn() {
		return ""
	}
	return fmt.Sprintf("(%s %s)", s.User.Email, s.User.Role)
}

// requireAdmin gates admin-only commands on the session role.
func (a *App) requireAdmin() bool {
	if !a.isAdmin() {
		fmt.Fprintln(a.out, "This command is available to administrators only")
		return false
	}
	return true
}

func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to DMS CLI (type 'help' for commands)")

	for {
		fmt.Fprintf(a.out, "dms %s> ", a.getStatus())
		line, err := a.reader.ReadString('\n')
		if err != nil {
			break
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Fprintln(a.out, "Available commands: docs, doc show|add|edit|rm|upload, recent,")
				fmt.Fprintln(a.out, "  users, user add|edit|rm, deps, dep add|edit|rm, cats, cat add|edit|rm,")
				fmt.Fprintln(a.out, "  whoami, logout, exit")
			} else {
				fmt.Fprintln(a.out, "Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.WhoAmI()

		case "docs":
			a.listDocuments(ctx, args)
		case "doc":
			a.documentCommand(ctx, args)
		case "recent":
			a.recentDocuments(ctx)

		case "users":
			a.listUsers(ctx, args)
		case "user":
			a.userCommand(ctx, args)

		case "deps":
			a.listDepartments(ctx)
		case "dep":
			a.departmentCommand(ctx, args)

		case "cats":
			a.listCategories(ctx)
		case "cat":
			a.categoryCommand(ctx, args)

		case "exit", "quit":
			fmt.Fprintln(a.out, "Bye!")
			return

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}
