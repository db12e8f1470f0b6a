package cli

import (
	"context"
	"fmt"

	"github.com/dmskit/dmscli/internal/client/gateway"
)

func registerInput(name, email, password, departmentID string) gateway.RegisterInput {
	return gateway.RegisterInput{Name: name, Email: email, Password: password, DepartmentId: departmentID}
}

func (a *App) Login(ctx context.Context) {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	resp, err := a.gw.Login(ctx, email, password)
	if err != nil {
		fmt.Fprintf(a.out, "Login unsuccessful: %v\n", err)
		return
	}

	if err := a.session.SignIn(ctx, resp.User, resp.Token); err != nil {
		fmt.Fprintf(a.out, "error persisting session: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Logged in as %s\n", resp.User.Email)
}

func (a *App) Register(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	departmentID, err := GetSimpleText(a.reader, "Enter department id (optional)", a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	password, err := GetPassword(a.out)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}

	resp, err := a.gw.Register(ctx, registerInput(name, email, password, departmentID))
	if err != nil {
		fmt.Fprintf(a.out, "Registration unsuccessful: %v\n", err)
		return
	}

	// Registration signs the new account in.
	if err := a.session.SignIn(ctx, resp.User, resp.Token); err != nil {
		fmt.Fprintf(a.out, "error persisting session: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Registered and logged in as %s\n", resp.User.Email)
}

func (a *App) Logout(ctx context.Context) {
	if err := a.session.SignOut(ctx); err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Logged out")
}

func (a *App) WhoAmI() {
	s := a.session.Current()
	if !s.SignedIn() {
		fmt.Fprintln(a.out, "Not logged in")
		return
	}
	fmt.Fprintf(a.out, "%s <%s> role=%s department=%s\n",
		s.User.Name, s.User.Email, s.User.Role, orDash(s.User.DepartmentId))
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
