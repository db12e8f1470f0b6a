package cli

import (
	"context"
	"fmt"

	"github.com/dmskit/dmscli/internal/client/gateway"
)

func (a *App) listCategories(ctx context.Context) {
	_ = a.categories.FetchAll(ctx)
	snap := a.categories.Snapshot()
	if snap.Err != "" {
		fmt.Fprintf(a.out, "! %s\n", snap.Err)
	}
	if len(snap.Records) == 0 {
		fmt.Fprintln(a.out, "No categories")
		return
	}
	for _, c := range snap.Records {
		fmt.Fprintf(a.out, "%s  %s  %s\n", c.Id, c.Name, c.Description)
	}
}

func (a *App) categoryCommand(ctx context.Context, args []string) {
	if !a.requireAdmin() {
		return
	}
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: cat add|edit|rm ...")
		return
	}
	switch args[0] {
	case "add":
		in, err := a.promptNameDescription()
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		c, err := a.categories.Create(ctx, gateway.CategoryInput(in))
		if err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.categories.Snapshot().Err)
			return
		}
		fmt.Fprintf(a.out, "Created category %s\n", c.Id)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: cat edit <id>")
			return
		}
		in, err := a.promptNameDescription()
		if err != nil {
			fmt.Fprintf(a.out, "error: %v\n", err)
			return
		}
		if _, err := a.categories.Update(ctx, args[1], gateway.CategoryInput(in)); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.categories.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Updated")
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: cat rm <id>")
			return
		}
		if err := a.categories.Delete(ctx, args[1]); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.categories.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Deleted")
	default:
		fmt.Fprintln(a.out, "Unknown subcommand:", args[0])
	}
}
