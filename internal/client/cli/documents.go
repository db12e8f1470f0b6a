package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/models"
)

// renderDocuments prints the store's last snapshot. A failed refresh shows an
// inline banner while the last good records stay visible.
func (a *App) renderDocuments() {
	snap := a.documents.Snapshot()
	if snap.Err != "" {
		fmt.Fprintf(a.out, "! %s\n", snap.Err)
	}
	if len(snap.Records) == 0 {
		fmt.Fprintln(a.out, "No documents")
		return
	}
	for _, d := range snap.Records {
		file := ""
		if d.HasFile() {
			file = " [" + d.FileName + "]"
		}
		fmt.Fprintf(a.out, "%s  %-10s  %s%s\n", d.Id, d.Type, d.Title, file)
	}
}

// listDocuments handles "docs", "docs mine" and "docs type <t>".
func (a *App) listDocuments(ctx context.Context, args []string) {
	switch {
	case len(args) == 0:
		_ = a.documents.FetchAll(ctx)
	case args[0] == "mine":
		s := a.session.Current()
		if !s.SignedIn() {
			fmt.Fprintln(a.out, "Not logged in")
			return
		}
		_ = a.documents.FetchByUser(ctx, s.User.Id)
	case args[0] == "type" && len(args) > 1:
		_ = a.documents.FetchByType(ctx, models.DocumentType(args[1]))
	default:
		fmt.Fprintln(a.out, "Usage: docs [mine | type <t>]")
		return
	}
	a.renderDocuments()
}

// recentDocuments derives the five most recently updated documents from the
// current snapshot. The ordering lives here, not in the store.
func (a *App) recentDocuments(ctx context.Context) {
	if err := a.documents.FetchAll(ctx); err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.documents.Snapshot().Err)
		return
	}
	records := a.documents.Snapshot().Records
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	if len(records) > 5 {
		records = records[:5]
	}
	for _, d := range records {
		fmt.Fprintf(a.out, "%s  %s  (updated %s)\n", d.Id, d.Title, d.UpdatedAt.Format("2006-01-02 15:04"))
	}
}

func (a *App) documentCommand(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Fprintln(a.out, "Usage: doc show|add|edit|rm|upload ...")
		return
	}
	switch args[0] {
	case "show":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: doc show <id>")
			return
		}
		a.showDocument(ctx, args[1])
	case "add":
		a.addDocument(ctx)
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: doc edit <id>")
			return
		}
		a.editDocument(ctx, args[1])
	case "rm":
		if len(args) < 2 {
			fmt.Fprintln(a.out, "Usage: doc rm <id>")
			return
		}
		if err := a.documents.Delete(ctx, args[1]); err != nil {
			fmt.Fprintf(a.out, "! %s\n", a.documents.Snapshot().Err)
			return
		}
		fmt.Fprintln(a.out, "Deleted")
	case "upload":
		if len(args) < 3 {
			fmt.Fprintln(a.out, "Usage: doc upload <id> <path>")
			return
		}
		a.uploadDocument(ctx, args[1], args[2])
	default:
		fmt.Fprintln(a.out, "Unknown subcommand:", args[0])
	}
}

func (a *App) showDocument(ctx context.Context, id string) {
	d, err := a.gw.GetDocument(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintf(a.out, "Title:       %s\n", d.Title)
	fmt.Fprintf(a.out, "Type:        %s\n", d.Type)
	fmt.Fprintf(a.out, "Description: %s\n", d.Description)
	fmt.Fprintf(a.out, "Category:    %s\n", orDash(d.CategoryName))
	fmt.Fprintf(a.out, "Department:  %s\n", orDash(d.DepartmentId))
	if d.HasFile() {
		fmt.Fprintf(a.out, "File:        %s (%s, %d bytes)\n", d.FileName, d.FileType, d.FileSize)
	}
	if d.Content != "" {
		fmt.Fprintf(a.out, "---\n%s\n", d.Content)
	}
}

func (a *App) promptDocumentInput(defaults gateway.DocumentInput) (gateway.DocumentInput, error) {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return defaults, err
	}
	description, err := GetSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return defaults, err
	}
	docType, err := GetSimpleText(a.reader, "Type (document/contract/report/invoice/other)", a.out)
	if err != nil {
		return defaults, err
	}
	categoryID, err := GetSimpleText(a.reader, "Category id (optional)", a.out)
	if err != nil {
		return defaults, err
	}
	departmentID, err := GetSimpleText(a.reader, "Department id (optional)", a.out)
	if err != nil {
		return defaults, err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return defaults, err
	}

	in := defaults
	if title != "" {
		in.Title = title
	}
	if description != "" {
		in.Description = description
	}
	if docType != "" {
		in.Type = models.DocumentType(docType)
	}
	if categoryID != "" {
		in.CategoryId = categoryID
	}
	if departmentID != "" {
		in.DepartmentId = departmentID
	}
	if content != "" {
		in.Content = content
	}
	if in.Type == "" {
		in.Type = models.DocumentTypeDocument
	}
	return in, nil
}

func (a *App) addDocument(ctx context.Context) {
	in, err := a.promptDocumentInput(gateway.DocumentInput{})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	d, err := a.documents.Create(ctx, in)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.documents.Snapshot().Err)
		return
	}
	fmt.Fprintf(a.out, "Created document %s\n", d.Id)
}

func (a *App) editDocument(ctx context.Context, id string) {
	current, err := a.gw.GetDocument(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	fmt.Fprintln(a.out, "Leave a field empty to keep its current value")
	in, err := a.promptDocumentInput(gateway.DocumentInput{
		Title:        current.Title,
		Description:  current.Description,
		Content:      current.Content,
		Type:         current.Type,
		CategoryId:   current.CategoryId,
		DepartmentId: current.DepartmentId,
	})
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	if _, err := a.documents.Update(ctx, id, in); err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.documents.Snapshot().Err)
		return
	}
	fmt.Fprintln(a.out, "Updated")
}

func (a *App) uploadDocument(ctx context.Context, id, path string) {
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(a.out, "error: %v\n", err)
		return
	}
	defer f.Close()

	d, err := a.documents.Upload(ctx, id, filepath.Base(path), f)
	if err != nil {
		fmt.Fprintf(a.out, "! %s\n", a.documents.Snapshot().Err)
		return
	}
	fmt.Fprintf(a.out, "Uploaded %s (%d bytes)\n", d.FileName, d.FileSize)
}
