package store

import (
	"context"
	"io"

	"github.com/dmskit/dmscli/internal/client/gateway"
	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/dmskit/dmscli/internal/logging"
)

// Documents is the entity store for DMS documents.
type Documents struct {
	*Store[models.Document]
	gw *gateway.Gateway
}

func NewDocuments(gw *gateway.Gateway, log logging.Logger) *Documents {
	return &Documents{Store: newStore[models.Document]("documents", log), gw: gw}
}

func (d *Documents) FetchAll(ctx context.Context) error {
	return d.fetchWith(ctx, d.gw.ListDocuments)
}

func (d *Documents) FetchByUser(ctx context.Context, userID string) error {
	return d.fetchWith(ctx, func(ctx context.Context) ([]models.Document, error) {
		return d.gw.ListDocumentsByUser(ctx, userID)
	})
}

func (d *Documents) FetchByType(ctx context.Context, t models.DocumentType) error {
	return d.fetchWith(ctx, func(ctx context.Context) ([]models.Document, error) {
		return d.gw.ListDocumentsByType(ctx, t)
	})
}

func (d *Documents) Create(ctx context.Context, in gateway.DocumentInput) (models.Document, error) {
	return d.createWith(ctx, func(ctx context.Context) (models.Document, error) {
		return d.gw.CreateDocument(ctx, in)
	})
}

func (d *Documents) Update(ctx context.Context, id string, in gateway.DocumentInput) (models.Document, error) {
	return d.updateWith(ctx, func(ctx context.Context) (models.Document, error) {
		return d.gw.UpdateDocument(ctx, id, in)
	})
}

// Upload attaches a file to a document; the returned file-bearing record
// reconciles like an update.
func (d *Documents) Upload(ctx context.Context, id, filename string, r io.Reader) (models.Document, error) {
	return d.updateWith(ctx, func(ctx context.Context) (models.Document, error) {
		return d.gw.UploadDocumentFile(ctx, id, filename, r)
	})
}

func (d *Documents) Delete(ctx context.Context, id string) error {
	return d.deleteWith(ctx, id, func(ctx context.Context) error {
		return d.gw.DeleteDocument(ctx, id)
	})
}

// Users is the entity store for user accounts.
type Users struct {
	*Store[models.User]
	gw *gateway.Gateway
}

func NewUsers(gw *gateway.Gateway, log logging.Logger) *Users {
	return &Users{Store: newStore[models.User]("users", log), gw: gw}
}

func (u *Users) FetchAll(ctx context.Context) error {
	return u.fetchWith(ctx, u.gw.ListUsers)
}

func (u *Users) FetchByDepartment(ctx context.Context, departmentID string) error {
	return u.fetchWith(ctx, func(ctx context.Context) ([]models.User, error) {
		return u.gw.ListUsersByDepartment(ctx, departmentID)
	})
}

func (u *Users) Create(ctx context.Context, in gateway.UserInput) (models.User, error) {
	return u.createWith(ctx, func(ctx context.Context) (models.User, error) {
		return u.gw.CreateUser(ctx, in)
	})
}

func (u *Users) Update(ctx context.Context, id string, in gateway.UserInput) (models.User, error) {
	return u.updateWith(ctx, func(ctx context.Context) (models.User, error) {
		return u.gw.UpdateUser(ctx, id, in)
	})
}

func (u *Users) Delete(ctx context.Context, id string) error {
	return u.deleteWith(ctx, id, func(ctx context.Context) error {
		return u.gw.DeleteUser(ctx, id)
	})
}

// Departments is the entity store for departments.
type Departments struct {
	*Store[models.Department]
	gw *gateway.Gateway
}

func NewDepartments(gw *gateway.Gateway, log logging.Logger) *Departments {
	return &Departments{Store: newStore[models.Department]("departments", log), gw: gw}
}

func (d *Departments) FetchAll(ctx context.Context) error {
	return d.fetchWith(ctx, d.gw.ListDepartments)
}

func (d *Departments) Create(ctx context.Context, in gateway.DepartmentInput) (models.Department, error) {
	return d.createWith(ctx, func(ctx context.Context) (models.Department, error) {
		return d.gw.CreateDepartment(ctx, in)
	})
}

func (d *Departments) Update(ctx context.Context, id string, in gateway.DepartmentInput) (models.Department, error) {
	return d.updateWith(ctx, func(ctx context.Context) (models.Department, error) {
		return d.gw.UpdateDepartment(ctx, id, in)
	})
}

func (d *Departments) Delete(ctx context.Context, id string) error {
	return d.deleteWith(ctx, id, func(ctx context.Context) error {
		return d.gw.DeleteDepartment(ctx, id)
	})
}

// Categories is the entity store for categories.
type Categories struct {
	*Store[models.Category]
	gw *gateway.Gateway
}

func NewCategories(gw *gateway.Gateway, log logging.Logger) *Categories {
	return &Categories{Store: newStore[models.Category]("categories", log), gw: gw}
}

func (c *Categories) FetchAll(ctx context.Context) error {
	return c.fetchWith(ctx, c.gw.ListCategories)
}

func (c *Categories) Create(ctx context.Context, in gateway.CategoryInput) (models.Category, error) {
	return c.createWith(ctx, func(ctx context.Context) (models.Category, error) {
		return c.gw.CreateCategory(ctx, in)
	})
}

func (c *Categories) Update(ctx context.Context, id string, in gateway.CategoryInput) (models.Category, error) {
	return c.updateWith(ctx, func(ctx context.Context) (models.Category, error) {
		return c.gw.UpdateCategory(ctx, id, in)
	})
}

func (c *Categories) Delete(ctx context.Context, id string) error {
	return c.deleteWith(ctx, id, func(ctx context.Context) error {
		return c.gw.DeleteCategory(ctx, id)
	})
}
