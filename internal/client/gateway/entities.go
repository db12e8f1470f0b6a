package gateway

import (
	"context"
	"net/http"

	"github.com/dmskit/dmscli/internal/client/models"
)

// fetchOne decodes a single entity response and validates it before handing
// it to the caller. Schema violations surface as common.ErrInvalidPayload.
func fetchOne[T models.Entity](g *Gateway, ctx context.Context, path string) (T, error) {
	var out T
	if err := g.getJSON(ctx, path, &out); err != nil {
		return out, err
	}
	return out, out.Validate()
}

// fetchList decodes a list response and validates every record.
func fetchList[T models.Entity](g *Gateway, ctx context.Context, path string) ([]T, error) {
	var out []T
	if err := g.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	for _, item := range out {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// mutate issues a POST or PUT carrying in, and validates the canonical record
// the server returns.
func mutate[T models.Entity](g *Gateway, ctx context.Context, method, path string, in any) (T, error) {
	var out T
	if err := g.sendJSON(ctx, method, path, in, &out); err != nil {
		return out, err
	}
	return out, out.Validate()
}

// DocumentInput is the client-supplied part of a document; the server owns
// id, file fields, audit fields and timestamps.
type DocumentInput struct {
	Title        string              `json:"title"`
	Description  string              `json:"description,omitempty"`
	Content      string              `json:"content,omitempty"`
	Type         models.DocumentType `json:"type"`
	CategoryId   string              `json:"categoryId,omitempty"`
	DepartmentId string              `json:"departmentId,omitempty"`
}

func (g *Gateway) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return fetchList[models.Document](g, ctx, "/documents")
}

func (g *Gateway) GetDocument(ctx context.Context, id string) (models.Document, error) {
	return fetchOne[models.Document](g, ctx, "/documents/"+id)
}

func (g *Gateway) ListDocumentsByUser(ctx context.Context, userID string) ([]models.Document, error) {
	return fetchList[models.Document](g, ctx, "/documents/user/"+userID)
}

func (g *Gateway) ListDocumentsByType(ctx context.Context, t models.DocumentType) ([]models.Document, error) {
	return fetchList[models.Document](g, ctx, "/documents/type/"+string(t))
}

func (g *Gateway) CreateDocument(ctx context.Context, in DocumentInput) (models.Document, error) {
	return mutate[models.Document](g, ctx, http.MethodPost, "/documents", in)
}

func (g *Gateway) UpdateDocument(ctx context.Context, id string, in DocumentInput) (models.Document, error) {
	return mutate[models.Document](g, ctx, http.MethodPut, "/documents/"+id, in)
}

func (g *Gateway) DeleteDocument(ctx context.Context, id string) error {
	return g.delete(ctx, "/documents/"+id)
}

// UserInput carries the mutable account fields. Password is only sent on
// create; the zero value omits it.
type UserInput struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Password     string      `json:"password,omitempty"`
	Role         models.Role `json:"role"`
	Active       bool        `json:"active"`
	DepartmentId string      `json:"departmentId,omitempty"`
}

func (g *Gateway) ListUsers(ctx context.Context) ([]models.User, error) {
	return fetchList[models.User](g, ctx, "/users")
}

func (g *Gateway) GetUser(ctx context.Context, id string) (models.User, error) {
	return fetchOne[models.User](g, ctx, "/users/"+id)
}

func (g *Gateway) ListUsersByDepartment(ctx context.Context, departmentID string) ([]models.User, error) {
	return fetchList[models.User](g, ctx, "/users/department/"+departmentID)
}

func (g *Gateway) CreateUser(ctx context.Context, in UserInput) (models.User, error) {
	return mutate[models.User](g, ctx, http.MethodPost, "/users", in)
}

func (g *Gateway) UpdateUser(ctx context.Context, id string, in UserInput) (models.User, error) {
	return mutate[models.User](g, ctx, http.MethodPut, "/users/"+id, in)
}

func (g *Gateway) DeleteUser(ctx context.Context, id string) error {
	return g.delete(ctx, "/users/"+id)
}

type DepartmentInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (g *Gateway) ListDepartments(ctx context.Context) ([]models.Department, error) {
	return fetchList[models.Department](g, ctx, "/departments")
}

func (g *Gateway) GetDepartment(ctx context.Context, id string) (models.Department, error) {
	return fetchOne[models.Department](g, ctx, "/departments/"+id)
}

func (g *Gateway) CreateDepartment(ctx context.Context, in DepartmentInput) (models.Department, error) {
	return mutate[models.Department](g, ctx, http.MethodPost, "/departments", in)
}

func (g *Gateway) UpdateDepartment(ctx context.Context, id string, in DepartmentInput) (models.Department, error) {
	return mutate[models.Department](g, ctx, http.MethodPut, "/departments/"+id, in)
}

func (g *Gateway) DeleteDepartment(ctx context.Context, id string) error {
	return g.delete(ctx, "/departments/"+id)
}

type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (g *Gateway) ListCategories(ctx context.Context) ([]models.Category, error) {
	return fetchList[models.Category](g, ctx, "/categories")
}

func (g *Gateway) GetCategory(ctx context.Context, id string) (models.Category, error) {
	return fetchOne[models.Category](g, ctx, "/categories/"+id)
}

func (g *Gateway) CreateCategory(ctx context.Context, in CategoryInput) (models.Category, error) {
	return mutate[models.Category](g, ctx, http.MethodPost, "/categories", in)
}

func (g *Gateway) UpdateCategory(ctx context.Context, id string, in CategoryInput) (models.Category, error) {
	return mutate[models.Category](g, ctx, http.MethodPut, "/categories/"+id, in)
}

func (g *Gateway) DeleteCategory(ctx context.Context, id string) error {
	return g.delete(ctx, "/categories/"+id)
}
