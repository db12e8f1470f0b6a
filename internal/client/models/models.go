// Package models defines the DMS entity records exchanged with the backend
// API, together with the schema checks applied at the gateway boundary.
package models

import (
	"fmt"
	"time"

	"github.com/dmskit/dmscli/internal/common"
)

// DocumentType classifies a document.
type DocumentType string

const (
	DocumentTypeDocument DocumentType = "document"
	DocumentTypeContract DocumentType = "contract"
	DocumentTypeReport   DocumentType = "report"
	DocumentTypeInvoice  DocumentType = "invoice"
	DocumentTypeOther    DocumentType = "other"
)

// Valid reports whether t is one of the known document types.
func (t DocumentType) Valid() bool {
	switch t {
	case DocumentTypeDocument, DocumentTypeContract, DocumentTypeReport,
		DocumentTypeInvoice, DocumentTypeOther:
		return true
	}
	return false
}

// Role is a user account role.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Entity is implemented by every record kept in an entity store.
type Entity interface {
	GetID() string
	Validate() error
}

// Document is a DMS document record. File fields are set by the server after
// a successful upload; category is referenced by stable id, with CategoryName
// carried only as denormalized display data.
type Document struct {
	Id           string       `json:"id"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Content      string       `json:"content,omitempty"`
	Type         DocumentType `json:"type"`
	CategoryId   string       `json:"categoryId,omitempty"`
	CategoryName string       `json:"categoryName,omitempty"`
	DepartmentId string       `json:"departmentId,omitempty"`
	FileURL      string       `json:"fileUrl,omitempty"`
	FileName     string       `json:"fileName,omitempty"`
	FileType     string       `json:"fileType,omitempty"`
	FileSize     int64        `json:"fileSize,omitempty"`
	CreatedBy    string       `json:"createdBy,omitempty"`
	UpdatedBy    string       `json:"updatedBy,omitempty"`
	CreatedAt    time.Time    `json:"createdAt,omitempty"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}

func (d Document) GetID() string { return d.Id }

func (d Document) Validate() error {
	if d.Id == "" {
		return fmt.Errorf("document without id: %w", common.ErrInvalidPayload)
	}
	if !d.Type.Valid() {
		return fmt.Errorf("document %s has unknown type %q: %w", d.Id, d.Type, common.ErrInvalidPayload)
	}
	return nil
}

// HasFile reports whether a stored file is attached to the document.
func (d Document) HasFile() bool { return d.FileURL != "" }

// User is a DMS account.
type User struct {
	Id             string `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	Role           Role   `json:"role"`
	Active         bool   `json:"active"`
	DepartmentId   string `json:"departmentId,omitempty"`
	DepartmentName string `json:"departmentName,omitempty"`
}

func (u User) GetID() string { return u.Id }

func (u User) Validate() error {
	if u.Id == "" {
		return fmt.Errorf("user without id: %w", common.ErrInvalidPayload)
	}
	if !u.Role.Valid() {
		return fmt.Errorf("user %s has unknown role %q: %w", u.Id, u.Role, common.ErrInvalidPayload)
	}
	return nil
}

func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// Department groups users and documents.
type Department struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (d Department) GetID() string { return d.Id }

func (d Department) Validate() error {
	if d.Id == "" {
		return fmt.Errorf("department without id: %w", common.ErrInvalidPayload)
	}
	return nil
}

// Category classifies documents.
type Category struct {
	Id          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

func (c Category) GetID() string { return c.Id }

func (c Category) Validate() error {
	if c.Id == "" {
		return fmt.Errorf("category without id: %w", common.ErrInvalidPayload)
	}
	return nil
}

// AuthResponse is returned by the login and register endpoints.
type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (a AuthResponse) Validate() error {
	if a.Token == "" {
		return fmt.Errorf("auth response without token: %w", common.ErrInvalidPayload)
	}
	return a.User.Validate()
}
