package devserver

import (
	"fmt"
	"io"
	"net/http"

	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/go-chi/chi/v5"
)

// maxUploadBytes bounds document uploads at 32 MiB.
const maxUploadBytes = 32 << 20

type documentRequest struct {
	Title        string              `json:"title"`
	Description  string              `json:"description"`
	Content      string              `json:"content"`
	Type         models.DocumentType `json:"type"`
	CategoryId   string              `json:"categoryId"`
	DepartmentId string              `json:"departmentId"`
}

func (s *Server) listDocuments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListDocuments(nil))
}

func (s *Server) listDocumentsByUser(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	writeJSON(w, http.StatusOK, s.store.ListDocuments(func(d models.Document) bool {
		return d.CreatedBy == userID
	}))
}

func (s *Server) listDocumentsByType(w http.ResponseWriter, r *http.Request) {
	t := models.DocumentType(chi.URLParam(r, "t"))
	writeJSON(w, http.StatusOK, s.store.ListDocuments(func(d models.Document) bool {
		return d.Type == t
	}))
}

func (s *Server) getDocument(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.GetDocument(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) createDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "title is required")
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown document type %q", req.Type))
		return
	}
	d := s.store.CreateDocument(models.Document{
		Title:        req.Title,
		Description:  req.Description,
		Content:      req.Content,
		Type:         req.Type,
		CategoryId:   req.CategoryId,
		DepartmentId: req.DepartmentId,
	}, claims.UserID)
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDocument(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	var req documentRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Type.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown document type %q", req.Type))
		return
	}
	d, ok := s.store.UpdateDocument(chi.URLParam(r, "id"), claims.UserID, func(d *models.Document) {
		d.Title = req.Title
		d.Description = req.Description
		d.Content = req.Content
		d.Type = req.Type
		d.CategoryId = req.CategoryId
		d.DepartmentId = req.DepartmentId
	})
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDocument(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteDocument(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// uploadDocumentFile accepts the multipart upload and fills the document's
// file fields. File bytes are discarded after sizing; the devserver stores
// metadata only.
func (s *Server) uploadDocumentFile(w http.ResponseWriter, r *http.Request) {
	claims, _ := claimsFrom(r.Context())
	id := chi.URLParam(r, "id")

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	size, err := io.Copy(io.Discard, file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read file")
		return
	}

	d, ok := s.store.UpdateDocument(id, claims.UserID, func(d *models.Document) {
		d.FileURL = "/files/" + id + "/" + header.Filename
		d.FileName = header.Filename
		d.FileType = header.Header.Get("Content-Type")
		d.FileSize = size
	})
	if !ok {
		writeError(w, http.StatusNotFound, "document not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListUsers())
}

func (s *Server) listUsersByDepartment(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListUsersByDepartment(chi.URLParam(r, "id")))
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, ok := s.store.GetUser(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

type userRequest struct {
	Name         string      `json:"name"`
	Email        string      `json:"email"`
	Password     string      `json:"password"`
	Role         models.Role `json:"role"`
	Active       bool        `json:"active"`
	DepartmentId string      `json:"departmentId"`
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", req.Role))
		return
	}
	u, ok := s.store.CreateAccount(req.Name, req.Email, req.Password, req.Role, req.DepartmentId)
	if !ok {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	writeJSON(w, http.StatusCreated, u)
}

func (s *Server) updateUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if !req.Role.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown role %q", req.Role))
		return
	}
	u, ok := s.store.UpdateUser(chi.URLParam(r, "id"), func(u *models.User) {
		u.Name = req.Name
		u.Email = req.Email
		u.Role = req.Role
		u.Active = req.Active
		u.DepartmentId = req.DepartmentId
	})
	if !ok {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteUser(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "user not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type nameDescriptionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (s *Server) listDepartments(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListDepartments())
}

func (s *Server) getDepartment(w http.ResponseWriter, r *http.Request) {
	d, ok := s.store.GetDepartment(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) createDepartment(w http.ResponseWriter, r *http.Request) {
	var req nameDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	d := s.store.CreateDepartment(models.Department{Name: req.Name, Description: req.Description})
	writeJSON(w, http.StatusCreated, d)
}

func (s *Server) updateDepartment(w http.ResponseWriter, r *http.Request) {
	var req nameDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	d, ok := s.store.UpdateDepartment(chi.URLParam(r, "id"), func(d *models.Department) {
		d.Name = req.Name
		d.Description = req.Description
	})
	if !ok {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) deleteDepartment(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteDepartment(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "department not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listCategories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.store.ListCategories())
}

func (s *Server) getCategory(w http.ResponseWriter, r *http.Request) {
	c, ok := s.store.GetCategory(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) createCategory(w http.ResponseWriter, r *http.Request) {
	var req nameDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := s.store.CreateCategory(models.Category{Name: req.Name, Description: req.Description})
	writeJSON(w, http.StatusCreated, c)
}

func (s *Server) updateCategory(w http.ResponseWriter, r *http.Request) {
	var req nameDescriptionRequest
	if !decodeBody(w, r, &req) {
		return
	}
	c, ok := s.store.UpdateCategory(chi.URLParam(r, "id"), func(c *models.Category) {
		c.Name = req.Name
		c.Description = req.Description
	})
	if !ok {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (s *Server) deleteCategory(w http.ResponseWriter, r *http.Request) {
	if !s.store.DeleteCategory(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
