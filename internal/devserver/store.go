// Package devserver is an in-memory double of the DMS backend REST API, used
// for local development and end-to-end tests of the client. It mirrors the
// external collaborator's routes and payloads; the production backend stays
// out of this repository.
package devserver

import (
	"sync"
	"time"

	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// account pairs a user record with its password hash. The hash never leaves
// the server.
type account struct {
	user models.User
	hash []byte
}

// Store holds all server-side state behind one RWMutex. Collections are
// slices so list responses keep a stable, insertion-ordered shape.
type Store struct {
	mu          sync.RWMutex
	accounts    []account
	documents   []models.Document
	departments []models.Department
	categories  []models.Category
}

func NewStore() *Store {
	return &Store{}
}

// SeedAdmin creates the initial administrator account when no account with
// the given email exists yet.
func (s *Store) SeedAdmin(email, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.user.Email == email {
			return nil
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.accounts = append(s.accounts, account{
		user: models.User{
			Id:     uuid.NewString(),
			Name:   "Administrator",
			Email:  email,
			Role:   models.RoleAdmin,
			Active: true,
		},
		hash: hash,
	})
	return nil
}

func (s *Store) findAccountByEmail(email string) (account, bool) {
	for _, a := range s.accounts {
		if a.user.Email == email {
			return a, true
		}
	}
	return account{}, false
}

// Authenticate verifies the credentials and returns the matching user.
func (s *Store) Authenticate(email, password string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.findAccountByEmail(email)
	if !ok || !a.user.Active {
		return models.User{}, false
	}
	if bcrypt.CompareHashAndPassword(a.hash, []byte(password)) != nil {
		return models.User{}, false
	}
	return a.user, true
}

// CreateAccount registers a user with the given role.
func (s *Store) CreateAccount(name, email, password string, role models.Role, departmentID string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.findAccountByEmail(email); exists {
		return models.User{}, false
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, false
	}
	u := models.User{
		Id:           uuid.NewString(),
		Name:         name,
		Email:        email,
		Role:         role,
		Active:       true,
		DepartmentId: departmentID,
	}
	s.accounts = append(s.accounts, account{user: u, hash: hash})
	return u, true
}

func (s *Store) ListUsers() []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a.user)
	}
	return out
}

func (s *Store) ListUsersByDepartment(departmentID string) []models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.User{}
	for _, a := range s.accounts {
		if a.user.DepartmentId == departmentID {
			out = append(out, a.user)
		}
	}
	return out
}

func (s *Store) GetUser(id string) (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.accounts {
		if a.user.Id == id {
			return a.user, true
		}
	}
	return models.User{}, false
}

func (s *Store) UpdateUser(id string, mutate func(*models.User)) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].user.Id == id {
			mutate(&s.accounts[i].user)
			return s.accounts[i].user, true
		}
	}
	return models.User{}, false
}

func (s *Store) DeleteUser(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.accounts {
		if s.accounts[i].user.Id == id {
			s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ListDocuments(filter func(models.Document) bool) []models.Document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := []models.Document{}
	for _, d := range s.documents {
		if filter == nil || filter(d) {
			out = append(out, d)
		}
	}
	return out
}

func (s *Store) GetDocument(id string) (models.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.documents {
		if d.Id == id {
			return d, true
		}
	}
	return models.Document{}, false
}

func (s *Store) CreateDocument(d models.Document, creator string) models.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	d.Id = uuid.NewString()
	d.CreatedBy = creator
	d.UpdatedBy = creator
	d.CreatedAt = now
	d.UpdatedAt = now
	d.CategoryName = s.categoryNameLocked(d.CategoryId)
	s.documents = append(s.documents, d)
	return d
}

func (s *Store) UpdateDocument(id string, updater string, mutate func(*models.Document)) (models.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].Id == id {
			mutate(&s.documents[i])
			s.documents[i].UpdatedBy = updater
			s.documents[i].UpdatedAt = time.Now().UTC()
			s.documents[i].CategoryName = s.categoryNameLocked(s.documents[i].CategoryId)
			return s.documents[i], true
		}
	}
	return models.Document{}, false
}

func (s *Store) DeleteDocument(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.documents {
		if s.documents[i].Id == id {
			s.documents = append(s.documents[:i], s.documents[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) categoryNameLocked(categoryID string) string {
	for _, c := range s.categories {
		if c.Id == categoryID {
			return c.Name
		}
	}
	return ""
}

func (s *Store) ListDepartments() []models.Department {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Department{}, s.departments...)
}

func (s *Store) GetDepartment(id string) (models.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, d := range s.departments {
		if d.Id == id {
			return d, true
		}
	}
	return models.Department{}, false
}

func (s *Store) CreateDepartment(d models.Department) models.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	d.Id = uuid.NewString()
	s.departments = append(s.departments, d)
	return d
}

func (s *Store) UpdateDepartment(id string, mutate func(*models.Department)) (models.Department, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.departments {
		if s.departments[i].Id == id {
			mutate(&s.departments[i])
			return s.departments[i], true
		}
	}
	return models.Department{}, false
}

func (s *Store) DeleteDepartment(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.departments {
		if s.departments[i].Id == id {
			s.departments = append(s.departments[:i], s.departments[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) ListCategories() []models.Category {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Category{}, s.categories...)
}

func (s *Store) GetCategory(id string) (models.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.categories {
		if c.Id == id {
			return c, true
		}
	}
	return models.Category{}, false
}

func (s *Store) CreateCategory(c models.Category) models.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.Id = uuid.NewString()
	s.categories = append(s.categories, c)
	return c
}

func (s *Store) UpdateCategory(id string, mutate func(*models.Category)) (models.Category, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].Id == id {
			mutate(&s.categories[i])
			return s.categories[i], true
		}
	}
	return models.Category{}, false
}

func (s *Store) DeleteCategory(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].Id == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return true
		}
	}
	return false
}
