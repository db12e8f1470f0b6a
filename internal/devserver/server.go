package devserver

import (
	"net/http"
	"time"

	"github.com/dmskit/dmscli/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Config holds the devserver's runtime settings, resolved from the
// environment by cmd/devserver.
type Config struct {
	Addr          string
	JWTSecret     string
	TokenTTL      time.Duration
	AdminEmail    string
	AdminPassword string
}

func (c *Config) LoadDefaults() {
	c.Addr = ":8080"
	c.JWTSecret = "dev-secret"
	c.TokenTTL = 24 * time.Hour
	c.AdminEmail = "admin@dms.local"
	c.AdminPassword = "admin123"
}

// Server serves the DMS API surface the client expects, backed by the
// in-memory Store.
type Server struct {
	store    *Store
	secret   []byte
	tokenTTL time.Duration
	log      logging.Logger
}

func NewServer(cfg *Config, store *Store, log logging.Logger) (*Server, error) {
	if err := store.SeedAdmin(cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return nil, err
	}
	return &Server{
		store:    store,
		secret:   []byte(cfg.JWTSecret),
		tokenTTL: cfg.TokenTTL,
		log:      log,
	}, nil
}

// Router builds the route tree under the /api prefix, matching the external
// collaborator's REST shape.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Route("/api", func(api chi.Router) {
		api.Post("/auth/login", s.handleLogin)
		api.Post("/auth/register", s.handleRegister)

		api.Group(func(protected chi.Router) {
			protected.Use(s.bearerAuth)

			protected.Get("/documents", s.listDocuments)
			protected.Post("/documents", s.createDocument)
			protected.Get("/documents/user/{id}", s.listDocumentsByUser)
			protected.Get("/documents/type/{t}", s.listDocumentsByType)
			protected.Get("/documents/{id}", s.getDocument)
			protected.Put("/documents/{id}", s.updateDocument)
			protected.Delete("/documents/{id}", s.deleteDocument)
			protected.Post("/documents/{id}/upload", s.uploadDocumentFile)

			protected.Get("/departments", s.listDepartments)
			protected.Get("/departments/{id}", s.getDepartment)
			protected.Get("/categories", s.listCategories)
			protected.Get("/categories/{id}", s.getCategory)

			protected.Group(func(admin chi.Router) {
				admin.Use(requireAdmin)

				admin.Get("/users", s.listUsers)
				admin.Post("/users", s.createUser)
				admin.Get("/users/department/{id}", s.listUsersByDepartment)
				admin.Get("/users/{id}", s.getUser)
				admin.Put("/users/{id}", s.updateUser)
				admin.Delete("/users/{id}", s.deleteUser)

				admin.Post("/departments", s.createDepartment)
				admin.Put("/departments/{id}", s.updateDepartment)
				admin.Delete("/departments/{id}", s.deleteDepartment)

				admin.Post("/categories", s.createCategory)
				admin.Put("/categories/{id}", s.updateCategory)
				admin.Delete("/categories/{id}", s.deleteCategory)
			})
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	return r
}
