package devserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/dmskit/dmscli/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

type claimsKey struct{}

// Claims is the verified identity attached to authenticated requests.
type Claims struct {
	UserID string
	Email  string
	Role   models.Role
}

func claimsFrom(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(Claims)
	return c, ok
}

func (s *Server) signToken(u models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   u.Id,
		"email": u.Email,
		"role":  string(u.Role),
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Server) verifyToken(tokenStr string) (Claims, bool) {
	tok, err := jwt.Parse(tokenStr, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil || !tok.Valid {
		return Claims{}, false
	}
	mapc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, false
	}
	sub, _ := mapc["sub"].(string)
	email, _ := mapc["email"].(string)
	role, _ := mapc["role"].(string)
	if sub == "" {
		return Claims{}, false
	}
	return Claims{UserID: sub, Email: email, Role: models.Role(role)}, true
}

// bearerAuth rejects requests without a valid bearer token. A missing,
// malformed or expired token yields the 401 that triggers client-side
// session teardown.
func (s *Server) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		claims, ok := s.verifyToken(strings.TrimPrefix(header, "Bearer "))
		if !ok {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey{}, claims)))
	})
}

// requireAdmin gates the account-management routes.
func requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := claimsFrom(r.Context())
		if !ok || claims.Role != models.RoleAdmin {
			writeError(w, http.StatusForbidden, "administrator role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	user, ok := s.store.Authenticate(req.Email, req.Password)
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	token, err := s.signToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusOK, models.AuthResponse{Token: token, User: user})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name         string `json:"name"`
		Email        string `json:"email"`
		Password     string `json:"password"`
		DepartmentId string `json:"departmentId"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, ok := s.store.CreateAccount(req.Name, req.Email, req.Password, models.RoleUser, req.DepartmentId)
	if !ok {
		writeError(w, http.StatusConflict, "email already registered")
		return
	}
	token, err := s.signToken(user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	writeJSON(w, http.StatusCreated, models.AuthResponse{Token: token, User: user})
}
