package gateway

import (
	"context"
	"net/http"

	"github.com/dmskit/dmscli/internal/client/models"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterInput creates a new account. DepartmentId is optional.
type RegisterInput struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	DepartmentId string `json:"departmentId,omitempty"`
}

// Login authenticates against the backend and returns the issued token
// together with the signed-in identity.
func (g *Gateway) Login(ctx context.Context, email, password string) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := g.sendJSON(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &out); err != nil {
		return models.AuthResponse{}, err
	}
	return out, out.Validate()
}

// Register creates an account and signs it in.
func (g *Gateway) Register(ctx context.Context, in RegisterInput) (models.AuthResponse, error) {
	var out models.AuthResponse
	if err := g.sendJSON(ctx, http.MethodPost, "/auth/register", in, &out); err != nil {
		return models.AuthResponse{}, err
	}
	return out, out.Validate()
}
