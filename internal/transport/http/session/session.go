package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	validatorv10 "github.com/go-playground/validator/v10"

	"github.com/foodfetch/storefront/internal/service/models/user"
	"github.com/foodfetch/storefront/internal/validation"
)

// service is an interface for the user service.
type service interface {
	SignIn(ctx context.Context, u user.User) (user.User, error)
	Current() (user.User, bool)
	SignOut(ctx context.Context) error
}

// SignIn stores the session user.
func SignIn(w http.ResponseWriter, r *http.Request, service service, validate *validatorv10.Validate) {
	var req validation.SignInRequest
	if err := validation.DecodeAndValidate(r, validate, &req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		slog.Error("Error decoding sign in request", "error", err)

		return
	}

	u, err := service.SignIn(r.Context(), user.User{Name: req.Name, Email: req.Email})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error signing in", "error", err)

		return
	}

	if err := json.NewEncoder(w).Encode(u); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending sign in response", "error", err)
	}
}

// Me returns the current session user.
func Me(w http.ResponseWriter, r *http.Request, service service) {
	u, ok := service.Current()
	if !ok {
		http.Error(w, "not signed in", http.StatusUnauthorized)

		return
	}

	if err := json.NewEncoder(w).Encode(u); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error sending session user response", "error", err)
	}
}

// SignOut clears the session user.
func SignOut(w http.ResponseWriter, r *http.Request, service service) {
	if err := service.SignOut(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		slog.Error("Error signing out", "error", err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}
