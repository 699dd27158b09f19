package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"recruitai/internal/storage"

	"github.com/google/uuid"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates a recruiter account.
// @Summary Register
// @Tags auth
// @Accept json
// @Produce json
// @Param request body registerRequest true "Account details"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Router /auth/register [post]
func (a *API) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}
	if !emailPattern.MatchString(req.Email) {
		writeMessage(w, http.StatusBadRequest, "Invalid email format")
		return
	}
	if len(req.Password) < 6 {
		writeMessage(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	exists, err := a.db.UserExists(r.Context(), req.Email)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error", err)
		return
	}
	if exists {
		writeMessage(w, http.StatusBadRequest, "User already exists")
		return
	}

	hash, err := a.auth.HashPassword(req.Password)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error", err)
		return
	}

	user := &storage.User{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}
	if err := a.db.CreateUser(r.Context(), user); err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error", err)
		return
	}

	writeMessage(w, http.StatusCreated, "User registered successfully")
}

// LoginHandler verifies credentials and issues a JWT.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /auth/login [post]
func (a *API) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	user, err := a.db.GetUserByEmail(r.Context(), strings.TrimSpace(req.Email))
	if errors.Is(err, storage.ErrNotFound) {
		writeMessage(w, http.StatusBadRequest, "Invalid Email")
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error", err)
		return
	}

	if !a.auth.CheckPassword(user.PasswordHash, req.Password) {
		writeMessage(w, http.StatusBadRequest, "Invalid Password")
		return
	}

	token, err := a.auth.IssueToken(user.ID, user.Name)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Server Error", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user": map[string]string{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
		},
	})
}
