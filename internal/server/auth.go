package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/jgvaught118/nfl-frenzy-backend/internal/models"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID      int64  `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	IsAdmin bool   `json:"is_admin"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{
		ID:      u.ID,
		Email:   u.Email,
		Name:    u.Name,
		Status:  u.Status().String(),
		IsAdmin: u.IsAdmin,
	}
}

// handleRegister creates a new account. Accounts start pending and cannot
// submit picks until an admin approves them.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Name = strings.TrimSpace(req.Name)
	if req.Email == "" || req.Name == "" || len(req.Password) < 8 {
		writeError(w, http.StatusBadRequest, "email, name and a password of at least 8 characters are required")
		return
	}

	existing, err := s.db.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		log.Error().Err(err).Msg("Register lookup failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "an account with that email already exists")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error().Err(err).Msg("Password hash failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(hash),
	}
	if err := s.db.Users.Create(r.Context(), user); err != nil {
		log.Error().Err(err).Msg("User create failed")
		writeError(w, http.StatusInternalServerError, "registration failed")
		return
	}

	log.Info().Str("email", user.Email).Int64("user_id", user.ID).Msg("Account registered")
	writeJSON(w, http.StatusCreated, toUserResponse(user))
}

// handleLogin verifies credentials and issues a JWT. Pending accounts can
// log in and look around; pick submission stays closed to them.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := s.db.Users.GetByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		log.Error().Err(err).Msg("Login lookup failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}

	if user.Status() == models.StatusDisabled {
		writeError(w, http.StatusForbidden, "account is disabled")
		return
	}

	_, token, err := s.tokenAuth.Encode(map[string]interface{}{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"exp":      time.Now().Add(s.cfg.TokenLifetime).Unix(),
	})
	if err != nil {
		log.Error().Err(err).Msg("Token encode failed")
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}

	writeJSON(w, http.StatusOK, authResponse{Token: token, User: toUserResponse(user)})
}
