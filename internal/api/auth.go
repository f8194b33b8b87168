package api

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/musicbox-io/musicbox/internal/db"
)

// bcrypt cost for newly hashed passwords.
const bcryptCost = 10

const minPasswordLength = 6

// RequireAuth gates protected endpoints on a live session. Rejections carry
// no side effects; the cookie is left untouched.
func (s *Server) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sess := s.sessions.Get(r)
		if sess == nil {
			WriteError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), sess)))
	})
}

// CredentialsRequest is the register and login request body
type CredentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is the register and login response
type AuthResponse struct {
	Success  bool   `json:"success"`
	Username string `json:"username"`
}

// HandleRegister implements POST /api/register
func (s *Server) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Username and password required")
		return
	}

	if req.Username == "" || req.Password == "" {
		WriteError(w, http.StatusBadRequest, "Username and password required")
		return
	}
	if len(req.Password) < minPasswordLength {
		WriteError(w, http.StatusBadRequest, "Password must be at least 6 characters")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	userID, err := s.db.CreateUser(r.Context(), req.Username, string(hash))
	if err != nil {
		if errors.Is(err, db.ErrUsernameTaken) {
			WriteError(w, http.StatusBadRequest, "Username already exists")
			return
		}
		s.logger.Error("failed to create user", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	if _, err := s.sessions.Create(w, r, userID, req.Username); err != nil {
		s.logger.Error("failed to create session", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Success: true, Username: req.Username})
}

// HandleLogin implements POST /api/login
func (s *Server) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req CredentialsRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	user, err := s.db.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.logger.Error("failed to look up user", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	// Unknown user and wrong password are indistinguishable to the client.
	if user == nil {
		WriteError(w, http.StatusBadRequest, "Invalid username or password")
		return
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		WriteError(w, http.StatusBadRequest, "Invalid username or password")
		return
	}

	if _, err := s.sessions.Create(w, r, user.ID, user.Username); err != nil {
		s.logger.Error("failed to create session", "err", err)
		WriteError(w, http.StatusInternalServerError, "Server error")
		return
	}

	WriteJSON(w, http.StatusOK, AuthResponse{Success: true, Username: user.Username})
}

// HandleLogout implements POST /api/logout
func (s *Server) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Destroy(w, r); err != nil {
		s.logger.Error("failed to destroy session", "err", err)
		WriteError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// UserResponse is the current-user response
type UserResponse struct {
	Username string `json:"username"`
}

// HandleCurrentUser implements GET /api/user. The username comes straight
// from the session, no store access.
func (s *Server) HandleCurrentUser(w http.ResponseWriter, r *http.Request) {
	sess, ok := GetSession(r.Context())
	if !ok {
		WriteError(w, http.StatusUnauthorized, "Not authenticated")
		return
	}

	WriteJSON(w, http.StatusOK, UserResponse{Username: sess.Username})
}
