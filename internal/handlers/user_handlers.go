package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/models"
	"github.com/01moynul/containerhub-golang/internal/repository"
	"github.com/gin-gonic/gin"
)

// --- User Registration ---

// RegisterUserInput is separate from models.User so clients cannot set
// id, active or an ADMIN role.
type RegisterUserInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=SUPPLIER IMPORTER"`
}

// Register handles POST /v1/auth/register
func (h *Handlers) Register(c *gin.Context) {
	// 1. --- Bind & Validate JSON ---
	var input RegisterUserInput
	if !bindJSON(c, &input) {
		return
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		respondError(c, apperr.Validation("name is required"))
		return
	}

	// 2. --- Hash the Password ---
	var password models.Password
	if err := password.Set(input.Password); err != nil {
		respondError(c, err)
		return
	}

	// 3. --- Save (email is unique) ---
	user := &models.User{
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: password.Hash,
		Name:         name,
		Role:         input.Role,
		Active:       true,
	}
	if err := h.Repo.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			respondError(c, apperr.Conflict("EMAIL_TAKEN", "User with this email already exists"))
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// --- Login ---

type LoginInput struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/auth/login
func (h *Handlers) Login(c *gin.Context) {
	var input LoginInput
	if !bindJSON(c, &input) {
		return
	}

	invalid := apperr.Unauthorized("INVALID_CREDENTIALS", "Invalid credentials")

	// 1. --- Find an active user ---
	user, err := h.Repo.GetUserByEmail(c.Request.Context(), strings.TrimSpace(input.Email))
	if errors.Is(err, repository.ErrNotFound) || (err == nil && !user.Active) {
		respondError(c, invalid)
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}

	// 2. --- Check the password ---
	password := models.Password{Hash: user.PasswordHash}
	ok, err := password.Matches(input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, invalid)
		return
	}

	// 3. --- Issue the token ---
	token, err := h.Tokens.GenerateToken(auth.Principal{ID: user.ID, Role: user.Role})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /v1/auth/logout. Tokens are stateless, so the
// client simply discards its token.
func (h *Handlers) Logout(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Logged out", "code": "LOGGED_OUT"})
}
