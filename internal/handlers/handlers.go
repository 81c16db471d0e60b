package handlers

import (
	"github.com/01moynul/containerhub-golang/internal/admission"
	"github.com/01moynul/containerhub-golang/internal/ai"
	"github.com/01moynul/containerhub-golang/internal/auth"
	"github.com/01moynul/containerhub-golang/internal/collab"
	"github.com/01moynul/containerhub-golang/internal/repository"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Repo       *repository.Repository
	Tokens     *auth.TokenManager
	Collabs    *collab.Service
	Containers *admission.Service
	AIService  *ai.AIService // nil when the assistant is not configured

	UploadDir string
	BaseURL   string
}
