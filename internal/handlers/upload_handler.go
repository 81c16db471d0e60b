package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/01moynul/containerhub-golang/internal/apperr"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const maxUploadBytes = 5 << 20

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
	".gif":  true,
}

// UploadFile handles POST /v1/uploads (Supplier Only).
// It stores a product image under UploadDir and returns its public URL,
// which the client then sends as a product's imageUrl.
func (h *Handlers) UploadFile(c *gin.Context) {
	// 1. Get the file from the request
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, apperr.Validation("No file uploaded"))
		return
	}
	if file.Size > maxUploadBytes {
		respondError(c, apperr.Validation("File is larger than 5 MB"))
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !imageExtensions[ext] {
		respondError(c, apperr.Validation("Only jpg, png, webp and gif images are accepted"))
		return
	}

	// 2. Make sure the upload directory exists
	if err := os.MkdirAll(h.UploadDir, 0o755); err != nil {
		respondError(c, err)
		return
	}

	// 3. Save under a generated name (uuid + extension)
	newFilename := uuid.New().String() + ext
	if err := c.SaveUploadedFile(file, filepath.Join(h.UploadDir, newFilename)); err != nil {
		respondError(c, err)
		return
	}

	// 4. Return the public URL
	publicURL := fmt.Sprintf("%s/uploads/%s", strings.TrimRight(h.BaseURL, "/"), newFilename)
	c.JSON(http.StatusCreated, gin.H{"url": publicURL})
}
