// Package file provides upload persistence and HTTP handlers for file-related operations.
package file

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

// Object name prefixes for the remote storage backend.
const (
	ResumeObjectPrefix = "resumes"
	LogoObjectPrefix   = "logos"
	AvatarObjectPrefix = "avatars"
)

// FileController handles file related endpoints
type FileController struct {
	DB *database.DBinstanceStruct
}

// NewFileController creates a new instance of FileController
func NewFileController(db *database.DBinstanceStruct) *FileController {
	return &FileController{
		DB: db,
	}
}

// GetFile serves the content of a locally stored upload.
// @Summary Download a stored file by ID
// @Tags File
// @Produce octet-stream
// @Param id path integer true "ID of desired file"
// @Success 200 {file} binary "File content"
// @Failure 404 {object} utilities.ErrorResponse "File not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /files/{id} [get]
func (fc *FileController) GetFile(c *gin.Context) {
	id := c.Param("id")

	var record model.File
	if err := fc.DB.Where("id = ?", id).First(&record).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "File not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve file: %s", err.Error()),
		})
		return
	}

	contentType := mime.TypeByExtension(record.Extension)
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Data(http.StatusOK, contentType, record.Content)
}

// ReadFormFile reads a multipart form file, validating its extension against
// the allowed set. The returned status is the HTTP code to respond with when
// err is non-nil.
func ReadFormFile(c *gin.Context, field string, allowedExts ...string) (content []byte, ext string, status int, err error) {
	rawFile, err := c.FormFile(field)
	var maxBytesError *http.MaxBytesError
	if errors.As(err, &maxBytesError) {
		return nil, "", http.StatusRequestEntityTooLarge, err
	}
	if err != nil {
		return nil, "", http.StatusBadRequest, fmt.Errorf("missing %s file: %s", field, err.Error())
	}

	ext = strings.ToLower(filepath.Ext(rawFile.Filename))
	if !utilities.Contains(allowedExts, ext) {
		return nil, "", http.StatusUnsupportedMediaType, fmt.Errorf("unsupported file extension: %s", ext)
	}

	f, err := rawFile.Open()
	if err != nil {
		return nil, "", http.StatusInternalServerError, fmt.Errorf("cannot open file: %s", err.Error())
	}
	defer f.Close()

	content, err = io.ReadAll(f)
	if err != nil {
		return nil, "", http.StatusInternalServerError, fmt.Errorf("cannot read file: %s", err.Error())
	}

	return content, ext, http.StatusOK, nil
}
