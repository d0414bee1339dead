// Package user provides HTTP handlers for profile and admin user management.
package user

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

var avatarExtensions = []string{".png", ".jpg", ".jpeg", ".gif"}

// UserController handles profile and admin user endpoints
type UserController struct {
	DB    *database.DBinstanceStruct
	Files *file.Store
}

// NewUserController creates a new instance of UserController.
func NewUserController(db *database.DBinstanceStruct, files *file.Store) *UserController {
	return &UserController{
		DB:    db,
		Files: files,
	}
}

// GetProfile returns the requesting user's own profile.
// @Summary Get own profile
// @Tags User
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} model.User "Own profile"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /profile [get]
func (uc *UserController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile applies non-empty form fields to the requesting user's
// profile. Avatar and resume uploads replace the previous references;
// locally stored old files are deleted.
// @Summary Update own profile
// @Tags User
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param name formData string false "Display name"
// @Param bio formData string false "Short biography"
// @Param skills formData string false "Comma separated skill list"
// @Param role formData string false "Account role: candidate or recruiter"
// @Param avatar formData file false "Avatar image (.png .jpg .jpeg .gif)"
// @Param resume formData file false "Resume file (.pdf)"
// @Success 200 {object} model.User "Updated profile"
// @Failure 400 {object} utilities.ErrorResponse "Invalid role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size exceeds the limit"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /profile [put]
func (uc *UserController) UpdateProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if name := c.PostForm("name"); name != "" {
		user.Name = name
	}
	if bio := c.PostForm("bio"); bio != "" {
		user.Bio = bio
	}
	if skills, present := c.GetPostForm("skills"); present {
		user.Skills = splitSkills(skills)
	}
	if rawRole := c.PostForm("role"); rawRole != "" {
		role, err := model.ParseRole(rawRole)
		if err != nil || role == model.RoleAdmin {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
				Error: fmt.Sprintf("Role %q not allowed", rawRole),
			})
			return
		}
		user.Role = role
	}

	oldAvatar, oldResume := user.Avatar, user.Resume
	replacedAvatar, replacedResume := false, false

	if _, err := c.FormFile("avatar"); err == nil {
		content, ext, status, err := file.ReadFormFile(c, "avatar", avatarExtensions...)
		if err != nil {
			c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		ref, err := uc.Files.Persist(content, ext, file.AvatarObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to store avatar: %s", err.Error()),
			})
			return
		}
		user.Avatar = ref
		replacedAvatar = true
	}

	if _, err := c.FormFile("resume"); err == nil {
		content, ext, status, err := file.ReadFormFile(c, "resume", ".pdf")
		if err != nil {
			c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		ref, err := uc.Files.Persist(content, ext, file.ResumeObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
			})
			return
		}
		user.Resume = ref
		replacedResume = true
	}

	if err := uc.DB.Model(&model.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"name":   user.Name,
		"bio":    user.Bio,
		"skills": user.Skills,
		"role":   user.Role,
		"avatar": user.Avatar,
		"resume": user.Resume,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update profile: %s", err.Error()),
		})
		return
	}

	if replacedAvatar && !oldAvatar.IsZero() {
		_ = uc.Files.DeleteLocal(oldAvatar)
	}
	if replacedResume && !oldResume.IsZero() {
		_ = uc.Files.DeleteLocal(oldResume)
	}

	c.JSON(http.StatusOK, user)
}

// AdminGetAllUsers lists every account.
// @Summary Get all users (admin)
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.User "All users"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (uc *UserController) AdminGetAllUsers(c *gin.Context) {
	users := []model.User{}
	if err := uc.DB.Order("created_at DESC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch users: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

// AdminDeleteUser removes an account. Jobs and applications created by the
// account are deliberately left in place.
// @Summary Delete a user (admin)
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path string true "UUID of the user"
// @Success 200 {object} utilities.MessageResponse "User deleted"
// @Failure 400 {object} utilities.ErrorResponse "Cannot delete own account"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not an admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{id} [delete]
func (uc *UserController) AdminDeleteUser(c *gin.Context) {
	admin, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")
	if id == admin.ID.String() {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Cannot delete your own account"})
		return
	}

	var target model.User
	if err := uc.DB.Where("id = ?", id).First(&target).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user: %s", err.Error()),
		})
		return
	}

	if err := uc.DB.Delete(&target).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "User deleted"})
}

// splitSkills turns a comma separated string into a trimmed, non-empty list.
func splitSkills(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
