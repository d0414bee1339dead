// Package company provides HTTP handlers for recruiter company profiles.
package company

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

var logoExtensions = []string{".png", ".jpg", ".jpeg", ".gif", ".svg"}

// CompanyController handles company related endpoints
type CompanyController struct {
	DB    *database.DBinstanceStruct
	Files *file.Store
}

// NewCompanyController creates a new instance of CompanyController.
func NewCompanyController(db *database.DBinstanceStruct, files *file.Store) *CompanyController {
	return &CompanyController{
		DB:    db,
		Files: files,
	}
}

// GetCompanies lists the requesting recruiter's companies, newest first.
// @Summary Get own companies
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Company "Companies owned by the requester"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies [get]
func (cc *CompanyController) GetCompanies(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	companies := []model.Company{}
	if err := cc.DB.Where("recruiter_id = ?", user.ID).
		Order("created_at DESC").
		Find(&companies).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch companies: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, companies)
}

// CreateCompany registers a company profile with an optional logo upload.
// @Summary Create a company profile
// @Tags Company
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param name formData string true "Company name"
// @Param location formData string false "Company location"
// @Param website formData string false "Company website"
// @Param description formData string false "Company description"
// @Param logo formData file false "Company logo image"
// @Success 201 {object} model.Company "Created company"
// @Failure 400 {object} utilities.ErrorResponse "Missing name"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 413 {object} utilities.ErrorResponse "File size exceeds the limit"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies [post]
func (cc *CompanyController) CreateCompany(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Company name must be provided"})
		return
	}

	company := model.Company{
		RecruiterID: user.ID,
		Name:        name,
		Location:    c.PostForm("location"),
		Website:     c.PostForm("website"),
		Description: c.PostForm("description"),
	}

	if _, err := c.FormFile("logo"); err == nil {
		content, ext, status, err := file.ReadFormFile(c, "logo", logoExtensions...)
		if err != nil {
			c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		ref, err := cc.Files.Persist(content, ext, file.LogoObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to store logo: %s", err.Error()),
			})
			return
		}
		company.Logo = ref
	}

	if err := cc.DB.Create(&company).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create company: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanyByID returns a single company. Only its owning recruiter or an
// admin may view it.
// @Summary Get a company by ID
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the company"
// @Success 200 {object} model.Company "Requested company"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [get]
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, status, err := cc.ownedCompany(c.Param("id"), user)
	if err != nil {
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, company)
}

type companyUpdate struct {
	Name        string `form:"name"`
	Location    string `form:"location"`
	Website     string `form:"website"`
	Description string `form:"description"`
}

// UpdateCompany applies non-empty form fields to an owned company. A new logo
// upload replaces the old one; a locally stored old logo is deleted.
// @Summary Update a company profile
// @Tags Company
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the company"
// @Param name formData string false "Company name"
// @Param location formData string false "Company location"
// @Param website formData string false "Company website"
// @Param description formData string false "Company description"
// @Param logo formData file false "Replacement logo image"
// @Success 200 {object} model.Company "Updated company"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 413 {object} utilities.ErrorResponse "File size exceeds the limit"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [put]
func (cc *CompanyController) UpdateCompany(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, status, err := cc.ownedCompany(c.Param("id"), user)
	if err != nil {
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input companyUpdate
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	oldLogo := company.Logo
	replacedLogo := false
	if _, err := c.FormFile("logo"); err == nil {
		content, ext, status, err := file.ReadFormFile(c, "logo", logoExtensions...)
		if err != nil {
			c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
			return
		}
		ref, err := cc.Files.Persist(content, ext, file.LogoObjectPrefix)
		if err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to store logo: %s", err.Error()),
			})
			return
		}
		company.Logo = ref
		replacedLogo = true
	}

	utilities.MergeNonEmpty(&company, &input)

	if err := cc.DB.Model(&model.Company{}).Where("id = ?", company.ID).Updates(map[string]interface{}{
		"name":        company.Name,
		"location":    company.Location,
		"website":     company.Website,
		"description": company.Description,
		"logo":        company.Logo,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update company: %s", err.Error()),
		})
		return
	}

	if replacedLogo && !oldLogo.IsZero() {
		if err := cc.Files.DeleteLocal(oldLogo); err != nil {
			// Row update already succeeded; an orphaned upload is tolerable.
			log.Printf("failed to delete replaced logo %s: %v", oldLogo.Raw, err)
		}
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany removes an owned company profile. Jobs referencing the
// company by name are untouched.
// @Summary Delete a company profile
// @Tags Company
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the company"
// @Success 200 {object} utilities.MessageResponse "Company deleted"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the owner"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{id} [delete]
func (cc *CompanyController) DeleteCompany(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, status, err := cc.ownedCompany(c.Param("id"), user)
	if err != nil {
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := cc.DB.Delete(&model.Company{}, company.ID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete company: %s", err.Error()),
		})
		return
	}

	if !company.Logo.IsZero() {
		_ = cc.Files.DeleteLocal(company.Logo)
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Company deleted"})
}

// ownedCompany loads a company and checks the requester may act on it.
func (cc *CompanyController) ownedCompany(id string, user model.User) (model.Company, int, error) {
	var company model.Company
	if err := cc.DB.Where("id = ?", id).First(&company).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return company, http.StatusNotFound, errors.New("Company not found")
		}
		return company, http.StatusInternalServerError, fmt.Errorf("Failed to retrieve company: %s", err.Error())
	}

	if company.RecruiterID != user.ID && user.Role != model.RoleAdmin {
		return company, http.StatusForbidden, errors.New("You are not allowed to access this company")
	}

	return company, http.StatusOK, nil
}
