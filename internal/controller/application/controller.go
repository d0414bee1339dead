// Package application provides HTTP handlers for job application operations.
package application

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/mailer"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/utilities"
)

// pgUniqueViolation is the Postgres error code raised by the composite
// (user_id, job_id) unique index on duplicate submissions.
const pgUniqueViolation = "23505"

// ApplicationController handles job application related endpoints
type ApplicationController struct {
	DB     *database.DBinstanceStruct
	Files  *file.Store
	Mailer *mailer.Mailer
}

// NewApplicationController creates a new instance of ApplicationController.
func NewApplicationController(db *database.DBinstanceStruct, files *file.Store, m *mailer.Mailer) *ApplicationController {
	return &ApplicationController{
		DB:     db,
		Files:  files,
		Mailer: m,
	}
}

// Apply handles the submission of a new job application by a candidate.
// @Summary Submit a job application with a resume file
// @Description Only candidates can access this endpoint. One application per job.
// @Tags Application
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param job_id formData integer true "ID of the job to apply for"
// @Param resume formData file true "Resume file (.pdf)"
// @Success 201 {object} model.Application "Successfully applied"
// @Failure 400 {object} utilities.ErrorResponse "Missing resume or invalid job id"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied to this job"
// @Failure 413 {object} utilities.ErrorResponse "File size exceeds the limit"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /apply [post]
func (ac *ApplicationController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID := c.PostForm("job_id")
	if jobID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "job_id must be provided"})
		return
	}

	content, ext, status, err := file.ReadFormFile(c, "resume", ".pdf")
	if err != nil {
		if status == http.StatusBadRequest {
			c.JSON(status, utilities.ErrorResponse{Error: "Please upload a resume (PDF)"})
			return
		}
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	// The job must exist at submission time; its title and company are
	// snapshotted onto the application.
	var job model.Job
	if err := ac.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	resumeRef, err := ac.Files.Persist(content, ext, file.ResumeObjectPrefix)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to store resume: %s", err.Error()),
		})
		return
	}

	application := model.Application{
		UserID:   user.ID,
		JobID:    job.ID,
		JobTitle: job.Title,
		Company:  job.Company,
		Status:   model.ApplicationStatusApplied,
		Resume:   resumeRef,
	}

	if err := ac.DB.Create(&application).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			c.JSON(http.StatusConflict, utilities.ErrorResponse{
				Error: "You have already applied for this job",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to create application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusCreated, application)
}

// GetMyApplications lists the requesting user's applications, newest first.
// @Summary Get own applications
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Application "Own applications, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications [get]
func (ac *ApplicationController) GetMyApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Where("user_id = ?", user.ID).
		Order("applied_at DESC").
		Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

// GetJobApplications lists applications submitted to a job. Only the job's
// owning recruiter or an admin may see them.
// @Summary Get applications for a job
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job"
// @Success 200 {array} model.Application "Applications for the job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/applications [get]
func (ac *ApplicationController) GetJobApplications(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var job model.Job
	if err := ac.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if job.PostedByID != user.ID && user.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to view applications for this job",
		})
		return
	}

	applications := []model.Application{}
	if err := ac.DB.Where("job_id = ?", job.ID).Find(&applications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch applications: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, applications)
}

type statusInput struct {
	Status string `json:"status" binding:"required"`
}

// UpdateApplicationStatus moves an application from Applied to Accepted or
// Rejected. The transition is one-way and only the job's owning recruiter
// may trigger it. The applicant is notified by best-effort email.
// @Summary Update application status
// @Tags Application
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Param Status body statusInput true "New status: Accepted or Rejected"
// @Success 200 {object} model.Application "Updated application"
// @Failure 400 {object} utilities.ErrorResponse "Invalid status or already finalized"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the job owner"
// @Failure 404 {object} utilities.ErrorResponse "Application or job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id}/status [put]
func (ac *ApplicationController) UpdateApplicationStatus(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input statusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Status must be provided"})
		return
	}
	if input.Status != model.ApplicationStatusAccepted && input.Status != model.ApplicationStatusRejected {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Status %q not allowed", input.Status),
		})
		return
	}

	id := c.Param("id")

	var application model.Application
	if err := ac.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	var job model.Job
	if err := ac.DB.Where("id = ?", application.JobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job no longer exists"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	if job.PostedByID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to update this application",
		})
		return
	}

	if application.Status != model.ApplicationStatusApplied {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Application already %s", application.Status),
		})
		return
	}

	application.Status = input.Status
	if err := ac.DB.Model(&model.Application{}).Where("id = ?", application.ID).
		Update("status", application.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update application: %s", err.Error()),
		})
		return
	}

	ac.notifyApplicant(application)

	c.JSON(http.StatusOK, application)
}

// notifyApplicant emails the candidate about the status change. Failures are
// logged by the mailer and never reach the caller.
func (ac *ApplicationController) notifyApplicant(application model.Application) {
	var applicant model.User
	if err := ac.DB.Where("id = ?", application.UserID).First(&applicant).Error; err != nil {
		return
	}
	if applicant.Email == "" {
		return
	}

	var subject, body string
	switch application.Status {
	case model.ApplicationStatusAccepted:
		subject = fmt.Sprintf("Offer: %s at %s", application.JobTitle, application.Company)
		body = fmt.Sprintf("<h1>Congratulations!</h1><p>You have been accepted for <strong>%s</strong>.</p>", application.JobTitle)
	case model.ApplicationStatusRejected:
		subject = fmt.Sprintf("Update: %s", application.JobTitle)
		body = fmt.Sprintf("<p>Thank you for your interest in <strong>%s</strong>. We have moved forward with other candidates.</p>", application.JobTitle)
	default:
		return
	}

	ac.Mailer.SendAsync(applicant.Email, subject, body)
}

// Withdraw deletes the requesting user's own application.
// @Summary Withdraw an application
// @Tags Application
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the application"
// @Success 200 {object} utilities.MessageResponse "Application withdrawn"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not the applicant"
// @Failure 404 {object} utilities.ErrorResponse "Application not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /applications/{id} [delete]
func (ac *ApplicationController) Withdraw(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	var application model.Application
	if err := ac.DB.Where("id = ?", id).First(&application).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Application not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve application: %s", err.Error()),
		})
		return
	}

	if application.UserID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to withdraw this application",
		})
		return
	}

	if err := ac.DB.Delete(&application).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete application: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Application withdrawn"})
}
