// Package job provides HTTP handlers for job listing, search, recommendation
// and saved-job operations.
package job

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/recommend"
	"skillsync-backend/internal/utilities"
)

// Page sizes for the different feeds.
const (
	recommendationLimit = 20
	publicLimit         = 6
	publicSearchLimit   = 12
)

// JobController handles job related endpoints
type JobController struct {
	DB *database.DBinstanceStruct
}

// NewJobController creates a new instance of JobController
func NewJobController(db *database.DBinstanceStruct) *JobController {
	return &JobController{
		DB: db,
	}
}

// skillList accepts either a JSON string of comma-separated skills or a JSON
// array, normalizing at the boundary.
type skillList []string

func (s *skillList) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*s = splitSkills(raw)
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	trimmed := make([]string, 0, len(list))
	for _, item := range list {
		if item = strings.TrimSpace(item); item != "" {
			trimmed = append(trimmed, item)
		}
	}
	*s = trimmed
	return nil
}

func splitSkills(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	skills := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			skills = append(skills, p)
		}
	}
	return skills
}

type jobInput struct {
	Title          string    `json:"title" binding:"required"`
	Company        string    `json:"company" binding:"required"`
	Location       string    `json:"location" binding:"required"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	RequiredSkills skillList `json:"required_skills"`
}

// jobUpdate mirrors jobInput without required fields, so edits can be partial.
type jobUpdate struct {
	Title          string    `json:"title"`
	Company        string    `json:"company"`
	Location       string    `json:"location"`
	Salary         string    `json:"salary"`
	Description    string    `json:"description"`
	RequiredSkills skillList `json:"required_skills"`
}

// applySearch narrows a job query to rows where title, company, location or
// any required skill contains the term as a case-insensitive substring.
func applySearch(tx *gorm.DB, search string) *gorm.DB {
	if search == "" {
		return tx
	}
	pattern := "%" + search + "%"
	return tx.Where(
		"title ILIKE ? OR company ILIKE ? OR location ILIKE ? OR array_to_string(required_skills, ',') ILIKE ?",
		pattern, pattern, pattern, pattern,
	)
}

// seedIfEmpty inserts the fallback job set when the table is empty, so the
// first feed request is never blank. Callers tolerate this one-time write.
func (jc *JobController) seedIfEmpty(c *gin.Context) bool {
	if _, err := database.SeedFallbackJobs(jc.DB.DB); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to seed jobs: %s", err.Error()),
		})
		return false
	}
	return true
}

// GetPublicJobs fetches the newest jobs for the unauthenticated landing feed.
// @Summary Get newest public jobs
// @Description Returns 6 jobs, or 12 when a search term is present. Seeds a fallback set when the board is empty.
// @Tags Job
// @Produce json
// @Param search query string false "Case-insensitive substring matched against title, company, location and skills"
// @Success 200 {array} model.Job "Newest public jobs"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /public-jobs [get]
func (jc *JobController) GetPublicJobs(c *gin.Context) {
	if !jc.seedIfEmpty(c) {
		return
	}

	search := c.Query("search")
	limit := publicLimit
	if search != "" {
		limit = publicSearchLimit
	}

	jobs := []model.Job{}
	if err := applySearch(jc.DB.Model(&model.Job{}), search).
		Order("posted_at DESC").
		Limit(limit).
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}

// GetRecommendations fetches the newest jobs annotated with the requesting
// user's skill match percentage.
// @Summary Get personalized job feed
// @Description Returns the 20 newest jobs matching the optional search term, each scored against the user's skills
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param search query string false "Case-insensitive substring matched against title, company, location and skills"
// @Success 200 {array} model.ScoredJob "Scored job feed"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /recommendations [get]
func (jc *JobController) GetRecommendations(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if !jc.seedIfEmpty(c) {
		return
	}

	jobs := []model.Job{}
	if err := applySearch(jc.DB.Model(&model.Job{}), c.Query("search")).
		Order("posted_at DESC").
		Limit(recommendationLimit).
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, recommend.ScoreJobs(user.Skills, jobs))
}

// GetStats reports board-wide and per-user application counts.
// @Summary Get dashboard statistics
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {object} map[string]int64 "totalJobs, myApps and acceptedApps counts"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /stats [get]
func (jc *JobController) GetStats(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var totalJobs, myApps, acceptedApps int64
	counts := []struct {
		dst *int64
		tx  *gorm.DB
	}{
		{&totalJobs, jc.DB.Model(&model.Job{})},
		{&myApps, jc.DB.Model(&model.Application{}).Where("user_id = ?", user.ID)},
		{&acceptedApps, jc.DB.Model(&model.Application{}).Where("user_id = ? AND status = ?", user.ID, model.ApplicationStatusAccepted)},
	}
	for _, count := range counts {
		if err := count.tx.Count(count.dst).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to count records: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"totalJobs":    totalJobs,
		"myApps":       myApps,
		"acceptedApps": acceptedApps,
	})
}

// GetMyPostedJobs lists the requesting recruiter's jobs with application counts.
// @Summary Get jobs posted by the requesting recruiter
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.PostedJob "Posted jobs, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /my-posted-jobs [get]
func (jc *JobController) GetMyPostedJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs := []model.Job{}
	if err := jc.DB.Where("posted_by_id = ?", user.ID).
		Order("posted_at DESC").
		Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	posted := make([]model.PostedJob, 0, len(jobs))
	for _, job := range jobs {
		var count int64
		if err := jc.DB.Model(&model.Application{}).Where("job_id = ?", job.ID).Count(&count).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to count applications: %s", err.Error()),
			})
			return
		}
		posted = append(posted, model.PostedJob{Job: job, TotalApplied: count})
	}

	c.JSON(http.StatusOK, posted)
}

// GetJobByID fetches a job by its ID from the database
// and returns it as a JSON response.
// @Summary Get job by ID
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} model.Job "Return the job with the specified ID"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [get]
func (jc *JobController) GetJobByID(c *gin.Context) {
	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// CreateJob handles the creation of a new job by a recruiter.
// @Summary Create job based on given json structure
// @Description Only recruiters have access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param Job body jobInput true "Input job information"
// @Success 201 {object} model.Job "Successfully create job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as recruiter"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs [post]
func (jc *JobController) CreateJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var input jobInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	job := model.Job{
		Title:          input.Title,
		Company:        input.Company,
		Location:       input.Location,
		Salary:         input.Salary,
		Description:    input.Description,
		RequiredSkills: []string(input.RequiredSkills),
		PostedByID:     user.ID,
	}
	if err := jc.DB.Create(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprint("Failed to create job: ", err),
		})
		return
	}

	c.JSON(http.StatusCreated, job)
}

// UpdateJob allows a recruiter to update a job they own.
// @Summary Edit job based on given json structure
// @Description Only the recruiter that posted the job has access to this endpoint
// @Tags Job
// @Accept json
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Param Job body jobUpdate true "Fields to change; empty fields are left as-is"
// @Success 200 {object} model.Job "Successfully update job"
// @Failure 400 {object} utilities.ErrorResponse "Invalid job struct"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to edit"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [put]
func (jc *JobController) UpdateJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	// Ownership check precedes any mutation
	if job.PostedByID != user.ID {
		c.JSON(http.StatusForbidden, utilities.ErrorResponse{
			Error: "You are not allowed to edit this job",
		})
		return
	}

	var input jobUpdate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to parse request body: %s", err.Error()),
		})
		return
	}

	updated := model.Job{
		Title:          input.Title,
		Company:        input.Company,
		Location:       input.Location,
		Salary:         input.Salary,
		Description:    input.Description,
		RequiredSkills: []string(input.RequiredSkills),
	}
	utilities.MergeNonEmpty(&job, &updated)

	if err := jc.DB.Model(&model.Job{}).Where("id = ?", job.ID).Updates(map[string]interface{}{
		"title":           job.Title,
		"company":         job.Company,
		"location":        job.Location,
		"salary":          job.Salary,
		"description":     job.Description,
		"required_skills": job.RequiredSkills,
	}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, job)
}

// DeleteJob allows a recruiter to delete a job they own, or an admin to
// delete any job. Applications referencing the job are left untouched.
// @Summary Delete given job ID
// @Description Only the recruiter that owns the job or an admin has access to this endpoint
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of desired job"
// @Success 200 {object} utilities.MessageResponse "Successfully delete job"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Do not have permission to delete this job"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id} [delete]
func (jc *JobController) DeleteJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	id := c.Param("id")

	job := model.Job{}
	if err := jc.DB.Where("id = ?", id).First(&job).Error; err != nil {
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
			Error: "You are not allowed to delete this job",
		})
		return
	}

	if err := jc.DB.Delete(&job).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete job: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Job removed"})
}

// ToggleSavedJob flips membership of a job in the user's saved set.
// @Summary Toggle a job in the saved set
// @Description Saves the job when absent, removes it when present, and reports the new membership
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the job to toggle"
// @Success 200 {object} map[string]interface{} "message and new saved state"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Job not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /jobs/{id}/save [put]
func (jc *JobController) ToggleSavedJob(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid job id"})
		return
	}

	var job model.Job
	if err := jc.DB.Where("id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Job not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve job: %s", err.Error()),
		})
		return
	}

	saved := false
	if utilities.ContainsInt64(user.SavedJobs, jobID) {
		kept := make([]int64, 0, len(user.SavedJobs))
		for _, id := range user.SavedJobs {
			if id != jobID {
				kept = append(kept, id)
			}
		}
		user.SavedJobs = kept
	} else {
		user.SavedJobs = append(user.SavedJobs, jobID)
		saved = true
	}

	if err := jc.DB.Model(&model.User{}).Where("id = ?", user.ID).
		Update("saved_jobs", user.SavedJobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update saved jobs: %s", err.Error()),
		})
		return
	}

	message := "Job removed"
	if saved {
		message = "Job saved"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "saved": saved})
}

// GetSavedJobs lists the jobs in the user's saved set.
// @Summary Get saved jobs
// @Tags Job
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job "Saved jobs"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /saved-jobs [get]
func (jc *JobController) GetSavedJobs(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	jobs := []model.Job{}
	if len(user.SavedJobs) > 0 {
		if err := jc.DB.Where("id IN ?", []int64(user.SavedJobs)).Find(&jobs).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to fetch saved jobs: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, jobs)
}

// AdminGetAllJobs lists every job on the board for the admin dashboard.
// @Summary Get all jobs (admin)
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.Job "All jobs, newest first"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/jobs [get]
func (jc *JobController) AdminGetAllJobs(c *gin.Context) {
	jobs := []model.Job{}
	if err := jc.DB.Order("posted_at DESC").Find(&jobs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch jobs: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, jobs)
}
