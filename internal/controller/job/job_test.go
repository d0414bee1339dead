package job

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsync-backend/internal/auth"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/middleware"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var jobTeardown func(context.Context) error
	jobTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if jobTeardown != nil {
		_ = jobTeardown(ctx)
	}
}

func jobRouter() *gin.Engine {
	r := gin.Default()
	jc := NewJobController(testDB)

	r.GET("/public-jobs", jc.GetPublicJobs)
	r.GET("/recommendations", middleware.RequireAuth(testDB), jc.GetRecommendations)
	r.GET("/stats", middleware.RequireAuth(testDB), jc.GetStats)
	r.GET("/my-posted-jobs", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.GetMyPostedJobs)
	r.GET("/jobs/:id", middleware.RequireAuth(testDB), jc.GetJobByID)
	r.POST("/jobs", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.CreateJob)
	r.PUT("/jobs/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.UpdateJob)
	r.DELETE("/jobs/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), jc.DeleteJob)
	r.PUT("/jobs/:id/save", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCandidate), jc.ToggleSavedJob)
	r.GET("/saved-jobs", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCandidate), jc.GetSavedJobs)
	r.GET("/admin/jobs", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleAdmin), jc.AdminGetAllJobs)

	return r
}

func TestGetPublicJobs(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/public-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.NotEmpty(t, jobs)
	assert.LessOrEqual(t, len(jobs), 6)
}

func TestSearchPublicJobs(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/public-jobs?search=REACT", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	require.NotEmpty(t, jobs)
	for _, job := range jobs {
		assert.NotEqual(t, database.TestJob2.ID, job.ID, "non-matching job leaked into search results")
	}
	found := false
	for _, job := range jobs {
		if job.ID == database.TestJob1.ID {
			found = true
		}
	}
	assert.True(t, found, "case-insensitive search should match the React job")
}

func TestGetRecommendationsScoring(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/recommendations", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var scored []model.ScoredJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scored))
	require.NotEmpty(t, scored)

	byID := map[uint]model.ScoredJob{}
	for _, s := range scored {
		byID[s.ID] = s
	}

	// Candidate holds react and node; one of three required skills matches.
	if s, ok := byID[database.TestJob1.ID]; assert.True(t, ok) {
		assert.Equal(t, 33, s.MatchPercentage)
	}
	// A job without required skills never matches.
	if s, ok := byID[database.TestJob2.ID]; assert.True(t, ok) {
		assert.Equal(t, 0, s.MatchPercentage)
	}
}

func TestGetRecommendationsRequiresAuth(t *testing.T) {
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/recommendations", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetStats(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/stats", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, resp, "totalJobs")
	assert.Contains(t, resp, "myApps")
	assert.Contains(t, resp, "acceptedApps")
}

func TestCreateJob(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, resp := testutil.MakeJSONRequest(gin.H{
		"title":           "QA Engineer",
		"company":         "Acme",
		"location":        "Remote",
		"salary":          "45k",
		"required_skills": "cypress, selenium",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "QA Engineer", resp["title"])

	var created model.Job
	require.NoError(t, testDB.Where("title = ?", "QA Engineer").First(&created).Error)
	assert.Equal(t, database.TestRecruiter1.ID, created.PostedByID)
	assert.Equal(t, []string{"cypress", "selenium"}, []string(created.RequiredSkills))
}

func TestCreateJobRejectsCandidate(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(gin.H{
		"title":    "Sneaky Post",
		"company":  "Acme",
		"location": "Remote",
	}, token, r, "/jobs", http.MethodPost)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	var count int64
	testDB.Model(&model.Job{}).Where("title = ?", "Sneaky Post").Count(&count)
	assert.Zero(t, count, "rejected request must not create a job")
}

func TestUpdateJobOwnership(t *testing.T) {
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	endpoint := fmt.Sprintf("/jobs/%d", database.TestJob1.ID)

	rec, _ := testutil.MakeJSONRequest(gin.H{"salary": "999k"}, otherToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{"salary": "55k"}, ownerToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "55k", resp["salary"])

	var reloaded model.Job
	require.NoError(t, testDB.First(&reloaded, database.TestJob1.ID).Error)
	assert.Equal(t, "55k", reloaded.Salary)
	// Untouched fields survive a partial update.
	assert.Equal(t, database.TestJob1.Title, reloaded.Title)
}

func TestDeleteJob(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	doomed := model.Job{Title: "Doomed Job", Company: "Acme", Location: "Remote", PostedByID: database.TestRecruiter2.ID}
	require.NoError(t, testDB.Create(&doomed).Error)

	// Not the owner, not an admin.
	rec, _ := testutil.MakeJSONRequest(nil, ownerToken, r, fmt.Sprintf("/jobs/%d", doomed.ID), http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Admin may delete anything.
	rec, _ = testutil.MakeJSONRequest(nil, adminToken, r, fmt.Sprintf("/jobs/%d", doomed.ID), http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	testDB.Model(&model.Job{}).Where("id = ?", doomed.ID).Count(&count)
	assert.Zero(t, count)
}

func TestToggleSavedJob(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	endpoint := fmt.Sprintf("/jobs/%d/save", database.TestJob1.ID)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, resp["saved"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/saved-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	var saved []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	require.Len(t, saved, 1)
	assert.Equal(t, database.TestJob1.ID, saved[0].ID)

	// Second toggle removes the bookmark again.
	rec, resp = testutil.MakeJSONRequest(nil, token, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, resp["saved"])

	rec, _ = testutil.MakeJSONRequest(nil, token, r, "/saved-jobs", http.MethodGet)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &saved))
	assert.Empty(t, saved)
}

func TestToggleSavedJobNotFound(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/jobs/999999/save", http.MethodPut)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetJobByIDNotFound(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/jobs/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetMyPostedJobs(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/my-posted-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var posted []model.PostedJob
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posted))
	for _, p := range posted {
		assert.Equal(t, database.TestRecruiter2.ID, p.PostedByID)
	}
}

func TestAdminGetAllJobs(t *testing.T) {
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	candidateToken, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, candidateToken, r, "/admin/jobs", http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, adminToken, r, "/admin/jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}
