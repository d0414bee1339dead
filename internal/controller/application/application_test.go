package application

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
	"skillsync-backend/internal/controller/file"
	"skillsync-backend/internal/database"
	"skillsync-backend/internal/mailer"
	"skillsync-backend/internal/middleware"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

var resumePDF = []byte("%PDF-1.4 fake resume content")

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var appTeardown func(context.Context) error
	appTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if appTeardown != nil {
		_ = appTeardown(ctx)
	}
}

func appRouter() *gin.Engine {
	r := gin.Default()
	ac := NewApplicationController(testDB, file.NewStore(testDB, nil), mailer.NewFromEnv())

	r.POST("/apply", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCandidate), ac.Apply)
	r.GET("/applications", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCandidate), ac.GetMyApplications)
	r.DELETE("/applications/:id", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleCandidate), ac.Withdraw)
	r.GET("/jobs/:id/applications", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), ac.GetJobApplications)
	r.PUT("/applications/:id/status", middleware.RequireAuth(testDB), middleware.CheckRole(model.RoleRecruiter, model.RoleAdmin), ac.UpdateApplicationStatus)

	return r
}

func applyTo(t *testing.T, r *gin.Engine, token string, jobID uint) (int, map[string]interface{}) {
	t.Helper()
	rec, resp := testutil.MakeMultipartRequest(
		map[string]string{"job_id": fmt.Sprint(jobID)},
		[]testutil.FormFile{{Field: "resume", Filename: "resume.pdf", Content: resumePDF}},
		token, r, "/apply", http.MethodPost,
	)
	return rec.Code, resp
}

func TestApplyAndDuplicate(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	code, resp := applyTo(t, r, token, database.TestJob1.ID)
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, database.TestJob1.Title, resp["job_title"])
	assert.Equal(t, database.TestJob1.Company, resp["company"])
	assert.Equal(t, model.ApplicationStatusApplied, resp["status"])

	// The same candidate cannot apply twice.
	code, resp = applyTo(t, r, token, database.TestJob1.ID)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, resp["error"], "already applied")

	var count int64
	testDB.Model(&model.Application{}).
		Where("user_id = ? AND job_id = ?", database.TestCandidate1.ID, database.TestJob1.ID).
		Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestApplyWithoutResume(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	rec, resp := testutil.MakeMultipartRequest(
		map[string]string{"job_id": fmt.Sprint(database.TestJob1.ID)},
		nil, token, r, "/apply", http.MethodPost,
	)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "resume")
}

func TestApplyWrongExtension(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	rec, _ := testutil.MakeMultipartRequest(
		map[string]string{"job_id": fmt.Sprint(database.TestJob1.ID)},
		[]testutil.FormFile{{Field: "resume", Filename: "resume.exe", Content: resumePDF}},
		token, r, "/apply", http.MethodPost,
	)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestApplyJobNotFound(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	code, _ := applyTo(t, r, token, 999999)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestApplyRejectsRecruiter(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	code, _ := applyTo(t, r, token, database.TestJob1.ID)
	assert.Equal(t, http.StatusForbidden, code)
}

func TestGetMyApplications(t *testing.T) {
	token, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	rec, _ := testutil.MakeJSONRequest(nil, token, r, "/applications", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var applications []model.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applications))
	require.NotEmpty(t, applications)
	for _, a := range applications {
		assert.Equal(t, database.TestCandidate1.ID, a.UserID)
	}
}

func TestGetJobApplicationsOwnership(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	adminToken, err := auth.GetAccessToken(t, testDB, database.TestAdminUser.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	endpoint := fmt.Sprintf("/jobs/%d/applications", database.TestJob1.ID)

	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r, endpoint, http.MethodGet)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, ownerToken, r, endpoint, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	var applications []model.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &applications))
	assert.NotEmpty(t, applications)

	rec, _ = testutil.MakeJSONRequest(nil, adminToken, r, endpoint, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUpdateApplicationStatus(t *testing.T) {
	ownerToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestRecruiter2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	var application model.Application
	require.NoError(t, testDB.
		Where("user_id = ? AND job_id = ?", database.TestCandidate1.ID, database.TestJob1.ID).
		First(&application).Error)

	endpoint := fmt.Sprintf("/applications/%d/status", application.ID)

	// Unknown status value.
	rec, _ := testutil.MakeJSONRequest(gin.H{"status": "Hired"}, ownerToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// A recruiter that does not own the job.
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted}, otherToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, resp := testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusAccepted}, ownerToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.ApplicationStatusAccepted, resp["status"])

	// The transition is one-way.
	rec, _ = testutil.MakeJSONRequest(gin.H{"status": model.ApplicationStatusRejected}, ownerToken, r, endpoint, http.MethodPut)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var reloaded model.Application
	require.NoError(t, testDB.First(&reloaded, application.ID).Error)
	assert.Equal(t, model.ApplicationStatusAccepted, reloaded.Status)
}

func TestWithdraw(t *testing.T) {
	ownToken, err := auth.GetAccessToken(t, testDB, database.TestCandidate2.Email, database.TestSeedPassword)
	require.NoError(t, err)
	otherToken, err := auth.GetAccessToken(t, testDB, database.TestCandidate1.Email, database.TestSeedPassword)
	require.NoError(t, err)
	r := appRouter()

	code, resp := applyTo(t, r, ownToken, database.TestJob3.ID)
	require.Equal(t, http.StatusCreated, code)
	id := int(resp["id"].(float64))

	endpoint := fmt.Sprintf("/applications/%d", id)

	rec, _ := testutil.MakeJSONRequest(nil, otherToken, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = testutil.MakeJSONRequest(nil, ownToken, r, endpoint, http.MethodDelete)
	assert.Equal(t, http.StatusOK, rec.Code)

	var count int64
	testDB.Model(&model.Application{}).Where("id = ?", id).Count(&count)
	assert.Zero(t, count)
}
