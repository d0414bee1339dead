package job

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsync-backend/internal/model"
	"skillsync-backend/internal/testutil"
)

// TestFallbackSeeding empties the board and checks that the public feed
// repopulates it exactly once. Runs last in this package; it wipes and
// restores the seeded jobs.
func TestFallbackSeeding(t *testing.T) {
	require.NoError(t, testDB.Where("1 = 1").Delete(&model.Application{}).Error)
	require.NoError(t, testDB.Where("1 = 1").Delete(&model.Job{}).Error)

	r := jobRouter()

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/public-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)

	var jobs []model.Job
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &jobs))
	assert.Len(t, jobs, 6, "empty board should be seeded with the fallback set")

	var total int64
	require.NoError(t, testDB.Model(&model.Job{}).Count(&total).Error)
	assert.EqualValues(t, 6, total)

	// A second request must not seed again.
	rec, _ = testutil.MakeJSONRequest(nil, "", r, "/public-jobs", http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, testDB.Model(&model.Job{}).Count(&total).Error)
	assert.EqualValues(t, 6, total, "seeding must be idempotent")

	// Fallback jobs belong to an existing account.
	var owners int64
	require.NoError(t, testDB.Model(&model.User{}).Where("id = ?", jobs[0].PostedByID).Count(&owners).Error)
	assert.EqualValues(t, 1, owners)
}
