package file

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skillsync-backend/internal/database"
	"skillsync-backend/internal/model"
	"skillsync-backend/internal/testutil"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	var err error
	var fileTeardown func(context.Context) error
	fileTeardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	m.Run()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if fileTeardown != nil {
		_ = fileTeardown(ctx)
	}
}

func fileRouter() *gin.Engine {
	r := gin.Default()
	fc := NewFileController(testDB)
	r.GET("/files/:id", fc.GetFile)
	return r
}

func TestPersistAndServeLocalFile(t *testing.T) {
	store := NewStore(testDB, nil)
	content := []byte("%PDF-1.4 stored resume")

	ref, err := store.Persist(content, ".pdf", ResumeObjectPrefix)
	require.NoError(t, err)
	assert.Equal(t, model.FileKindLocal, ref.Kind)
	require.True(t, strings.HasPrefix(ref.Raw, "/api/v1/files/"))

	r := fileRouter()
	endpoint := strings.TrimPrefix(ref.Raw, "/api/v1")
	rec, _ := testutil.MakeJSONRequest(nil, "", r, endpoint, http.MethodGet)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, content, rec.Body.Bytes())
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
}

func TestGetFileNotFound(t *testing.T) {
	r := fileRouter()
	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/files/999999", http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLocal(t *testing.T) {
	store := NewStore(testDB, nil)

	ref, err := store.Persist([]byte("logo bytes"), ".png", LogoObjectPrefix)
	require.NoError(t, err)
	require.NoError(t, store.DeleteLocal(ref))

	r := fileRouter()
	endpoint := strings.TrimPrefix(ref.Raw, "/api/v1")
	rec, _ := testutil.MakeJSONRequest(nil, "", r, endpoint, http.MethodGet)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteLocalIgnoresRemote(t *testing.T) {
	store := NewStore(testDB, nil)
	assert.NoError(t, store.DeleteLocal(model.RemoteFileRef("https://storage.googleapis.com/bucket/logos/x.png")))
}
