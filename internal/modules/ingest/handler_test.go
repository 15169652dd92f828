package ingest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/database"
	"github.com/netplus/core/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	router := gin.New()
	api := router.Group("/api")
	NewHandler(NewService(db)).RegisterRoutes(api, passthroughAuth)
	return router, db
}

func passthroughAuth(c *gin.Context) { c.Next() }

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestCreateTitleRoundTrip(t *testing.T) {
	router, db := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest/titles", gin.H{
		"name":        "  Demo  ",
		"description": "demo",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	id, _ := body["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, "Demo", body["name"])
	assert.Equal(t, "demo", body["description"])

	createdAt, _ := body["created_at"].(string)
	_, err := time.Parse(time.RFC3339Nano, createdAt)
	assert.NoError(t, err)

	var row models.TitleModel
	require.NoError(t, db.First(&row, "id = ?", id).Error)
	assert.Equal(t, "Demo", row.Name)

	// No dedup: identical payloads create distinct rows.
	w2 := doJSON(t, router, http.MethodPost, "/api/ingest/titles", gin.H{
		"name":        "  Demo  ",
		"description": "demo",
	})
	require.Equal(t, http.StatusCreated, w2.Code)
	assert.NotEqual(t, id, decodeBody(t, w2)["id"])
}

func TestCreateTitleValidation(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest/titles", gin.H{})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/ingest/titles", gin.H{"name": "   "})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	details, _ := body["details"].(map[string]interface{})
	require.NotNil(t, details)
	assert.Equal(t, "name", details["field"])
}

func TestCreateEpisode(t *testing.T) {
	router, db := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest/episodes", gin.H{
		"title_id":       "missing-title",
		"season":         1,
		"episode_number": 1,
		"name":           "Ep1",
		"duration_ms":    100000,
	})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	details, _ := body["details"].(map[string]interface{})
	require.NotNil(t, details)
	assert.Equal(t, "title_id", details["field"])
	assert.Equal(t, "Title not found", details["reason"])

	title := models.TitleModel{Name: "Demo"}
	require.NoError(t, db.Create(&title).Error)

	w = doJSON(t, router, http.MethodPost, "/api/ingest/episodes", gin.H{
		"title_id":       title.ID,
		"season":         1,
		"episode_number": 1,
		"name":           "Ep1",
		"duration_ms":    100000,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, title.ID, body["title_id"])
	assert.Equal(t, "Ep1", body["name"])

	var count int64
	require.NoError(t, db.Model(&models.EpisodeModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestBulkSubtitleLines(t *testing.T) {
	router, db := setupTest(t)

	title := models.TitleModel{Name: "Demo"}
	require.NoError(t, db.Create(&title).Error)
	episode := models.EpisodeModel{TitleID: title.ID, Season: 1, EpisodeNumber: 1, Name: "Ep1", DurationMs: 100000}
	require.NoError(t, db.Create(&episode).Error)

	lines := []gin.H{
		{"episode_id": episode.ID, "start_ms": 0, "end_ms": 900, "text": "hello"},
		{"episode_id": episode.ID, "start_ms": 1000, "end_ms": 1200, "text": "world", "speaker_text": "A"},
		{"episode_id": episode.ID, "start_ms": 1300, "end_ms": 1500, "text": "again"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/ingest/subtitle-lines:bulk", gin.H{"lines": lines})
	require.Equal(t, http.StatusAccepted, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 3, body["inserted_count"])
	assert.EqualValues(t, 3, body["queued_embedding_jobs"])

	var count int64
	require.NoError(t, db.Model(&models.SubtitleLineModel{}).Count(&count).Error)
	assert.EqualValues(t, 3, count)
}

func TestBulkSubtitleLinesAllOrNothing(t *testing.T) {
	router, db := setupTest(t)

	title := models.TitleModel{Name: "Demo"}
	require.NoError(t, db.Create(&title).Error)
	episode := models.EpisodeModel{TitleID: title.ID, Season: 1, EpisodeNumber: 1, Name: "Ep1", DurationMs: 100000}
	require.NoError(t, db.Create(&episode).Error)

	// Two missing episode ids; the smallest one must be named.
	lines := []gin.H{
		{"episode_id": episode.ID, "start_ms": 0, "end_ms": 900, "text": "ok"},
		{"episode_id": "zzz-missing", "start_ms": 0, "end_ms": 900, "text": "bad"},
		{"episode_id": "aaa-missing", "start_ms": 0, "end_ms": 900, "text": "bad"},
	}
	w := doJSON(t, router, http.MethodPost, "/api/ingest/subtitle-lines:bulk", gin.H{"lines": lines})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	details, _ := body["details"].(map[string]interface{})
	require.NotNil(t, details)
	assert.Equal(t, "episode_id", details["field"])
	assert.Equal(t, "Episode not found: aaa-missing", details["reason"])

	var count int64
	require.NoError(t, db.Model(&models.SubtitleLineModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count, "failed batch must insert nothing")
}

func TestBulkSubtitleLinesEmptyBatch(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/ingest/subtitle-lines:bulk", gin.H{"lines": []gin.H{}})
	require.Equal(t, http.StatusAccepted, w.Code)
	body := decodeBody(t, w)
	assert.EqualValues(t, 0, body["inserted_count"])
	assert.EqualValues(t, 0, body["queued_embedding_jobs"])
}
