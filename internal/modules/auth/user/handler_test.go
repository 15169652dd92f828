package user

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/database"
	"github.com/netplus/core/internal/middleware"
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
	NewHandler(NewService(db)).RegisterRoutes(api, middleware.Auth(db))
	return router, db
}

func doJSON(t *testing.T, router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
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

func TestSignupLoginMe(t *testing.T) {
	router, db := setupTest(t)

	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name":     "Chat User",
		"email":    "chat-user@example.com",
		"password": "secure-pass-123",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	body := decodeBody(t, w)
	require.NotEmpty(t, body["token"])
	u, _ := body["user"].(map[string]interface{})
	require.NotNil(t, u)
	assert.NotEmpty(t, u["id"])
	assert.Equal(t, "chat-user@example.com", u["email"])

	// Password is stored hashed, never verbatim.
	var row models.UserModel
	require.NoError(t, db.First(&row, "email = ?", "chat-user@example.com").Error)
	assert.NotEqual(t, "secure-pass-123", row.Password)

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "chat-user@example.com",
		"password": "secure-pass-123",
	})
	require.Equal(t, http.StatusOK, w.Code)
	token, _ := decodeBody(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, u["id"], decodeBody(t, w)["id"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	router, _ := setupTest(t)

	payload := gin.H{"name": "A", "email": "dup@example.com", "password": "secure-pass-123"}
	w := doJSON(t, router, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, router, http.MethodPost, "/api/auth/signup", "", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	details, _ := body["details"].(map[string]interface{})
	require.NotNil(t, details)
	assert.Equal(t, "email", details["field"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	router, _ := setupTest(t)

	doJSON(t, router, http.MethodPost, "/api/auth/signup", "", gin.H{
		"name": "B", "email": "b@example.com", "password": "secure-pass-123",
	})

	w := doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "b@example.com", "password": "wrong-password",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "HTTP_ERROR", decodeBody(t, w)["code"])

	w = doJSON(t, router, http.MethodPost, "/api/auth/login", "", gin.H{
		"email": "nobody@example.com", "password": "whatever-pass",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestMeRequiresAuth(t *testing.T) {
	router, _ := setupTest(t)

	w := doJSON(t, router, http.MethodGet, "/api/auth/me", "", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, router, http.MethodGet, "/api/auth/me", "garbage-token", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
