package controllers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/bloggapi/blogg/config"
	"github.com/bloggapi/blogg/models"
	"github.com/bloggapi/blogg/routes"
	"github.com/bloggapi/blogg/stores"
)

const (
	testSecret   = "handler-test-secret"
	testIssuer   = "blogg"
	testAudience = "blogg-clients"
)

// setupRouter builds the real router on an in-memory database. Rate
// limiting and registration throttling are off so tests only exercise
// endpoint semantics.
func setupRouter(t *testing.T) (http.Handler, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.RoleClaim{},
		&models.Post{},
		&models.Comment{},
		&models.Like{},
	))

	cfg := config.AppConfig{
		GinMode:        "test",
		JWTSecret:      testSecret,
		JWTIssuer:      testIssuer,
		JWTAudience:    testAudience,
		AllowedOrigins: []string{"*"},
	}
	return routes.SetupRouter(cfg, db), db
}

func doJSON(t *testing.T, handler http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func doJSONAuthed(t *testing.T, handler http.Handler, target, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (status, message string) {
	t.Helper()
	var resp struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Status, resp.Message
}

func seedPost(t *testing.T, db *gorm.DB) *models.Post {
	t.Helper()
	post := &models.Post{
		Title:    "Existing post",
		Author:   "alice",
		Category: "general",
		Body:     "Already published.",
		Status:   models.PostApproved,
	}
	require.NoError(t, stores.NewContentStore(db).CreatePost(post))
	return post
}

func seedUser(t *testing.T, db *gorm.DB, username, password string, roleNames ...string) *models.User {
	t.Helper()
	creds := stores.NewCredentialStore(db)
	user, err := creds.CreateUser(username, username+"@example.com", password)
	require.NoError(t, err)
	for _, name := range roleNames {
		role, err := creds.FindRoleByName(name)
		if err != nil {
			role, err = creds.CreateRole(name)
			require.NoError(t, err)
		}
		require.NoError(t, creds.AssignRoleToUser(user, role))
	}
	return user
}
