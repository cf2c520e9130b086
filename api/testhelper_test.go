package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/inkwell-labs/blog-platform-backend/auth"
	"github.com/inkwell-labs/blog-platform-backend/database"
	"github.com/inkwell-labs/blog-platform-backend/models"
)

// testEnv is a fully wired router over an in-memory database.
type testEnv struct {
	router http.Handler
	db     database.Database
	gorm   *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(gdb))

	db := database.New(gdb)
	router := newRouter(db, withConfig(map[string]string{
		"JWT_SECRET":           "test-secret",
		"HTTP_REQUEST_LOGGING": "false",
	}))

	return &testEnv{router: router, db: db, gorm: gdb}
}

// do performs a request against the router. An empty token sends no
// Authorization header; a nil body sends no payload.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// signup creates an account through the API and logs it in, returning the
// created user and an access token.
func (e *testEnv) signup(t *testing.T, email, username string) (*models.User, string) {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/register/", "", map[string]string{
		"email":    email,
		"username": username,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	user, err := e.db.UserRepo().FindByEmail(email)
	require.NoError(t, err)
	require.NotNil(t, user)

	return user, e.login(t, email)
}

func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    email,
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	pair := decode[auth.TokenPair](t, rec)
	require.NotEmpty(t, pair.Access)
	return pair.Access
}

// promoteToStaff flips the staff flag directly in the database.
func (e *testEnv) promoteToStaff(t *testing.T, user *models.User) {
	t.Helper()
	require.NoError(t, e.gorm.Model(user).Update("is_staff", true).Error)
}

// createEntry posts an entry as the token's owner and returns its response.
func (e *testEnv) createEntry(t *testing.T, token, title, status string) entryResponse {
	t.Helper()

	rec := e.do(t, http.MethodPost, "/entries/", token, map[string]any{
		"title":   title,
		"content": "content of " + title,
		"status":  status,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	return decode[entryResponse](t, rec)
}
