package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell-labs/blog-platform-backend/auth"
)

func TestRegisterCreatesAccount(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register/", "", map[string]string{
		"email":    "ada@example.com",
		"username": "ada",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	body := decode[map[string]any](t, rec)
	assert.Equal(t, "ada@example.com", body["email"])
	assert.Equal(t, "ada", body["username"])
	// The hash never leaves the server.
	assert.NotContains(t, rec.Body.String(), "password")

	user, err := env.db.UserRepo().FindByEmail("ada@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "correct horse battery staple", user.PasswordHash)
	assert.True(t, auth.CheckPassword(user.PasswordHash, "correct horse battery staple"))
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/register/", "", map[string]string{
		"email":    "ada@example.com",
		"username": "other",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "email", body.Field)
}

func TestRegisterRejectsDuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/register/", "", map[string]string{
		"email":    "other@example.com",
		"username": "ada",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[ErrorResponse](t, rec)
	assert.Equal(t, "username", body.Field)
}

func TestRegisterValidatesPayload(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/register/", "", map[string]string{
		"email":    "not-an-email",
		"username": "ada",
		"password": "short",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[map[string]any](t, rec)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok, "body: %s", rec.Body.String())
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")
}

func TestLoginRejectsBadPassword(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "ada@example.com",
		"password": "wrong password entirely",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "ghost@example.com",
		"password": "correct horse battery staple",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileRequiresToken(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/profile/", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestProfileReturnsOwnAccount(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodGet, "/profile/", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]any](t, rec)
	assert.Equal(t, user.ID.String(), body["id"])
	assert.Equal(t, "ada", body["username"])
}

func TestRefreshRotatesTokenPair(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode[auth.TokenPair](t, rec)

	rec = env.do(t, http.MethodPost, "/refresh/", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())
	rotated := decode[auth.TokenPair](t, rec)
	assert.NotEmpty(t, rotated.Access)
	assert.NotEqual(t, pair.Refresh, rotated.Refresh)

	// The consumed refresh token must be dead.
	rec = env.do(t, http.MethodPost, "/refresh/", "", map[string]string{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	_, access := env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/refresh/", "", map[string]string{"refresh": access})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRevokeBlacklistsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode[auth.TokenPair](t, rec)

	rec = env.do(t, http.MethodPost, "/revoke/", "", map[string]string{"refresh": pair.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodPost, "/verify/", "", map[string]string{"token": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/refresh/", "", map[string]string{"refresh": pair.Refresh})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestVerifyAcceptsBothTokenKinds(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "ada@example.com", "ada")

	rec := env.do(t, http.MethodPost, "/login/", "", map[string]string{
		"email":    "ada@example.com",
		"password": "correct horse battery staple",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	pair := decode[auth.TokenPair](t, rec)

	rec = env.do(t, http.MethodPost, "/verify/", "", map[string]string{"token": pair.Access})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "access", decode[map[string]string](t, rec)["tokenUse"])

	rec = env.do(t, http.MethodPost, "/verify/", "", map[string]string{"token": pair.Refresh})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "refresh", decode[map[string]string](t, rec)["tokenUse"])
}

func TestVerifyRejectsGarbage(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/verify/", "", map[string]string{"token": "not.a.jwt"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
