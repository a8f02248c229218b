// AngelaMos | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ledger-backend/internal/core"
)

func newTestRouter(t *testing.T) (*chi.Mux, *serviceFixture) {
	t.Helper()
	f := newServiceFixture(t, nil)
	r := chi.NewRouter()
	NewHandler(f.svc).RegisterRoutes(r)
	return r, f
}

func doJSON(r http.Handler, method, path, body, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body core.ErrorBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

const signupBody = `{"email":"a@x.com","name":"Alice","password":"secret1"}`

func loginToken(t *testing.T, r http.Handler) string {
	t.Helper()
	rec := doJSON(r, http.MethodPost, "/users/login", `{"email":"a@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.AccessToken
}

func TestHandlerSignup(t *testing.T) {
	r, _ := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/users/signup", signupBody, "")
	require.Equal(t, http.StatusCreated, rec.Code)

	var user UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "a@x.com", user.Email)
	assert.True(t, user.IsActive)
	assert.NotContains(t, rec.Body.String(), "password")

	rec = doJSON(r, http.MethodPost, "/users/signup", signupBody, "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "DUPLICATE", errorCode(t, rec))
}

func TestHandlerSignupValidation(t *testing.T) {
	r, _ := newTestRouter(t)

	tests := map[string]string{
		"malformed json": `{"email":`,
		"bad email":      `{"email":"nope","name":"Alice","password":"secret1"}`,
		"short name":     `{"email":"a@x.com","name":"Al","password":"secret1"}`,
		"short password": `{"email":"a@x.com","name":"Alice","password":"123"}`,
	}

	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(r, http.MethodPost, "/users/signup", body, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "BAD_REQUEST", errorCode(t, rec))
		})
	}
}

func TestHandlerLogin(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/users/signup", signupBody, "").Code)

	rec := doJSON(r, http.MethodPost, "/users/login", `{"email":"a@x.com","password":"secret1"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
	assert.Equal(t, 1800, resp.ExpiresIn)

	for _, body := range []string{
		`{"email":"a@x.com","password":"wrong-one"}`,
		`{"email":"b@x.com","password":"secret1"}`,
	} {
		rec = doJSON(r, http.MethodPost, "/users/login", body, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
	}
}

func TestHandlerLogout(t *testing.T) {
	r, _ := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/users/signup", signupBody, "").Code)
	token := loginToken(t, r)

	rec := doJSON(r, http.MethodPost, "/users/logout", "", "Bearer "+token)
	require.Equal(t, http.StatusOK, rec.Code)

	var msg core.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "Successfully logged out", msg.Message)

	rec = doJSON(r, http.MethodPost, "/users/logout", "", "Bearer "+token)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "TOKEN_REVOKED", errorCode(t, rec))
}

func TestHandlerLogoutHeaderErrors(t *testing.T) {
	r, _ := newTestRouter(t)

	for name, header := range map[string]string{
		"missing":      "",
		"wrong scheme": "Token abc",
		"extra parts":  "Bearer a b",
	} {
		t.Run(name, func(t *testing.T) {
			rec := doJSON(r, http.MethodPost, "/users/logout", "", header)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestHandlerLogoutTokenErrors(t *testing.T) {
	r, f := newTestRouter(t)
	require.Equal(t, http.StatusCreated, doJSON(r, http.MethodPost, "/users/signup", signupBody, "").Code)
	token := loginToken(t, r)

	rec := doJSON(r, http.MethodPost, "/users/logout", "", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_INVALID", errorCode(t, rec))

	f.clock.Advance(DefaultAccessTokenTTL)

	rec = doJSON(r, http.MethodPost, "/users/logout", "", "Bearer "+token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, rec))
}
