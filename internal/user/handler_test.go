// AngelaMos | 2026
// handler_test.go

package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/ledger-backend/internal/core"
	"github.com/angelamos/ledger-backend/internal/middleware"
)

type staticResolver struct{ userID string }

func (s staticResolver) Authenticate(context.Context, string) (*middleware.Identity, error) {
	return &middleware.Identity{UserID: s.userID}, nil
}

func newTestRouter(t *testing.T) (*chi.Mux, sqlmock.Sqlmock) {
	t.Helper()
	svc, mock := newTestService(t)
	r := chi.NewRouter()
	NewHandler(svc).RegisterRoutes(r, middleware.Authenticator(staticResolver{userID: "user-1"}))
	return r, mock
}

func send(r http.Handler, method, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/users/me", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerGetMe(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectQuery("WHERE id = \\$1 AND is_deleted = false").
		WithArgs("user-1").
		WillReturnRows(activeRow())

	rec := send(r, http.MethodGet, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp UserResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "a@x.com", resp.Email)
	assert.Nil(t, resp.DeletedAt)
	assert.NotContains(t, rec.Body.String(), "hash")
}

func TestHandlerDeleteMe(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("FOR UPDATE").WithArgs("user-1").WillReturnRows(activeRow())
	mock.ExpectExec("SET is_active = false, is_deleted = true").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rec := send(r, http.MethodDelete, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var msg core.MessageResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &msg))
	assert.Equal(t, "User deleted successfully", msg.Message)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHandlerUpdateMeValidation(t *testing.T) {
	r, mock := newTestRouter(t)

	rec := send(r, http.MethodPatch, `{"name":"Al"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = send(r, http.MethodPut, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	assert.NoError(t, mock.ExpectationsWereMet(), "invalid input never reaches the database")
}

func TestHandlerUpdateMeConflict(t *testing.T) {
	r, mock := newTestRouter(t)

	mock.ExpectBegin()
	mock.ExpectQuery("WHERE id = \\$1 AND is_deleted = false").
		WithArgs("user-1").
		WillReturnRows(activeRow())
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("b@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectRollback()

	rec := send(r, http.MethodPatch, `{"email":"b@x.com"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
