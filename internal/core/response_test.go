// AngelaMos | 2026
// response_test.go

package core

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorDetail {
	t.Helper()
	var body ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

func TestJSONErrorAppError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", NotFoundError("account"), http.StatusNotFound, "NOT_FOUND"},
		{"duplicate", DuplicateError("email"), http.StatusConflict, "DUPLICATE"},
		{"unauthorized", UnauthorizedError(""), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", ForbiddenError(""), http.StatusForbidden, "FORBIDDEN"},
		{"bad request", BadRequestError("bad"), http.StatusBadRequest, "BAD_REQUEST"},
		{"expired", TokenExpiredError(), http.StatusUnauthorized, "TOKEN_EXPIRED"},
		{"invalid", TokenInvalidError(), http.StatusUnauthorized, "TOKEN_INVALID"},
		{"revoked", TokenRevokedError(), http.StatusBadRequest, "TOKEN_REVOKED"},
		{"missing", TokenMissingError(), http.StatusBadRequest, "TOKEN_MISSING"},
		{
			"wrapped",
			fmt.Errorf("handler: %w", NotFoundError("user")),
			http.StatusNotFound,
			"NOT_FOUND",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			JSONError(rec, tt.err)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestJSONErrorHidesInternalErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	JSONError(rec, errors.New("pq: connection reset by peer"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	detail := decodeError(t, rec)
	assert.Equal(t, "INTERNAL_ERROR", detail.Code)
	assert.NotContains(t, detail.Message, "connection reset")
}

func TestAppErrorUnwrap(t *testing.T) {
	err := fmt.Errorf("outer: %w", TokenRevokedError())

	assert.True(t, errors.Is(err, ErrTokenRevoked))
	assert.True(t, IsAppError(err))

	appErr, ok := AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, appErr.StatusCode)
	assert.Equal(t, "token is already revoked: token revoked", appErr.Error())
}

func TestTokenErrorHierarchy(t *testing.T) {
	assert.True(t, errors.Is(ErrTokenMalformed, ErrTokenInvalid))
	assert.True(t, errors.Is(ErrTokenSignature, ErrTokenInvalid))
	assert.False(t, errors.Is(ErrTokenMalformed, ErrTokenSignature))
	assert.False(t, errors.Is(ErrTokenExpired, ErrTokenInvalid))
}

func TestMessageAndPaginated(t *testing.T) {
	rec := httptest.NewRecorder()
	Message(rec, "Successfully logged out")
	assert.JSONEq(t, `{"message":"Successfully logged out"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	Paginated(rec, []int{1, 2}, 1, 2, 5)

	var page PaginatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 5, page.Total)
}

func TestNoContent(t *testing.T) {
	rec := httptest.NewRecorder()
	NoContent(rec)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
}

type signupProbe struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=6"`
}

func TestFormatValidationErrorUsesJSONNames(t *testing.T) {
	err := NewValidator().Struct(signupProbe{Email: "nope", Name: "ab"})
	require.Error(t, err)

	msg := FormatValidationError(err)
	assert.Contains(t, msg, "email must be a valid email")
	assert.Contains(t, msg, "name must be at least 3 characters")
	assert.Contains(t, msg, "password is required")

	assert.Equal(t, "invalid request", FormatValidationError(errors.New("x")))
}
