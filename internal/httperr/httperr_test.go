package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, err error) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	Handler()(err, c)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestHandler_FieldErrors(t *testing.T) {
	rec, env := render(t, Unprocessable(map[string]string{"email": "notFound"}))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, http.StatusUnprocessableEntity, env.Code)
	assert.Equal(t, map[string]string{"email": "notFound"}, env.Errors)
}

func TestHandler_WrappedError(t *testing.T) {
	wrapped := fmt.Errorf("login: %w", Unauthorized())
	rec, env := render(t, wrapped)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, http.StatusUnauthorized, env.Code)
}

func TestHandler_EchoHTTPError(t *testing.T) {
	rec, env := render(t, echo.NewHTTPError(http.StatusMethodNotAllowed))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.StatusMethodNotAllowed, env.Code)
	assert.Equal(t, http.StatusText(http.StatusMethodNotAllowed), env.Message)
}

// Anything unrecognized is a 500 with a fixed message so internals never
// reach the client.
func TestHandler_UnknownError(t *testing.T) {
	rec, env := render(t, errors.New("pq: connection reset"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "Internal server error", env.Message)
	assert.NotContains(t, rec.Body.String(), "connection reset")
}

func TestHandler_OmitsEmptyErrors(t *testing.T) {
	_, env := render(t, NotFound("Category not found"))
	assert.Equal(t, "Category not found", env.Message)
	assert.Nil(t, env.Errors)

	rec, _ := render(t, NotFound(""))
	assert.NotContains(t, rec.Body.String(), `"errors"`)
}

func TestHandler_HeadRequestHasNoBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodHead, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	Handler()(NotFound(""), c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Empty(t, rec.Body.String())
}
