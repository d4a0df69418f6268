package handler

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/repository"
)

func newCategoryHandler(t *testing.T) (*CategoryHandler, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return NewCategoryHandler(repository.NewCategoryRepo(db), repository.NewFileRepo(db)), mock
}

func getCtx(target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestCategoryHandler_List_ClampsLimit(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM category")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	// limit=500 is clamped to 100, page=0 falls back to 1 (offset 0).
	mock.ExpectQuery("SELECT id, name, slug").
		WithArgs(100, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "published", "icon_id", "created_at", "updated_at"}))

	c, rec := getCtx("/v1/categories?page=0&limit=500")
	require.NoError(t, h.List(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"total":0,"page":1,"limit":100}`, rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Create_Validation(t *testing.T) {
	h, _ := newCategoryHandler(t)

	c, _ := postJSON(`{"name":"  ","slug":""}`)
	err := h.Create(c)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.Equal(t, map[string]string{"name": "required", "slug": "required"}, apiErr.Errors)
}

func TestCategoryHandler_Create_UnknownIcon(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery("SELECT id, path FROM file").
		WithArgs("f-missing").
		WillReturnError(sql.ErrNoRows)

	c, _ := postJSON(`{"name":"Phones","slug":"phones","iconId":"f-missing"}`)
	err := h.Create(c)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.Equal(t, map[string]string{"iconId": "notFound"}, apiErr.Errors)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Get_Miss(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectQuery("SELECT id, name, slug").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "published", "icon_id", "created_at", "updated_at"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	require.NoError(t, h.Get(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCategoryHandler_Update_Miss(t *testing.T) {
	h, mock := newCategoryHandler(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE category SET name = ?")).
		WithArgs("Phones", "nope").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT id, name, slug").
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "published", "icon_id", "created_at", "updated_at"}))

	e := echo.New()
	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"name":"Phones"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("nope")

	err := h.Update(c)
	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Code)
	require.NoError(t, mock.ExpectationsWereMet())
}
