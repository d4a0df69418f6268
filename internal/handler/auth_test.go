package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ravshanbek/catalog-api/internal/httperr"
	"github.com/ravshanbek/catalog-api/internal/model"
	"github.com/ravshanbek/catalog-api/internal/service"
)

type fakeAuth struct {
	loginRes  *service.LoginResult
	loginErr  error
	meUser    *model.User
	pair      service.TokenPair
	refresErr error

	loggedOut []uint64
}

func (f *fakeAuth) Login(_ context.Context, email, password string) (*service.LoginResult, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return f.loginRes, nil
}

func (f *fakeAuth) Me(_ context.Context, _ service.AccessPayload) (*model.User, error) {
	return f.meUser, nil
}

func (f *fakeAuth) Refresh(_ context.Context, _ uint64) (service.TokenPair, error) {
	return f.pair, f.refresErr
}

func (f *fakeAuth) Logout(_ context.Context, sessionID uint64) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	return nil
}

func postJSON(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func testUser() *model.User {
	first := "Jane"
	return &model.User{
		ID:        42,
		Email:     "jane@example.com",
		Provider:  model.ProviderEmail,
		FirstName: &first,
		Role:      &model.Role{ID: 1, Name: "admin"},
		Status:    &model.Status{ID: 1, Name: "active"},
	}
}

func TestAuthHandler_Login(t *testing.T) {
	svc := &fakeAuth{loginRes: &service.LoginResult{
		TokenPair: service.TokenPair{Token: "at", RefreshToken: "rt", TokenExpires: 1756400000000},
		User:      testUser(),
	}}
	h := NewAuthHandler(svc)

	c, rec := postJSON(`{"email":"jane@example.com","password":"hunter2"}`)
	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.JSONEq(t, `"at"`, string(body["token"]))
	assert.JSONEq(t, `"rt"`, string(body["refreshToken"]))
	assert.JSONEq(t, `1756400000000`, string(body["tokenExpires"]))

	// The user is a view, never the storage model.
	assert.Contains(t, string(body["user"]), `"jane@example.com"`)
	assert.NotContains(t, rec.Body.String(), "password")
	assert.NotContains(t, rec.Body.String(), "socialId")
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{})

	c, _ := postJSON(`{"email":"  ","password":""}`)
	err := h.Login(c)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnprocessableEntity, apiErr.Code)
	assert.Equal(t, map[string]string{"email": "required", "password": "required"}, apiErr.Errors)
}

func TestAuthHandler_Login_MalformedBody(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{})

	c, _ := postJSON(`{"email":`)
	err := h.Login(c)

	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.Code)
}

// Service-level errors pass through untouched so the central handler
// renders them.
func TestAuthHandler_Login_ServiceErrorPassthrough(t *testing.T) {
	svcErr := httperr.Unprocessable(map[string]string{"password": "incorrectPassword"})
	h := NewAuthHandler(&fakeAuth{loginErr: svcErr})

	c, _ := postJSON(`{"email":"jane@example.com","password":"wrong"}`)
	err := h.Login(c)
	assert.Same(t, svcErr, err)
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{meUser: testUser()})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("auth_payload", service.AccessPayload{ID: 42, Role: "admin", SessionID: 7})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"jane@example.com"`)
}

// A token that outlived its account still gets a 200, with a null body.
func TestAuthHandler_Me_DeletedAccount(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{meUser: nil})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("auth_payload", service.AccessPayload{ID: 9999})

	require.NoError(t, h.Me(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "null\n", rec.Body.String())
}

func TestAuthHandler_Me_NoPayload(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Me(c)
	var apiErr *httperr.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Code)
}

func TestAuthHandler_Refresh(t *testing.T) {
	h := NewAuthHandler(&fakeAuth{pair: service.TokenPair{
		Token: "new-at", RefreshToken: "new-rt", TokenExpires: 1756400900000,
	}})

	c, rec := postJSON(``)
	c.Set("session_id", uint64(7))

	require.NoError(t, h.Refresh(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"token":"new-at","refreshToken":"new-rt","tokenExpires":1756400900000}`,
		rec.Body.String())
}

func TestAuthHandler_Logout(t *testing.T) {
	svc := &fakeAuth{}
	h := NewAuthHandler(svc)

	c, rec := postJSON(``)
	c.Set("session_id", uint64(9))

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []uint64{9}, svc.loggedOut)
}
