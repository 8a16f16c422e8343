package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/shoe_shop/internal/models"
	"github.com/Skotchmaster/shoe_shop/internal/testutil"
	jwthelp "github.com/Skotchmaster/shoe_shop/pkg/jwt"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/repo"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/service"
	"github.com/Skotchmaster/shoe_shop/services/auth/internal/transport"
)

func newEcho(t *testing.T) (*echo.Echo, *service.AuthService) {
	t.Helper()

	svc := &service.AuthService{
		Repo:          &repo.GormRepo{DB: testutil.NewDB(t)},
		Publisher:     testutil.AcceptAll(),
		AccessSecret:  testutil.TestSecret,
		RefreshSecret: []byte("test-refresh-secret"),
		ClientURL:     "http://shop.test",
	}
	e := testutil.NewEcho()
	Register(e, &Deps{AuthHandler: &AuthHTTP{Svc: svc}, JWTSecret: testutil.TestSecret})
	return e, svc
}

func cookie(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func withCookie(e *echo.Echo, method, path string, c *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.AddCookie(c)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func signupBody() map[string]any {
	return map[string]any{"email": "ann@example.com", "password": "secret1", "name": "Ann", "phoneNumber": "+100000"}
}

func TestSignupVerifyLogin(t *testing.T) {
	e, svc := newEcho(t)

	body := signupBody()
	delete(body, "phoneNumber")
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", body, "").Code)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", signupBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.NotNil(t, cookie(rec, jwthelp.AccessCookie))
	require.NotNil(t, cookie(rec, jwthelp.RefreshCookie))

	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", signupBody(), "").Code)

	login := map[string]any{"email": "ann@example.com", "password": "secret1"}
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/login", login, "").Code)

	var u models.User
	require.NoError(t, svc.Repo.DB.First(&u, "email = ?", "ann@example.com").Error)
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/verify-email", map[string]any{"code": "bogus"}, "").Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodPost, "/auth/verify-email", map[string]any{"code": *u.VerificationCode}, "").Code)

	rec = testutil.DoJSON(t, e, http.MethodPost, "/auth/login", login, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens transport.TokenResponse
	testutil.DecodeJSON(t, rec, &tokens)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.Equal(t, "customer", tokens.Role)

	rec = testutil.DoJSON(t, e, http.MethodGet, "/auth/check-auth", nil, "Bearer "+tokens.AccessToken)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ann@example.com")
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodGet, "/auth/check-auth", nil, "").Code)
}

func TestRefreshAndLogout(t *testing.T) {
	e, _ := newEcho(t)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", signupBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	refresh := cookie(rec, jwthelp.RefreshCookie)
	require.NotNil(t, refresh)

	rec = withCookie(e, http.MethodPost, "/auth/refresh", refresh)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var tokens transport.TokenResponse
	testutil.DecodeJSON(t, rec, &tokens)
	assert.NotEqual(t, refresh.Value, tokens.RefreshToken)
	assert.Positive(t, tokens.AccessExp)

	assert.Equal(t, http.StatusUnauthorized, withCookie(e, http.MethodPost, "/auth/refresh", refresh).Code)
	assert.Equal(t, http.StatusUnauthorized, testutil.DoJSON(t, e, http.MethodPost, "/auth/refresh", nil, "").Code)

	rotated := &http.Cookie{Name: jwthelp.RefreshCookie, Value: tokens.RefreshToken}
	rec = withCookie(e, http.MethodPost, "/auth/logout", rotated)
	require.Equal(t, http.StatusOK, rec.Code)
	cleared := cookie(rec, jwthelp.AccessCookie)
	require.NotNil(t, cleared)
	assert.Empty(t, cleared.Value)

	assert.Equal(t, http.StatusUnauthorized, withCookie(e, http.MethodPost, "/auth/refresh", rotated).Code)
}

func TestProfileAndDeleteAccount(t *testing.T) {
	e, _ := newEcho(t)

	rec := testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", signupBody(), "")
	require.Equal(t, http.StatusCreated, rec.Code)
	auth := "Bearer " + cookie(rec, jwthelp.AccessCookie).Value

	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPut, "/auth/profile", map[string]any{"name": "Anna"}, auth).Code)
	rec = testutil.DoJSON(t, e, http.MethodPut, "/auth/profile", map[string]any{"name": "Anna", "phoneNumber": "+1"}, auth)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Anna")

	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodDelete, "/auth/account", nil, auth).Code)
	assert.Equal(t, http.StatusNotFound, testutil.DoJSON(t, e, http.MethodGet, "/auth/check-auth", nil, auth).Code)
}

func TestForgotPassword(t *testing.T) {
	e, _ := newEcho(t)
	require.Equal(t, http.StatusCreated, testutil.DoJSON(t, e, http.MethodPost, "/auth/signup", signupBody(), "").Code)

	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/forgot-password", map[string]any{"email": "nobody@example.com"}, "").Code)
	assert.Equal(t, http.StatusOK, testutil.DoJSON(t, e, http.MethodPost, "/auth/forgot-password", map[string]any{"email": "ann@example.com"}, "").Code)
	assert.Equal(t, http.StatusBadRequest, testutil.DoJSON(t, e, http.MethodPost, "/auth/reset-password/nope", map[string]any{"password": "newpass1"}, "").Code)
}
