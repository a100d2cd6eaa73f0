package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/demo-portal/portal-api/internal/domain/auth"
)

func postLogin(t *testing.T, router http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestLogin_Success(t *testing.T) {
	router := newTestRouter(t)

	w := postLogin(t, router, `{"email":"manager@demo.com","password":"123"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string    `json:"token"`
		Role  auth.Role `json:"role"`
		Exp   int64     `json:"exp"`
	}
	require.NoError(t, jsonDecode(w, &resp))
	assert.Equal(t, auth.RoleManager, resp.Role)
	assert.NotZero(t, resp.Exp)

	claims, err := auth.DecodeToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "manager@demo.com", claims.Email)
	assert.Equal(t, resp.Exp, claims.Exp)
}

func TestLogin_WrongPassword(t *testing.T) {
	router := newTestRouter(t)

	// 401 regardless of whether the email would map to a privileged role.
	for _, email := range []string{"admin@demo.com", "whoever@example.com"} {
		w := postLogin(t, router, `{"email":"`+email+`","password":"nope"}`)
		require.Equal(t, http.StatusUnauthorized, w.Code, "email %q", email)
		body := decodeErrorBody(t, w)
		assert.Equal(t, CodeInvalidCredentials, body["code"])
	}
}

func TestLogin_MissingFields(t *testing.T) {
	router := newTestRouter(t)

	for _, body := range []string{
		`{}`,
		`{"email":"admin@demo.com"}`,
		`{"password":"123"}`,
		`not json`,
	} {
		w := postLogin(t, router, body)
		require.Equal(t, http.StatusBadRequest, w.Code, "body %q", body)
		resp := decodeErrorBody(t, w)
		assert.Equal(t, CodeValidationError, resp["code"])
	}
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, jsonDecode(w, &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestDemoEndpoints(t *testing.T) {
	router := newTestRouter(t)

	cases := []struct {
		method string
		path   string
		status int
		code   string
	}{
		{http.MethodGet, "/demo/http-500", http.StatusInternalServerError, CodeServerError},
		{http.MethodGet, "/demo/http-401", http.StatusUnauthorized, "UNAUTHORIZED"},
		{http.MethodPost, "/demo/validation", http.StatusUnprocessableEntity, CodeValidationError},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(tc.method, tc.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, tc.status, w.Code, "path %s", tc.path)
		body := decodeErrorBody(t, w)
		assert.Equal(t, tc.code, body["code"])
	}
}
