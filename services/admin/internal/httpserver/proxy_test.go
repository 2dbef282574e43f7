package httpserver

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/userwale/projetskillhub/pkg/gateway"
	"github.com/userwale/projetskillhub/pkg/httpx"
	"github.com/userwale/projetskillhub/pkg/tokens"
)

var testSecret = []byte("test-jwt-secret")

func newProxyEcho(t *testing.T, instructorURL, learnerURL string) *echo.Echo {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = httpx.ErrorHandler
	Register(e, &Deps{
		AdminHandler: &AdminHTTP{},
		ProxyHandler: &ProxyHTTP{
			Instructor: gateway.NewClient(instructorURL),
			Learner:    gateway.NewClient(learnerURL),
		},
		JWTSecret: testSecret,
	})
	return e
}

func adminToken(t *testing.T, id string) string {
	t.Helper()

	token, err := tokens.IssueSession(testSecret, id, "root@example.com", tokens.RoleAdmin, tokens.SessionTTL)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestProxy_AllCourses_ForwardsTokenAndWrapsData(t *testing.T) {
	t.Parallel()

	var gotAuth string
	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"courses fetched","data":[{"id":"c1","title":"Go"}]}`))
	}))
	defer downstream.Close()

	e := newProxyEcho(t, downstream.URL, downstream.URL)
	auth := adminToken(t, "admin-1")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/all-courses", nil)
	req.Header.Set(echo.HeaderAuthorization, auth)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, auth, gotAuth)

	var env struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.True(t, env.Success)
	require.Len(t, env.Data, 1)
	assert.Equal(t, "c1", env.Data[0]["id"])
}

func TestProxy_DownstreamStatusPassthrough(t *testing.T) {
	t.Parallel()

	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"message":"course not found"}`))
	}))
	defer downstream.Close()

	e := newProxyEcho(t, downstream.URL, downstream.URL)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/course/missing", nil)
	req.Header.Set(echo.HeaderAuthorization, adminToken(t, "admin-1"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "course not found")
}

func TestProxy_DownstreamUnreachable(t *testing.T) {
	t.Parallel()

	e := newProxyEcho(t, "http://127.0.0.1:1", "http://127.0.0.1:1")

	req := httptest.NewRequest(http.MethodGet, "/api/admin/all-students", nil)
	req.Header.Set(echo.HeaderAuthorization, adminToken(t, "admin-1"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestProxy_RequiresAdminRole(t *testing.T) {
	t.Parallel()

	e := newProxyEcho(t, "http://unused", "http://unused")

	// No token at all.
	req := httptest.NewRequest(http.MethodGet, "/api/admin/all-courses", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A learner session is not enough.
	learner, err := tokens.IssueSession(testSecret, "l1", "l@example.com", tokens.RoleLearner, tokens.SessionTTL)
	require.NoError(t, err)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/all-courses", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+learner)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestProxy_DeleteInstructor_SelfDeleteGuard(t *testing.T) {
	t.Parallel()

	downstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("downstream must not be called for a self-delete")
	}))
	defer downstream.Close()

	e := newProxyEcho(t, downstream.URL, downstream.URL)

	req := httptest.NewRequest(http.MethodDelete, "/api/admin/instructor/admin-1", nil)
	req.Header.Set(echo.HeaderAuthorization, adminToken(t, "admin-1"))
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "cannot delete your own account")
}
