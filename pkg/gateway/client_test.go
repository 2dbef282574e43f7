package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Get_ForwardsAuthorizationAndReturnsData(t *testing.T) {
	t.Parallel()

	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"ok","data":[{"id":"c1"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, err := c.Get(context.Background(), "/api/instructor/courses", "Bearer some-token")
	require.NoError(t, err)
	assert.Equal(t, "Bearer some-token", gotAuth)

	var items []map[string]string
	require.NoError(t, json.Unmarshal(data, &items))
	require.Len(t, items, 1)
	assert.Equal(t, "c1", items[0]["id"])
}

func TestClient_StatusPassthrough(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"success":false,"message":"you are not allowed to modify this course"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Delete(context.Background(), "/api/instructor/course/c1", "Bearer t")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusForbidden, se.Status)
	assert.Equal(t, "you are not allowed to modify this course", se.Message)
}

func TestClient_NonEnvelopeErrorBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		_, _ = w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.Get(context.Background(), "/", "")
	require.Error(t, err)

	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusBadGateway, se.Status)
}

func TestClient_Post_SendsJSONBody(t *testing.T) {
	t.Parallel()

	var gotContentType string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = r.Header.Get("Content-Type")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"created","data":{"id":"x"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	data, err := c.Post(context.Background(), "/api/learner/register", "", map[string]any{"name": "bob"})
	require.NoError(t, err)
	assert.Equal(t, "application/json", gotContentType)
	assert.Equal(t, "bob", gotBody["name"])
	assert.JSONEq(t, `{"id":"x"}`, string(data))
}
