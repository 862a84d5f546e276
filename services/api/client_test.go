package api

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name string `json:"name"`
}

func TestNew(t *testing.T) {
	t.Run("Empty base URL", func(t *testing.T) {
		c, err := New("")
		assert.Error(t, err)
		assert.Nil(t, c)
	})

	t.Run("Trailing slash trimmed", func(t *testing.T) {
		c, err := New("https://api.toorrii.com/")
		require.NoError(t, err)
		assert.Equal(t, "https://api.toorrii.com", c.BaseURL())
		assert.Equal(t, 30*time.Second, c.http.Timeout)
	})

	t.Run("Invalid timeout", func(t *testing.T) {
		_, err := New("https://api.toorrii.com", WithHTTPTimeout(0))
		assert.Error(t, err)
	})

	t.Run("Custom timeout", func(t *testing.T) {
		c, err := New("https://api.toorrii.com", WithHTTPTimeout(5*time.Second))
		require.NoError(t, err)
		assert.Equal(t, 5*time.Second, c.http.Timeout)
	})
}

func TestClient_Get(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		assert.Equal(t, "toorrii-test", r.Header.Get("User-Agent"))

		switch r.URL.Path {
		case "/home/partenaire/":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"name": "Toorrii"}`)
		case "/home/broken/":
			fmt.Fprint(w, `{not json`)
		default:
			http.Error(w, "missing", http.StatusNotFound)
		}
	}))
	defer server.Close()

	c, err := New(server.URL, WithUserAgent("toorrii-test"))
	require.NoError(t, err)

	t.Run("Decodes JSON body", func(t *testing.T) {
		out, err := Get[payload](context.Background(), c, "/home/partenaire/")
		require.NoError(t, err)
		assert.Equal(t, "Toorrii", out.Name)
	})

	t.Run("Path without leading slash", func(t *testing.T) {
		out, err := Get[payload](context.Background(), c, "home/partenaire/")
		require.NoError(t, err)
		assert.Equal(t, "Toorrii", out.Name)
	})

	t.Run("Non-2xx is an HTTPError", func(t *testing.T) {
		_, err := Get[payload](context.Background(), c, "/home/unknown/")
		require.Error(t, err)
		assert.True(t, IsHTTPError(err))
		assert.False(t, IsNetworkError(err))
		assert.Equal(t, http.StatusNotFound, StatusCode(err))
	})

	t.Run("Invalid JSON is a decode error", func(t *testing.T) {
		_, err := Get[payload](context.Background(), c, "/home/broken/")
		require.Error(t, err)
		assert.False(t, IsHTTPError(err))
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}

func TestClient_GetNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	c, err := New(url)
	require.NoError(t, err)

	_, err = Get[payload](context.Background(), c, "/home/aboutnous/")
	require.Error(t, err)
	assert.True(t, IsNetworkError(err))
	assert.Equal(t, 0, StatusCode(err))
}

func TestClient_GetSingleAttempt(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c, err := New(server.URL)
	require.NoError(t, err)

	_, err = Get[payload](context.Background(), c, "/home/aboutnous/")
	assert.Error(t, err)
	assert.Equal(t, 1, calls)
}
