package storage

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LCF-xybq/file-handler/interfaces"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	r := chi.NewRouter()
	r.Get("/data.json", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"hello":"world"}`))
	})
	r.Get("/greeting.txt", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("héllo"))
	})
	r.Get("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPBackend_Get(t *testing.T) {
	srv := newTestServer(t)
	backend := NewHTTPBackend(discardLogger())
	ctx := context.Background()

	data, err := backend.Get(ctx, srv.URL+"/data.json")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"hello":"world"}`), data)
}

func TestHTTPBackend_GetText(t *testing.T) {
	srv := newTestServer(t)
	backend := NewHTTPBackend(discardLogger())

	text, err := backend.GetText(context.Background(), srv.URL+"/greeting.txt", "")
	require.NoError(t, err)
	assert.Equal(t, "héllo", text)
}

func TestHTTPBackend_GetNotFound(t *testing.T) {
	srv := newTestServer(t)
	backend := NewHTTPBackend(discardLogger())

	_, err := backend.Get(context.Background(), srv.URL+"/missing")
	assert.ErrorIs(t, err, interfaces.ErrNotFound)
}

func TestHTTPBackend_GetServerError(t *testing.T) {
	srv := newTestServer(t)
	backend := NewHTTPBackend(discardLogger())

	_, err := backend.Get(context.Background(), srv.URL+"/broken")
	require.Error(t, err)
	assert.NotErrorIs(t, err, interfaces.ErrNotFound)
}

func TestHTTPBackend_WithLocalPath(t *testing.T) {
	srv := newTestServer(t)
	backend := NewHTTPBackend(discardLogger())
	ctx := context.Background()

	t.Run("temporary file removed after normal return", func(t *testing.T) {
		var tempPath string
		err := backend.WithLocalPath(ctx, srv.URL+"/data.json", func(local string) error {
			tempPath = local
			data, err := os.ReadFile(local)
			require.NoError(t, err)
			assert.Equal(t, []byte(`{"hello":"world"}`), data)
			return nil
		})
		require.NoError(t, err)
		require.NotEmpty(t, tempPath)

		_, statErr := os.Stat(tempPath)
		assert.True(t, os.IsNotExist(statErr), "temporary file must be deleted")
	})

	t.Run("temporary file removed after error", func(t *testing.T) {
		fail := errors.New("boom")
		var tempPath string
		err := backend.WithLocalPath(ctx, srv.URL+"/data.json", func(local string) error {
			tempPath = local
			return fail
		})
		assert.ErrorIs(t, err, fail)
		require.NotEmpty(t, tempPath)

		_, statErr := os.Stat(tempPath)
		assert.True(t, os.IsNotExist(statErr), "temporary file must be deleted even on error")
	})

	t.Run("unique names for concurrent scopes", func(t *testing.T) {
		err := backend.WithLocalPath(ctx, srv.URL+"/data.json", func(outer string) error {
			return backend.WithLocalPath(ctx, srv.URL+"/data.json", func(inner string) error {
				assert.NotEqual(t, outer, inner)
				return nil
			})
		})
		require.NoError(t, err)
	})
}

func TestHTTPBackend_IsReadOnly(t *testing.T) {
	var backend interfaces.Backend = NewHTTPBackend(discardLogger())

	_, writable := backend.(interfaces.Writer)
	assert.False(t, writable)
}
