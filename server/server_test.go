package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/milk9111/marblebounce/store"
	"github.com/stretchr/testify/require"
)

const doc = `<level width="3.5" height="4.8" left="0" bottom="0"><start x="1.75" y="3.5"/></level>`

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "levels.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))
	return New(store.NewCatalog(db), Options{Quiet: true})
}

func do(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	resp, err := app.Test(req)
	require.NoError(t, err)
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	_ = resp.Body.Close()
	return resp, string(data)
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)
	resp, body := do(t, app, http.MethodGet, "/health/live", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Contains(t, body, "alive")
}

func TestLevelLifecycle(t *testing.T) {
	app := newTestApp(t)

	resp, _ := do(t, app, http.MethodPut, "/api/v1/users/ann/levels/intro", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, app, http.MethodGet, "/api/v1/users/ann/levels/intro", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, doc, body)
	require.Contains(t, resp.Header.Get("Content-Type"), "xml")
	require.NotEmpty(t, resp.Header.Get("X-Level-Revision"))

	resp, body = do(t, app, http.MethodGet, "/api/v1/users/ann/levels", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entries []store.Entry
	require.NoError(t, json.Unmarshal([]byte(body), &entries))
	require.Len(t, entries, 1)
	require.Equal(t, "intro", entries[0].Name)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/users/ann/levels/intro", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/users/ann/levels/intro", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUploadValidation(t *testing.T) {
	app := newTestApp(t)

	resp, body := do(t, app, http.MethodPut, "/api/v1/users/ann/levels/bad", `<level width="1"></level>`)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.Contains(t, body, "malformed level")

	resp, _ = do(t, app, http.MethodPut, "/api/v1/users/ann/levels/empty", "")
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSharing(t *testing.T) {
	app := newTestApp(t)
	resp, _ := do(t, app, http.MethodPut, "/api/v1/users/ann/levels/intro", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, body := do(t, app, http.MethodPost, "/api/v1/users/ann/levels/intro/share", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var share struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &share))
	require.NotEmpty(t, share.ID)

	resp, body = do(t, app, http.MethodGet, "/api/v1/shared/"+share.ID, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, doc, body)

	resp, _ = do(t, app, http.MethodDelete, "/api/v1/users/ann/levels/intro/share", "")
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, _ = do(t, app, http.MethodGet, "/api/v1/shared/"+share.ID, "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = do(t, app, http.MethodPost, "/api/v1/users/ann/levels/ghost/share", "")
	require.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeadlineReachesHandlers(t *testing.T) {
	app := fiber.New()
	app.Use(deadline(10 * time.Millisecond))
	app.Get("/slow", func(c fiber.Ctx) error {
		<-c.Context().Done()
		return fail(c, c.Context().Err())
	})

	resp, body := do(t, app, http.MethodGet, "/slow", "")
	require.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	require.Contains(t, body, "cancelled")
}

func TestRequestTimeoutOptionKeepsFastRequests(t *testing.T) {
	db, err := store.OpenSQLite(filepath.Join(t.TempDir(), "levels.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, store.Migrate(context.Background(), db))
	app := New(store.NewCatalog(db), Options{Quiet: true, RequestTimeout: 5 * time.Second})

	resp, _ := do(t, app, http.MethodPut, "/api/v1/users/ann/levels/intro", doc)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp, body := do(t, app, http.MethodGet, "/api/v1/users/ann/levels/intro", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, doc, body)
}
