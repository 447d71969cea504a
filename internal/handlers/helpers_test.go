package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/quill-dev/quill/db"
	"github.com/quill-dev/quill/internal/config"
	"github.com/quill-dev/quill/internal/router"
	"github.com/quill-dev/quill/internal/session"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "quill_test.db")), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.MigrateDatabase(conn))

	cfg := &config.Config{
		Port:        "0",
		JWTSecret:   "test-secret",
		Environment: "development",
	}

	sessions := session.NewManager(conn, cfg.JWTSecret, false, "")

	return router.New(conn, sessions, cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader

	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeJSONList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var body []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}

	t.Fatal("no session cookie in response")
	return nil
}

func signup(t *testing.T, r *gin.Engine, name, email, password string) *http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/auth/signup", gin.H{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	return sessionCookie(t, w)
}

func createNamed(t *testing.T, r *gin.Engine, path, name string, cookie *http.Cookie) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, path, gin.H{"name": name}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	return uint(body["id"].(float64))
}
