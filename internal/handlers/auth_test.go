package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignupLoginFlow(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodPost, "/auth/signup", gin.H{
		"name":     "Alice",
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeJSON(t, w)
	assert.NotEmpty(t, body["token"])

	user := body["user"].(map[string]any)
	assert.Equal(t, "Alice", user["name"])
	assert.Equal(t, "a@x.com", user["email"])
	_, leaked := user["password_hash"]
	assert.False(t, leaked)

	// wrong password: generic message, no hint whether the email exists
	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeJSON(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "nobody@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Invalid credentials", decodeJSON(t, w)["error"])

	w = doJSON(t, r, http.MethodPost, "/auth/login", gin.H{
		"email":    "a@x.com",
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotNil(t, sessionCookie(t, w))
}

func TestSignupValidation(t *testing.T) {
	r := newTestServer(t)

	cases := []gin.H{
		{"email": "a@x.com", "password": "secret1"},             // missing name
		{"name": "Alice", "password": "secret1"},                // missing email
		{"name": "Alice", "email": "a@x.com"},                   // missing password
		{"name": "Alice", "email": "a@x.com", "password": "ab"}, // too short
	}

	for _, payload := range cases {
		w := doJSON(t, r, http.MethodPost, "/auth/signup", payload)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	r := newTestServer(t)

	signup(t, r, "Alice", "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/auth/signup", gin.H{
		"name":     "Alice Again",
		"email":    "a@x.com",
		"password": "secret2",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestSessionProbe(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/auth/session", nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)

	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	w = doJSON(t, r, http.MethodGet, "/auth/session", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	user := decodeJSON(t, w)["user"].(map[string]any)
	assert.Equal(t, "a@x.com", user["email"])
}

func TestLogoutIdempotent(t *testing.T) {
	r := newTestServer(t)

	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// the session no longer resolves
	probe := doJSON(t, r, http.MethodGet, "/auth/session", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, probe.Code)

	// second logout with the dead cookie still succeeds
	w = doJSON(t, r, http.MethodPost, "/auth/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// and so does one with no cookie at all
	w = doJSON(t, r, http.MethodPost, "/auth/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
