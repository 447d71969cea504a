package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryCRUD(t *testing.T) {
	r := newTestServer(t)
	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Tech"}, cookie)
	require.Equal(t, http.StatusCreated, w.Code)

	created := decodeJSON(t, w)
	assert.Equal(t, "Tech", created["name"])
	id := uint(created["id"].(float64))

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tech", decodeJSON(t, w)["name"])

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", id), gin.H{"name": "Technology"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Technology", decodeJSON(t, w)["name"])

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, cookie)
	require.Equal(t, http.StatusNoContent, w.Code)

	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, cookie)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCategoryListSorted(t *testing.T) {
	r := newTestServer(t)
	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	for _, name := range []string{"Zebra", "Apple", "Mango"} {
		createNamed(t, r, "/categories", name, cookie)
	}

	w := doJSON(t, r, http.MethodGet, "/categories", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	list := decodeJSONList(t, w)
	require.Len(t, list, 3)
	assert.Equal(t, "Apple", list[0]["name"])
	assert.Equal(t, "Mango", list[1]["name"])
	assert.Equal(t, "Zebra", list[2]["name"])
}

func TestCategoryNameValidation(t *testing.T) {
	r := newTestServer(t)
	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "   "}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCategoryDuplicatePerOwner(t *testing.T) {
	r := newTestServer(t)
	alice := signup(t, r, "Alice", "a@x.com", "secret1")

	w := doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Tech"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	// same owner, same name: conflict, no upsert
	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Tech"}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	// uniqueness is scoped per owner
	bob := signup(t, r, "Bob", "b@x.com", "secret1")
	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Tech"}, bob)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCategoryUpdateDuplicateExcludesSelf(t *testing.T) {
	r := newTestServer(t)
	cookie := signup(t, r, "Alice", "a@x.com", "secret1")

	techID := createNamed(t, r, "/categories", "Tech", cookie)
	createNamed(t, r, "/categories", "Life", cookie)

	// renaming onto another row's name conflicts
	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", techID), gin.H{"name": "Life"}, cookie)
	assert.Equal(t, http.StatusConflict, w.Code)

	// renaming to its own name is a no-op, not a conflict
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", techID), gin.H{"name": "Tech"}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCategoryOwnershipIsolation(t *testing.T) {
	r := newTestServer(t)
	alice := signup(t, r, "Alice", "a@x.com", "secret1")
	bob := signup(t, r, "Bob", "b@x.com", "secret1")

	id := createNamed(t, r, "/categories", "Tech", alice)

	// every cross-user access reads as not-found, never forbidden
	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/categories/%d", id), gin.H{"name": "Stolen"}, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/categories/%d", id), nil, bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// the row is untouched for its owner
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/categories/%d", id), nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Tech", decodeJSON(t, w)["name"])
}

func TestCategoryRequiresAuth(t *testing.T) {
	r := newTestServer(t)

	w := doJSON(t, r, http.MethodGet, "/categories", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/categories", gin.H{"name": "Tech"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
