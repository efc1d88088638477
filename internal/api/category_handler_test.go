package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mercato-api/mercato/internal/config"
	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/cache"
)

func newTestCache(t *testing.T) *cache.Cache {
	t.Helper()
	c, err := cache.New(config.CacheConfig{TTLMinutes: 5}, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// newCategoryRouter mounts the handler the way the server router does, so
// chi URL parameters resolve in tests.
func newCategoryRouter(handler *CategoryHandler) http.Handler {
	r := chi.NewRouter()
	r.Post("/categories", handler.Create)
	r.Get("/categories", handler.List)
	r.Get("/categories/{id}", handler.Get)
	r.Patch("/categories/{id}", handler.Update)
	r.Delete("/categories/{id}", handler.Delete)
	return r
}

func TestCategoryHandler_Create(t *testing.T) {
	t.Parallel()

	t.Run("creates category", func(t *testing.T) {
		t.Parallel()

		router := newCategoryRouter(NewCategoryHandler(newFakeCategoryStore(), nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/categories",
			strings.NewReader(`{"name":"Electronics","description":"Gadgets"}`)))

		require.Equal(t, http.StatusCreated, w.Code)

		var resp domain.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "Electronics", resp.Name)
		assert.Equal(t, "Gadgets", resp.Description)
	})

	t.Run("rejects duplicate name", func(t *testing.T) {
		t.Parallel()

		categories := newFakeCategoryStore()
		require.NoError(t, categories.Create(context.Background(),
			&domain.Category{Name: "Electronics"}))
		router := newCategoryRouter(NewCategoryHandler(categories, nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/categories",
			strings.NewReader(`{"name":"Electronics"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Category name already exists")
	})

	t.Run("rejects missing name", func(t *testing.T) {
		t.Parallel()

		router := newCategoryRouter(NewCategoryHandler(newFakeCategoryStore(), nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/categories",
			strings.NewReader(`{"description":"no name"}`)))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCategoryHandler_Reads(t *testing.T) {
	t.Parallel()

	t.Run("lists categories", func(t *testing.T) {
		t.Parallel()

		categories := newFakeCategoryStore()
		require.NoError(t, categories.Create(context.Background(),
			&domain.Category{Name: "Electronics"}))
		require.NoError(t, categories.Create(context.Background(),
			&domain.Category{Name: "Books"}))
		router := newCategoryRouter(NewCategoryHandler(categories, nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))

		require.Equal(t, http.StatusOK, w.Code)

		var resp []domain.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 2)
		assert.Equal(t, "Electronics", resp[0].Name)
		assert.Equal(t, "Books", resp[1].Name)
	})

	t.Run("serves repeated list from cache", func(t *testing.T) {
		t.Parallel()

		categories := newFakeCategoryStore()
		require.NoError(t, categories.Create(context.Background(),
			&domain.Category{Name: "Electronics"}))
		router := newCategoryRouter(NewCategoryHandler(categories, newTestCache(t)))

		first := httptest.NewRecorder()
		router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, first.Code)

		// A failure injected after the first read proves the second response
		// never reaches the store.
		categories.listErr = assert.AnError

		second := httptest.NewRecorder()
		router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, second.Code)
		assert.Equal(t, first.Body.Bytes(), second.Body.Bytes())
	})

	t.Run("writes invalidate the cached list", func(t *testing.T) {
		t.Parallel()

		categories := newFakeCategoryStore()
		router := newCategoryRouter(NewCategoryHandler(categories, newTestCache(t)))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, "[]", w.Body.String())

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/categories",
			strings.NewReader(`{"name":"Electronics"}`)))
		require.Equal(t, http.StatusCreated, w.Code)

		w = httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories", nil))
		require.Equal(t, http.StatusOK, w.Code)

		var resp []domain.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Electronics", resp[0].Name)
	})

	t.Run("get returns 404 for unknown id", func(t *testing.T) {
		t.Parallel()

		router := newCategoryRouter(NewCategoryHandler(newFakeCategoryStore(), nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/42", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Category not found")
	})

	t.Run("get rejects a malformed id", func(t *testing.T) {
		t.Parallel()

		router := newCategoryRouter(NewCategoryHandler(newFakeCategoryStore(), nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCategoryHandler_Update(t *testing.T) {
	t.Parallel()

	t.Run("merges only the provided fields", func(t *testing.T) {
		t.Parallel()

		categories := newFakeCategoryStore()
		require.NoError(t, categories.Create(context.Background(),
			&domain.Category{Name: "Electronics", Description: "Gadgets"}))
		router := newCategoryRouter(NewCategoryHandler(categories, nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/categories/1",
			strings.NewReader(`{"name":"Tech"}`)))

		require.Equal(t, http.StatusOK, w.Code)

		var resp domain.Category
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Tech", resp.Name)
		assert.Equal(t, "Gadgets", resp.Description, "absent field must keep its value")
	})

	t.Run("returns 404 for unknown id", func(t *testing.T) {
		t.Parallel()

		router := newCategoryRouter(NewCategoryHandler(newFakeCategoryStore(), nil))

		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPatch, "/categories/42",
			strings.NewReader(`{"name":"Tech"}`)))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCategoryHandler_Delete(t *testing.T) {
	t.Parallel()

	categories := newFakeCategoryStore()
	require.NoError(t, categories.Create(context.Background(),
		&domain.Category{Name: "Electronics"}))
	router := newCategoryRouter(NewCategoryHandler(categories, nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/categories/1", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/categories/1", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
