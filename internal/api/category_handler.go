package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/cache"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/store"
)

// Cache prefixes for catalog reads. A write under a prefix invalidates every
// cached read under it.
const (
	categoryCachePrefix = "categories"
	productCachePrefix  = "products"
)

// CategoryHandler handles CRUD operations on catalog categories. Reads are
// public and served from cache when possible; writes require authentication
// and invalidate the cached reads.
type CategoryHandler struct {
	categoryStore store.CategoryStore
	cache         *cache.Cache
}

// NewCategoryHandler creates a new CategoryHandler with the given
// dependencies. cache may be nil, in which case every read hits the store.
func NewCategoryHandler(categoryStore store.CategoryStore, c *cache.Cache) *CategoryHandler {
	return &CategoryHandler{
		categoryStore: categoryStore,
		cache:         c,
	}
}

// Create handles POST /categories.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data")
		return
	}

	category, err := domain.NewCategory(req.Name, req.Description)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.categoryStore.Create(ctx, category); err != nil {
		h.respondStoreError(w, r, err, "Failed to create category")
		return
	}

	h.invalidate()
	logger.FromContext(ctx).Info("category created", "category_id", category.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, category)
}

// List handles GET /categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.cache != nil {
		if cached, ok := h.cache.Get(categoryCachePrefix, "all"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	categories, err := h.categoryStore.List(ctx)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list categories", err)
		return
	}

	h.respondCached(w, r, "all", categories)
}

// Get handles GET /categories/{id}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if h.cache != nil {
		if cached, hit := h.cache.Get(categoryCachePrefix, chi.URLParam(r, "id")); hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	category, err := h.categoryStore.GetByID(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to get category")
		return
	}

	h.respondCached(w, r, chi.URLParam(r, "id"), category)
}

// Update handles PATCH /categories/{id}. Absent fields keep their current
// values.
func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateCategoryRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid category data")
		return
	}

	category, err := h.categoryStore.GetByID(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to update category")
		return
	}

	patch := domain.CategoryPatch{Name: req.Name, Description: req.Description}
	patch.Apply(category)

	if err := category.Validate(); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.categoryStore.Update(ctx, category); err != nil {
		h.respondStoreError(w, r, err, "Failed to update category")
		return
	}

	h.invalidate()
	logger.FromContext(ctx).Info("category updated", "category_id", category.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, category)
}

// Delete handles DELETE /categories/{id}.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.categoryStore.Delete(ctx, id); err != nil {
		h.respondStoreError(w, r, err, "Failed to delete category")
		return
	}

	// Products cache entries may embed the category via filters.
	h.invalidate()
	logger.FromContext(ctx).Info("category deleted", "category_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// respondCached marshals the value once, stores the bytes in the cache, and
// writes them as the response.
func (h *CategoryHandler) respondCached(w http.ResponseWriter, r *http.Request, key string, v interface{}) {
	payload, err := json.Marshal(v)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to encode response", err)
		return
	}

	if h.cache != nil {
		h.cache.Set(categoryCachePrefix, key, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *CategoryHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, fallback, err)
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

func (h *CategoryHandler) invalidate() {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(categoryCachePrefix)
	h.cache.Invalidate(productCachePrefix)
}

// parseIDParam extracts the {id} route parameter. On failure it writes a 400
// and reports false.
func parseIDParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid ID")
		return 0, false
	}
	return id, true
}
