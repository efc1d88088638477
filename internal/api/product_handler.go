package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/mercato-api/mercato/internal/api/shared"
	"github.com/mercato-api/mercato/internal/domain"
	"github.com/mercato-api/mercato/internal/platform/cache"
	"github.com/mercato-api/mercato/internal/platform/logger"
	"github.com/mercato-api/mercato/internal/store"
)

// ProductHandler handles CRUD operations on catalog products. Reads are
// public and served from cache when possible; writes require authentication
// and invalidate the cached reads.
type ProductHandler struct {
	productStore store.ProductStore
	cache        *cache.Cache
}

// NewProductHandler creates a new ProductHandler with the given dependencies.
// cache may be nil, in which case every read hits the store.
func NewProductHandler(productStore store.ProductStore, c *cache.Cache) *ProductHandler {
	return &ProductHandler{
		productStore: productStore,
		cache:        c,
	}
}

// Create handles POST /products.
func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req CreateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product data")
		return
	}

	product, err := domain.NewProduct(req.Name, req.Description, req.Price, req.CategoryID)
	if err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.productStore.Create(ctx, product); err != nil {
		h.respondStoreError(w, r, err, "Failed to create product")
		return
	}

	h.invalidate()
	logger.FromContext(ctx).Info("product created", "product_id", product.ID)

	shared.RespondWithJSON(w, r, http.StatusCreated, product)
}

// List handles GET /products. Optional query parameters min_price, max_price,
// and category_id (repeatable) narrow the result. Unfiltered lists are
// cached; filtered ones always hit the store.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, err := parseProductFilter(r)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid filter parameters")
		return
	}

	unfiltered := filter.MinPrice == nil && filter.MaxPrice == nil && len(filter.CategoryIDs) == 0
	if unfiltered && h.cache != nil {
		if cached, ok := h.cache.Get(productCachePrefix, "all"); ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	products, err := h.productStore.List(ctx, filter)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list products", err)
		return
	}

	payload, err := json.Marshal(products)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to encode response", err)
		return
	}

	if unfiltered && h.cache != nil {
		h.cache.Set(productCachePrefix, "all", payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// ListByCategory handles GET /categories/{id}/products.
func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	products, err := h.productStore.ListByCategory(ctx, id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to list products", err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, products)
}

// Get handles GET /products/{id}.
func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	key := strconv.FormatInt(id, 10)
	if h.cache != nil {
		if cached, hit := h.cache.Get(productCachePrefix, key); hit {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
	}

	product, err := h.productStore.GetByID(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to get product")
		return
	}

	payload, err := json.Marshal(product)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
			"Failed to encode response", err)
		return
	}

	if h.cache != nil {
		h.cache.Set(productCachePrefix, key, payload)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

// Update handles PATCH /products/{id}. Absent fields keep their current
// values.
func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	var req UpdateProductRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid product data")
		return
	}

	product, err := h.productStore.GetByID(ctx, id)
	if err != nil {
		h.respondStoreError(w, r, err, "Failed to update product")
		return
	}

	patch := domain.ProductPatch{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CategoryID:  req.CategoryID,
	}
	patch.Apply(product)

	if err := product.Validate(); err != nil {
		shared.RespondWithError(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err))
		return
	}

	if err := h.productStore.Update(ctx, product); err != nil {
		h.respondStoreError(w, r, err, "Failed to update product")
		return
	}

	h.invalidate()
	logger.FromContext(ctx).Info("product updated", "product_id", product.ID)

	shared.RespondWithJSON(w, r, http.StatusOK, product)
}

// Delete handles DELETE /products/{id}.
func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := parseIDParam(w, r)
	if !ok {
		return
	}

	if err := h.productStore.Delete(ctx, id); err != nil {
		h.respondStoreError(w, r, err, "Failed to delete product")
		return
	}

	h.invalidate()
	logger.FromContext(ctx).Info("product deleted", "product_id", id)

	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) respondStoreError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	status := MapErrorToStatusCode(err)
	if status == http.StatusInternalServerError {
		shared.RespondWithErrorAndLog(w, r, status, fallback, err)
		return
	}
	shared.RespondWithError(w, r, status, GetSafeErrorMessage(err))
}

func (h *ProductHandler) invalidate() {
	if h.cache == nil {
		return
	}
	h.cache.Invalidate(productCachePrefix)
}

// parseProductFilter builds a store filter from the query string.
func parseProductFilter(r *http.Request) (store.ProductFilter, error) {
	var filter store.ProductFilter
	query := r.URL.Query()

	if raw := query.Get("min_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		filter.MinPrice = &v
	}

	if raw := query.Get("max_price"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, err
		}
		filter.MaxPrice = &v
	}

	for _, raw := range query["category_id"] {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return filter, err
		}
		filter.CategoryIDs = append(filter.CategoryIDs, id)
	}

	return filter, nil
}
