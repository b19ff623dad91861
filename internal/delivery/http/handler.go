package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/storelens/backend/internal/domain"
	"github.com/storelens/backend/internal/logging"
	"github.com/storelens/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	search  *usecase.SearchService
	catalog domain.CatalogRepository
	rec     *logging.Recorder
}

// NewHandler creates a new HTTP handler
func NewHandler(search *usecase.SearchService, catalog domain.CatalogRepository, rec *logging.Recorder) *Handler {
	return &Handler{
		search:  search,
		catalog: catalog,
		rec:     rec,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "storelens-backend",
		"version": "1.0.0",
	})
}

// Search handles catalog search requests: GET /api/v1/search?q=...&limit=...
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	limit := parseLimit(c.Query("limit"))

	results, err := h.search.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.rec.Errorf("search %q failed: %v", query, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "search unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":   query,
		"count":   len(results),
		"results": results,
	})
}

// Suggest handles autocomplete requests: GET /api/v1/suggest?q=...&limit=...
func (h *Handler) Suggest(c *gin.Context) {
	query := c.Query("q")
	limit := parseLimit(c.Query("limit"))

	suggestions, err := h.search.Suggest(c.Request.Context(), query, limit)
	if err != nil {
		h.rec.Errorf("suggest %q failed: %v", query, err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "suggestions unavailable"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"query":       query,
		"suggestions": suggestions,
	})
}

// ListProducts returns the full catalog: GET /api/v1/products
func (h *Handler) ListProducts(c *gin.Context) {
	items, err := h.catalog.List(c.Request.Context())
	if err != nil {
		h.rec.Errorf("listing products failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
		return
	}
	if items == nil {
		items = []domain.CatalogItem{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":    len(items),
		"products": items,
	})
}

// GetProduct returns one product: GET /api/v1/products/:id
func (h *Handler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.catalog.GetByID(c.Request.Context(), id)
	if err != nil {
		h.respondCatalogError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CreateProduct adds a product from the back-office: POST /api/v1/products
func (h *Handler) CreateProduct(c *gin.Context) {
	var item domain.CatalogItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}

	if err := h.catalog.Create(c.Request.Context(), &item); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	h.rec.Infof("product created: %q (id %d)", item.Name, item.ID)
	c.JSON(http.StatusCreated, item)
}

// UpdateProduct rewrites a product: PUT /api/v1/products/:id
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var item domain.CatalogItem
	if err := c.ShouldBindJSON(&item); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product payload"})
		return
	}
	if item.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "product name is required"})
		return
	}
	item.ID = id

	if err := h.catalog.Update(c.Request.Context(), &item); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	h.rec.Infof("product updated: %q (id %d)", item.Name, item.ID)
	c.JSON(http.StatusOK, item)
}

// DeleteProduct removes a product: DELETE /api/v1/products/:id
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.catalog.Delete(c.Request.Context(), id); err != nil {
		h.respondCatalogError(c, err)
		return
	}

	h.rec.Infof("product deleted: id %d", id)
	c.Status(http.StatusNoContent)
}

// RecentLogs exposes the diagnostic ring buffer: GET /api/v1/admin/logs?n=...
func (h *Handler) RecentLogs(c *gin.Context) {
	n := parseLimit(c.Query("n"))
	if n <= 0 {
		n = 50
	}

	entries := h.rec.Recent(n)
	if entries == nil {
		entries = []logging.Entry{}
	}

	c.JSON(http.StatusOK, gin.H{
		"count":   len(entries),
		"entries": entries,
	})
}

// respondCatalogError maps repository errors to HTTP status codes.
func (h *Handler) respondCatalogError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
	case errors.Is(err, domain.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product"})
	default:
		h.rec.Errorf("catalog operation failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "catalog unavailable"})
	}
}

// parseLimit parses an optional numeric query parameter; zero means
// "use the configured default".
func parseLimit(raw string) int {
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return 0, false
	}
	return id, true
}
