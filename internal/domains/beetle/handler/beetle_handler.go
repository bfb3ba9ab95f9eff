package handler

import (
	"errors"
	"net/http"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/domains/beetle"
	"beetlevault-backend/internal/shared/middleware"
	"beetlevault-backend/internal/shared/response"
	"beetlevault-backend/pkg/cache"
)

// BeetleHandler serves the owner-scoped record endpoints.
type BeetleHandler struct {
	service beetle.Service
	cache   cache.Cache
}

func NewBeetleHandler(service beetle.Service, cache cache.Cache) *BeetleHandler {
	return &BeetleHandler{service: service, cache: cache}
}

// Create registers a new beetle owned by the caller.
// POST /api/v1/beetles
func (h *BeetleHandler) Create(c *gin.Context) {
	var input beetle.Input
	if err := c.ShouldBindJSON(&input); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	created, err := h.service.Create(c.Request.Context(), middleware.CurrentUserID(c), input)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"beetle": created})
}

// List pages through the caller's own records, published or not.
// GET /api/v1/beetles
func (h *BeetleHandler) List(c *gin.Context) {
	page := intQuery(c, "page", beetle.DefaultPage)
	if page < 1 {
		page = beetle.DefaultPage
	}
	pageSize := intQuery(c, "pageSize", beetle.DefaultPageSize)
	if pageSize < 1 || pageSize > beetle.MaxPageSize {
		pageSize = beetle.DefaultPageSize
	}

	beetles, total, err := h.service.ListOwned(c.Request.Context(), middleware.CurrentUserID(c), page, pageSize)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"beetles":    emptyIfNil(beetles),
		"pagination": response.NewPagination(page, pageSize, total),
	})
}

// Get fetches one of the caller's records.
// GET /api/v1/beetles/:id
func (h *BeetleHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	found, err := h.service.GetOwned(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"beetle": found})
}

// Update applies a partial update to one of the caller's records.
// PATCH /api/v1/beetles/:id
func (h *BeetleHandler) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req beetle.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ValidationError(c, "invalid request body")
		return
	}

	updated, err := h.service.Update(c.Request.Context(), middleware.CurrentUserID(c), id, req)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	h.invalidateDetail(c, id)
	response.Success(c, http.StatusOK, gin.H{"beetle": updated})
}

// Delete removes one of the caller's records.
// DELETE /api/v1/beetles/:id
func (h *BeetleHandler) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		writeBeetleError(c, err)
		return
	}

	h.invalidateDetail(c, id)
	response.Success(c, http.StatusOK, gin.H{"success": true})
}

// invalidateDetail drops the public detail cache entry after a write. Cache
// errors are logged, never surfaced; the next read repopulates.
func (h *BeetleHandler) invalidateDetail(c *gin.Context, id uuid.UUID) {
	if err := h.cache.Delete(c.Request.Context(), beetle.DetailCacheKey(id)); err != nil {
		log.Debug().Err(err).Str("beetle_id", id.String()).Msg("Cache invalidation failed")
	}
}

// writeBeetleError maps domain errors onto the response taxonomy. Shared by
// the owner and public handlers.
func writeBeetleError(c *gin.Context, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		response.ValidationError(c, response.ValidationMessage(err))
	case errors.Is(err, beetle.ErrBeetleNotFound):
		response.NotFound(c, "beetle not found")
	case errors.Is(err, beetle.ErrNotOwner):
		response.Forbidden(c, "you do not own this beetle")
	default:
		log.Error().Err(err).Msg("Beetle request failed")
		response.InternalError(c)
	}
}

// pathID parses the :id segment, writing 404 for malformed ids so they are
// indistinguishable from absent records.
func pathID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.NotFound(c, "beetle not found")
		return uuid.Nil, false
	}
	return id, true
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// emptyIfNil keeps empty listings serializing as [] instead of null.
func emptyIfNil(beetles []beetle.WithOwner) []beetle.WithOwner {
	if beetles == nil {
		return []beetle.WithOwner{}
	}
	return beetles
}
