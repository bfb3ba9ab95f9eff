package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"beetlevault-backend/internal/domains/beetle"
	"beetlevault-backend/internal/shared/response"
	"beetlevault-backend/pkg/cache"
)

const detailCacheTTL = 10 * time.Minute

// PublicHandler serves the unauthenticated catalog endpoints. Only
// published records are visible here.
type PublicHandler struct {
	service beetle.Service
	cache   cache.Cache
}

func NewPublicHandler(service beetle.Service, cache cache.Cache) *PublicHandler {
	return &PublicHandler{service: service, cache: cache}
}

// List is the browsable catalog with filtering, sorting and pagination.
// GET /api/v1/public/beetles
func (h *PublicHandler) List(c *gin.Context) {
	query, err := beetle.ParsePublicListQuery(c.Request.URL.Query())
	if err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	beetles, total, err := h.service.PublicList(c.Request.Context(), query)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"beetles":    emptyIfNil(beetles),
		"pagination": response.NewPagination(query.Page, query.PageSize, total),
	})
}

// Get fetches a single published record, cache-aside with a short TTL.
// GET /api/v1/public/beetles/:id
func (h *PublicHandler) Get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	key := beetle.DetailCacheKey(id)

	var cached beetle.WithOwner
	hit, err := h.cache.Get(c.Request.Context(), key, &cached)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Cache read failed")
	}
	if hit {
		response.Success(c, http.StatusOK, gin.H{"beetle": cached})
		return
	}

	found, err := h.service.PublicGet(c.Request.Context(), id)
	if err != nil {
		writeBeetleError(c, err)
		return
	}

	if err := h.cache.Set(c.Request.Context(), key, found, detailCacheTTL); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("Cache write failed")
	}

	response.Success(c, http.StatusOK, gin.H{"beetle": found})
}
