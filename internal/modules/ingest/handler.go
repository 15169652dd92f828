package ingest

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/pkg/response"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts ingestion endpoints. All of them require auth.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	ing := rg.Group("/ingest", authMW)
	ing.POST("/titles", h.createTitle)
	ing.POST("/episodes", h.createEpisode)
	ing.POST("/subtitle-lines:bulk", h.bulkInsertSubtitleLines)
}

func (h *Handler) createTitle(c *gin.Context) {
	var dto CreateTitleDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	title, err := h.svc.CreateTitle(&dto)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	response.Created(c, serializeTitle(title))
}

func (h *Handler) createEpisode(c *gin.Context) {
	var dto CreateEpisodeDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	episode, err := h.svc.CreateEpisode(&dto)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	response.Created(c, serializeEpisode(episode))
}

func (h *Handler) bulkInsertSubtitleLines(c *gin.Context) {
	var dto BulkSubtitleLinesDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	inserted, err := h.svc.BulkInsertSubtitleLines(&dto)
	if err != nil {
		abortServiceError(c, err)
		return
	}
	response.Accepted(c, bulkSubtitleLinesResponse{
		InsertedCount:       inserted,
		QueuedEmbeddingJobs: inserted,
	})
}

func abortServiceError(c *gin.Context, err error) {
	var fieldErr *response.FieldError
	if errors.As(err, &fieldErr) {
		response.ValidationError(c, fieldErr)
		return
	}
	response.InternalError(c, err)
}
