package chat

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/netplus/core/internal/pkg/response"
)

const (
	defaultMessageLimit = 50
	maxMessageLimit     = 200
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts chat endpoints. Session creation requires auth;
// reads and message posting do not.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, authMW gin.HandlerFunc) {
	sessions := rg.Group("/chat/sessions")
	sessions.POST("", authMW, h.createSession)
	sessions.GET("", h.listSessions)
	sessions.GET("/:id", h.getSession)
	sessions.GET("/:id/messages", h.listMessages)
	sessions.POST("/:id/messages", h.createMessage)
}

func (h *Handler) createSession(c *gin.Context) {
	var dto CreateSessionDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	session, err := h.svc.CreateSession(&dto)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}
	response.Created(c, serializeSession(session))
}

func (h *Handler) listSessions(c *gin.Context) {
	var filter SessionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BindError(c, err)
		return
	}
	sessions, err := h.svc.ListSessions(&filter)
	if err != nil {
		response.InternalError(c, err)
		return
	}
	items := make([]sessionResponse, 0, len(sessions))
	for i := range sessions {
		items = append(items, serializeSession(&sessions[i]))
	}
	response.OK(c, sessionListResponse{Items: items})
}

func (h *Handler) getSession(c *gin.Context) {
	session, err := h.svc.GetSession(c.Param("id"))
	if err != nil {
		h.abortServiceError(c, err)
		return
	}
	response.OK(c, serializeSession(session))
}

func (h *Handler) listMessages(c *gin.Context) {
	sessionID := c.Param("id")

	// Session existence wins over limit validation: a missing session is
	// a 404 regardless of the limit value.
	if _, err := h.svc.GetSession(sessionID); err != nil {
		h.abortServiceError(c, err)
		return
	}

	limit := defaultMessageLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxMessageLimit {
			response.ValidationError(c, &response.FieldError{
				Field:  "limit",
				Reason: "Limit must be an integer between 1 and 200",
			})
			return
		}
		limit = parsed
	}

	messages, err := h.svc.ListMessages(sessionID, limit)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}
	items := make([]messageResponse, 0, len(messages))
	for i := range messages {
		items = append(items, serializeMessage(&messages[i]))
	}
	response.OK(c, messageListResponse{SessionID: sessionID, Items: items})
}

func (h *Handler) createMessage(c *gin.Context) {
	sessionID := c.Param("id")

	if _, err := h.svc.GetSession(sessionID); err != nil {
		h.abortServiceError(c, err)
		return
	}

	var dto CreateMessageDTO
	if err := c.ShouldBindJSON(&dto); err != nil {
		response.BindError(c, err)
		return
	}
	message, err := h.svc.CreateMessage(sessionID, &dto)
	if err != nil {
		h.abortServiceError(c, err)
		return
	}
	response.Created(c, serializeMessage(message))
}

func (h *Handler) abortServiceError(c *gin.Context, err error) {
	var fieldErr *response.FieldError
	switch {
	case errors.Is(err, ErrSessionNotFound):
		response.NotFound(c)
	case errors.As(err, &fieldErr):
		response.ValidationError(c, fieldErr)
	default:
		response.InternalError(c, err)
	}
}
