package chat

import (
	"time"

	"github.com/netplus/core/internal/models"
)

type CreateSessionDTO struct {
	TitleID       string                 `json:"title_id"        binding:"required"`
	EpisodeID     string                 `json:"episode_id"      binding:"required"`
	UserID        string                 `json:"user_id"         binding:"required"`
	CurrentTimeMs int64                  `json:"current_time_ms" binding:"min=0"`
	Meta          map[string]interface{} `json:"meta"`
}

type SessionFilter struct {
	TitleID   string `form:"title_id"`
	EpisodeID string `form:"episode_id"`
	UserID    string `form:"user_id"`
}

type CreateMessageDTO struct {
	Role              models.ChatRole `json:"role"                binding:"required,oneof=user assistant system"`
	Content           string          `json:"content"             binding:"required"`
	CurrentTimeMs     int64           `json:"current_time_ms"     binding:"min=0"`
	Model             *string         `json:"model"`
	PromptTokens      *int            `json:"prompt_tokens"`
	CompletionTokens  *int            `json:"completion_tokens"`
	RelatedRelationID *string         `json:"related_relation_id"`
}

type sessionResponse struct {
	ID            string                 `json:"id"`
	TitleID       string                 `json:"title_id"`
	EpisodeID     string                 `json:"episode_id"`
	UserID        string                 `json:"user_id"`
	CurrentTimeMs int64                  `json:"current_time_ms"`
	Meta          map[string]interface{} `json:"meta"`
	CreatedAt     string                 `json:"created_at"`
}

type sessionListResponse struct {
	Items []sessionResponse `json:"items"`
}

type messageResponse struct {
	ID                string          `json:"id"`
	SessionID         string          `json:"session_id"`
	Role              models.ChatRole `json:"role"`
	Content           string          `json:"content"`
	CurrentTimeMs     int64           `json:"current_time_ms"`
	Model             *string         `json:"model"`
	PromptTokens      *int            `json:"prompt_tokens"`
	CompletionTokens  *int            `json:"completion_tokens"`
	RelatedRelationID *string         `json:"related_relation_id"`
	CreatedAt         string          `json:"created_at"`
}

type messageListResponse struct {
	SessionID string            `json:"session_id"`
	Items     []messageResponse `json:"items"`
}

func serializeSession(s *models.ChatSessionModel) sessionResponse {
	meta := map[string]interface{}(s.Meta)
	if meta == nil {
		meta = map[string]interface{}{}
	}
	return sessionResponse{
		ID:            s.ID,
		TitleID:       s.TitleID,
		EpisodeID:     s.EpisodeID,
		UserID:        s.UserID,
		CurrentTimeMs: s.CurrentTimeMs,
		Meta:          meta,
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func serializeMessage(m *models.ChatMessageModel) messageResponse {
	return messageResponse{
		ID:                m.ID,
		SessionID:         m.SessionID,
		Role:              m.Role,
		Content:           m.Content,
		CurrentTimeMs:     m.CurrentTimeMs,
		Model:             m.Model,
		PromptTokens:      m.PromptTokens,
		CompletionTokens:  m.CompletionTokens,
		RelatedRelationID: m.RelatedRelationID,
		CreatedAt:         m.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}
