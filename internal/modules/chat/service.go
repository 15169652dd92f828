package chat

import (
	"errors"

	"github.com/netplus/core/internal/models"
	"github.com/netplus/core/internal/pkg/response"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrSessionNotFound signals a path-addressed session that does not exist.
var ErrSessionNotFound = errors.New("chat session not found")

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateSession inserts a chat session after resolving its references in
// Title, Episode, User order, short-circuiting on the first miss.
func (s *Service) CreateSession(dto *CreateSessionDTO) (*models.ChatSessionModel, error) {
	var row models.ChatSessionModel
	err := s.db.Transaction(func(tx *gorm.DB) error {
		checks := []struct {
			model interface{}
			id    string
			field string
			miss  string
		}{
			{&models.TitleModel{}, dto.TitleID, "title_id", "Title not found"},
			{&models.EpisodeModel{}, dto.EpisodeID, "episode_id", "Episode not found"},
			{&models.UserModel{}, dto.UserID, "user_id", "User not found"},
		}
		for _, check := range checks {
			var count int64
			if err := tx.Model(check.model).Where("id = ?", check.id).Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				return &response.FieldError{Field: check.field, Reason: check.miss}
			}
		}

		row = models.ChatSessionModel{
			TitleID:       dto.TitleID,
			EpisodeID:     dto.EpisodeID,
			UserID:        dto.UserID,
			CurrentTimeMs: dto.CurrentTimeMs,
			Meta:          datatypes.JSONMap(dto.Meta),
		}
		return tx.Create(&row).Error
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListSessions returns sessions matching all provided filters, most recent first.
func (s *Service) ListSessions(filter *SessionFilter) ([]models.ChatSessionModel, error) {
	q := s.db.Model(&models.ChatSessionModel{})
	if filter.TitleID != "" {
		q = q.Where("title_id = ?", filter.TitleID)
	}
	if filter.EpisodeID != "" {
		q = q.Where("episode_id = ?", filter.EpisodeID)
	}
	if filter.UserID != "" {
		q = q.Where("user_id = ?", filter.UserID)
	}

	var sessions []models.ChatSessionModel
	return sessions, q.Order("created_at DESC").Find(&sessions).Error
}

// GetSession returns the session or ErrSessionNotFound.
func (s *Service) GetSession(id string) (*models.ChatSessionModel, error) {
	var row models.ChatSessionModel
	if err := s.db.First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &row, nil
}

// ListMessages returns the session's messages in conversational order,
// truncated to limit.
func (s *Service) ListMessages(sessionID string, limit int) ([]models.ChatMessageModel, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	var messages []models.ChatMessageModel
	err := s.db.Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Limit(limit).
		Find(&messages).Error
	return messages, err
}

// CreateMessage inserts one message under an existing session.
// RelatedRelationID is a weak reference and is not checked for existence.
func (s *Service) CreateMessage(sessionID string, dto *CreateMessageDTO) (*models.ChatMessageModel, error) {
	if _, err := s.GetSession(sessionID); err != nil {
		return nil, err
	}

	row := models.ChatMessageModel{
		SessionID:         sessionID,
		Role:              dto.Role,
		Content:           dto.Content,
		CurrentTimeMs:     dto.CurrentTimeMs,
		Model:             dto.Model,
		PromptTokens:      dto.PromptTokens,
		CompletionTokens:  dto.CompletionTokens,
		RelatedRelationID: dto.RelatedRelationID,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}
