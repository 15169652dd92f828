package models

// ChatRole is the closed set of message author roles.
type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
	RoleSystem    ChatRole = "system"
)

// Valid reports whether the role is one of the known variants.
func (r ChatRole) Valid() bool {
	switch r {
	case RoleUser, RoleAssistant, RoleSystem:
		return true
	}
	return false
}

// ChatMessageModel is one turn within a ChatSession.
type ChatMessageModel struct {
	Base
	SessionID         string   `json:"session_id"          gorm:"type:char(36);index;not null"`
	Role              ChatRole `json:"role"                gorm:"type:varchar(16);not null"`
	Content           string   `json:"content"             gorm:"type:text;not null"`
	CurrentTimeMs     int64    `json:"current_time_ms"     gorm:"not null"`
	Model             *string  `json:"model"`
	PromptTokens      *int     `json:"prompt_tokens"`
	CompletionTokens  *int     `json:"completion_tokens"`
	RelatedRelationID *string  `json:"related_relation_id" gorm:"type:char(36)"`
}

func (ChatMessageModel) TableName() string { return "chat_messages" }
