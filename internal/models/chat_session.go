package models

import "gorm.io/datatypes"

// ChatSessionModel is a conversational context scoped to a Title/Episode/User
// and a playback timestamp.
type ChatSessionModel struct {
	Base
	TitleID       string            `json:"title_id"        gorm:"type:char(36);index;not null"`
	EpisodeID     string            `json:"episode_id"      gorm:"type:char(36);index;not null"`
	UserID        string            `json:"user_id"         gorm:"type:char(36);index"`
	CurrentTimeMs int64             `json:"current_time_ms" gorm:"not null"`
	Meta          datatypes.JSONMap `json:"meta"`
}

func (ChatSessionModel) TableName() string { return "chat_sessions" }
