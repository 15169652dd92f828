package models

// SubtitleLineModel is a timestamped line of dialogue within an Episode,
// optionally attributed to a Character.
type SubtitleLineModel struct {
	Base
	EpisodeID          string  `json:"episode_id"           gorm:"type:char(36);index;not null"`
	StartMs            int64   `json:"start_ms"             gorm:"not null"`
	EndMs              int64   `json:"end_ms"               gorm:"not null"`
	SpeakerText        *string `json:"speaker_text"`
	SpeakerCharacterID *string `json:"speaker_character_id" gorm:"type:char(36)"`
	Text               string  `json:"text"                 gorm:"type:text;not null"`

	// Weak reference: storage clears it when the character is deleted.
	SpeakerCharacter *CharacterModel `json:"-" gorm:"foreignKey:SpeakerCharacterID;constraint:OnDelete:SET NULL"`
}

func (SubtitleLineModel) TableName() string { return "subtitle_lines" }
