package models

// CharacterModel is a named character within a Title, referenced by
// subtitle lines for speaker attribution.
type CharacterModel struct {
	Base
	TitleID string  `json:"title_id" gorm:"type:char(36);index"`
	Name    string  `json:"name"     gorm:"not null"`
	Aliases *string `json:"aliases"  gorm:"type:text"`
}

func (CharacterModel) TableName() string { return "characters" }
