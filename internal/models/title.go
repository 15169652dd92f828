package models

// TitleModel is a catalog work (a show) composed of episodes.
type TitleModel struct {
	Base
	Name        string         `json:"name"        gorm:"not null"`
	Description *string        `json:"description" gorm:"type:text"`
	Episodes    []EpisodeModel `json:"-"           gorm:"foreignKey:TitleID"`
}

func (TitleModel) TableName() string { return "titles" }
