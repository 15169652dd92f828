package models

// EpisodeModel is a single installment of a Title.
type EpisodeModel struct {
	Base
	TitleID       string  `json:"title_id"       gorm:"type:char(36);index;not null"`
	Season        int     `json:"season"         gorm:"not null"`
	EpisodeNumber int     `json:"episode_number" gorm:"not null"`
	Name          string  `json:"name"           gorm:"not null"`
	DurationMs    int64   `json:"duration_ms"    gorm:"not null"`
	VideoURL      *string `json:"video_url"      gorm:"type:text"`
}

func (EpisodeModel) TableName() string { return "episodes" }
