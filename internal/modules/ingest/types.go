package ingest

import (
	"time"

	"github.com/netplus/core/internal/models"
)

type CreateTitleDTO struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
}

type CreateEpisodeDTO struct {
	TitleID       string  `json:"title_id"       binding:"required"`
	Season        int     `json:"season"         binding:"min=0"`
	EpisodeNumber int     `json:"episode_number" binding:"min=0"`
	Name          string  `json:"name"           binding:"required"`
	DurationMs    int64   `json:"duration_ms"    binding:"min=0"`
	VideoURL      *string `json:"video_url"`
}

type SubtitleLineDTO struct {
	EpisodeID          string  `json:"episode_id" binding:"required"`
	StartMs            int64   `json:"start_ms"   binding:"min=0"`
	EndMs              int64   `json:"end_ms"     binding:"min=0"`
	Text               string  `json:"text"       binding:"required"`
	SpeakerText        *string `json:"speaker_text"`
	SpeakerCharacterID *string `json:"speaker_character_id"`
}

type BulkSubtitleLinesDTO struct {
	Lines []SubtitleLineDTO `json:"lines" binding:"required,dive"`
}

type titleResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	CreatedAt   string  `json:"created_at"`
}

type episodeResponse struct {
	ID            string  `json:"id"`
	TitleID       string  `json:"title_id"`
	Season        int     `json:"season"`
	EpisodeNumber int     `json:"episode_number"`
	Name          string  `json:"name"`
	DurationMs    int64   `json:"duration_ms"`
	VideoURL      *string `json:"video_url,omitempty"`
}

type bulkSubtitleLinesResponse struct {
	InsertedCount int `json:"inserted_count"`
	// Always equals InsertedCount until a real embedding pipeline exists.
	QueuedEmbeddingJobs int `json:"queued_embedding_jobs"`
}

func serializeTitle(t *models.TitleModel) titleResponse {
	return titleResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: t.Description,
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func serializeEpisode(e *models.EpisodeModel) episodeResponse {
	return episodeResponse{
		ID:            e.ID,
		TitleID:       e.TitleID,
		Season:        e.Season,
		EpisodeNumber: e.EpisodeNumber,
		Name:          e.Name,
		DurationMs:    e.DurationMs,
		VideoURL:      e.VideoURL,
	}
}
