package ingest

import (
	"sort"
	"strings"
	"time"

	"github.com/netplus/core/internal/models"
	"github.com/netplus/core/internal/pkg/response"
	"gorm.io/gorm"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// CreateTitle inserts a new catalog title. Name is trimmed and must be non-empty.
func (s *Service) CreateTitle(dto *CreateTitleDTO) (*models.TitleModel, error) {
	name := strings.TrimSpace(dto.Name)
	if name == "" {
		return nil, &response.FieldError{Field: "name", Reason: "Name must not be empty"}
	}

	row := models.TitleModel{Name: name, Description: dto.Description}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// CreateEpisode inserts a new episode after checking its title exists.
func (s *Service) CreateEpisode(dto *CreateEpisodeDTO) (*models.EpisodeModel, error) {
	var count int64
	if err := s.db.Model(&models.TitleModel{}).Where("id = ?", dto.TitleID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, &response.FieldError{Field: "title_id", Reason: "Title not found"}
	}

	row := models.EpisodeModel{
		TitleID:       dto.TitleID,
		Season:        dto.Season,
		EpisodeNumber: dto.EpisodeNumber,
		Name:          dto.Name,
		DurationMs:    dto.DurationMs,
		VideoURL:      dto.VideoURL,
	}
	if err := s.db.Create(&row).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// BulkInsertSubtitleLines inserts every line of the batch, or none of it.
// All referenced episodes are checked up front; a missing one fails the
// whole batch naming the smallest missing id.
func (s *Service) BulkInsertSubtitleLines(dto *BulkSubtitleLinesDTO) (int, error) {
	inserted := 0
	err := s.db.Transaction(func(tx *gorm.DB) error {
		seen := make(map[string]struct{}, len(dto.Lines))
		episodeIDs := make([]string, 0, len(dto.Lines))
		for _, line := range dto.Lines {
			if _, ok := seen[line.EpisodeID]; ok {
				continue
			}
			seen[line.EpisodeID] = struct{}{}
			episodeIDs = append(episodeIDs, line.EpisodeID)
		}
		sort.Strings(episodeIDs)

		if len(episodeIDs) > 0 {
			var existing []string
			if err := tx.Model(&models.EpisodeModel{}).
				Where("id IN ?", episodeIDs).
				Pluck("id", &existing).Error; err != nil {
				return err
			}
			existingSet := make(map[string]struct{}, len(existing))
			for _, id := range existing {
				existingSet[id] = struct{}{}
			}
			for _, id := range episodeIDs {
				if _, ok := existingSet[id]; !ok {
					return &response.FieldError{Field: "episode_id", Reason: "Episode not found: " + id}
				}
			}
		}

		now := time.Now().UTC()
		for _, line := range dto.Lines {
			row := models.SubtitleLineModel{
				EpisodeID:          line.EpisodeID,
				StartMs:            line.StartMs,
				EndMs:              line.EndMs,
				SpeakerText:        line.SpeakerText,
				SpeakerCharacterID: line.SpeakerCharacterID,
				Text:               line.Text,
			}
			row.CreatedAt = now
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return inserted, nil
}
