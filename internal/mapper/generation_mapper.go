package mapper

import (
	"encoding/json"

	"pixfusion-be/internal/entity"
	"pixfusion-be/internal/model"

	"gorm.io/datatypes"
)

type GenerationMapper struct{}

func NewGenerationMapper() *GenerationMapper {
	return &GenerationMapper{}
}

func (m *GenerationMapper) ToEntity(g *model.Generation) *entity.Generation {
	if g == nil {
		return nil
	}
	var settings map[string]interface{}
	if len(g.Settings) > 0 {
		// A malformed column yields nil settings rather than a failed read.
		_ = json.Unmarshal(g.Settings, &settings)
	}

	return &entity.Generation{
		Id:           g.Id,
		UserId:       g.UserId,
		Type:         entity.GenerationType(g.Type),
		Prompt:       g.Prompt,
		Model:        g.Model,
		Status:       entity.GenerationStatus(g.Status),
		Url:          g.Url,
		ThumbnailUrl: g.ThumbnailUrl,
		Provider:     g.Provider,
		CreditsUsed:  g.CreditsUsed,
		Settings:     settings,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}

func (m *GenerationMapper) ToModel(g *entity.Generation) *model.Generation {
	if g == nil {
		return nil
	}
	var settings datatypes.JSON
	if len(g.Settings) > 0 {
		if raw, err := json.Marshal(g.Settings); err == nil {
			settings = raw
		}
	}

	return &model.Generation{
		Id:           g.Id,
		UserId:       g.UserId,
		Type:         string(g.Type),
		Prompt:       g.Prompt,
		Model:        g.Model,
		Status:       string(g.Status),
		Url:          g.Url,
		ThumbnailUrl: g.ThumbnailUrl,
		Provider:     g.Provider,
		CreditsUsed:  g.CreditsUsed,
		Settings:     settings,
		CreatedAt:    g.CreatedAt,
		UpdatedAt:    g.UpdatedAt,
	}
}
