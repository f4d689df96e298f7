// FILE: internal/entity/generation_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type GenerationType string

const (
	GenerationTypeImage GenerationType = "image"
	GenerationTypeVideo GenerationType = "video"
)

type GenerationStatus string

const (
	GenerationStatusPending    GenerationStatus = "pending"
	GenerationStatusProcessing GenerationStatus = "processing"
	GenerationStatusCompleted  GenerationStatus = "completed"
	GenerationStatusFailed     GenerationStatus = "failed"
)

// MaxPromptLength bounds every prompt accepted by the record store.
const MaxPromptLength = 1000

// Generation is one request to produce an image or video artifact.
// Status only moves forward: pending -> processing -> completed | failed.
type Generation struct {
	Id           uuid.UUID
	UserId       uuid.UUID
	Type         GenerationType
	Prompt       string
	Model        string
	Status       GenerationStatus
	Url          *string
	ThumbnailUrl *string
	Provider     *string
	CreditsUsed  int
	Settings     map[string]interface{}
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Finished reports whether the generation reached a terminal status.
func (g *Generation) Finished() bool {
	return g.Status == GenerationStatusCompleted || g.Status == GenerationStatusFailed
}
