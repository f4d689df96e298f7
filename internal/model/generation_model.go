package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Generation struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId       uuid.UUID      `gorm:"type:uuid;not null;index"`
	Type         string         `gorm:"type:varchar(20);not null"`
	Prompt       string         `gorm:"type:varchar(1000);not null"`
	Model        string         `gorm:"type:varchar(100);not null"`
	Status       string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	Url          *string        `gorm:"type:text"`
	ThumbnailUrl *string        `gorm:"type:text"`
	Provider     *string        `gorm:"type:varchar(50)"`
	CreditsUsed  int            `gorm:"not null;default:0"`
	Settings     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt    time.Time      `gorm:"autoCreateTime;index"`
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
}

func (Generation) TableName() string {
	return "generations"
}
