package model

import (
	"time"

	"github.com/google/uuid"
)

type CreditPackage struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Credits       int       `gorm:"not null"`
	PriceCents    int64     `gorm:"not null"`
	StripePriceId string    `gorm:"type:varchar(255);not null"`
	Active        bool      `gorm:"not null;default:true"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (CreditPackage) TableName() string {
	return "credit_packages"
}

type Purchase struct {
	Id              uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID  `gorm:"type:uuid;not null;index"`
	PackageId       uuid.UUID  `gorm:"type:uuid;not null"`
	StripeSessionId string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending'"`
	AmountCents     int64      `gorm:"not null"`
	Credits         int        `gorm:"not null"`
	CompletedAt     *time.Time
	CreatedAt       time.Time `gorm:"autoCreateTime"`
}

func (Purchase) TableName() string {
	return "purchases"
}
