// FILE: internal/dto/admin_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type AdminStatsResponse struct {
	TotalUsers           int64 `json:"total_users"`
	TotalGenerations     int64 `json:"total_generations"`
	CompletedGenerations int64 `json:"completed_generations"`
	FailedGenerations    int64 `json:"failed_generations"`
	CreditsSpent         int64 `json:"credits_spent"`
	CreditsPurchased     int64 `json:"credits_purchased"`
}

type AdminUserItem struct {
	Id        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	Credits   int       `json:"credits"`
	CreatedAt time.Time `json:"created_at"`
}

type AdminUserListResponse struct {
	Users []AdminUserItem `json:"users"`
	Total int64           `json:"total"`
}

type AdminGrantCreditsRequest struct {
	UserId      uuid.UUID `json:"user_id" validate:"required"`
	Amount      int       `json:"amount" validate:"required,gt=0"`
	Description string    `json:"description" validate:"max=255"`
}

type AdminSweepResponse struct {
	Repaired int `json:"repaired"`
}
