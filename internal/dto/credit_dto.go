// FILE: internal/dto/credit_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"
)

type BalanceResponse struct {
	Balance   int  `json:"balance"`
	Unlimited bool `json:"unlimited"`
}

type TransactionResponse struct {
	Id           uuid.UUID  `json:"id"`
	Type         string     `json:"type"`
	Amount       int        `json:"amount"`
	Description  string     `json:"description"`
	GenerationId *uuid.UUID `json:"generation_id,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

type TransactionListResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Limit        int                   `json:"limit"`
}
