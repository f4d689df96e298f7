// FILE: internal/entity/user_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
)

type UserRole string
type UserStatus string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"

	UserStatusActive  UserStatus = "active"
	UserStatusBlocked UserStatus = "blocked"
)

// DefaultStartingCredits is granted to every newly provisioned account.
const DefaultStartingCredits = 10

type User struct {
	Id           uuid.UUID
	Email        string
	PasswordHash *string
	FullName     string
	Role         UserRole
	Status       UserStatus
	AvatarURL    *string
	Credits      int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreditAccount projects the ledger view of this user.
func (u *User) CreditAccount() CreditAccount {
	return CreditAccount{
		UserId:  u.Id,
		Balance: u.Credits,
		Admin:   u.Role == UserRoleAdmin,
	}
}

// UserProvider links a user to an external OAuth identity.
type UserProvider struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	ProviderName   string
	ProviderUserId string
	AvatarURL      string
	CreatedAt      time.Time
}
