package domain

import "time"

type UserRole string

const (
	UserRoleCustomer UserRole = "CUSTOMER"
	UserRoleOwner    UserRole = "OWNER"
	UserRoleDriver   UserRole = "DRIVER"
	UserRoleAdmin    UserRole = "ADMIN"
)

type User struct {
	ID           int32     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	CreatedOn    time.Time `json:"created_on"`
	UpdatedOn    time.Time `json:"updated_on"`
}

// RefreshToken is a durable session record. Tokens are stored hashed so a
// database leak does not hand out live sessions.
type RefreshToken struct {
	ID        int32      `json:"id"`
	UserID    int32      `json:"user_id"`
	TokenHash string     `json:"-"`
	ExpiresAt time.Time  `json:"expires_at"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedOn time.Time  `json:"created_on"`
}
