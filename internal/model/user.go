package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores system users with role-based access.
// Role: ADMIN | PROCUREMENT | REQUESTER
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email        string    `gorm:"uniqueIndex;not null"`
	Name         string    `gorm:"not null"`
	PasswordHash string    `gorm:"not null"`
	Role         Role      `gorm:"type:varchar(20);not null"`
	Active       bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// Locations the user is assigned to; REQUESTERs are scoped to these.
	Locations []Location `gorm:"many2many:user_locations"`
}

// UserLocation is the join row assigning a user to a location.
type UserLocation struct {
	UserID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationID uuid.UUID `gorm:"type:uuid;primaryKey"`
	CreatedAt  time.Time
}
