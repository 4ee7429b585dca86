package model

import (
	"time"

	"github.com/google/uuid"
)

// Location is a physical SPA site that requisitions are scoped to.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Address   *string
	Active    bool `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// LocationProduct assigns a catalog product to a location with optional
// replenishment hints.
type LocationProduct struct {
	LocationID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProductID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	MinStock     *int
	PreferredQty *int
	CreatedAt    time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}
