package model

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item that requisition lines reference.
type Product struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SKU         *string    `gorm:"index"`
	Name        string     `gorm:"index;not null"`
	Unit        Unit       `gorm:"type:varchar(10);not null;default:'PCS'"`
	CategoryID  *uuid.UUID `gorm:"type:uuid;index"`
	Description *string
	Active      bool `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Category *Category `gorm:"foreignKey:CategoryID"`
}
