package model

import (
	"time"

	"github.com/google/uuid"
)

// Attachment stores metadata for a file linked to a requisition (purchase
// order, invoice, delivery photo). Only the URL is kept — upload and storage
// mechanics live outside this service.
type Attachment struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequisitionID uuid.UUID      `gorm:"type:uuid;not null;index"`
	UploadedByID  uuid.UUID      `gorm:"type:uuid;not null"`
	URL           string         `gorm:"not null"`
	Type          AttachmentType `gorm:"type:varchar(10);not null"`
	CreatedAt     time.Time

	UploadedBy *User `gorm:"foreignKey:UploadedByID"`
}
