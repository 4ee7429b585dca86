package model

import (
	"time"

	"github.com/google/uuid"
)

// Requisition is one purchase request tracked through the
// submit → edit → order → receive → close lifecycle.
//
// Version is the optimistic-concurrency token: every mutating operation must
// present the last-observed value and the guarded UPDATE bumps it by one.
// A wall-clock timestamp is deliberately not used as the token — back-to-back
// writes inside one clock tick would not be detected.
type Requisition struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID  uuid.UUID         `gorm:"type:uuid;not null;index"`
	CreatedByID uuid.UUID         `gorm:"type:uuid;not null;index"`
	Status      RequisitionStatus `gorm:"type:varchar(20);not null;index"`
	Note        *string
	PONumber    *string `gorm:"column:po_number;index"`
	InvoiceID   *string
	Version     int64 `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Location    *Location         `gorm:"foreignKey:LocationID"`
	CreatedBy   *User             `gorm:"foreignKey:CreatedByID"`
	Items       []RequisitionItem `gorm:"foreignKey:RequisitionID;constraint:OnDelete:CASCADE"`
	History     []ActivityLog     `gorm:"foreignKey:RequisitionID;constraint:OnDelete:CASCADE"`
	Attachments []Attachment      `gorm:"foreignKey:RequisitionID;constraint:OnDelete:CASCADE"`
}

// RequisitionItem is one line of a requisition. RequestedQty is set at
// creation; ApprovedQty is set by procurement during an edit; ReceivedQty is
// recorded incrementally as goods arrive.
type RequisitionItem struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequisitionID uuid.UUID `gorm:"type:uuid;not null;index"`
	ProductID     uuid.UUID `gorm:"type:uuid;not null;index"`
	RequestedQty  int       `gorm:"not null"`
	ApprovedQty   *int
	ReceivedQty   *int
	Note          *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Product *Product `gorm:"foreignKey:ProductID"`
}

// FullyReceived reports whether the line satisfies the closing precondition:
// a recorded receipt covering the approved quantity (or any receipt at all
// when nothing was approved).
func (i RequisitionItem) FullyReceived() bool {
	if i.ReceivedQty == nil {
		return false
	}
	approved := 0
	if i.ApprovedQty != nil {
		approved = *i.ApprovedQty
	}
	return *i.ReceivedQty >= approved
}

// AllItemsReceived reports whether every item is fully received.
func AllItemsReceived(items []RequisitionItem) bool {
	for _, it := range items {
		if !it.FullyReceived() {
			return false
		}
	}
	return true
}

// AnyItemReceived reports whether at least one item has a positive receipt.
func AnyItemReceived(items []RequisitionItem) bool {
	for _, it := range items {
		if it.ReceivedQty != nil && *it.ReceivedQty > 0 {
			return true
		}
	}
	return false
}
