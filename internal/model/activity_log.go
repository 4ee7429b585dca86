package model

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog records one state-changing operation on a requisition.
// Rows are append-only: written inside the same transaction as the mutation
// they describe and never updated or deleted afterwards (except by cascade
// when the whole requisition is hard-deleted).
type ActivityLog struct {
	ID            uuid.UUID          `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RequisitionID uuid.UUID          `gorm:"type:uuid;not null;index"`
	ActorID       uuid.UUID          `gorm:"type:uuid;not null"`
	Action        HistoryAction      `gorm:"type:varchar(20);not null"`
	FromStatus    *RequisitionStatus `gorm:"type:varchar(20)"`
	ToStatus      *RequisitionStatus `gorm:"type:varchar(20)"`
	Message       *string
	CreatedAt     time.Time

	Actor *User `gorm:"foreignKey:ActorID"`
}

// TableName overrides GORM's default pluralization (activity_logs is kept as
// the audit table name used by the reporting queries).
func (ActivityLog) TableName() string { return "activity_logs" }
