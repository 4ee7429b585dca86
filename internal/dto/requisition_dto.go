package dto

import "time"

// ── Requests ─────────────────────────────────────────────────────────────────

type CreateRequisitionItem struct {
	ProductID    string  `json:"product_id" validate:"required,uuid"`
	RequestedQty int     `json:"requested_qty" validate:"required,gt=0"`
	Note         *string `json:"note"`
}

type CreateRequisitionRequest struct {
	LocationID string                  `json:"location_id" validate:"required,uuid"`
	Note       *string                 `json:"note"`
	Draft      bool                    `json:"draft"`
	Items      []CreateRequisitionItem `json:"items" validate:"required,min=1,dive"`
}

type EditItem struct {
	ID           string  `json:"id" validate:"required,uuid"`
	RequestedQty *int    `json:"requested_qty" validate:"omitempty,gt=0"`
	ApprovedQty  *int    `json:"approved_qty" validate:"omitempty,gte=0"`
	Note         *string `json:"note"`
}

type EditItemsRequest struct {
	Items   []EditItem `json:"items" validate:"required,min=1,dive"`
	Comment string     `json:"comment" validate:"required,min=1"`
	Version int64      `json:"version" validate:"required"`
}

type ReceiveItem struct {
	ID          string `json:"id" validate:"required,uuid"`
	ReceivedQty int    `json:"received_qty" validate:"gte=0"`
}

type ReceiveItemsRequest struct {
	Items   []ReceiveItem `json:"items" validate:"required,min=1,dive"`
	Comment *string       `json:"comment"`
	Version int64         `json:"version" validate:"required"`
}

type ChangeStatusRequest struct {
	Status    string  `json:"status" validate:"required,oneof=DRAFT SUBMITTED EDITED ORDERED PARTIALLY_RECEIVED RECEIVED CLOSED"`
	Comment   *string `json:"comment"`
	PONumber  *string `json:"po_number"`
	InvoiceID *string `json:"invoice_id"`
	Version   int64   `json:"version" validate:"required"`
}

type SubmitRequest struct {
	Version int64 `json:"version" validate:"required"`
}

type CommentRequest struct {
	Message string `json:"message" validate:"required,min=1"`
}

type CreateAttachmentRequest struct {
	URL  string `json:"url" validate:"required,url"`
	Type string `json:"type" validate:"required,oneof=PO INVOICE PHOTO"`
}

// RequisitionFilter binds the requisition list query string.
type RequisitionFilter struct {
	Status     string `form:"status"`
	LocationID string `form:"location_id"`
	Q          string `form:"q"`
	Page       int    `form:"page,default=1"`
	Limit      int    `form:"limit,default=20"`
}

// ── Responses ────────────────────────────────────────────────────────────────

type RequisitionItemResponse struct {
	ID           string           `json:"id"`
	ProductID    string           `json:"product_id"`
	Product      *ProductResponse `json:"product,omitempty"`
	RequestedQty int              `json:"requested_qty"`
	ApprovedQty  *int             `json:"approved_qty"`
	ReceivedQty  *int             `json:"received_qty"`
	Note         *string          `json:"note,omitempty"`
}

type HistoryEntryResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name,omitempty"`
	Action     string    `json:"action"`
	FromStatus *string   `json:"from_status,omitempty"`
	ToStatus   *string   `json:"to_status,omitempty"`
	Message    *string   `json:"message,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type AttachmentResponse struct {
	ID           string    `json:"id"`
	URL          string    `json:"url"`
	Type         string    `json:"type"`
	UploadedByID string    `json:"uploaded_by_id"`
	CreatedAt    time.Time `json:"created_at"`
}

type RequisitionResponse struct {
	ID           string                    `json:"id"`
	LocationID   string                    `json:"location_id"`
	LocationName string                    `json:"location_name,omitempty"`
	CreatedByID  string                    `json:"created_by_id"`
	CreatedBy    string                    `json:"created_by,omitempty"`
	Status       string                    `json:"status"`
	Note         *string                   `json:"note,omitempty"`
	PONumber     *string                   `json:"po_number,omitempty"`
	InvoiceID    *string                   `json:"invoice_id,omitempty"`
	Version      int64                     `json:"version"`
	CreatedAt    time.Time                 `json:"created_at"`
	UpdatedAt    time.Time                 `json:"updated_at"`
	Items        []RequisitionItemResponse `json:"items,omitempty"`
	History      []HistoryEntryResponse    `json:"history,omitempty"`
	Attachments  []AttachmentResponse      `json:"attachments,omitempty"`
}

type RequisitionListResponse struct {
	Data       []RequisitionResponse `json:"data"`
	Pagination Pagination            `json:"pagination"`
}
