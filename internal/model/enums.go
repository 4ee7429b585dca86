package model

// Role is the closed set of system roles. Policy functions switch over it
// exhaustively so a new role is a compile-time-visible change.
type Role string

const (
	RoleAdmin       Role = "ADMIN"
	RoleProcurement Role = "PROCUREMENT"
	RoleRequester   Role = "REQUESTER"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleProcurement, RoleRequester:
		return true
	}
	return false
}

// RequisitionStatus is the closed set of requisition lifecycle states.
type RequisitionStatus string

const (
	StatusDraft             RequisitionStatus = "DRAFT"
	StatusSubmitted         RequisitionStatus = "SUBMITTED"
	StatusEdited            RequisitionStatus = "EDITED"
	StatusOrdered           RequisitionStatus = "ORDERED"
	StatusPartiallyReceived RequisitionStatus = "PARTIALLY_RECEIVED"
	StatusReceived          RequisitionStatus = "RECEIVED"
	StatusClosed            RequisitionStatus = "CLOSED"
)

// Valid reports whether s is one of the known statuses.
func (s RequisitionStatus) Valid() bool {
	switch s {
	case StatusDraft, StatusSubmitted, StatusEdited, StatusOrdered,
		StatusPartiallyReceived, StatusReceived, StatusClosed:
		return true
	}
	return false
}

// CanTransitionTo is the strict status transition table for the direct
// status-change operation. Item edits and receipts move status through their
// own recompute rules and do not consult this table.
func (s RequisitionStatus) CanTransitionTo(to RequisitionStatus) bool {
	switch s {
	case StatusDraft:
		return to == StatusSubmitted
	case StatusSubmitted:
		return to == StatusEdited || to == StatusOrdered
	case StatusEdited:
		return to == StatusOrdered
	case StatusOrdered:
		return to == StatusPartiallyReceived || to == StatusReceived || to == StatusClosed
	case StatusPartiallyReceived:
		return to == StatusReceived || to == StatusClosed
	case StatusReceived:
		return to == StatusClosed
	case StatusClosed:
		return false // terminal
	}
	return false
}

// HistoryAction tags each activity log entry with the operation that wrote it.
type HistoryAction string

const (
	ActionSubmit       HistoryAction = "SUBMIT"
	ActionEdit         HistoryAction = "EDIT"
	ActionOrder        HistoryAction = "ORDER"
	ActionReceive      HistoryAction = "RECEIVE"
	ActionStatusChange HistoryAction = "STATUS_CHANGE"
	ActionClose        HistoryAction = "CLOSE"
	ActionComment      HistoryAction = "COMMENT"
)

// StatusChangeAction maps a target status to the semantic history action
// recorded by the status-change operation.
func StatusChangeAction(to RequisitionStatus) HistoryAction {
	switch to {
	case StatusOrdered:
		return ActionOrder
	case StatusClosed:
		return ActionClose
	default:
		return ActionStatusChange
	}
}

// Unit is the closed set of measurement units for catalog products.
type Unit string

const (
	UnitPcs  Unit = "PCS"
	UnitMl   Unit = "ML"
	UnitL    Unit = "L"
	UnitG    Unit = "G"
	UnitKg   Unit = "KG"
	UnitPack Unit = "PACK"
	UnitBox  Unit = "BOX"
)

// AttachmentType classifies a requisition attachment.
type AttachmentType string

const (
	AttachmentPO      AttachmentType = "PO"
	AttachmentInvoice AttachmentType = "INVOICE"
	AttachmentPhoto   AttachmentType = "PHOTO"
)
