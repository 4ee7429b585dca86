// Package policy is the access policy engine: pure, total functions deciding
// whether an actor may perform an operation on a target. Callers translate a
// false return into an authorization failure; nothing here touches storage or
// returns errors, so every rule is unit-testable over the full role matrix.
package policy

import (
	"github.com/google/uuid"

	"github.com/CroSSer23/spa-procurement/internal/model"
)

// Actor is the authenticated party behind a request: identity, role, and the
// set of locations the actor may act on. It is derived per request from the
// session and location assignments, never persisted.
type Actor struct {
	UserID      uuid.UUID
	Role        model.Role
	LocationIDs []uuid.UUID
}

// HasLocation reports whether id is in the actor's accessible location set.
func (a Actor) HasLocation(id uuid.UUID) bool {
	for _, lid := range a.LocationIDs {
		if lid == id {
			return true
		}
	}
	return false
}

// RequisitionRef carries the ownership fields policy decisions need; callers
// fill it from a loaded requisition.
type RequisitionRef struct {
	CreatedByID uuid.UUID
	LocationID  uuid.UUID
	Status      model.RequisitionStatus
}

// CanAccessRequisition: ADMIN and PROCUREMENT see everything; a REQUESTER sees
// only their own requisitions in locations they are assigned to.
func CanAccessRequisition(a Actor, req RequisitionRef) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return a.UserID == req.CreatedByID && a.HasLocation(req.LocationID)
	}
	return false
}

// CanEditRequisition: ADMIN and PROCUREMENT edit any requisition in any
// status; a REQUESTER may edit only their own requisition while it is still a
// draft.
func CanEditRequisition(a Actor, req RequisitionRef) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return CanAccessRequisition(a, req) && req.Status == model.StatusDraft
	}
	return false
}

// CanChangeStatus: status overwrites are reserved for procurement staff.
// Requesters submit drafts through the dedicated submit operation instead
// (see CanSubmitDraft).
func CanChangeStatus(a Actor) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return false
	}
	return false
}

// CanSubmitDraft: the owner of a draft in an accessible location may submit
// it; procurement staff may submit any draft.
func CanSubmitDraft(a Actor, req RequisitionRef) bool {
	if req.Status != model.StatusDraft {
		return false
	}
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return a.UserID == req.CreatedByID && a.HasLocation(req.LocationID)
	}
	return false
}

// CanReceiveItems: procurement staff always; a REQUESTER confirms receipt for
// any location they are assigned to (receipt is delegated to location staff,
// ownership of the requisition is not required).
func CanReceiveItems(a Actor, req RequisitionRef) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return a.HasLocation(req.LocationID)
	}
	return false
}

// CanDeleteRequisition: hard deletion is outside the state machine — an admin
// may delete anything, an owner only their own requisition while still DRAFT.
func CanDeleteRequisition(a Actor, req RequisitionRef) bool {
	if a.Role == model.RoleAdmin {
		return true
	}
	return a.UserID == req.CreatedByID && req.Status == model.StatusDraft
}

// CanCreateRequisition: anyone may raise a requisition for a location they
// can act on; procurement staff are unrestricted.
func CanCreateRequisition(a Actor, locationID uuid.UUID) bool {
	switch a.Role {
	case model.RoleAdmin, model.RoleProcurement:
		return true
	case model.RoleRequester:
		return a.HasLocation(locationID)
	}
	return false
}

// CanManageCatalog: products and categories are maintained by admins and
// procurement staff.
func CanManageCatalog(a Actor) bool {
	return a.Role == model.RoleAdmin || a.Role == model.RoleProcurement
}

// CanManageLocations is admin-only.
func CanManageLocations(a Actor) bool {
	return a.Role == model.RoleAdmin
}

// CanManageUsers is admin-only.
func CanManageUsers(a Actor) bool {
	return a.Role == model.RoleAdmin
}
