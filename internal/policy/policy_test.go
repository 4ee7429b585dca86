package policy

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/CroSSer23/spa-procurement/internal/model"
)

var (
	locA = uuid.New()
	locB = uuid.New()
)

func admin() Actor {
	return Actor{UserID: uuid.New(), Role: model.RoleAdmin}
}

func procurement() Actor {
	return Actor{UserID: uuid.New(), Role: model.RoleProcurement}
}

func requester(locs ...uuid.UUID) Actor {
	return Actor{UserID: uuid.New(), Role: model.RoleRequester, LocationIDs: locs}
}

func reqOwnedBy(a Actor, loc uuid.UUID, status model.RequisitionStatus) RequisitionRef {
	return RequisitionRef{CreatedByID: a.UserID, LocationID: loc, Status: status}
}

// ── Access ───────────────────────────────────────────────────────────────────

func TestCanAccessRequisition(t *testing.T) {
	owner := requester(locA)
	other := requester(locA)
	foreign := reqOwnedBy(other, locA, model.StatusSubmitted)

	assert.True(t, CanAccessRequisition(admin(), foreign))
	assert.True(t, CanAccessRequisition(procurement(), foreign))
	assert.True(t, CanAccessRequisition(owner, reqOwnedBy(owner, locA, model.StatusSubmitted)))

	// Not the creator
	assert.False(t, CanAccessRequisition(owner, foreign))
	// Creator, but no longer assigned to the location
	assert.False(t, CanAccessRequisition(requester(locB), reqOwnedBy(requester(locB), locA, model.StatusSubmitted)))
}

func TestCanAccessRequisition_OwnButUnassignedLocation(t *testing.T) {
	owner := requester(locB) // assigned to B, requisition lives in A
	ref := reqOwnedBy(owner, locA, model.StatusSubmitted)
	assert.False(t, CanAccessRequisition(owner, ref))
}

// ── Edit ─────────────────────────────────────────────────────────────────────

func TestCanEditRequisition(t *testing.T) {
	owner := requester(locA)

	for _, status := range []model.RequisitionStatus{
		model.StatusDraft, model.StatusSubmitted, model.StatusOrdered, model.StatusClosed,
	} {
		ref := reqOwnedBy(owner, locA, status)
		assert.True(t, CanEditRequisition(admin(), ref), "admin edits %s", status)
		assert.True(t, CanEditRequisition(procurement(), ref), "procurement edits %s", status)
	}

	// A requester edits only their own draft.
	assert.True(t, CanEditRequisition(owner, reqOwnedBy(owner, locA, model.StatusDraft)))
	assert.False(t, CanEditRequisition(owner, reqOwnedBy(owner, locA, model.StatusSubmitted)))
	assert.False(t, CanEditRequisition(owner, reqOwnedBy(requester(locA), locA, model.StatusDraft)))
}

// ── Status change and submit ─────────────────────────────────────────────────

func TestCanChangeStatus(t *testing.T) {
	assert.True(t, CanChangeStatus(admin()))
	assert.True(t, CanChangeStatus(procurement()))
	assert.False(t, CanChangeStatus(requester(locA)))
}

func TestCanSubmitDraft(t *testing.T) {
	owner := requester(locA)

	assert.True(t, CanSubmitDraft(owner, reqOwnedBy(owner, locA, model.StatusDraft)))
	assert.True(t, CanSubmitDraft(procurement(), reqOwnedBy(owner, locA, model.StatusDraft)))

	// Already submitted
	assert.False(t, CanSubmitDraft(owner, reqOwnedBy(owner, locA, model.StatusSubmitted)))
	// Someone else's draft
	assert.False(t, CanSubmitDraft(owner, reqOwnedBy(requester(locA), locA, model.StatusDraft)))
}

// ── Receive ──────────────────────────────────────────────────────────────────

func TestCanReceiveItems(t *testing.T) {
	owner := requester(locA)
	colleague := requester(locA) // same location, different person
	ref := reqOwnedBy(owner, locA, model.StatusOrdered)

	assert.True(t, CanReceiveItems(admin(), ref))
	assert.True(t, CanReceiveItems(procurement(), ref))
	assert.True(t, CanReceiveItems(owner, ref))
	// Receipt is delegated to location staff: ownership is not required.
	assert.True(t, CanReceiveItems(colleague, ref))
	assert.False(t, CanReceiveItems(requester(locB), ref))
}

// ── Delete and create ────────────────────────────────────────────────────────

func TestCanDeleteRequisition(t *testing.T) {
	owner := requester(locA)

	assert.True(t, CanDeleteRequisition(admin(), reqOwnedBy(owner, locA, model.StatusClosed)))
	assert.True(t, CanDeleteRequisition(owner, reqOwnedBy(owner, locA, model.StatusDraft)))

	// A submitted requisition is part of the audit trail.
	assert.False(t, CanDeleteRequisition(owner, reqOwnedBy(owner, locA, model.StatusSubmitted)))
	assert.False(t, CanDeleteRequisition(procurement(), reqOwnedBy(owner, locA, model.StatusSubmitted)))
}

func TestCanCreateRequisition(t *testing.T) {
	assert.True(t, CanCreateRequisition(admin(), locA))
	assert.True(t, CanCreateRequisition(procurement(), locB))
	assert.True(t, CanCreateRequisition(requester(locA), locA))
	assert.False(t, CanCreateRequisition(requester(locA), locB))
}

func TestManagementGates(t *testing.T) {
	assert.True(t, CanManageCatalog(admin()))
	assert.True(t, CanManageCatalog(procurement()))
	assert.False(t, CanManageCatalog(requester(locA)))

	assert.True(t, CanManageLocations(admin()))
	assert.False(t, CanManageLocations(procurement()))

	assert.True(t, CanManageUsers(admin()))
	assert.False(t, CanManageUsers(procurement()))
}

func TestUnknownRoleDeniedEverywhere(t *testing.T) {
	ghost := Actor{UserID: uuid.New(), Role: model.Role("AUDITOR"), LocationIDs: []uuid.UUID{locA}}
	ref := reqOwnedBy(ghost, locA, model.StatusDraft)

	assert.False(t, CanAccessRequisition(ghost, ref))
	assert.False(t, CanEditRequisition(ghost, ref))
	assert.False(t, CanChangeStatus(ghost))
	assert.False(t, CanSubmitDraft(ghost, ref))
	assert.False(t, CanReceiveItems(ghost, ref))
	assert.False(t, CanCreateRequisition(ghost, locA))
}
