package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitionTable(t *testing.T) {
	allowed := map[RequisitionStatus][]RequisitionStatus{
		StatusDraft:             {StatusSubmitted},
		StatusSubmitted:         {StatusEdited, StatusOrdered},
		StatusEdited:            {StatusOrdered},
		StatusOrdered:           {StatusPartiallyReceived, StatusReceived, StatusClosed},
		StatusPartiallyReceived: {StatusReceived, StatusClosed},
		StatusReceived:          {StatusClosed},
		StatusClosed:            {},
	}

	all := []RequisitionStatus{
		StatusDraft, StatusSubmitted, StatusEdited, StatusOrdered,
		StatusPartiallyReceived, StatusReceived, StatusClosed,
	}

	for from, tos := range allowed {
		want := make(map[RequisitionStatus]bool, len(tos))
		for _, to := range tos {
			want[to] = true
		}
		for _, to := range all {
			assert.Equal(t, want[to], from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestStatusSelfTransitionRejected(t *testing.T) {
	for _, s := range []RequisitionStatus{
		StatusDraft, StatusSubmitted, StatusOrdered, StatusClosed,
	} {
		assert.False(t, s.CanTransitionTo(s))
	}
}

func TestStatusChangeAction(t *testing.T) {
	assert.Equal(t, ActionOrder, StatusChangeAction(StatusOrdered))
	assert.Equal(t, ActionClose, StatusChangeAction(StatusClosed))
	assert.Equal(t, ActionStatusChange, StatusChangeAction(StatusEdited))
	assert.Equal(t, ActionStatusChange, StatusChangeAction(StatusReceived))
}

func intp(v int) *int { return &v }

func TestFullyReceived(t *testing.T) {
	// No receipt recorded
	assert.False(t, RequisitionItem{RequestedQty: 5}.FullyReceived())
	// Receipt below approved
	assert.False(t, RequisitionItem{RequestedQty: 5, ApprovedQty: intp(4), ReceivedQty: intp(3)}.FullyReceived())
	// Receipt covers approved
	assert.True(t, RequisitionItem{RequestedQty: 5, ApprovedQty: intp(4), ReceivedQty: intp(4)}.FullyReceived())
	// Over-delivery still counts as received
	assert.True(t, RequisitionItem{RequestedQty: 5, ApprovedQty: intp(4), ReceivedQty: intp(6)}.FullyReceived())
	// Nothing approved: any recorded receipt closes the line, including zero
	assert.True(t, RequisitionItem{RequestedQty: 5, ReceivedQty: intp(0)}.FullyReceived())
}

func TestAllAndAnyItemReceived(t *testing.T) {
	items := []RequisitionItem{
		{RequestedQty: 2, ApprovedQty: intp(2), ReceivedQty: intp(2)},
		{RequestedQty: 3, ApprovedQty: intp(3)},
	}
	assert.False(t, AllItemsReceived(items))
	assert.False(t, AnyItemReceived(items))

	items[1].ReceivedQty = intp(1)
	assert.False(t, AllItemsReceived(items))
	assert.True(t, AnyItemReceived(items))

	items[1].ReceivedQty = intp(3)
	assert.True(t, AllItemsReceived(items))
}

func TestRoleAndStatusValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleProcurement.Valid())
	assert.True(t, RoleRequester.Valid())
	assert.False(t, Role("SUPERUSER").Valid())

	assert.True(t, StatusPartiallyReceived.Valid())
	assert.False(t, RequisitionStatus("ARCHIVED").Valid())
}
