package constants

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition_AllowedPaths(t *testing.T) {
	cases := []struct {
		name string
		role string
		from string
		to   string
	}{
		{"менеджер согласует рассчитанное КП", RoleManager, StatusCalculated, StatusApproved},
		{"админ согласует рассчитанное КП", RoleAdmin, StatusCalculated, StatusApproved},
		{"менеджер отправляет на проверку склада", RoleManager, StatusApproved, StatusWarehouseCheck},
		{"склад подтверждает КП", RoleWarehouse, StatusWarehouseCheck, StatusConfirmed},
		{"склад возвращает на доработку", RoleWarehouse, StatusWarehouseCheck, StatusRework},
		{"админ возвращает на доработку", RoleAdmin, StatusWarehouseCheck, StatusRework},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.True(t, CanTransition(tc.role, tc.from, tc.to))
		})
	}
}

func TestCanTransition_RoleDenied(t *testing.T) {
	// Переход существует, но роль не входит в список разрешенных.
	assert.True(t, TransitionExists(StatusWarehouseCheck, StatusConfirmed))
	assert.False(t, CanTransition(RoleManager, StatusWarehouseCheck, StatusConfirmed))

	assert.True(t, TransitionExists(StatusCalculated, StatusApproved))
	assert.False(t, CanTransition(RoleWarehouse, StatusCalculated, StatusApproved))
}

func TestTransitionExists_UnknownTransitions(t *testing.T) {
	cases := []struct {
		from string
		to   string
	}{
		{StatusDraft, StatusApproved},
		{StatusDraft, StatusConfirmed},
		{StatusCalculated, StatusConfirmed},
		{StatusCalculated, StatusWarehouseCheck},
		{StatusRework, StatusApproved},
		{StatusApproved, StatusConfirmed},
		{StatusWarehouseCheck, StatusDraft},
	}
	for _, tc := range cases {
		assert.False(t, TransitionExists(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestConfirmedIsTerminal(t *testing.T) {
	require.Empty(t, TransitionsFor(StatusConfirmed))

	for _, to := range []string{StatusDraft, StatusCalculated, StatusApproved, StatusWarehouseCheck, StatusRework} {
		assert.False(t, TransitionExists(StatusConfirmed, to), "confirmed -> %s", to)
	}
}

func TestEditableAndCalculableStatuses(t *testing.T) {
	assert.True(t, IsEditableStatus(StatusDraft))
	assert.True(t, IsEditableStatus(StatusRework))
	assert.True(t, IsCalculableStatus(StatusDraft))
	assert.True(t, IsCalculableStatus(StatusRework))

	for _, s := range []string{StatusCalculated, StatusApproved, StatusWarehouseCheck, StatusConfirmed} {
		assert.False(t, IsEditableStatus(s), s)
		assert.False(t, IsCalculableStatus(s), s)
	}
}

func TestIsKnownStatus(t *testing.T) {
	for _, s := range []string{StatusDraft, StatusCalculated, StatusApproved, StatusWarehouseCheck, StatusRework, StatusConfirmed} {
		assert.True(t, IsKnownStatus(s), s)
	}
	assert.False(t, IsKnownStatus("archived"))
	assert.False(t, IsKnownStatus(""))
}

func TestIsKnownAvailability(t *testing.T) {
	assert.True(t, IsKnownAvailability(AvailabilityInStock))
	assert.True(t, IsKnownAvailability(AvailabilityToOrder))
	assert.True(t, IsKnownAvailability(AvailabilityAbsent))
	assert.False(t, IsKnownAvailability("maybe"))
}

func TestTransitionsFor_WarehouseCheck(t *testing.T) {
	transitions := TransitionsFor(StatusWarehouseCheck)
	require.Len(t, transitions, 2)

	targets := []string{transitions[0].Target, transitions[1].Target}
	assert.Contains(t, targets, StatusConfirmed)
	assert.Contains(t, targets, StatusRework)

	for _, tr := range transitions {
		if tr.Target == StatusRework {
			assert.True(t, tr.Destructive)
		} else {
			assert.False(t, tr.Destructive)
		}
	}
}
