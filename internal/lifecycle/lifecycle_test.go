package lifecycle

import (
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

func TestEffectFor(t *testing.T) {
	cases := []struct {
		prev, next string
		want       Effect
	}{
		{constants.RequestStatusInProgress, constants.RequestStatusRepaired, EffectRepair},
		{constants.RequestStatusNew, constants.RequestStatusRepaired, EffectRepair},
		{constants.RequestStatusRepaired, constants.RequestStatusRepaired, EffectNone},
		{constants.RequestStatusInProgress, constants.RequestStatusScrap, EffectScrap},
		{constants.RequestStatusScrap, constants.RequestStatusScrap, EffectNone},
		{constants.RequestStatusNew, constants.RequestStatusInProgress, EffectNone},
		{constants.RequestStatusRepaired, constants.RequestStatusCancelled, EffectNone},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, EffectFor(tc.prev, tc.next), "%s -> %s", tc.prev, tc.next)
	}
}

func TestApply_Repair(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	eq := &entities.Equipment{Status: constants.EquipmentCritical, Health: 50}

	change, ok := Apply(EffectRepair, eq, now)
	require.True(t, ok)
	assert.Equal(t, constants.EquipmentOperational, change.Status)
	assert.Equal(t, 70, change.Health)
	assert.True(t, change.LastMaintenance.Valid)
	assert.Equal(t, now, change.LastMaintenance.Time)
}

func TestApply_RepairCapsHealth(t *testing.T) {
	eq := &entities.Equipment{Status: constants.EquipmentMaintenanceRequired, Health: 95}

	change, ok := Apply(EffectRepair, eq, time.Now())
	require.True(t, ok)
	assert.Equal(t, 100, change.Health)
}

func TestApply_ScrapKeepsHealth(t *testing.T) {
	last := null.TimeFrom(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	eq := &entities.Equipment{Status: constants.EquipmentOperational, Health: 42, LastMaintenance: last}

	change, ok := Apply(EffectScrap, eq, time.Now())
	require.True(t, ok)
	assert.Equal(t, constants.EquipmentOutOfService, change.Status)
	assert.Equal(t, 42, change.Health)
	assert.Equal(t, last, change.LastMaintenance)
}

func TestApply_None(t *testing.T) {
	eq := &entities.Equipment{Status: constants.EquipmentOperational, Health: 80}
	change, ok := Apply(EffectNone, eq, time.Now())
	assert.False(t, ok)
	assert.Equal(t, 80, change.Health)
}

func TestCanMove(t *testing.T) {
	assert.True(t, CanMove(constants.RequestStatusNew, constants.RequestStatusInProgress))
	assert.True(t, CanMove(constants.RequestStatusInProgress, constants.RequestStatusRepaired))
	assert.True(t, CanMove(constants.RequestStatusInProgress, constants.RequestStatusScrap))

	assert.False(t, CanMove(constants.RequestStatusNew, constants.RequestStatusRepaired))
	assert.False(t, CanMove(constants.RequestStatusRepaired, constants.RequestStatusInProgress))
	assert.False(t, CanMove(constants.RequestStatusScrap, constants.RequestStatusNew))
	assert.True(t, IsTerminal(constants.RequestStatusCancelled))
}

func TestAutoAssign(t *testing.T) {
	eq := &entities.Equipment{
		DefaultMaintenanceTeamID: null.StringFrom("team-eq"),
		AssignedTechnicianID:     null.StringFrom("tech-eq"),
	}

	t.Run("equipment default overrides caller technician", func(t *testing.T) {
		a := PolicyEquipmentDefault.AutoAssign(eq, "", "tech-caller")
		assert.Equal(t, "team-eq", a.TeamID.String)
		assert.Equal(t, "tech-eq", a.TechnicianID.String)
	})

	t.Run("caller first keeps caller technician", func(t *testing.T) {
		a := PolicyCallerFirst.AutoAssign(eq, "team-caller", "tech-caller")
		assert.Equal(t, "team-caller", a.TeamID.String)
		assert.Equal(t, "tech-caller", a.TechnicianID.String)
	})

	t.Run("caller first falls back to equipment", func(t *testing.T) {
		a := PolicyCallerFirst.AutoAssign(eq, "", "")
		assert.Equal(t, "tech-eq", a.TechnicianID.String)
	})

	t.Run("equipment without defaults leaves nulls", func(t *testing.T) {
		a := PolicyEquipmentDefault.AutoAssign(&entities.Equipment{}, "", "tech-caller")
		assert.False(t, a.TeamID.Valid)
		assert.False(t, a.TechnicianID.Valid)
	})
}

func TestParseTechnicianPolicy(t *testing.T) {
	p, err := ParseTechnicianPolicy("")
	require.NoError(t, err)
	assert.Equal(t, PolicyEquipmentDefault, p)

	p, err = ParseTechnicianPolicy("caller-first")
	require.NoError(t, err)
	assert.Equal(t, PolicyCallerFirst, p)

	_, err = ParseTechnicianPolicy("random")
	assert.Error(t, err)
}
