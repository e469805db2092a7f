// Package lifecycle holds the status rules of maintenance requests and the
// equipment side effects they cascade.
package lifecycle

import (
	"time"

	"github.com/aarondl/null/v8"

	"gearguard/internal/entities"
	"gearguard/pkg/constants"
)

// RepairHealthBonus is added to equipment health when a request is repaired.
const RepairHealthBonus = 20

type Effect int

const (
	EffectNone Effect = iota
	EffectRepair
	EffectScrap
)

func (e Effect) String() string {
	switch e {
	case EffectRepair:
		return "repair"
	case EffectScrap:
		return "scrap"
	default:
		return "none"
	}
}

// EffectFor compares the stored status with the incoming one. Only an entry
// into REPAIRED or SCRAP has a side effect, so re-sending the same status is a no-op.
func EffectFor(previous, next string) Effect {
	switch {
	case next == constants.RequestStatusRepaired && previous != constants.RequestStatusRepaired:
		return EffectRepair
	case next == constants.RequestStatusScrap && previous != constants.RequestStatusScrap:
		return EffectScrap
	default:
		return EffectNone
	}
}

// EquipmentChange is the set of columns an effect writes.
type EquipmentChange struct {
	Status          string
	Health          int
	LastMaintenance null.Time
}

// Apply computes the new equipment state. Health is unchanged for scrap.
func Apply(effect Effect, equipment *entities.Equipment, now time.Time) (EquipmentChange, bool) {
	change := EquipmentChange{
		Status:          equipment.Status,
		Health:          equipment.Health,
		LastMaintenance: equipment.LastMaintenance,
	}

	switch effect {
	case EffectRepair:
		change.Status = constants.EquipmentOperational
		change.LastMaintenance = null.TimeFrom(now)
		change.Health = min(constants.MaxHealth, equipment.Health+RepairHealthBonus)
		return change, true
	case EffectScrap:
		change.Status = constants.EquipmentOutOfService
		return change, true
	default:
		return change, false
	}
}

var boardTransitions = map[string][]string{
	constants.RequestStatusNew:        {constants.RequestStatusInProgress},
	constants.RequestStatusInProgress: {constants.RequestStatusRepaired, constants.RequestStatusScrap},
}

// CanMove is the Kanban board policy used by the move endpoint. Plain
// updates accept any status value.
func CanMove(from, to string) bool {
	for _, allowed := range boardTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports statuses with no outgoing board move.
func IsTerminal(status string) bool {
	switch status {
	case constants.RequestStatusRepaired, constants.RequestStatusScrap, constants.RequestStatusCancelled:
		return true
	}
	return false
}
