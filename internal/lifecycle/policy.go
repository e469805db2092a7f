package lifecycle

import (
	"fmt"

	"github.com/aarondl/null/v8"

	"gearguard/internal/entities"
)

// TechnicianPolicy decides the technician of a new request.
type TechnicianPolicy string

const (
	// PolicyEquipmentDefault always takes the equipment's technician, even when
	// the caller supplied one.
	PolicyEquipmentDefault TechnicianPolicy = "equipment-default"
	// PolicyCallerFirst keeps a caller-supplied technician and falls back to
	// the equipment's.
	PolicyCallerFirst TechnicianPolicy = "caller-first"
)

func ParseTechnicianPolicy(raw string) (TechnicianPolicy, error) {
	switch TechnicianPolicy(raw) {
	case "", PolicyEquipmentDefault:
		return PolicyEquipmentDefault, nil
	case PolicyCallerFirst:
		return PolicyCallerFirst, nil
	default:
		return "", fmt.Errorf("unknown technician policy %q", raw)
	}
}

// Assignment is the auto-filled team and technician of a new request.
type Assignment struct {
	TeamID       null.String
	TechnicianID null.String
}

// AutoAssign fills team and technician from the equipment defaults. A caller
// team always wins over the equipment's default team.
func (p TechnicianPolicy) AutoAssign(equipment *entities.Equipment, callerTeam, callerTechnician string) Assignment {
	var a Assignment

	if callerTeam != "" {
		a.TeamID = null.StringFrom(callerTeam)
	} else {
		a.TeamID = equipment.DefaultMaintenanceTeamID
	}

	switch p {
	case PolicyCallerFirst:
		if callerTechnician != "" {
			a.TechnicianID = null.StringFrom(callerTechnician)
		} else {
			a.TechnicianID = equipment.AssignedTechnicianID
		}
	default:
		a.TechnicianID = equipment.AssignedTechnicianID
	}

	return a
}
