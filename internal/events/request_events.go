package events

import "gearguard/internal/entities"

const (
	RequestCreated = "request.created"
	RequestUpdated = "request.updated"
	RequestDeleted = "request.deleted"
)

// RequestChangedEvent is published after a request write is committed.
// Request is nil for deletions.
type RequestChangedEvent struct {
	Type      string
	CompanyID string
	RequestID string
	// TechnicianID is the assigned technician after the write, or before a delete.
	TechnicianID string
	ActorID      string
	Request      *entities.MaintenanceRequest
	// EquipmentEffect names the side effect applied to the equipment, if any.
	EquipmentEffect string
}

func (e RequestChangedEvent) Name() string {
	return e.Type
}
