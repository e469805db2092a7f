package listeners

import (
	"context"

	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/internal/events"
	"gearguard/pkg/constants"
	"gearguard/pkg/eventbus"
	"gearguard/pkg/websocket"
)

// Broadcaster pushes a message to the board connections of a company.
type Broadcaster interface {
	SendToCompany(companyID string, messageType string, payload interface{}, filter func(c *websocket.Client) bool) (int, error)
}

// BoardPayload is the body of a request.* board message.
type BoardPayload struct {
	RequestID       string                       `json:"requestId"`
	Request         *entities.MaintenanceRequest `json:"request,omitempty"`
	EquipmentEffect string                       `json:"equipmentEffect,omitempty"`
	ActorID         string                       `json:"actorId,omitempty"`
}

// BoardListener relays committed request writes to the live Kanban board.
type BoardListener struct {
	hub    Broadcaster
	logger *zap.Logger
}

func NewBoardListener(hub Broadcaster, logger *zap.Logger) *BoardListener {
	return &BoardListener{hub: hub, logger: logger}
}

func (l *BoardListener) Register(bus *eventbus.Bus) {
	for _, name := range []string{events.RequestCreated, events.RequestUpdated, events.RequestDeleted} {
		bus.Subscribe(name, l.handleRequestChanged)
	}
	l.logger.Info("board listener subscribed to request events")
}

func (l *BoardListener) handleRequestChanged(_ context.Context, event eventbus.Event) error {
	e, ok := event.(events.RequestChangedEvent)
	if !ok || e.CompanyID == "" {
		return nil
	}

	payload := BoardPayload{
		RequestID:       e.RequestID,
		Request:         e.Request,
		EquipmentEffect: e.EquipmentEffect,
		ActorID:         e.ActorID,
	}

	// Technicians only see the cards assigned to them.
	filter := func(c *websocket.Client) bool {
		return c.Role != constants.RoleTechnician || (e.TechnicianID != "" && c.UserID == e.TechnicianID)
	}

	delivered, err := l.hub.SendToCompany(e.CompanyID, e.Type, payload, filter)
	if err != nil {
		return err
	}
	l.logger.Debug("board update sent",
		zap.String("event", e.Type),
		zap.String("requestID", e.RequestID),
		zap.Int("delivered", delivered),
	)
	return nil
}
