package events

import (
	"encoding/json"
	"log"

	domainevents "github.com/lazharichir/crazyeights/domain/events"
	"github.com/lazharichir/crazyeights/server/connection"
)

// EventEnvelope wraps an event with its name for client consumption
type EventEnvelope struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload"`
}

// Dispatcher handles routing events to clients
type Dispatcher struct {
	connMgr *connection.Manager
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher(connMgr *connection.Manager) *Dispatcher {
	return &Dispatcher{
		connMgr: connMgr,
	}
}

// HandleEvent processes domain events and sends them to clients.
// Everything fans out to the whole match except HandDealt, which carries a
// single player's cards and only ever goes to that player.
func (d *Dispatcher) HandleEvent(event domainevents.Event) {
	eventPayload, err := json.Marshal(event)
	if err != nil {
		log.Println("Failed to marshal event payload:", err)
		return
	}

	envelope := EventEnvelope{
		Name:    event.Name(),
		Payload: eventPayload,
	}

	envelopeData, err := json.Marshal(envelope)
	if err != nil {
		log.Println("Failed to marshal event envelope:", err)
		return
	}

	switch e := event.(type) {
	case domainevents.HandDealt:
		d.connMgr.SendToPlayer(e.PlayerID, envelopeData)

	default:
		if matchID := domainevents.ExtractMatchID(event); matchID != "" {
			d.connMgr.SendToMatch(matchID, envelopeData)
		}
	}
}
