package game

import (
	"github.com/lazharichir/crazyeights/domain"
	"github.com/lazharichir/crazyeights/domain/events"
)

// CommandResult is what every command returns to the transport layer
type CommandResult struct {
	OK        bool            `json:"ok"`
	ErrorKind string          `json:"errorKind,omitempty"`
	Error     string          `json:"error,omitempty"`
	Snapshot  events.Snapshot `json:"snapshot"`
}

// NewCommandResult folds a snapshot and an optional error into a result
func NewCommandResult(snapshot events.Snapshot, err error) CommandResult {
	if err == nil {
		return CommandResult{OK: true, Snapshot: snapshot}
	}
	return CommandResult{
		OK:        false,
		ErrorKind: string(domain.KindOf(err)),
		Error:     err.Error(),
		Snapshot:  snapshot,
	}
}
