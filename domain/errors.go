package domain

import "fmt"

// ErrorKind categorises every failure a public operation can return
type ErrorKind string

const (
	ErrGamePhase           ErrorKind = "GamePhase"
	ErrPlayerState         ErrorKind = "PlayerState"
	ErrNotYourTurn         ErrorKind = "NotYourTurn"
	ErrNoCards             ErrorKind = "NoCards"
	ErrNotInHand           ErrorKind = "NotInHand"
	ErrStackInvalid        ErrorKind = "StackInvalid"
	ErrSuitNotDeclared     ErrorKind = "SuitNotDeclared"
	ErrCounterRequired     ErrorKind = "CounterRequired"
	ErrCardMismatch        ErrorKind = "CardMismatch"
	ErrAlreadyDrew         ErrorKind = "AlreadyDrew"
	ErrNoPendingPass       ErrorKind = "NoPendingPass"
	ErrNotCreator          ErrorKind = "NotCreator"
	ErrNotAllVoted         ErrorKind = "NotAllVoted"
	ErrInsufficientPlayers ErrorKind = "InsufficientPlayers"
	ErrDeckExhausted       ErrorKind = "DeckExhausted"
)

// StackReason narrows ErrStackInvalid
type StackReason string

const (
	StackRankMismatch     StackReason = "rank_mismatch"
	StackTurnControlBreak StackReason = "turn_control_break"
	StackSuitRestricted   StackReason = "suit_restricted_stacking"
)

// GameError is the categorised error returned across the engine boundary.
// A failing command never leaves the match partially mutated.
type GameError struct {
	Kind        ErrorKind
	StackReason StackReason
	Message     string
}

func (e *GameError) Error() string {
	if e.StackReason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.StackReason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func newError(kind ErrorKind, format string, args ...any) *GameError {
	return &GameError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func newStackError(reason StackReason, format string, args ...any) *GameError {
	return &GameError{Kind: ErrStackInvalid, StackReason: reason, Message: fmt.Sprintf(format, args...)}
}

// KindOf extracts the error kind, or empty string for nil / foreign errors
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	if ge, ok := err.(*GameError); ok {
		return ge.Kind
	}
	return ""
}
