package game

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/lazharichir/crazyeights/cards"
	"github.com/lazharichir/crazyeights/domain"
	"github.com/lazharichir/crazyeights/domain/events"
)

// Config carries the timing knobs of a match engine
type Config struct {
	PreparationDelay time.Duration // countdown before play begins
	AutoPassDelay    time.Duration // deadline for a pending pass; 0 disables
}

// DefaultConfig returns the production timings
func DefaultConfig() Config {
	return Config{
		PreparationDelay: 30 * time.Second,
		AutoPassDelay:    5 * time.Second,
	}
}

// MatchEngine serialises all public operations on a single match behind one
// mutex. Timer expiries go through the same mutex and re-check state, so a
// firing can never interleave with a command and a stale firing is a no-op.
type MatchEngine struct {
	mu    sync.Mutex
	match *domain.Match
	cfg   Config

	prepTimer      *time.Timer
	autoPassTimers map[string]*time.Timer
}

// NewMatchEngine creates the engine and its match aggregate
func NewMatchEngine(seats []domain.Seat, rng *rand.Rand, cfg Config) (*MatchEngine, error) {
	match, err := domain.NewMatch(seats, rng)
	if err != nil {
		return nil, err
	}

	return &MatchEngine{
		match:          match,
		cfg:            cfg,
		autoPassTimers: make(map[string]*time.Timer),
	}, nil
}

// MatchID returns the match's id
func (e *MatchEngine) MatchID() string {
	return e.match.ID
}

// RegisterEventHandler forwards domain events to the handler. Handlers run
// inside the engine lock and must not call back into the engine.
func (e *MatchEngine) RegisterEventHandler(handler events.EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.match.RegisterEventHandler(handler)
}

// ReplayEvents feeds every event emitted so far to the handler, in order.
// Late-registered sinks use this to catch up on what they missed.
func (e *MatchEngine) ReplayEvents(handler events.EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, ev := range e.match.Events {
		handler(ev)
	}
}

// StartMatch begins the preparation phase and arms its countdown
func (e *MatchEngine) StartMatch() (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.match.Start(int(e.cfg.PreparationDelay / time.Second)); err != nil {
		return e.match.Snapshot(), err
	}

	e.prepTimer = time.AfterFunc(e.cfg.PreparationDelay, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.match.ExpirePreparation()
	})

	return e.match.Snapshot(), nil
}

// VoteSkipPreparation casts a skip vote; a unanimous vote begins play and
// disarms the countdown
func (e *MatchEngine) VoteSkipPreparation(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.VoteSkipPreparation(playerID)
	if err == nil && e.match.Phase != domain.PhasePreparation {
		e.stopPrepTimer()
	}
	return e.match.Snapshot(), err
}

// UnvoteSkipPreparation withdraws a skip vote
func (e *MatchEngine) UnvoteSkipPreparation(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.UnvoteSkipPreparation(playerID)
	return e.match.Snapshot(), err
}

// PlayCards parses the shorthand payload and applies the play
func (e *MatchEngine) PlayCards(playerID string, shorthands []string, declaredSuit string) (events.Snapshot, error) {
	play, err := cards.CardsFromStrings(shorthands)
	if err != nil {
		e.mu.Lock()
		defer e.mu.Unlock()
		return e.match.Snapshot(), fmt.Errorf("invalid card payload: %w", err)
	}

	declared := cards.Suit(declaredSuit)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelAutoPass(playerID)
	playErr := e.match.PlayCards(playerID, play, declared)
	return e.match.Snapshot(), playErr
}

// DrawCard draws the penalty stack or one voluntary card, arming the
// auto-pass deadline when the draw leaves a pending pass behind
func (e *MatchEngine) DrawCard(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelAutoPass(playerID)
	err := e.match.Draw(playerID)

	if err == nil && e.match.PendingPassPlayerID == playerID && e.cfg.AutoPassDelay > 0 {
		e.autoPassTimers[playerID] = time.AfterFunc(e.cfg.AutoPassDelay, func() {
			e.mu.Lock()
			defer e.mu.Unlock()
			delete(e.autoPassTimers, playerID)
			e.match.AutoPass(playerID)
		})
	}

	return e.match.Snapshot(), err
}

// PassTurn concludes a pending pass
func (e *MatchEngine) PassTurn(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelAutoPass(playerID)
	err := e.match.PassTurn(playerID)
	return e.match.Snapshot(), err
}

// VotePlayAgain casts a rematch vote
func (e *MatchEngine) VotePlayAgain(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.VotePlayAgain(playerID)
	return e.match.Snapshot(), err
}

// UnvotePlayAgain withdraws a rematch vote
func (e *MatchEngine) UnvotePlayAgain(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.UnvotePlayAgain(playerID)
	return e.match.Snapshot(), err
}

// ResetForNewGame rebuilds the match for a rematch
func (e *MatchEngine) ResetForNewGame(playerID string) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.ResetForNewGame(playerID)
	return e.match.Snapshot(), err
}

// MarkConnected flips a player's liveness hint
func (e *MatchEngine) MarkConnected(playerID string, connected bool) (events.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	err := e.match.MarkConnected(playerID, connected)
	if err == nil && e.match.Phase != domain.PhasePreparation {
		e.stopPrepTimer()
	}
	return e.match.Snapshot(), err
}

// Snapshot returns the current public view
func (e *MatchEngine) Snapshot() events.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.Snapshot()
}

// HandView returns the player's own cards
func (e *MatchEngine) HandView(playerID string) (cards.Stack, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.match.HandView(playerID)
}

// PlayerIDs returns the ids of all seated players
func (e *MatchEngine) PlayerIDs() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	ids := make([]string, 0, len(e.match.Players))
	for _, p := range e.match.Players {
		ids = append(ids, p.ID)
	}
	return ids
}

// Stop disarms every timer. The engine stays usable; timers re-arm on the
// next command that needs them.
func (e *MatchEngine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.stopPrepTimer()
	for id, timer := range e.autoPassTimers {
		timer.Stop()
		delete(e.autoPassTimers, id)
	}
}

func (e *MatchEngine) stopPrepTimer() {
	if e.prepTimer != nil {
		e.prepTimer.Stop()
		e.prepTimer = nil
	}
}

func (e *MatchEngine) cancelAutoPass(playerID string) {
	if timer, ok := e.autoPassTimers[playerID]; ok {
		timer.Stop()
		delete(e.autoPassTimers, playerID)
	}
}
