package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/lazharichir/crazyeights/domain"
	domainevents "github.com/lazharichir/crazyeights/domain/events"
	"github.com/lazharichir/crazyeights/events"
	"github.com/lazharichir/crazyeights/game"
	"github.com/lazharichir/crazyeights/server/connection"
)

// CommandRouter routes incoming commands to the appropriate engine
type CommandRouter struct {
	store      game.MatchStore
	connMgr    *connection.Manager
	eventStore events.EventStore
	dispatch   domainevents.EventHandler
	cfg        game.Config
}

// NewCommandRouter creates a new command router
func NewCommandRouter(store game.MatchStore, connMgr *connection.Manager, eventStore events.EventStore, dispatch domainevents.EventHandler, cfg game.Config) *CommandRouter {
	return &CommandRouter{
		store:      store,
		connMgr:    connMgr,
		eventStore: eventStore,
		dispatch:   dispatch,
		cfg:        cfg,
	}
}

// HandleCommand processes an incoming command message
func (r *CommandRouter) HandleCommand(client *connection.Client, message []byte) error {
	var baseCmd struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(message, &baseCmd); err != nil {
		return err
	}

	switch baseCmd.Name {
	case game.CreateMatchCommand{}.CommandName():
		var cmd game.CreateMatchCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleCreateMatch(client, cmd)

	case game.StartMatchCommand{}.CommandName():
		var cmd game.StartMatchCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.StartMatch()
		})

	case game.VoteSkipPreparationCommand{}.CommandName():
		var cmd game.VoteSkipPreparationCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.VoteSkipPreparation(cmd.PlayerID)
		})

	case game.UnvoteSkipPreparationCommand{}.CommandName():
		var cmd game.UnvoteSkipPreparationCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.UnvoteSkipPreparation(cmd.PlayerID)
		})

	case game.PlayCardsCommand{}.CommandName():
		var cmd game.PlayCardsCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.PlayCards(cmd.PlayerID, cmd.Cards, cmd.DeclaredSuit)
		})

	case game.DrawCardCommand{}.CommandName():
		var cmd game.DrawCardCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.DrawCard(cmd.PlayerID)
		})

	case game.PassTurnCommand{}.CommandName():
		var cmd game.PassTurnCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.PassTurn(cmd.PlayerID)
		})

	case game.VotePlayAgainCommand{}.CommandName():
		var cmd game.VotePlayAgainCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.VotePlayAgain(cmd.PlayerID)
		})

	case game.UnvotePlayAgainCommand{}.CommandName():
		var cmd game.UnvotePlayAgainCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.UnvotePlayAgain(cmd.PlayerID)
		})

	case game.ResetForNewGameCommand{}.CommandName():
		var cmd game.ResetForNewGameCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.withEngine(client, cmd.MatchID, cmd.PlayerID, func(e *game.MatchEngine) (domainevents.Snapshot, error) {
			return e.ResetForNewGame(cmd.PlayerID)
		})

	case game.GetHandCommand{}.CommandName():
		var cmd game.GetHandCommand
		if err := json.Unmarshal(message, &cmd); err != nil {
			return err
		}
		return r.handleGetHand(client, cmd)

	default:
		return fmt.Errorf("unknown command type %q", baseCmd.Name)
	}
}

// HandleDisconnect marks the client's player as disconnected in every match
// they belong to
func (r *CommandRouter) HandleDisconnect(client *connection.Client) {
	if client.PlayerID == "" {
		return
	}
	for _, matchID := range client.MatchIDs {
		engine, err := r.store.Get(matchID)
		if err != nil {
			continue
		}
		engine.MarkConnected(client.PlayerID, false)
	}
}

func (r *CommandRouter) handleCreateMatch(client *connection.Client, cmd game.CreateMatchCommand) error {
	seats := make([]domain.Seat, 0, len(cmd.Players))
	for _, p := range cmd.Players {
		seats = append(seats, domain.Seat{ID: p.ID, Name: p.Name})
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	engine, err := game.NewMatchEngine(seats, rng, r.cfg)
	if err != nil {
		return r.sendResult(client, game.NewCommandResult(domainevents.Snapshot{}, err))
	}

	engine.RegisterEventHandler(r.dispatch)
	engine.RegisterEventHandler(func(ev domainevents.Event) {
		if appendErr := r.eventStore.Append(ev); appendErr != nil {
			// the action log is best-effort; the match plays on
			fmt.Println("failed to append event:", appendErr)
		}
	})
	engine.ReplayEvents(func(ev domainevents.Event) {
		r.eventStore.Append(ev)
	})

	if err := r.store.Save(engine); err != nil {
		return err
	}

	// the creating client acts as the first seat
	if len(seats) > 0 {
		r.bindClient(client, engine.MatchID(), seats[0].ID)
	}

	return r.sendResult(client, game.NewCommandResult(engine.Snapshot(), nil))
}

func (r *CommandRouter) handleGetHand(client *connection.Client, cmd game.GetHandCommand) error {
	engine, err := r.store.Get(cmd.MatchID)
	if err != nil {
		return err
	}
	r.bindClient(client, cmd.MatchID, cmd.PlayerID)

	hand, err := engine.HandView(cmd.PlayerID)
	if err != nil {
		return r.sendResult(client, game.NewCommandResult(engine.Snapshot(), err))
	}

	held := make([]string, 0, len(hand))
	for _, c := range hand {
		held = append(held, c.String())
	}

	payload, err := json.Marshal(struct {
		MatchID string   `json:"matchId"`
		Cards   []string `json:"cards"`
	}{MatchID: cmd.MatchID, Cards: held})
	if err != nil {
		return err
	}

	return r.send(client, "hand", payload)
}

// withEngine looks up the match, binds the client to the acting player, runs
// the operation, and replies with a command result
func (r *CommandRouter) withEngine(client *connection.Client, matchID, playerID string, op func(*game.MatchEngine) (domainevents.Snapshot, error)) error {
	engine, err := r.store.Get(matchID)
	if err != nil {
		if errors.Is(err, game.ErrMatchNotFound) {
			return r.send(client, "error", []byte(`{"kind":"MatchNotFound","message":"match not found"}`))
		}
		return err
	}

	r.bindClient(client, matchID, playerID)

	snapshot, opErr := op(engine)
	return r.sendResult(client, game.NewCommandResult(snapshot, opErr))
}

// bindClient associates the websocket client with a player and match, and
// flips the player back to connected if they had dropped
func (r *CommandRouter) bindClient(client *connection.Client, matchID, playerID string) {
	if playerID == "" {
		return
	}
	if client.PlayerID == "" {
		client.PlayerID = playerID
		r.connMgr.BindPlayer(client.ID, playerID)
	}
	r.connMgr.AddMatchToClient(client.ID, matchID)

	if engine, err := r.store.Get(matchID); err == nil {
		engine.MarkConnected(playerID, true)
	}
}

func (r *CommandRouter) sendResult(client *connection.Client, result game.CommandResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return r.send(client, "command-result", payload)
}

func (r *CommandRouter) send(client *connection.Client, name string, payload []byte) error {
	envelope, err := json.Marshal(struct {
		Name    string          `json:"name"`
		Payload json.RawMessage `json:"payload"`
	}{Name: name, Payload: payload})
	if err != nil {
		return err
	}

	client.Send <- envelope
	return nil
}
