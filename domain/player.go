package domain

import "github.com/lazharichir/crazyeights/cards"

// Player represents a participant in a match
type Player struct {
	ID         string
	Name       string
	Hand       cards.Stack
	Safe       bool
	Eliminated bool
	Connected  bool
}

// NewPlayer creates a connected player with an empty hand
func NewPlayer(id, name string) *Player {
	return &Player{
		ID:        id,
		Name:      name,
		Hand:      cards.Stack{},
		Connected: true,
	}
}

// HasCard reports whether the hand holds a structural match for card
func (p *Player) HasCard(card cards.Card) bool {
	return p.Hand.Contains(card)
}

// RemoveCard removes the first structural match from the hand, preserving
// the order of the remaining cards. Returns false if the card is not held.
func (p *Player) RemoveCard(card cards.Card) bool {
	for i, c := range p.Hand {
		if c.Equals(card) {
			p.Hand = append(p.Hand[:i], p.Hand[i+1:]...)
			return true
		}
	}
	return false
}

// AddCards appends cards to the hand in the order drawn
func (p *Player) AddCards(drawn cards.Stack) {
	p.Hand = append(p.Hand, drawn...)
}

// ResetForNewRound clears the round-scoped state
func (p *Player) ResetForNewRound() {
	p.Hand = cards.Stack{}
	p.Safe = false
}
