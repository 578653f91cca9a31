package domain

import "github.com/lazharichir/crazyeights/cards"

// EffectKind tags what a card does to the turn engine when played
type EffectKind int

const (
	EffectNormal EffectKind = iota
	EffectSkip
	EffectReverse
	EffectDraw
	EffectWild
)

// CardEffect is the tagged variant every rule decision folds over
type CardEffect struct {
	Kind EffectKind
	Draw int // penalty cards added, only for EffectDraw
}

// classifyCard maps a card onto its effect:
// Jack skips, Queen reverses, Ace draws 4, 2 draws 2, 8 is wild.
func classifyCard(c cards.Card) CardEffect {
	switch c.Rank {
	case cards.Jack:
		return CardEffect{Kind: EffectSkip}
	case cards.Queen:
		return CardEffect{Kind: EffectReverse}
	case cards.Ace:
		return CardEffect{Kind: EffectDraw, Draw: 4}
	case cards.Two:
		return CardEffect{Kind: EffectDraw, Draw: 2}
	case cards.Eight:
		return CardEffect{Kind: EffectWild}
	default:
		return CardEffect{Kind: EffectNormal}
	}
}

// isDrawRank reports whether the rank feeds the draw stack
func isDrawRank(r cards.Rank) bool {
	return r == cards.Ace || r == cards.Two
}
