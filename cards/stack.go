package cards

// Stack represents multiple cards, top = last element
type Stack []Card

// NewStack creates a new stack with the given cards
func NewStack(cards ...Card) Stack {
	return cards
}

// Top returns the top card without removing it
func (s Stack) Top() (Card, bool) {
	if len(s) == 0 {
		return Card{}, false
	}
	return s[len(s)-1], true
}

// Contains reports whether the stack holds a structural match for card
func (s Stack) Contains(card Card) bool {
	for _, c := range s {
		if c.Equals(card) {
			return true
		}
	}
	return false
}

// Copy returns a shallow copy of the stack
func (s Stack) Copy() Stack {
	out := make(Stack, len(s))
	copy(out, s)
	return out
}
