package cards

import "math/rand"

// NewDeck52 creates a standard deck of 52 unique cards
func NewDeck52() Stack {
	deck := make(Stack, 0, 52)
	for _, suit := range Suits {
		for _, rank := range Ranks {
			deck = append(deck, Card{Suit: suit, Rank: rank})
		}
	}
	return deck
}

// ShuffleCards shuffles a stack of cards using the injected random source.
// The input is not mutated.
func ShuffleCards(stack Stack, r *rand.Rand) Stack {
	shuffled := make(Stack, len(stack))
	copy(shuffled, stack)

	r.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})

	return shuffled
}

// DealCard deals the top card (last element) and returns it with the remaining stack
func DealCard(stack Stack) (Card, Stack) {
	if len(stack) == 0 {
		return Card{}, nil
	}

	card := stack[len(stack)-1]
	return card, stack[:len(stack)-1]
}

// DealCards deals up to count cards from the top and returns them with the remaining stack
func DealCards(stack Stack, count int) (Stack, Stack) {
	if count > len(stack) {
		count = len(stack)
	}

	dealt := make(Stack, count)
	for i := 0; i < count; i++ {
		dealt[i] = stack[len(stack)-1-i]
	}

	return dealt, stack[:len(stack)-count]
}
