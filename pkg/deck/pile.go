package deck

// Pile is the face-up discard pile
// The top of the pile is the end of the slice
type Pile []*Card

// Push places a card on top of the pile
func (p *Pile) Push(card *Card) {
	*p = append(*p, card)
}

// Top returns the top card or nil if the pile is empty
func (p Pile) Top() *Card {
	n := len(p)
	if n == 0 {
		return nil
	}

	return p[n-1]
}

// Len returns the number of cards in the pile
func (p Pile) Len() int {
	return len(p)
}

// Reverse turns the pile over so the bottom card becomes the top card
func (p Pile) Reverse() {
	reverse(p)
}

// TakeAllButTop removes every card except the top one and returns them
func (p *Pile) TakeAllButTop() []*Card {
	n := len(*p)
	if n <= 1 {
		return nil
	}

	taken := make([]*Card, n-1)
	copy(taken, (*p)[:n-1])
	*p = Pile{(*p)[n-1]}

	return taken
}

func (p Pile) String() string {
	return CardsToString(p)
}
