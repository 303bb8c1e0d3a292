package deck

import (
	"colorclash-server/internal/rng"
	"crypto/sha1" // nolint:gosec
	"encoding/hex"
	"errors"
)

// ErrEndOfDeck is an error when Draw() is attempted and there are no more cards
var ErrEndOfDeck = errors.New("end of deck reached")

// deck sizes
const (
	ClassicSize = 108
	SwitchSize  = 112
)

// Deck is the draw pile
// The top of the deck is the end of Cards
type Deck struct {
	Cards []*Card `json:"cards"`
	rng   rng.Generator
}

// NewClassic returns the 108 card classic deck.
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func NewClassic() *Deck {
	cards := make([]*Card, 0, ClassicSize)
	for _, color := range Light.Colors() {
		cards = append(cards, &Card{Light: Face{Color: color, Value: Number, Number: 0}})
		for n := 1; n <= 9; n++ {
			for i := 0; i < 2; i++ {
				cards = append(cards, &Card{Light: Face{Color: color, Value: Number, Number: n}})
			}
		}
	}

	for _, color := range Light.Colors() {
		for i := 0; i < 2; i++ {
			for _, value := range []Value{Skip, Reverse, DrawTwo} {
				cards = append(cards, &Card{Light: Face{Color: color, Value: value}})
			}
		}
	}

	for i := 0; i < 4; i++ {
		cards = append(cards, &Card{Light: Face{Color: Colorless, Value: Wild}})
		cards = append(cards, &Card{Light: Face{Color: Colorless, Value: WildDrawFour}})
	}

	return &Deck{Cards: cards, rng: rng.Crypto{}}
}

// NewSwitch returns the 112 two-sided cards used in switch mode
// Important! this deck is unshuffled. You must call the Shuffle() method to shuffle the cards
func NewSwitch() *Deck {
	cards := make([]*Card, 0, SwitchSize)
	twoSided := func(light, dark Face) {
		cards = append(cards, &Card{Light: light, Dark: &dark})
	}

	for _, color := range Light.Colors() {
		dark := color.Counterpart()
		for n := 1; n <= 9; n++ {
			for i := 0; i < 2; i++ {
				twoSided(Face{Color: color, Value: Number, Number: n}, Face{Color: dark, Value: Number, Number: n})
			}
		}
	}

	// light and dark action faces are paired asymmetrically
	pairs := [][2]Value{
		{DrawOne, DrawFive},
		{Reverse, Reverse},
		{Skip, SkipEveryone},
		{Flip, Flip},
	}

	for _, color := range Light.Colors() {
		dark := color.Counterpart()
		for i := 0; i < 2; i++ {
			for _, pair := range pairs {
				twoSided(Face{Color: color, Value: pair[0]}, Face{Color: dark, Value: pair[1]})
			}
		}
	}

	for i := 0; i < 4; i++ {
		twoSided(Face{Color: Colorless, Value: Wild}, Face{Color: Colorless, Value: Wild})
		twoSided(Face{Color: Colorless, Value: WildDrawTwo}, Face{Color: Colorless, Value: WildDrawColor})
	}

	return &Deck{Cards: cards, rng: rng.Crypto{}}
}

// SetGenerator replaces the random number generator used for shuffling
func (d *Deck) SetGenerator(gen rng.Generator) {
	d.rng = gen
}

func (d *Deck) generator() rng.Generator {
	if d.rng == nil {
		d.rng = rng.Crypto{}
	}

	return d.rng
}

// Shuffle performs a Fisher-Yates shuffle of the cards currently in the deck
func (d *Deck) Shuffle() {
	gen := d.generator()
	for i := len(d.Cards) - 1; i > 0; i-- {
		j := gen.Intn(i + 1)

		d.Cards[i], d.Cards[j] = d.Cards[j], d.Cards[i]
	}
}

// ShuffleDiscards will replace the existing deck with the cards specified
func (d *Deck) ShuffleDiscards(discards []*Card) {
	cards := make([]*Card, len(discards))
	copy(cards, discards)

	d.Cards = cards
	d.Shuffle()
}

// HashCode returns a SHA1 hash code of the deck
// The engine logs it after every shuffle so a round can be traced
func (d *Deck) HashCode() string {
	hash := sha1.New() // nolint:gosec
	for _, card := range d.Cards {
		_, _ = hash.Write([]byte(CardToString(card) + ","))
	}

	return hex.EncodeToString(hash.Sum(nil))
}

// Draw pops the top card
// If there are no more cards, an ErrEndOfDeck is returned along with a nil card.
func (d *Deck) Draw() (*Card, error) {
	n := len(d.Cards)
	if n == 0 {
		return nil, ErrEndOfDeck
	}

	card := d.Cards[n-1]
	d.Cards = d.Cards[:n-1]

	return card, nil
}

// PutBottom places the card at the bottom of the deck
func (d *Deck) PutBottom(card *Card) {
	d.Cards = append([]*Card{card}, d.Cards...)
}

// Reverse turns the deck over so the bottom card becomes the top card
func (d *Deck) Reverse() {
	reverse(d.Cards)
}

// CardsLeft returns the number of cards left in the deck
func (d *Deck) CardsLeft() int {
	return len(d.Cards)
}

func reverse(cards []*Card) {
	for i, j := 0, len(cards)-1; i < j; i, j = i+1, j-1 {
		cards[i], cards[j] = cards[j], cards[i]
	}
}
