package deck

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Color is the color of a card face
type Color string

// light side colors
const (
	Red    Color = "red"
	Blue   Color = "blue"
	Green  Color = "green"
	Yellow Color = "yellow"
)

// dark side colors
const (
	Pink   Color = "pink"
	Teal   Color = "teal"
	Purple Color = "purple"
	Orange Color = "orange"
)

// Colorless is the color printed on wild faces
const Colorless Color = "wild"

var counterparts = map[Color]Color{
	Red:    Pink,
	Blue:   Teal,
	Green:  Purple,
	Yellow: Orange,
	Pink:   Red,
	Teal:   Blue,
	Purple: Green,
	Orange: Yellow,
}

// Counterpart returns the matching color on the other side of a two-sided card
// (red <-> pink, blue <-> teal, green <-> purple, yellow <-> orange)
func (c Color) Counterpart() Color {
	if other, ok := counterparts[c]; ok {
		return other
	}

	return c
}

// IsOn returns true if the color belongs to the side
func (c Color) IsOn(side Side) bool {
	for _, color := range side.Colors() {
		if color == c {
			return true
		}
	}

	return false
}

// Side is the table-wide active side in switch mode
type Side string

// side constants
const (
	Light Side = "light"
	Dark  Side = "dark"
)

// Flip returns the opposite side
func (s Side) Flip() Side {
	if s == Dark {
		return Light
	}

	return Dark
}

// Colors returns the four playable colors of the side
func (s Side) Colors() []Color {
	if s == Dark {
		return []Color{Pink, Teal, Purple, Orange}
	}

	return []Color{Red, Blue, Green, Yellow}
}

// Kind is the broad type of a face
type Kind string

// kind constants
const (
	KindNumber Kind = "number"
	KindAction Kind = "action"
	KindWild   Kind = "wild"
)

// Value identifies what a face does when it is played
type Value int

// value constants
const (
	Number Value = iota
	Skip
	Reverse
	DrawTwo
	WildDrawFour
	Wild
	DrawOne
	DrawFive
	SkipEveryone
	WildDrawTwo
	WildDrawColor
	Flip
)

var valueLabels = map[Value]string{
	Skip:          "skip",
	Reverse:       "reverse",
	DrawTwo:       "+2",
	WildDrawFour:  "+4",
	Wild:          "wild",
	DrawOne:       "draw1",
	DrawFive:      "draw5",
	SkipEveryone:  "skipEveryone",
	WildDrawTwo:   "wd2",
	WildDrawColor: "wdc",
	Flip:          "flip",
}

func (v Value) String() string {
	if v == Number {
		return "number"
	}

	if label, ok := valueLabels[v]; ok {
		return label
	}

	panic(fmt.Sprintf("unknown value: %d", int(v)))
}

// Kind returns the kind of the value
func (v Value) Kind() Kind {
	switch v {
	case Number:
		return KindNumber
	case Wild, WildDrawFour, WildDrawTwo, WildDrawColor:
		return KindWild
	default:
		return KindAction
	}
}

// Face is one printed side of a card
type Face struct {
	Color  Color
	Value  Value
	Number int
}

// Kind returns the kind of the face
func (f Face) Kind() Kind {
	return f.Value.Kind()
}

// IsWild returns true if the face takes a color choice
func (f Face) IsWild() bool {
	return f.Kind() == KindWild
}

// Label is the value as shown to players, i.e., "7", "skip" or "+4"
func (f Face) Label() string {
	if f.Value == Number {
		return strconv.Itoa(f.Number)
	}

	return f.Value.String()
}

// SameValue returns true if both faces carry the same value (and number for number faces)
func (f Face) SameValue(other Face) bool {
	if f.Value != other.Value {
		return false
	}

	return f.Value != Number || f.Number == other.Number
}

func (f Face) String() string {
	return fmt.Sprintf("%s %s", f.Color, f.Label())
}

type faceJSON struct {
	Color Color  `json:"color"`
	Value string `json:"value"`
	Type  Kind   `json:"type"`
}

// MarshalJSON encodes the face the way clients expect it: {color, value, type}
func (f Face) MarshalJSON() ([]byte, error) {
	return json.Marshal(faceJSON{
		Color: f.Color,
		Value: f.Label(),
		Type:  f.Kind(),
	})
}

// Card is a physical card
// Classic cards only have a Light face. Switch mode cards have both faces.
type Card struct {
	Light Face  `json:"light"`
	Dark  *Face `json:"dark,omitempty"`

	// the color chosen the last time this card was played as a wild
	rememberedColor Color
}

// Face returns the face that is active for the side
func (c *Card) Face(side Side) Face {
	if side == Dark && c.Dark != nil {
		return *c.Dark
	}

	return c.Light
}

// IsTwoSided returns true for switch mode cards
func (c *Card) IsTwoSided() bool {
	return c.Dark != nil
}

// RememberColor stamps the chosen wild color onto the card
func (c *Card) RememberColor(color Color) {
	c.rememberedColor = color
}

// RememberedColor returns the last chosen wild color, if any
func (c *Card) RememberedColor() (Color, bool) {
	return c.rememberedColor, c.rememberedColor != ""
}

func (c *Card) String() string {
	if c.Dark == nil {
		return c.Light.String()
	}

	return fmt.Sprintf("%s / %s", c.Light, *c.Dark)
}

var colorCodes = map[string]Color{
	"r": Red,
	"b": Blue,
	"g": Green,
	"y": Yellow,
	"p": Pink,
	"t": Teal,
	"u": Purple,
	"o": Orange,
	"w": Colorless,
}

var valueCodes = map[string]Value{
	"s":  Skip,
	"r":  Reverse,
	"+2": DrawTwo,
	"+1": DrawOne,
	"+5": DrawFive,
	"se": SkipEveryone,
	"f":  Flip,
}

var wildCodes = map[string]Value{
	"":   Wild,
	"+4": WildDrawFour,
	"+2": WildDrawTwo,
	"c":  WildDrawColor,
}

var faceRx = regexp.MustCompile(`(?i)^([rbgyptuow])([0-9]|s|r|se|f|c|\+[1245])?\z`)

// FaceFromString returns a Face from the string
// The format is <color><value>: "r5", "bs" (skip), "gr" (reverse), "y+2", "p+5", "tse" (skip everyone),
// "of" (flip), "w" (wild), "w+4", "w+2" (wild draw two) and "wc" (wild draw color)
func FaceFromString(s string) Face {
	match := faceRx.FindStringSubmatch(s)
	if match == nil {
		panic(fmt.Sprintf("could not parse face: %s", s))
	}

	color := colorCodes[strings.ToLower(match[1])]
	code := strings.ToLower(match[2])

	if color == Colorless {
		value, ok := wildCodes[code]
		if !ok {
			panic(fmt.Sprintf("could not parse wild face: %s", s))
		}

		return Face{Color: Colorless, Value: value}
	}

	if value, ok := valueCodes[code]; ok {
		return Face{Color: color, Value: value}
	}

	// only a single digit is a number; Atoi would accept the sign in "+2"
	if len(code) == 1 && code[0] >= '0' && code[0] <= '9' {
		n, _ := strconv.Atoi(code)
		return Face{Color: color, Value: Number, Number: n}
	}

	panic(fmt.Sprintf("could not parse face: %s", s))
}

// FaceToString is the inverse of FaceFromString
func FaceToString(f Face) string {
	var color string
	for code, c := range colorCodes {
		if c == f.Color {
			color = code
			break
		}
	}

	if f.Color == Colorless {
		for code, v := range wildCodes {
			if v == f.Value {
				return color + code
			}
		}
	}

	if f.Value == Number {
		return color + strconv.Itoa(f.Number)
	}

	for code, v := range valueCodes {
		if v == f.Value {
			return color + code
		}
	}

	return color + "?"
}

// CardFromString returns a card from the string
// Two-sided cards are written as "<light>/<dark>", i.e., "r5/p7"
func CardFromString(s string) *Card {
	if s == "" {
		return nil
	}

	parts := strings.SplitN(s, "/", 2)
	card := &Card{Light: FaceFromString(parts[0])}
	if len(parts) == 2 {
		dark := FaceFromString(parts[1])
		card.Dark = &dark
	}

	return card
}

// CardToString is the inverse of CardFromString
func CardToString(card *Card) string {
	if card == nil {
		return ""
	}

	s := FaceToString(card.Light)
	if card.Dark != nil {
		s += "/" + FaceToString(*card.Dark)
	}

	return s
}

// CardsFromString returns a slice of cards from a comma separated string
func CardsFromString(s string) []*Card {
	if s == "" {
		return []*Card{}
	}

	parts := strings.Split(s, ",")
	cards := make([]*Card, len(parts))
	for i, part := range parts {
		cards[i] = CardFromString(strings.TrimSpace(part))
	}

	return cards
}

// CardsToString converts cards into the format r5,b+2,w+4
func CardsToString(cards []*Card) string {
	c := make([]string, len(cards))
	for i, card := range cards {
		c[i] = CardToString(card)
	}

	return strings.Join(c, ",")
}
