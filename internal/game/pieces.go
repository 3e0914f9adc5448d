package game

import "fmt"

// Player identifies one side of the game.
type Player uint8

const (
	NoPlayer Player = iota
	White
	Black
)

// Next returns the other player. NoPlayer has no successor.
func (p Player) Next() Player {
	switch p {
	case White:
		return Black
	case Black:
		return White
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "None"
	}
}

// MarshalText encodes the player as its lowercase name.
func (p Player) MarshalText() ([]byte, error) {
	switch p {
	case White:
		return []byte("white"), nil
	case Black:
		return []byte("black"), nil
	default:
		return []byte("none"), nil
	}
}

// UnmarshalText decodes a player from its lowercase name.
func (p *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "white":
		*p = White
	case "black":
		*p = Black
	case "none", "":
		*p = NoPlayer
	default:
		return fmt.Errorf("game: unknown player %q", text)
	}
	return nil
}

// PieceClass is one of the fixed insect types.
type PieceClass uint8

const (
	Queen PieceClass = iota
	Spider
	Beetle
	Hopper
	Ant
	Ladybug
	Mosquito
	PillBug
)

type classInfo struct {
	name  string
	count int
}

var classes = map[PieceClass]classInfo{
	Queen:    {"Queen", 1},
	Spider:   {"Spider", 2},
	Beetle:   {"Beetle", 2},
	Hopper:   {"Hopper", 3},
	Ant:      {"Ant", 3},
	Ladybug:  {"Ladybug", 1},
	Mosquito: {"Mosquito", 1},
	PillBug:  {"Pill Bug", 1},
}

func (c PieceClass) String() string {
	if info, ok := classes[c]; ok {
		return info.name
	}
	return "Unknown"
}

// CountPerPlayer is how many pieces of this class each player starts with.
func (c PieceClass) CountPerPlayer() int {
	if info, ok := classes[c]; ok {
		return info.count
	}
	return 0
}

var classNames = map[string]PieceClass{
	"queen":    Queen,
	"spider":   Spider,
	"beetle":   Beetle,
	"hopper":   Hopper,
	"ant":      Ant,
	"ladybug":  Ladybug,
	"mosquito": Mosquito,
	"pillbug":  PillBug,
}

var classWireNames = map[PieceClass]string{
	Queen:    "queen",
	Spider:   "spider",
	Beetle:   "beetle",
	Hopper:   "hopper",
	Ant:      "ant",
	Ladybug:  "ladybug",
	Mosquito: "mosquito",
	PillBug:  "pillbug",
}

// MarshalText encodes the class as its lowercase wire name.
func (c PieceClass) MarshalText() ([]byte, error) {
	name, ok := classWireNames[c]
	if !ok {
		return nil, fmt.Errorf("game: unknown piece class %d", c)
	}
	return []byte(name), nil
}

// UnmarshalText decodes a class from its lowercase wire name.
func (c *PieceClass) UnmarshalText(text []byte) error {
	class, ok := classNames[string(text)]
	if !ok {
		return fmt.Errorf("game: unknown piece class %q", text)
	}
	*c = class
	return nil
}

// Piece identifies a single unit by owner, class, and per-class index
// (1-based). Identity never changes as the piece moves.
type Piece struct {
	Owner Player     `json:"owner"`
	Class PieceClass `json:"class"`
	Index int        `json:"index"`
}

func (p Piece) String() string {
	return fmt.Sprintf("%s %s %d", p.Owner, p.Class, p.Index)
}

// Less orders pieces by owner, then class, then index.
func (p Piece) Less(o Piece) bool {
	if p.Owner != o.Owner {
		return p.Owner < o.Owner
	}
	if p.Class != o.Class {
		return p.Class < o.Class
	}
	return p.Index < o.Index
}
