package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Color of a player, "b" or "w" as used on the wire and in SGF move keys.
type Color string

const (
	Black Color = "b"
	White Color = "w"
)

func (c Color) Opponent() Color {
	if c == Black {
		return White
	}
	return Black
}

// Sign returns +1 for black and -1 for white, matching KataGo score perspective.
func (c Color) Sign() float64 {
	if c == Black {
		return 1
	}
	return -1
}

func (c Color) Valid() bool {
	return c == Black || c == White
}

// GTP column letters, the letter I is skipped by convention.
const gtpColumns = "ABCDEFGHJKLMNOPQRSTUVWXYZ"

// Move is a single stone placement or a pass. It is a value type: two moves
// are the same move iff player and coordinates compare equal.
// X runs left to right, Y bottom to top (GTP orientation).
type Move struct {
	Player Color
	X      int
	Y      int
	Pass   bool
}

func NewMove(player Color, x, y int) Move {
	return Move{Player: player, X: x, Y: y}
}

func NewPass(player Color) Move {
	return Move{Player: player, Pass: true}
}

// GTP renders the move in GTP notation ("D4", "pass").
func (m Move) GTP() string {
	if m.Pass {
		return "pass"
	}
	return fmt.Sprintf("%c%d", gtpColumns[m.X], m.Y+1)
}

func (m Move) String() string {
	return strings.ToUpper(string(m.Player)) + " " + m.GTP()
}

// SGF renders the move coordinates in SGF notation. SGF rows count from the
// top of the board, so Y is flipped against the board size. A pass is the
// empty property value.
func (m Move) SGF(boardSize int) string {
	if m.Pass {
		return ""
	}
	return string([]byte{byte('a' + m.X), byte('a' + boardSize - 1 - m.Y)})
}

// FromGTP parses GTP notation ("D4", "pass") into a Move for the given player.
func FromGTP(s string, player Color) (Move, error) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "pass") {
		return NewPass(player), nil
	}
	if len(s) < 2 {
		return Move{}, fmt.Errorf("malformed gtp coordinate %q", s)
	}
	col := strings.IndexByte(gtpColumns, byte(strings.ToUpper(s)[0]))
	if col < 0 {
		return Move{}, fmt.Errorf("malformed gtp column in %q", s)
	}
	row, err := strconv.Atoi(s[1:])
	if err != nil || row < 1 {
		return Move{}, fmt.Errorf("malformed gtp row in %q", s)
	}
	return NewMove(player, col, row-1), nil
}

// FromSGF parses SGF coordinates ("dd") into a Move for the given player.
// The empty value is a pass, as is the historical "tt" on boards up to 19.
func FromSGF(s string, boardSize int, player Color) (Move, error) {
	if s == "" || (s == "tt" && boardSize <= 19) {
		return NewPass(player), nil
	}
	if len(s) != 2 {
		return Move{}, fmt.Errorf("malformed sgf coordinate %q", s)
	}
	x := int(s[0] - 'a')
	y := boardSize - 1 - int(s[1]-'a')
	if x < 0 || x >= boardSize || y < 0 || y >= boardSize {
		return Move{}, fmt.Errorf("sgf coordinate %q outside %dx%d board", s, boardSize, boardSize)
	}
	return NewMove(player, x, y), nil
}
