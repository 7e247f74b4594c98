// Package frame derives renderer-agnostic frame descriptors from board
// positions. Build is a pure function so descriptors can be produced and
// rasterized for different positions in any order.
package frame

import (
	"fmt"
	"strings"

	nchess "github.com/corentings/chess/v2"

	"github.com/park285/pgn2gif/internal/game"
	"github.com/park285/pgn2gif/internal/theme"
)

// Orientation selects which side sits at the bottom of the rendered board.
type Orientation int

const (
	WhiteDown Orientation = iota
	BlackDown
)

func (o Orientation) String() string {
	if o == BlackDown {
		return "black"
	}
	return "white"
}

// ParseOrientation accepts "white" or "black".
func ParseOrientation(s string) (Orientation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white":
		return WhiteDown, nil
	case "black":
		return BlackDown, nil
	default:
		return WhiteDown, fmt.Errorf("unknown orientation %q", s)
	}
}

// Highlight marks the origin and destination squares of the move that
// produced a position.
type Highlight struct {
	From nchess.Square
	To   nchess.Square
}

// Options is the fixed per-run rendering configuration.
type Options struct {
	Orientation       Orientation
	Size              int
	Coordinates       bool
	HighlightLastMove bool
	Theme             theme.Theme
}

// Descriptor is everything the rasterizer needs to draw one frame. The
// piece map is a copy, so a descriptor never aliases loader state.
type Descriptor struct {
	Index       int
	Pieces      map[nchess.Square]nchess.Piece
	Highlight   *Highlight
	Orientation Orientation
	Size        int
	Coordinates bool
	Theme       theme.Theme
}

// Build derives the descriptor for one position. The initial position has
// no producing move and therefore never carries a highlight, regardless
// of the highlight flag.
func Build(pos game.Position, index int, opts Options) Descriptor {
	d := Descriptor{
		Index:       index,
		Pieces:      pos.Board.SquareMap(),
		Orientation: opts.Orientation,
		Size:        opts.Size,
		Coordinates: opts.Coordinates,
		Theme:       opts.Theme,
	}
	if opts.HighlightLastMove && pos.LastMove != nil {
		d.Highlight = &Highlight{From: pos.LastMove.From, To: pos.LastMove.To}
	}
	return d
}

// BuildAll maps positions to descriptors, preserving count and order.
func BuildAll(positions []game.Position, opts Options) []Descriptor {
	out := make([]Descriptor, len(positions))
	for i, pos := range positions {
		out[i] = Build(pos, i, opts)
	}
	return out
}
