// Package game turns a PGN record into the ordered position sequence the
// rendering pipeline consumes. Move legality and notation are handled by
// the chess library; this package only replays and annotates.
package game

import (
	"bytes"
	"io"
	"os"
	"strings"

	nchess "github.com/corentings/chess/v2"
	"go.uber.org/zap"
)

// Move identifies one ply by its origin and destination squares.
type Move struct {
	From nchess.Square
	To   nchess.Square
	SAN  string
}

// Position is one board state in game chronology. The initial position
// carries a nil LastMove and Ply 0; every later position holds the move
// that produced it.
type Position struct {
	Board    *nchess.Board
	Turn     nchess.Color
	Ply      int
	LastMove *Move
}

// ParseError reports a malformed record or an illegal move in it.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return "parse game record: " + e.Err.Error() }
func (e *ParseError) Unwrap() error { return e.Err }

// Loader replays game records into position sequences. Whether the
// initial position is included is fixed at construction and applies
// uniformly to every record the loader sees.
type Loader struct {
	includeInitial bool
	logger         *zap.Logger
}

func NewLoader(includeInitial bool, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{includeInitial: includeInitial, logger: logger}
}

// LoadFile reads and replays the record at path.
func (l *Loader) LoadFile(path string) ([]Position, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return l.Load(bytes.NewReader(raw))
}

// Load parses a PGN record and returns its positions in game order:
// one per ply, preceded by the initial position when configured. A
// record with zero moves yields a single initial position, or an empty
// slice when the initial position is excluded.
func (l *Loader) Load(r io.Reader) ([]Position, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	g, err := parseRecord(raw)
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	positions := g.Positions()
	moves := g.Moves()
	notation := nchess.AlgebraicNotation{}

	out := make([]Position, 0, len(moves)+1)
	if l.includeInitial {
		out = append(out, Position{
			Board: positions[0].Board(),
			Turn:  positions[0].Turn(),
		})
	}
	for i, mv := range moves {
		after := positions[i+1]
		out = append(out, Position{
			Board: after.Board(),
			Turn:  after.Turn(),
			Ply:   i + 1,
			LastMove: &Move{
				From: mv.S1(),
				To:   mv.S2(),
				SAN:  notation.Encode(positions[i], mv),
			},
		})
	}

	l.logger.Debug("game record loaded",
		zap.Int("plies", len(moves)),
		zap.Int("positions", len(out)),
		zap.Bool("initial_position", l.includeInitial),
	)
	return out, nil
}

func parseRecord(raw []byte) (*nchess.Game, error) {
	// A record with headers but no moves is legal; so is a fully empty
	// file, which the PGN reader rejects on its own.
	if strings.TrimSpace(string(raw)) == "" {
		return nchess.NewGame(), nil
	}
	pgn, err := nchess.PGN(bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	return nchess.NewGame(pgn), nil
}
