package rules

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

// Status classifies a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
)

func (s Status) String() string {
	switch s {
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	default:
		return "ongoing"
	}
}

// Position is an immutable game snapshot. The legal move list is computed
// once on first use, after which a Position may be read from any goroutine.
type Position struct {
	pos   *chess.Position
	check bool

	once  sync.Once
	moves []*chess.Move
}

// StartingPosition returns the standard initial position.
func StartingPosition() *Position {
	return FromChess(chess.NewGame().Position())
}

// ErrKingCount is returned for boards without exactly one king per side.
var ErrKingCount = errors.New("each side needs exactly one king")

// FromFEN parses a position in Forsyth-Edwards notation.
func FromFEN(fen string) (*Position, error) {
	fen = strings.TrimSpace(fen)
	if err := checkKings(fen); err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen %q: %w", fen, err)
	}
	return FromChess(chess.NewGame(opt).Position()), nil
}

// checkKings looks at the board field alone. Move generation assumes both
// kings exist and indexes past the board when one is missing.
func checkKings(fen string) error {
	fields := strings.Fields(fen)
	if len(fields) == 0 {
		return errors.New("empty fen")
	}
	var board chess.Board
	if err := board.UnmarshalText([]byte(fields[0])); err != nil {
		return err
	}
	kings := map[chess.Color]int{}
	for _, p := range board.SquareMap() {
		if p.Type() == chess.King {
			kings[p.Color()]++
		}
	}
	if kings[chess.White] != 1 || kings[chess.Black] != 1 {
		return fmt.Errorf("%w: white has %d, black has %d", ErrKingCount, kings[chess.White], kings[chess.Black])
	}
	return nil
}

// FromChess wraps a notnil position, which must hold both kings. The check flag is recomputed from the
// board because the wrapped position does not export it.
func FromChess(p *chess.Position) *Position {
	b := dragontoothmg.ParseFen(p.String())
	return &Position{pos: p, check: b.OurKingInCheck()}
}

// Chess exposes the wrapped position. Callers must not mutate it.
func (p *Position) Chess() *chess.Position { return p.pos }

func (p *Position) Turn() chess.Color { return p.pos.Turn() }

func (p *Position) FEN() string { return p.pos.String() }

func (p *Position) InCheck() bool { return p.check }

// LegalMoves returns the legal moves in the rules engine's enumeration order.
// The slice is a fresh copy; the moves themselves are shared and read-only.
func (p *Position) LegalMoves() []*chess.Move {
	p.once.Do(func() {
		p.moves = p.pos.ValidMoves()
	})
	return append([]*chess.Move(nil), p.moves...)
}

// NumLegalMoves avoids the copy made by LegalMoves.
func (p *Position) NumLegalMoves() int {
	p.once.Do(func() {
		p.moves = p.pos.ValidMoves()
	})
	return len(p.moves)
}

// Apply returns the position reached by playing m. p is left untouched.
func (p *Position) Apply(m *chess.Move) *Position {
	return &Position{pos: p.pos.Update(m), check: m.HasTag(chess.Check)}
}

func (p *Position) Status() Status {
	if p.NumLegalMoves() > 0 {
		return Ongoing
	}
	if p.check {
		return Checkmate
	}
	return Stalemate
}

func (p *Position) PieceAt(sq chess.Square) chess.Piece {
	return p.pos.Board().Piece(sq)
}

// KingSquare returns chess.NoSquare when c has no king on the board.
func (p *Position) KingSquare(c chess.Color) chess.Square {
	board := p.pos.Board()
	for sq := chess.A1; sq <= chess.H8; sq++ {
		piece := board.Piece(sq)
		if piece.Type() == chess.King && piece.Color() == c {
			return sq
		}
	}
	return chess.NoSquare
}

// SAN renders m in standard algebraic notation for this position.
func (p *Position) SAN(m *chess.Move) string {
	p.NumLegalMoves()
	return chess.AlgebraicNotation{}.Encode(p.pos, m)
}

func (p *Position) UCI(m *chess.Move) string {
	return chess.UCINotation{}.Encode(p.pos, m)
}

// ParseMove accepts UCI ("e2e4") or SAN ("e4") and returns the matching legal
// move from LegalMoves.
func (p *Position) ParseMove(s string) (*chess.Move, error) {
	s = strings.TrimSpace(s)
	decoded, err := chess.UCINotation{}.Decode(p.pos, s)
	if err != nil {
		decoded, err = chess.AlgebraicNotation{}.Decode(p.pos, s)
		if err != nil {
			return nil, fmt.Errorf("parse move %q: %w", s, err)
		}
	}
	for _, m := range p.LegalMoves() {
		if SameMove(m, decoded) {
			return m, nil
		}
	}
	return nil, fmt.Errorf("move %q is not legal in %s", s, p.FEN())
}

// SameMove compares moves by squares and promotion, ignoring tags.
func SameMove(a, b *chess.Move) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.S1() == b.S1() && a.S2() == b.S2() && a.Promo() == b.Promo()
}
