package bots

import (
	"fmt"

	"chessArena/rules"

	"github.com/notnil/chess"
)

// Evaluator scores pos from perspective's point of view; larger is better.
// Implementations must be pure functions of their arguments.
type Evaluator func(pos *rules.Position, perspective chess.Color) float64

const (
	// CheckmateScore is returned when the side to move has been mated.
	CheckmateScore = -10e20
	// CheckScore marks a position with a king in check, or a stalemate.
	CheckScore = -10e10

	insistOffset = 10000.0
)

func pieceValue(piece chess.PieceType) float64 {
	switch piece {
	case chess.Pawn:
		return 1
	case chess.Knight:
		return 3
	case chess.Bishop:
		return 3
	case chess.Rook:
		return 5
	case chess.Queen:
		return 9
	default:
		return 0
	}
}

// squareColor treats a1 as a dark square.
func squareColor(sq chess.Square) chess.Color {
	if (int(sq.Rank())+int(sq.File()))%2 == 0 {
		return chess.Black
	}
	return chess.White
}

func chebyshev(a, b chess.Square) int {
	dr := abs(int(a.Rank()) - int(b.Rank()))
	df := abs(int(a.File()) - int(b.File()))
	return max(dr, df)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// eachPiece calls fn for every square holding one of c's pieces.
func eachPiece(pos *rules.Position, c chess.Color, fn func(sq chess.Square, p chess.Piece)) {
	for sq := chess.A1; sq <= chess.H8; sq++ {
		if p := pos.PieceAt(sq); p != chess.NoPiece && p.Color() == c {
			fn(sq, p)
		}
	}
}

// captureValue is the material standing on m's destination square.
func captureValue(pos *rules.Position, m *chess.Move) float64 {
	return pieceValue(pos.PieceAt(m.S2()).Type())
}

// requireOpponent guards evaluators that score the replies of the side to move.
func requireOpponent(name string, pos *rules.Position, perspective chess.Color) {
	if pos.Turn() == perspective {
		panic(fmt.Sprintf("bots: %s evaluator must be used for the side not to move (%s to move)", name, pos.Turn().Name()))
	}
}

// MatchingColors: +1 for each of perspective's pieces on a square of its own
// colour, -1 for each on the other colour.
func MatchingColors(pos *rules.Position, perspective chess.Color) float64 {
	var score float64
	eachPiece(pos, perspective, func(sq chess.Square, _ chess.Piece) {
		if squareColor(sq) == perspective {
			score++
		} else {
			score--
		}
	})
	return score
}

// OppositeColors is the exact negation of MatchingColors.
func OppositeColors(pos *rules.Position, perspective chess.Color) float64 {
	var score float64
	eachPiece(pos, perspective, func(sq chess.Square, _ chess.Piece) {
		if squareColor(sq) != perspective {
			score++
		} else {
			score--
		}
	})
	return score
}

// Huddle rewards keeping pieces close to one's own king.
func Huddle(pos *rules.Position, perspective chess.Color) float64 {
	return -kingDistance(pos, perspective, pos.KingSquare(perspective))
}

// Swarm rewards crowding the enemy king.
func Swarm(pos *rules.Position, perspective chess.Color) float64 {
	return -kingDistance(pos, perspective, pos.KingSquare(perspective.Other()))
}

func kingDistance(pos *rules.Position, c chess.Color, target chess.Square) float64 {
	var dist int
	eachPiece(pos, c, func(sq chess.Square, _ chess.Piece) {
		dist += chebyshev(sq, target)
	})
	return float64(dist)
}

// Pacifist avoids checks and mates and prefers the opponent to keep material.
func Pacifist(pos *rules.Position, perspective chess.Color) float64 {
	if pos.Status() == rules.Checkmate {
		return CheckmateScore
	}
	if pos.InCheck() {
		return CheckScore
	}
	var material float64
	eachPiece(pos, perspective.Other(), func(_ chess.Square, p chess.Piece) {
		material += pieceValue(p.Type())
	})
	return material
}

// Generous sums what the side to move could capture over all its replies.
func Generous(pos *rules.Position, perspective chess.Color) float64 {
	requireOpponent("generous", pos, perspective)
	var score float64
	for _, m := range pos.LegalMoves() {
		score += captureValue(pos, m)
	}
	return score
}

// Insist2 prefers positions where every reply of the opponent has to capture
// something. If some reply captures nothing it falls back to Generous.
func Insist2(pos *rules.Position, perspective chess.Color) float64 {
	requireOpponent("insist 2", pos, perspective)
	switch pos.Status() {
	case rules.Checkmate:
		return CheckmateScore
	case rules.Stalemate:
		return CheckScore
	}
	least := insistOffset
	for _, m := range pos.LegalMoves() {
		least = min(least, captureValue(pos, m))
	}
	if least < TieEpsilon {
		return Generous(pos, perspective)
	}
	return insistOffset + least
}

// Insist3 is the average capture value over the opponent's replies.
func Insist3(pos *rules.Position, perspective chess.Color) float64 {
	requireOpponent("insist 3", pos, perspective)
	switch pos.Status() {
	case rules.Checkmate:
		return CheckmateScore
	case rules.Stalemate:
		return CheckScore
	}
	moves := pos.LegalMoves()
	var score float64
	for _, m := range moves {
		score += captureValue(pos, m) / float64(len(moves))
	}
	return score
}

// Constant ignores the position entirely.
func Constant(v float64) Evaluator {
	return func(*rules.Position, chess.Color) float64 { return v }
}
