package bots

import (
	"strings"
	"time"

	"chessArena/metrics"
	"chessArena/rules"

	"github.com/notnil/chess"
)

// FirstBot always plays the move with the smallest (source rank, source file,
// destination rank, destination file, promotion) key. Ranks are counted from
// the mover's own side, so Black sees the board mirrored.
type FirstBot struct {
	options
}

func NewFirstBot(opts ...Option) *FirstBot {
	return &FirstBot{options: newOptions("First", opts)}
}

func (b *FirstBot) BestMove(pos *rules.Position) *chess.Move {
	start := time.Now()
	moves := legalMoves(pos)
	turn := pos.Turn()
	best, bestKey := moves[0], firstKey(moves[0], turn)
	for _, m := range moves[1:] {
		if k := firstKey(m, turn); keyLess(k, bestKey) {
			best, bestKey = m, k
		}
	}
	metrics.ObserveSearch(b.name, 0, time.Since(start))
	return best
}

func (b *FirstBot) Name() string {
	return b.name
}

func firstKey(m *chess.Move, turn chess.Color) [5]int {
	rank := func(sq chess.Square) int {
		if turn == chess.Black {
			return 7 - int(sq.Rank())
		}
		return int(sq.Rank())
	}
	return [5]int{
		rank(m.S1()), int(m.S1().File()),
		rank(m.S2()), int(m.S2().File()),
		promoOrder(m.Promo()),
	}
}

func keyLess(a, b [5]int) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// promoOrder ranks promotions from weakest to strongest, no promotion first.
func promoOrder(t chess.PieceType) int {
	switch t {
	case chess.Knight:
		return 1
	case chess.Bishop:
		return 2
	case chess.Rook:
		return 3
	case chess.Queen:
		return 4
	default:
		return 0
	}
}

// AlphabeticalBot plays the move whose lower-cased SAN sorts first.
type AlphabeticalBot struct {
	options
}

func NewAlphabeticalBot(opts ...Option) *AlphabeticalBot {
	return &AlphabeticalBot{options: newOptions("Alphabetical", opts)}
}

func (b *AlphabeticalBot) BestMove(pos *rules.Position) *chess.Move {
	start := time.Now()
	moves := legalMoves(pos)
	best, bestKey := moves[0], strings.ToLower(pos.SAN(moves[0]))
	for _, m := range moves[1:] {
		if k := strings.ToLower(pos.SAN(m)); k < bestKey {
			best, bestKey = m, k
		}
	}
	metrics.ObserveSearch(b.name, 0, time.Since(start))
	return best
}

func (b *AlphabeticalBot) Name() string {
	return b.name
}
