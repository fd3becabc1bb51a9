package bots

import (
	"math"
	"math/rand"

	"github.com/notnil/chess"
)

// TieEpsilon is the score distance under which two moves count as equally good.
const TieEpsilon = 0.0001

// tieSet tracks the best score seen so far and every move within TieEpsilon
// of it. A strictly better score outside the tolerance starts a new set.
type tieSet struct {
	best  float64
	moves []*chess.Move
}

func (t *tieSet) consider(m *chess.Move, score float64) {
	switch {
	case len(t.moves) > 0 && (score == t.best || math.Abs(score-t.best) < TieEpsilon):
		t.moves = append(t.moves, m)
	case len(t.moves) == 0 || score > t.best:
		t.best = score
		t.moves = append(t.moves[:0], m)
	}
}

func (t *tieSet) pick(rng *rand.Rand) *chess.Move {
	return t.moves[rng.Intn(len(t.moves))]
}
