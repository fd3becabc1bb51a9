package bots

import (
	"testing"

	"chessArena/rules"

	"github.com/notnil/chess"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	foolsMateFEN   = "rnb1kbnr/pppp1ppp/8/4p3/6Pq/5P2/PPPPP2P/RNBQKBNR w KQkq - 1 3"
	stalemateFEN   = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"
	rookCheckFEN   = "4k3/8/8/8/8/8/4R3/4K3 b - - 0 1"
	pawnTradeFEN   = "4k3/8/8/3p4/4P3/8/8/4K3 w - - 0 1"
	forcedTakeFEN  = "7k/8/8/8/8/8/1q6/K7 w - - 0 1"
	middlegameFEN  = "r1bqk2r/pppp1ppp/2n2n2/2b1p3/2B1P3/3P1N2/PPP2PPP/RNBQK2R w KQkq - 1 5"
	backRankMateIn = "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"
	// black king must take either the rook on g8 or the knight on h7
	twoTakesFEN = "6Rk/7N/8/8/8/8/8/K7 b - - 0 1"
	// kings on e1 and d5, white rook on a1
	loneRookFEN = "8/8/8/3k4/8/8/8/R3K3 w - - 0 1"
)

func mustFEN(t *testing.T, fen string) *rules.Position {
	t.Helper()
	pos, err := rules.FromFEN(fen)
	require.NoError(t, err)
	return pos
}

func TestMatchingIsNegatedOpposite(t *testing.T) {
	for _, fen := range []string{foolsMateFEN, stalemateFEN, pawnTradeFEN, middlegameFEN} {
		pos := mustFEN(t, fen)
		for _, c := range []chess.Color{chess.White, chess.Black} {
			assert.Equal(t, MatchingColors(pos, c), -OppositeColors(pos, c), "%s %s", fen, c.Name())
		}
	}
}

func TestStartingPositionScores(t *testing.T) {
	pos := rules.StartingPosition()

	assert.Equal(t, 0.0, MatchingColors(pos, chess.White))
	assert.Equal(t, 0.0, MatchingColors(pos, chess.Black))
	assert.Equal(t, -33.0, Huddle(pos, chess.White))
	assert.Equal(t, -104.0, Swarm(pos, chess.White))
	assert.Equal(t, 39.0, Pacifist(pos, chess.White))
}

func TestKingDistanceScores(t *testing.T) {
	pos := mustFEN(t, loneRookFEN)

	assert.Equal(t, -4.0, Huddle(pos, chess.White))
	assert.Equal(t, 0.0, Huddle(pos, chess.Black))
	assert.Equal(t, -8.0, Swarm(pos, chess.White))
	assert.Equal(t, -4.0, Swarm(pos, chess.Black))

	m, err := pos.ParseMove("e1e2")
	require.NoError(t, err)
	next := pos.Apply(m)
	assert.Equal(t, -4.0, Huddle(next, chess.White))
	assert.Equal(t, -7.0, Swarm(next, chess.White))
	assert.Equal(t, -3.0, Swarm(next, chess.Black))
}

func TestSquareColor(t *testing.T) {
	assert.Equal(t, chess.Black, squareColor(chess.A1))
	assert.Equal(t, chess.White, squareColor(chess.H1))
	assert.Equal(t, chess.White, squareColor(chess.D1))
	assert.Equal(t, chess.Black, squareColor(chess.H8))
	assert.Equal(t, 7, chebyshev(chess.A1, chess.H8))
	assert.Equal(t, 2, chebyshev(chess.E4, chess.F6))
}

func TestPacifist(t *testing.T) {
	t.Run("checkmate dominates material", func(t *testing.T) {
		assert.Equal(t, CheckmateScore, Pacifist(mustFEN(t, foolsMateFEN), chess.White))
	})
	t.Run("check", func(t *testing.T) {
		assert.Equal(t, CheckScore, Pacifist(mustFEN(t, rookCheckFEN), chess.Black))
	})
	t.Run("opponent material", func(t *testing.T) {
		assert.Equal(t, 1.0, Pacifist(mustFEN(t, pawnTradeFEN), chess.White))
	})
}

func TestGenerous(t *testing.T) {
	assert.Equal(t, 1.0, Generous(mustFEN(t, pawnTradeFEN), chess.Black))
	assert.Equal(t, 0.0, Generous(rules.StartingPosition(), chess.Black))
	assert.Equal(t, 9.0, Generous(mustFEN(t, forcedTakeFEN), chess.Black))
}

func TestOpponentRelativeEvaluatorsPanicForSideToMove(t *testing.T) {
	pos := rules.StartingPosition()
	for name, eval := range map[string]Evaluator{
		"generous": Generous,
		"insist2":  Insist2,
		"insist3":  Insist3,
	} {
		assert.Panics(t, func() { eval(pos, chess.White) }, name)
	}
}

func TestInsist2(t *testing.T) {
	t.Run("quiet replies fall back to generous", func(t *testing.T) {
		pos := rules.StartingPosition()
		assert.Equal(t, Generous(pos, chess.Black), Insist2(pos, chess.Black))

		pos = mustFEN(t, pawnTradeFEN)
		assert.Equal(t, Generous(pos, chess.Black), Insist2(pos, chess.Black))
	})
	t.Run("every reply captures", func(t *testing.T) {
		assert.Equal(t, 10009.0, Insist2(mustFEN(t, forcedTakeFEN), chess.Black))
	})
	t.Run("least valuable capture counts", func(t *testing.T) {
		pos := mustFEN(t, twoTakesFEN)
		require.Equal(t, 2, pos.NumLegalMoves())
		assert.Equal(t, 10003.0, Insist2(pos, chess.White))
	})
	t.Run("terminal", func(t *testing.T) {
		assert.Equal(t, CheckmateScore, Insist2(mustFEN(t, foolsMateFEN), chess.Black))
		assert.Equal(t, CheckScore, Insist2(mustFEN(t, stalemateFEN), chess.White))
	})
}

func TestInsist3(t *testing.T) {
	assert.InDelta(t, 1.0/7.0, Insist3(mustFEN(t, pawnTradeFEN), chess.Black), 1e-9)
	assert.Equal(t, 9.0, Insist3(mustFEN(t, forcedTakeFEN), chess.Black))
	assert.Equal(t, 4.0, Insist3(mustFEN(t, twoTakesFEN), chess.White))
	assert.Equal(t, 8.0, Generous(mustFEN(t, twoTakesFEN), chess.White))
	assert.Equal(t, CheckmateScore, Insist3(mustFEN(t, foolsMateFEN), chess.Black))
	assert.Equal(t, CheckScore, Insist3(mustFEN(t, stalemateFEN), chess.White))
}

func TestEvaluatorsAreDeterministic(t *testing.T) {
	pos := mustFEN(t, middlegameFEN)
	for _, eval := range []Evaluator{MatchingColors, OppositeColors, Huddle, Swarm, Pacifist} {
		assert.Equal(t, eval(pos, chess.White), eval(pos, chess.White))
	}
	assert.Equal(t, Insist3(pos, chess.Black), Insist3(pos, chess.Black))
}
