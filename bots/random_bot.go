package bots

import (
	"time"

	"chessArena/metrics"
	"chessArena/rules"

	"github.com/notnil/chess"
)

// RandomBot plays a uniformly random legal move.
type RandomBot struct {
	options
}

func NewRandomBot(opts ...Option) *RandomBot {
	return &RandomBot{options: newOptions("Random", opts)}
}

func (b *RandomBot) BestMove(pos *rules.Position) *chess.Move {
	start := time.Now()
	moves := legalMoves(pos)
	move := moves[b.rng.Intn(len(moves))]
	metrics.ObserveSearch(b.name, 0, time.Since(start))
	return move
}

func (b *RandomBot) Name() string {
	return b.name
}
