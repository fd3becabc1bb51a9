package bots

import (
	"log/slog"
	"time"

	"chessArena/metrics"
	"chessArena/rules"

	"github.com/notnil/chess"
)

// GreedyBot looks one ply ahead: it scores every successor position and plays
// one of the best, chosen at random among ties.
type GreedyBot struct {
	Color chess.Color
	Eval  Evaluator
	options
}

func NewGreedyBot(color chess.Color, eval Evaluator, opts ...Option) *GreedyBot {
	return &GreedyBot{
		Color:   color,
		Eval:    eval,
		options: newOptions("Greedy Bot", opts),
	}
}

func (b *GreedyBot) Name() string {
	return b.name
}

func (b *GreedyBot) BestMove(pos *rules.Position) *chess.Move {
	start := time.Now()
	ties := b.tiedBest(pos)
	move := ties.pick(b.rng)

	metrics.ObserveSearch(b.name, pos.NumLegalMoves(), time.Since(start))
	b.logger.Debug("greedy move selected",
		slog.String("bot", b.name),
		slog.String("move", move.String()),
		slog.Float64("eval", ties.best),
		slog.Int("ties", len(ties.moves)))
	return move
}

func (b *GreedyBot) tiedBest(pos *rules.Position) *tieSet {
	ties := &tieSet{}
	for _, m := range legalMoves(pos) {
		ties.consider(m, b.Eval(pos.Apply(m), b.Color))
	}
	return ties
}
