package bots

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"chessArena/metrics"
	"chessArena/rules"

	"github.com/notnil/chess"
)

// MinimaxBot searches Depth plies past each root move with fail-hard
// alpha-beta and evaluates only at the horizon. Moves are visited in the
// rules engine's order; there is no move ordering.
type MinimaxBot struct {
	Color chess.Color
	Eval  Evaluator
	Depth int
	options
}

func NewMinimaxBot(color chess.Color, eval Evaluator, depth int, opts ...Option) *MinimaxBot {
	if depth < 0 {
		panic(fmt.Sprintf("bots: negative search depth %d", depth))
	}
	return &MinimaxBot{
		Color:   color,
		Eval:    eval,
		Depth:   depth,
		options: newOptions(fmt.Sprintf("Minimax Bot (depth %d)", depth), opts),
	}
}

func (b *MinimaxBot) Name() string {
	return b.name
}

func (b *MinimaxBot) BestMove(pos *rules.Position) *chess.Move {
	start := time.Now()
	s := &search{bot: b}
	ties := s.root(pos)
	move := ties.pick(b.rng)

	metrics.ObserveSearch(b.name, s.evals, time.Since(start))
	b.logger.Debug("minimax move selected",
		slog.String("bot", b.name),
		slog.Int("depth", b.Depth),
		slog.String("move", move.String()),
		slog.Float64("eval", ties.best),
		slog.Int("ties", len(ties.moves)),
		slog.Int("evaluations", s.evals),
		slog.Duration("elapsed", time.Since(start)))
	return move
}

// search holds the per-call counters so the bot itself stays stateless.
type search struct {
	bot   *MinimaxBot
	evals int
}

func (s *search) root(pos *rules.Position) *tieSet {
	ties := &tieSet{}
	for _, m := range legalMoves(pos) {
		score := s.alphaBetaMin(pos.Apply(m), math.Inf(-1), math.Inf(1), s.bot.Depth)
		ties.consider(m, score)
	}
	return ties
}

func (s *search) evaluate(pos *rules.Position) float64 {
	s.evals++
	return s.bot.Eval(pos, s.bot.Color)
}

// alphaBetaMax returns beta as soon as a child reaches it. A node without
// legal moves keeps its incoming alpha.
func (s *search) alphaBetaMax(pos *rules.Position, alpha, beta float64, depth int) float64 {
	if depth == 0 {
		return s.evaluate(pos)
	}
	for _, m := range pos.LegalMoves() {
		score := s.alphaBetaMin(pos.Apply(m), alpha, beta, depth-1)
		if score >= beta {
			return beta
		}
		if score > alpha {
			alpha = score
		}
	}
	return alpha
}

func (s *search) alphaBetaMin(pos *rules.Position, alpha, beta float64, depth int) float64 {
	if depth == 0 {
		return s.evaluate(pos)
	}
	for _, m := range pos.LegalMoves() {
		score := s.alphaBetaMax(pos.Apply(m), alpha, beta, depth-1)
		if score <= alpha {
			return alpha
		}
		if score < beta {
			beta = score
		}
	}
	return beta
}
