package game

import (
	"context"
	"fmt"
	"log/slog"

	"chessArena/bots"
	"chessArena/metrics"
	"chessArena/rules"

	"github.com/google/uuid"
	"github.com/notnil/chess"
)

// Result describes one finished (or abandoned) game.
type Result struct {
	ID      uuid.UUID
	White   string
	Black   string
	Outcome chess.Outcome
	Method  chess.Method
	Plies   int
	Moves   []string // SAN
	PGN     string
}

// Match plays one game between two bots. Each bot searches on its own Worker
// so the loop only ever waits on a finished move.
type Match struct {
	White    bots.ChessBot
	Black    bots.ChessBot
	StartFEN string
	MaxPlies int // 0 means no limit
	Logger   *slog.Logger
}

func (m *Match) Play(ctx context.Context) (Result, error) {
	logger := m.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var opts []func(*chess.Game)
	if m.StartFEN != "" {
		start, err := rules.FromFEN(m.StartFEN)
		if err != nil {
			return Result{}, fmt.Errorf("start position: %w", err)
		}
		fen, err := chess.FEN(start.FEN())
		if err != nil {
			return Result{}, fmt.Errorf("start position %q: %w", m.StartFEN, err)
		}
		opts = append(opts, fen)
	}
	g := chess.NewGame(opts...)

	res := Result{ID: uuid.New(), White: m.White.Name(), Black: m.Black.Name()}
	logger = logger.With(slog.String("game", res.ID.String()))
	logger.Info("game started", slog.String("white", res.White), slog.String("black", res.Black))

	workers := map[chess.Color]*bots.Worker{
		chess.White: bots.NewWorker(m.White),
		chess.Black: bots.NewWorker(m.Black),
	}

	for g.Outcome() == chess.NoOutcome {
		if m.MaxPlies > 0 && res.Plies >= m.MaxPlies {
			logger.Info("ply limit reached", slog.Int("plies", res.Plies))
			break
		}
		pos := rules.FromChess(g.Position())
		w := workers[pos.Turn()]

		w.Start(pos)
		move, err := w.Wait(ctx)
		if err != nil {
			return res, fmt.Errorf("waiting for %s: %w", w.Bot().Name(), err)
		}

		san := pos.SAN(move)
		if err := g.Move(move); err != nil {
			return res, fmt.Errorf("%s played %s: %w", w.Bot().Name(), san, err)
		}
		bots.Commit(w.Bot(), pos, move)

		res.Plies++
		res.Moves = append(res.Moves, san)
		logger.Debug("move played",
			slog.Int("ply", res.Plies),
			slog.String("bot", w.Bot().Name()),
			slog.String("move", san))

		claimDraw(g)
	}

	res.Outcome = g.Outcome()
	res.Method = g.Method()
	res.PGN = g.String()
	metrics.ObserveGame(res.Outcome.String())
	logger.Info("game finished",
		slog.String("result", res.Outcome.String()),
		slog.String("method", res.Method.String()),
		slog.Int("plies", res.Plies))
	return res, nil
}

// claimDraw takes a threefold or fifty-move draw as soon as one is available;
// the rules engine only applies the fivefold and seventy-five move rules itself.
func claimDraw(g *chess.Game) {
	for _, method := range g.EligibleDraws() {
		if method != chess.ThreefoldRepetition && method != chess.FiftyMoveRule {
			continue
		}
		if err := g.Draw(method); err == nil {
			return
		}
	}
}
