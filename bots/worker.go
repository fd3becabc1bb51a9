package bots

import (
	"context"
	"errors"
	"sync"

	"chessArena/rules"

	"github.com/notnil/chess"
)

// ErrNoSearch is returned by Wait when nothing was started.
var ErrNoSearch = errors.New("bots: no search in flight")

// Worker runs a bot's BestMove in the background and hands the move back
// through a one-slot channel. The bot belongs to the worker: only one search
// runs at a time, and a search always runs to completion.
type Worker struct {
	bot ChessBot

	busy sync.Mutex // held for the whole BestMove call

	mu   sync.Mutex
	slot chan *chess.Move
}

func NewWorker(bot ChessBot) *Worker {
	return &Worker{bot: bot}
}

func (w *Worker) Bot() ChessBot {
	return w.bot
}

// Start begins a search on pos. A result from an earlier Start that was not
// yet drained is discarded. pos must not be touched by the caller until the
// result has been received.
func (w *Worker) Start(pos *rules.Position) {
	slot := make(chan *chess.Move, 1)
	w.mu.Lock()
	w.slot = slot
	w.mu.Unlock()

	go func() {
		w.busy.Lock()
		defer w.busy.Unlock()
		slot <- w.bot.BestMove(pos)
	}()
}

// Poll drains the result without blocking.
func (w *Worker) Poll() (*chess.Move, bool) {
	slot := w.current()
	if slot == nil {
		return nil, false
	}
	select {
	case m := <-slot:
		w.release(slot)
		return m, true
	default:
		return nil, false
	}
}

// Wait blocks until the result is ready or ctx is done. Cancelling ctx only
// stops the wait; the search keeps going and its result stays in the slot.
func (w *Worker) Wait(ctx context.Context) (*chess.Move, error) {
	slot := w.current()
	if slot == nil {
		return nil, ErrNoSearch
	}
	select {
	case m := <-slot:
		w.release(slot)
		return m, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (w *Worker) current() chan *chess.Move {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.slot
}

func (w *Worker) release(slot chan *chess.Move) {
	w.mu.Lock()
	if w.slot == slot {
		w.slot = nil
	}
	w.mu.Unlock()
}
