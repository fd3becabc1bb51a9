// bot.go
package bots

import (
	"log/slog"
	"math/rand"
	"sync/atomic"
	"time"

	"chessArena/rules"

	"github.com/notnil/chess"
)

// ChessBot интерфейс для всех ботов.
//
// BestMove must only be called on a position with at least one legal move and
// returns one of pos.LegalMoves(). It never modifies pos. A ChessBot is not
// safe for concurrent use; hand it to a Worker to search in the background.
type ChessBot interface {
	BestMove(pos *rules.Position) *chess.Move
	Name() string
}

// MoveObserver is implemented by bots that keep memory across turns.
type MoveObserver interface {
	MoveCommitted(pos *rules.Position, m *chess.Move)
}

// Commit tells bot that m was played from pos, if it wants to know.
func Commit(bot ChessBot, pos *rules.Position, m *chess.Move) {
	if o, ok := bot.(MoveObserver); ok {
		o.MoveCommitted(pos, m)
	}
}

type Option func(*options)

type options struct {
	name   string
	logger *slog.Logger
	rng    *rand.Rand
}

// WithName overrides the name reported by Name().
func WithName(name string) Option {
	return func(o *options) { o.name = name }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSeed makes tie-breaking reproducible.
func WithSeed(seed int64) Option {
	return func(o *options) { o.rng = rand.New(rand.NewSource(seed)) }
}

var seedCounter atomic.Int64

func newOptions(defaultName string, opts []Option) options {
	o := options{name: defaultName}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.rng == nil {
		// every bot gets its own source so concurrent games never share one
		seed := time.Now().UnixNano() + seedCounter.Add(1)
		o.rng = rand.New(rand.NewSource(seed))
	}
	return o
}

// legalMoves panics on terminal positions: asking a bot to move there is a
// caller bug.
func legalMoves(pos *rules.Position) []*chess.Move {
	moves := pos.LegalMoves()
	if len(moves) == 0 {
		panic("bots: BestMove called on a position without legal moves (" + pos.FEN() + ")")
	}
	return moves
}
