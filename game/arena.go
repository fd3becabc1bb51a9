package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"chessArena/bots"

	"github.com/notnil/chess"
	"golang.org/x/sync/errgroup"
)

// Scoreboard tallies an arena run from the point of view of the two presets:
// A is Config.White, B is Config.Black.
type Scoreboard struct {
	A, B       string
	AWins      int
	BWins      int
	Draws      int
	Unfinished int
	Results    []Result
}

func (s *Scoreboard) String() string {
	return fmt.Sprintf("%s vs %s: +%d =%d -%d (unfinished %d)",
		s.A, s.B, s.AWins, s.Draws, s.BWins, s.Unfinished)
}

type gameJob struct {
	index   int
	swapped bool
}

type gameResult struct {
	job gameJob
	res Result
}

func (s *Scoreboard) add(r gameResult) {
	aColor := chess.White
	if r.job.swapped {
		aColor = chess.Black
	}
	switch r.res.Outcome {
	case chess.Draw:
		s.Draws++
	case chess.WhiteWon, chess.BlackWon:
		winner := chess.White
		if r.res.Outcome == chess.BlackWon {
			winner = chess.Black
		}
		if winner == aColor {
			s.AWins++
		} else {
			s.BWins++
		}
	default:
		s.Unfinished++
	}
}

// RunArena plays cfg.Games games, cfg.Concurrency at a time. Every game gets
// freshly built bots so no bot is shared between goroutines.
func RunArena(ctx context.Context, cfg Config, logger *slog.Logger) (*Scoreboard, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("arena started",
		slog.String("white", cfg.White),
		slog.String("black", cfg.Black),
		slog.Int("games", cfg.Games),
		slog.Int("concurrency", cfg.Concurrency))

	g, ctx := errgroup.WithContext(ctx)

	jobs := make(chan gameJob)
	results := make(chan gameResult)

	g.Go(func() error {
		defer close(jobs)
		for i := 0; i < cfg.Games; i++ {
			job := gameJob{index: i, swapped: cfg.AlternateColors && i%2 == 1}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case jobs <- job:
			}
		}
		return nil
	})

	var wg sync.WaitGroup
	for i := 0; i < cfg.Concurrency; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return playGames(ctx, cfg, logger, jobs, results)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var indexed []gameResult
	board := &Scoreboard{A: cfg.White, B: cfg.Black}
	g.Go(func() error {
		for r := range results {
			board.add(r)
			indexed = append(indexed, r)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return board, err
	}

	sort.Slice(indexed, func(i, j int) bool { return indexed[i].job.index < indexed[j].job.index })
	for _, r := range indexed {
		board.Results = append(board.Results, r.res)
	}
	logger.Info("arena finished", slog.String("score", board.String()))
	return board, nil
}

func playGames(
	ctx context.Context,
	cfg Config,
	logger *slog.Logger,
	jobs <-chan gameJob,
	results chan<- gameResult,
) error {
	for job := range jobs {
		match, err := newMatch(cfg, job, logger)
		if err != nil {
			return err
		}
		res, err := match.Play(ctx)
		if err != nil {
			return fmt.Errorf("game %d: %w", job.index, err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- gameResult{job: job, res: res}:
		}
	}
	return nil
}

func newMatch(cfg Config, job gameJob, logger *slog.Logger) (*Match, error) {
	whiteName, blackName := cfg.White, cfg.Black
	if job.swapped {
		whiteName, blackName = blackName, whiteName
	}
	white, err := buildBot(whiteName, chess.White, cfg, job, logger)
	if err != nil {
		return nil, err
	}
	black, err := buildBot(blackName, chess.Black, cfg, job, logger)
	if err != nil {
		return nil, err
	}
	return &Match{
		White:    white,
		Black:    black,
		StartFEN: cfg.StartFEN,
		MaxPlies: cfg.MaxPlies,
		Logger:   logger,
	}, nil
}

func buildBot(name string, color chess.Color, cfg Config, job gameJob, logger *slog.Logger) (bots.ChessBot, error) {
	preset, ok := bots.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("unknown preset %q", name)
	}
	opts := []bots.Option{bots.WithLogger(logger)}
	if cfg.Seed != 0 {
		opts = append(opts, bots.WithSeed(cfg.Seed+int64(job.index)*2+int64(color)))
	}
	return preset.New(color, opts...), nil
}
