package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"chessArena/bots"
	"chessArena/game"
	"chessArena/rules"

	"github.com/notnil/chess"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var (
	logLevel    string
	metricsAddr string

	moveFEN    string
	movePreset string
	moveSeed   int64

	playConfig string
	playFlags  game.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chessarena",
		Short:         "Pit move-selection bots against each other",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging(logLevel)
		},
	}
	root.PersistentFlags().StringVar(&logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(newListCmd(), newMoveCmd(), newPlayCmd())
	return root
}

func setupLogging(level string) error {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	return nil
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List bot presets",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range bots.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newMoveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Ask a preset for its move in a position",
		RunE: func(cmd *cobra.Command, args []string) error {
			preset, ok := bots.Lookup(movePreset)
			if !ok {
				return fmt.Errorf("unknown preset %q (see \"chessarena list\")", movePreset)
			}
			pos := rules.StartingPosition()
			if moveFEN != "" {
				var err error
				if pos, err = rules.FromFEN(moveFEN); err != nil {
					return err
				}
			}
			if status := pos.Status(); status != rules.Ongoing {
				return fmt.Errorf("no move to make: position is %s", status)
			}

			opts := []bots.Option{bots.WithLogger(slog.Default())}
			if moveSeed != 0 {
				opts = append(opts, bots.WithSeed(moveSeed))
			}
			bot := preset.New(pos.Turn(), opts...)
			m := bot.BestMove(pos)
			fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", pos.SAN(m), pos.UCI(m))
			return nil
		},
	}
	cmd.Flags().StringVar(&moveFEN, "fen", "", "position in FEN (default: starting position)")
	cmd.Flags().StringVar(&movePreset, "preset", "Matching", "bot preset")
	cmd.Flags().Int64Var(&moveSeed, "seed", 0, "tie-breaking seed, 0 for random")
	return cmd
}

func newPlayCmd() *cobra.Command {
	defaults := game.DefaultConfig()
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play games between two presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := playConfigFrom(cmd)
			if err != nil {
				return err
			}
			if metricsAddr != "" {
				go serveMetrics(metricsAddr)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			board, err := game.RunArena(ctx, cfg, slog.Default())
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			out := cmd.OutOrStdout()
			for i, res := range board.Results {
				fmt.Fprintf(out, "game %d: %s - %s %s (%s, %d plies)\n",
					i+1, res.White, res.Black, res.Outcome, methodName(res.Method), res.Plies)
			}
			fmt.Fprintln(out, board.String())
			return err
		},
	}
	f := cmd.Flags()
	f.StringVar(&playConfig, "config", "", "YAML arena config; flags given explicitly override it")
	f.StringVar(&playFlags.White, "white", defaults.White, "preset playing White in the first game")
	f.StringVar(&playFlags.Black, "black", defaults.Black, "preset playing Black in the first game")
	f.IntVar(&playFlags.Games, "games", defaults.Games, "number of games")
	f.IntVar(&playFlags.Concurrency, "concurrency", defaults.Concurrency, "games played in parallel")
	f.IntVar(&playFlags.MaxPlies, "max-plies", defaults.MaxPlies, "abandon a game after this many plies, 0 for no limit")
	f.StringVar(&playFlags.StartFEN, "fen", defaults.StartFEN, "starting position in FEN")
	f.BoolVar(&playFlags.AlternateColors, "alternate", defaults.AlternateColors, "swap colours every other game")
	f.Int64Var(&playFlags.Seed, "seed", defaults.Seed, "tie-breaking seed, 0 for random")
	f.StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address")
	return cmd
}

// playConfigFrom layers explicitly set flags over the config file.
func playConfigFrom(cmd *cobra.Command) (game.Config, error) {
	if playConfig == "" {
		return playFlags, playFlags.Validate()
	}
	cfg, err := game.LoadConfig(playConfig)
	if err != nil {
		return cfg, err
	}
	f := cmd.Flags()
	if f.Changed("white") {
		cfg.White = playFlags.White
	}
	if f.Changed("black") {
		cfg.Black = playFlags.Black
	}
	if f.Changed("games") {
		cfg.Games = playFlags.Games
	}
	if f.Changed("concurrency") {
		cfg.Concurrency = playFlags.Concurrency
	}
	if f.Changed("max-plies") {
		cfg.MaxPlies = playFlags.MaxPlies
	}
	if f.Changed("fen") {
		cfg.StartFEN = playFlags.StartFEN
	}
	if f.Changed("alternate") {
		cfg.AlternateColors = playFlags.AlternateColors
	}
	if f.Changed("seed") {
		cfg.Seed = playFlags.Seed
	}
	return cfg, cfg.Validate()
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	slog.Info("serving metrics", slog.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		slog.Error("metrics server stopped", slog.Any("error", err))
	}
}

func methodName(m chess.Method) string {
	if m == chess.NoMethod {
		return "unfinished"
	}
	return strings.ToLower(m.String())
}
