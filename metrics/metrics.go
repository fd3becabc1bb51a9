// Package metrics holds the prometheus collectors shared by the bots and the
// match runner.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// movesSelected counts BestMove calls by bot name
	movesSelected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessarena_moves_selected_total",
		Help: "Total moves selected by bot",
	}, []string{"bot"})

	// evaluations counts evaluator calls made while searching
	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessarena_evaluations_total",
		Help: "Total position evaluations by bot",
	}, []string{"bot"})

	// searchDuration tracks how long a single BestMove call took
	searchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "chessarena_search_duration_seconds",
		Help:    "Move search duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	}, []string{"bot"})

	// gamesFinished counts finished games by result ("1-0", "0-1", "1/2-1/2", "*")
	gamesFinished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "chessarena_games_total",
		Help: "Total finished games by result",
	}, []string{"result"})
)

// ObserveSearch records one completed move search.
func ObserveSearch(bot string, evals int, elapsed time.Duration) {
	movesSelected.WithLabelValues(bot).Inc()
	evaluations.WithLabelValues(bot).Add(float64(evals))
	searchDuration.WithLabelValues(bot).Observe(elapsed.Seconds())
}

func ObserveGame(result string) {
	gamesFinished.WithLabelValues(result).Inc()
}
