package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample returns the value of the family's series whose only label equals value.
func sample(t *testing.T, family, value string) float64 {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != family {
			continue
		}
		for _, m := range mf.GetMetric() {
			if len(m.GetLabel()) != 1 || m.GetLabel()[0].GetValue() != value {
				continue
			}
			switch {
			case m.GetCounter() != nil:
				return m.GetCounter().GetValue()
			case m.GetHistogram() != nil:
				return float64(m.GetHistogram().GetSampleCount())
			}
		}
	}
	return 0
}

func TestObserveSearch(t *testing.T) {
	ObserveSearch("metrics-test", 20, 3*time.Millisecond)
	ObserveSearch("metrics-test", 5, time.Millisecond)

	assert.Equal(t, 2.0, sample(t, "chessarena_moves_selected_total", "metrics-test"))
	assert.Equal(t, 25.0, sample(t, "chessarena_evaluations_total", "metrics-test"))
	assert.Equal(t, 2.0, sample(t, "chessarena_search_duration_seconds", "metrics-test"))
}

func TestObserveGame(t *testing.T) {
	before := sample(t, "chessarena_games_total", "0-1")
	ObserveGame("0-1")
	assert.Equal(t, before+1, sample(t, "chessarena_games_total", "0-1"))
}
