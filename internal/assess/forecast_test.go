package assess

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForecast(t *testing.T) {
	tests := []struct {
		name    string
		history []float64
		want    float64
	}{
		{name: "weighted with damped trend", history: []float64{100, 102, 104}, want: 103.6},
		{name: "only the last three points count", history: []float64{1, 5000, 100, 102, 104}, want: 103.6},
		{name: "single point grows five percent", history: []float64{200}, want: 210},
		{name: "two points grow five percent", history: []float64{100, 200}, want: 210},
		{name: "empty history", history: nil, want: 0},
		{name: "declining series", history: []float64{300, 200, 100}, want: 100*0.5 + 200*0.3 + 300*0.2 - 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, Forecast(tt.history), 1e-9)
		})
	}
}

func TestForecastNonFiniteFallsBack(t *testing.T) {
	next, err := forecastNext([]float64{math.NaN(), 100, 200})
	require.Error(t, err)
	assert.InDelta(t, 210, next, 1e-9)

	next, err = forecastNext([]float64{1, 2, math.Inf(1)})
	require.Error(t, err)
	assert.Zero(t, next)
}

func TestSynthesizeHistoryIsNonDecreasing(t *testing.T) {
	history := SynthesizeHistory(1250000)

	require.Len(t, history, 6)
	assert.InDelta(t, 1000000, history[0], 1e-6)
	assert.InDelta(t, 1250000, history[5], 1e-6)
	for i := 1; i < len(history); i++ {
		assert.GreaterOrEqual(t, history[i], history[i-1])
	}
}
