package assess

import (
	"fmt"
	"math"
)

// historyRatios synthesize a revenue series when no real time series is available.
var historyRatios = []float64{0.8, 0.82, 0.85, 0.9, 0.95, 1.0}

const (
	fallbackGrowth = 1.05
	trendDamping   = 0.5
)

// SynthesizeHistory builds a six-point, non-decreasing revenue series ending at revenue.
func SynthesizeHistory(revenue float64) []float64 {
	history := make([]float64, len(historyRatios))
	for i, ratio := range historyRatios {
		history[i] = revenue * ratio
	}
	return history
}

// Forecast projects the next period's revenue from a history series.
// It never fails; unusable input degrades to flat 5% growth.
func Forecast(history []float64) float64 {
	next, _ := forecastNext(history)
	return next
}

// forecastNext returns the projection and, when the weighted projection had to
// be abandoned, the reason the fallback was used.
func forecastNext(history []float64) (float64, error) {
	if len(history) < 3 {
		return flatGrowth(history), nil
	}

	n := len(history)
	last, prev, before := history[n-1], history[n-2], history[n-3]

	recentAvg := last*0.5 + prev*0.3 + before*0.2
	trend := last - prev
	next := recentAvg + trend*trendDamping

	if !isFinite(next) {
		return flatGrowth(history), fmt.Errorf("weighted projection is not finite (history tail %v, %v, %v)", before, prev, last)
	}
	return next, nil
}

func flatGrowth(history []float64) float64 {
	if len(history) == 0 {
		return 0
	}
	next := history[len(history)-1] * fallbackGrowth
	if !isFinite(next) {
		return 0
	}
	return next
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
