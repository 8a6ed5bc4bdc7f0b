package indicator

import (
	"testing"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

func samplesFromCloses(closes ...float64) []core.PriceSample {
	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	samples := make([]core.PriceSample, len(closes))
	for i, c := range closes {
		samples[i] = core.PriceSample{
			Time:  start.Add(time.Duration(i) * time.Hour),
			Open:  c,
			High:  c,
			Low:   c,
			Close: c,
		}
	}
	return samples
}

func TestCompute_SparseSeriesIsNeutral(t *testing.T) {
	samples := samplesFromCloses(70100, 70200, 70150, 70300)

	got := Compute(samples)

	if got.RSI != 50 {
		t.Errorf("RSI = %f, want neutral 50", got.RSI)
	}
	if got.MACD != (core.MACDValue{}) {
		t.Errorf("MACD = %+v, want zeros", got.MACD)
	}
	if got.Bollinger != (core.BollingerBands{}) {
		t.Errorf("Bollinger = %+v, want zeros", got.Bollinger)
	}

	last := 70300.0
	mas := got.MovingAverages
	if mas.MA5 != last || mas.MA10 != last || mas.MA20 != last || mas.MA50 != last {
		t.Errorf("moving averages = %+v, want all pinned to last close %f", mas, last)
	}
}

func TestCompute_EmptySeries(t *testing.T) {
	got := Compute(nil)

	if got.RSI != 50 {
		t.Errorf("RSI = %f, want 50", got.RSI)
	}
	if got.MovingAverages != (core.MovingAverages{}) {
		t.Errorf("moving averages = %+v, want zeros", got.MovingAverages)
	}
}

func TestCompute_FlatSeries(t *testing.T) {
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 70000
	}

	got := Compute(samplesFromCloses(closes...))

	if got.RSI != 50 {
		t.Errorf("RSI of flat series = %f, want 50", got.RSI)
	}
	if got.MACD.Histogram != 0 {
		t.Errorf("MACD histogram of flat series = %f, want 0", got.MACD.Histogram)
	}
	if got.Bollinger.Upper != got.Bollinger.Lower {
		t.Errorf("flat series bands did not collapse: %+v", got.Bollinger)
	}
	if got.MovingAverages.MA20 != 70000 || got.MovingAverages.MA50 != 70000 {
		t.Errorf("moving averages = %+v, want 70000", got.MovingAverages)
	}
}

func TestCompute_WindowsClampToLength(t *testing.T) {
	// 8 samples: MA5 uses a real window, MA10/MA20/MA50 clamp to 8
	// and all report the full-series mean.
	samples := samplesFromCloses(10, 20, 30, 40, 50, 60, 70, 80)

	got := Compute(samples)

	if got.MovingAverages.MA5 != 60 {
		t.Errorf("MA5 = %f, want (40+50+60+70+80)/5 = 60", got.MovingAverages.MA5)
	}
	if got.MovingAverages.MA10 != 45 || got.MovingAverages.MA20 != 45 || got.MovingAverages.MA50 != 45 {
		t.Errorf("clamped MAs = %+v, want full-series mean 45", got.MovingAverages)
	}
}

func TestCompute_UsesClosesOnly(t *testing.T) {
	samples := samplesFromCloses(100, 101, 102, 103, 104, 105)
	for i := range samples {
		samples[i].High = samples[i].Close + 50
		samples[i].Low = samples[i].Close - 50
	}

	withWicks := Compute(samples)
	plain := Compute(samplesFromCloses(100, 101, 102, 103, 104, 105))

	if withWicks != plain {
		t.Error("snapshot should depend on the close projection only")
	}
}
