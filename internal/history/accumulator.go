// Package history maintains the bounded, deduplicated, time-ordered
// log of gold price updates and derives session aggregates from it.
// All functions are pure; the caller owns the slice and must serialize
// appends when writing from more than one place.
package history

import (
	"sort"
	"time"

	"github.com/naratip/goldwatch/internal/core"
)

// MaxEntries caps the log; oldest entries are evicted first.
const MaxEntries = 100

// ShouldAppend reports whether the quote is a genuinely new update:
// the log is empty, either gold-bar price moved, or the disclosure
// round advanced. Identical consecutive quotes are suppressed so the
// session statistics do not degenerate.
func ShouldAppend(last *core.PriceUpdate, next core.GoldPrice) bool {
	if last == nil {
		return true
	}
	return last.Bar.Sell != next.Bar.Sell ||
		last.Bar.Buy != next.Bar.Buy ||
		(next.Round != 0 && last.Round != next.Round)
}

// Append pushes a record onto the log and trims to the newest
// MaxEntries, dropping the oldest first.
func Append(log []core.PriceUpdate, rec core.PriceUpdate) []core.PriceUpdate {
	log = append(log, rec)
	if len(log) > MaxEntries {
		log = log[len(log)-MaxEntries:]
	}
	return log
}

// FilterToday keeps only records whose calendar date matches now's,
// evaluated in now's location, and returns them sorted ascending by
// time. This runs once when the persisted log is loaded, not on every
// append.
func FilterToday(log []core.PriceUpdate, now time.Time) []core.PriceUpdate {
	year, month, day := now.Date()

	var today []core.PriceUpdate
	for _, rec := range log {
		y, m, d := rec.Time.In(now.Location()).Date()
		if y == year && m == month && d == day {
			today = append(today, rec)
		}
	}

	sort.Slice(today, func(i, j int) bool {
		return today[i].Time.Before(today[j].Time)
	})
	return today
}

// Stats computes session aggregates over the gold-bar quotes in the
// log. The opening price comes from the day's first captured quote,
// persisted separately so it survives log eviction; TotalChange is
// always measured against it, never against the first surviving
// record. Returns nil for an empty log.
func Stats(log []core.PriceUpdate, openingPrice float64) *core.SessionStats {
	if len(log) == 0 {
		return nil
	}

	first := log[0].Bar
	stats := &core.SessionStats{
		MaxSell:     first.Sell,
		MinSell:     first.Sell,
		MaxBuy:      first.Buy,
		MinBuy:      first.Buy,
		UpdateCount: len(log),
	}

	for _, rec := range log[1:] {
		bar := rec.Bar
		if bar.Sell > stats.MaxSell {
			stats.MaxSell = bar.Sell
		}
		if bar.Sell < stats.MinSell {
			stats.MinSell = bar.Sell
		}
		if bar.Buy > stats.MaxBuy {
			stats.MaxBuy = bar.Buy
		}
		if bar.Buy < stats.MinBuy {
			stats.MinBuy = bar.Buy
		}
	}

	last := log[len(log)-1].Bar.Sell
	stats.TotalChange = last - openingPrice
	if openingPrice != 0 {
		stats.TotalChangePercent = stats.TotalChange / openingPrice * 100
	}

	for i := 1; i < len(log); i++ {
		change := log[i].Bar.Sell - log[i-1].Bar.Sell
		if change > 0 {
			stats.UpTicks++
		} else if change < 0 {
			stats.DownTicks++
		}
	}

	return stats
}
