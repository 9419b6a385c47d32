package service

import "math"

// Rank tiers, highest first.
const (
	RankS = "S"
	RankA = "A"
	RankB = "B"
	RankC = "C"
	RankE = "E"
)

var rankLabels = map[string]string{
	RankS: "You're a true S-rank hunter! Exceptional progress.",
	RankA: "A-rank hunter material. Solid work, keep improving.",
	RankB: "B-rank hunter. Making good progress, but more awaits.",
	RankC: "C-rank hunter. Keep pushing your limits.",
	RankE: "E-rank hunter. Your journey is just beginning.",
}

// RankOf returns the tier for completed out of total. A total below one counts as one.
func RankOf(completed, total int) string {
	if total < 1 {
		total = 1
	}
	ratio := float64(completed) / float64(total)
	switch {
	case ratio >= 0.9:
		return RankS
	case ratio >= 0.7:
		return RankA
	case ratio >= 0.5:
		return RankB
	case ratio >= 0.3:
		return RankC
	default:
		return RankE
	}
}

// RankLabel returns the flavor text for RankOf(completed, total).
func RankLabel(completed, total int) string {
	return rankLabels[RankOf(completed, total)]
}

// GoalProgressPercent returns round(current/target*100) clamped to 0..100.
func GoalProgressPercent(current, target int64) (int, error) {
	if target <= 0 {
		return 0, invalid("target must be positive, got %d", target)
	}
	pct := math.Round(float64(current) / float64(target) * 100)
	switch {
	case pct > 100:
		return 100, nil
	case pct < 0:
		return 0, nil
	}
	return int(pct), nil
}
