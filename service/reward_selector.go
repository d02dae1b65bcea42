package service

import (
	"math/rand"

	"gachabot/models"
)

// SelectReward returns the label whose cumulative-weight interval
// contains draw. Entries partition [0, totalWeight): the first entry
// owns [0, w0), the second [w0, w0+w1), and so on. A draw left
// unmatched by floating-point rounding falls back to the last entry so
// the table always covers the full range.
func SelectReward(entries []models.RewardEntry, draw float64) string {
	if len(entries) == 0 {
		return ""
	}

	cumulative := 0.0
	for _, entry := range entries {
		cumulative += float64(entry.Weight)
		if draw < cumulative {
			return entry.Label
		}
	}
	return entries[len(entries)-1].Label
}

// RandomReward draws a uniform value proportional to the table's total
// weight and selects the matching entry
func RandomReward(entries []models.RewardEntry) string {
	draw := rand.Float64() * float64(models.TotalWeight(entries))
	return SelectReward(entries, draw)
}
