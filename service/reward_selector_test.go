package service

import (
	"math/rand"
	"testing"

	"gachabot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectReward_IntervalContainment(t *testing.T) {
	// Cumulative intervals: [0,50) [50,90) [90,100) [100,110) [110,115) [115,117)
	entries := models.DefaultRewards

	tests := []struct {
		name string
		draw float64
		want string
	}{
		{"start of first interval", 0, entries[0].Label},
		{"end of first interval", 49.999, entries[0].Label},
		{"start of second interval", 50, entries[1].Label},
		{"end of second interval", 89.999, entries[1].Label},
		{"third interval", 95, entries[2].Label},
		{"fourth interval", 100, entries[3].Label},
		{"fifth interval", 110, entries[4].Label},
		{"start of last interval", 115, entries[5].Label},
		{"end of last interval", 116.999, entries[5].Label},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SelectReward(entries, tt.draw))
		})
	}
}

func TestSelectReward_EmptyTable(t *testing.T) {
	assert.Empty(t, SelectReward(nil, 0))
	assert.Empty(t, SelectReward([]models.RewardEntry{}, 42))
	assert.Empty(t, RandomReward(nil))
}

func TestSelectReward_ArbitraryTotal(t *testing.T) {
	entries := []models.RewardEntry{
		{Label: "a", Weight: 1},
		{Label: "b", Weight: 2},
		{Label: "c", Weight: 3},
	}

	assert.Equal(t, "a", SelectReward(entries, 0))
	assert.Equal(t, "a", SelectReward(entries, 0.999))
	assert.Equal(t, "b", SelectReward(entries, 1))
	assert.Equal(t, "b", SelectReward(entries, 2.999))
	assert.Equal(t, "c", SelectReward(entries, 3))
	assert.Equal(t, "c", SelectReward(entries, 5.999))
}

func TestSelectReward_RoundingFallback(t *testing.T) {
	entries := []models.RewardEntry{
		{Label: "a", Weight: 1},
		{Label: "b", Weight: 1},
	}

	// A draw at or past the total should still land on the last entry
	assert.Equal(t, "b", SelectReward(entries, 2))
	assert.Equal(t, "b", SelectReward(entries, 2.5))
}

func TestSelectReward_FrequencyConvergence(t *testing.T) {
	entries := models.DefaultRewards
	total := float64(models.TotalWeight(entries))
	require.Equal(t, 117, models.TotalWeight(entries))

	const draws = 100000
	rng := rand.New(rand.NewSource(42))

	observed := make(map[string]int)
	for i := 0; i < draws; i++ {
		observed[SelectReward(entries, rng.Float64()*total)]++
	}

	for _, entry := range entries {
		expected := float64(entry.Weight) / total
		got := float64(observed[entry.Label]) / draws
		assert.InDelta(t, expected, got, 0.01,
			"frequency for %q should converge to its configured proportion", entry.Label)
	}
}
