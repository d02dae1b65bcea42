package models

// RewardEntry is one prize in the gacha table. Weights are proportional;
// they do not need to sum to 100.
type RewardEntry struct {
	Label  string
	Weight int
}

// DefaultRewards is the commissioned-art prize table for the promotion
var DefaultRewards = []RewardEntry{
	{Label: "Rough-sketch bust ✏️", Weight: 50},
	{Label: "Rough-sketch half body 🖋️", Weight: 40},
	{Label: "Rough-sketch full body 🖊️", Weight: 10},
	{Label: "Just salt, sorry 🧂", Weight: 10},
	{Label: "Flat-color bust 🎨", Weight: 5},
	{Label: "Flat-color full body 🖼️", Weight: 2},
}

// TotalWeight returns the sum of all entry weights
func TotalWeight(entries []RewardEntry) int {
	var total int
	for _, e := range entries {
		total += e.Weight
	}
	return total
}
