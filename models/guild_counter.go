package models

// GuildCounter tracks how many gacha spins a guild has used since its
// last reset. One logical row per guild in the durable store.
type GuildCounter struct {
	GuildID   string `db:"guild_id"`
	SpinCount int    `db:"spin_count"`
}
