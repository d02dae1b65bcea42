package models

import "time"

// PendingTopUp records where a user pressed the top-up button so the
// slip they later DM can be attributed to the right guild. Ephemeral,
// process-lifetime only; at most one entry per user.
type PendingTopUp struct {
	UserID    string
	GuildID   string
	GuildName string
	ChannelID string
	CreatedAt time.Time
}
