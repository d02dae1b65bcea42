package common

import (
	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// DeferResponse acknowledges an interaction so the handler can take its time.
// Ephemeral deferrals produce an ephemeral final message.
func DeferResponse(s *discordgo.Session, i *discordgo.InteractionCreate, ephemeral bool) error {
	data := &discordgo.InteractionResponseData{}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: data,
	})
}

// EditDeferred replaces the deferred placeholder with the final content
func EditDeferred(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	_, err := s.InteractionResponseEdit(i.Interaction, &discordgo.WebhookEdit{
		Content: &content,
	})
	if err != nil {
		log.Errorf("Error editing deferred response: %v", err)
	}
}

// RespondEphemeral sends an immediate ephemeral reply to an interaction
func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Errorf("Error sending ephemeral response: %v", err)
	}
}

// UpdateMessage rewrites the message that owns the component the user clicked,
// replacing its content and dropping any remaining components.
func UpdateMessage(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseUpdateMessage,
		Data: &discordgo.InteractionResponseData{
			Content:    content,
			Components: []discordgo.MessageComponent{},
		},
	})
	if err != nil {
		log.Errorf("Error updating component message: %v", err)
	}
}

// InteractionUser returns the user behind an interaction whether it came from
// a guild (Member is set) or a DM (User is set).
func InteractionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User
	}
	return i.User
}

// InteractionGuildID returns the guild an interaction happened in, or the DM
// placeholder when it happened in a direct message.
func InteractionGuildID(i *discordgo.InteractionCreate) string {
	if i.GuildID == "" {
		return DMGuildID
	}
	return i.GuildID
}

// MessageGuildID returns the guild a message was sent in, or the DM
// placeholder for direct messages.
func MessageGuildID(m *discordgo.MessageCreate) string {
	if m.GuildID == "" {
		return DMGuildID
	}
	return m.GuildID
}

// GetUserMention returns a Discord mention string for a user
func GetUserMention(userID string) string {
	return "<@" + userID + ">"
}
