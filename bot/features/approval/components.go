package approval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// Kind distinguishes the two moderation decisions a slip can receive.
type Kind int

const (
	KindApprove Kind = iota
	KindReject
)

const (
	approvePrefix = "approve"
	rejectPrefix  = "reject"
)

// Action is the decoded form of a moderation button's custom ID. Amount is
// only meaningful for approvals; rejections carry no payment figure.
type Action struct {
	Kind    Kind
	UserID  string
	Amount  float64
	GuildID string
}

// ApproveButtonID encodes an approve action as a component custom ID
func ApproveButtonID(userID string, amount float64, guildID string) string {
	return fmt.Sprintf("%s_%s_%s_%s", approvePrefix, userID, strconv.FormatFloat(amount, 'f', -1, 64), guildID)
}

// RejectButtonID encodes a reject action as a component custom ID
func RejectButtonID(userID, guildID string) string {
	return fmt.Sprintf("%s_%s_%s", rejectPrefix, userID, guildID)
}

// ParseAction decodes a component custom ID back into an Action. It returns
// false for IDs that belong to other components, so callers can route on the
// result without prefix-sniffing first.
func ParseAction(customID string) (Action, bool) {
	parts := strings.Split(customID, "_")
	switch parts[0] {
	case approvePrefix:
		if len(parts) != 4 {
			return Action{}, false
		}
		amount, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return Action{}, false
		}
		return Action{Kind: KindApprove, UserID: parts[1], Amount: amount, GuildID: parts[3]}, true
	case rejectPrefix:
		if len(parts) != 3 {
			return Action{}, false
		}
		return Action{Kind: KindReject, UserID: parts[1], GuildID: parts[2]}, true
	default:
		return Action{}, false
	}
}

// Buttons builds the approve/reject row attached to a slip notification
func Buttons(userID string, amount float64, guildID string) discordgo.ActionsRow {
	return discordgo.ActionsRow{
		Components: []discordgo.MessageComponent{
			discordgo.Button{
				Label:    "Approve ✅",
				Style:    discordgo.SuccessButton,
				CustomID: ApproveButtonID(userID, amount, guildID),
			},
			discordgo.Button{
				Label:    "Reject ❌",
				Style:    discordgo.DangerButton,
				CustomID: RejectButtonID(userID, guildID),
			},
		},
	}
}
