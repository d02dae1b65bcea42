package approval

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction_Approve(t *testing.T) {
	id := ApproveButtonID("111", 250, "999")
	assert.Equal(t, "approve_111_250_999", id)

	action, ok := ParseAction(id)
	require.True(t, ok)
	assert.Equal(t, KindApprove, action.Kind)
	assert.Equal(t, "111", action.UserID)
	assert.Equal(t, float64(250), action.Amount)
	assert.Equal(t, "999", action.GuildID)
}

func TestParseAction_ApproveFractionalAmount(t *testing.T) {
	action, ok := ParseAction(ApproveButtonID("111", 99.5, "999"))
	require.True(t, ok)
	assert.Equal(t, 99.5, action.Amount)
}

func TestParseAction_Reject(t *testing.T) {
	id := RejectButtonID("111", "999")
	assert.Equal(t, "reject_111_999", id)

	action, ok := ParseAction(id)
	require.True(t, ok)
	assert.Equal(t, KindReject, action.Kind)
	assert.Equal(t, "111", action.UserID)
	assert.Equal(t, "999", action.GuildID)
	assert.Zero(t, action.Amount)
}

func TestParseAction_ForeignIDs(t *testing.T) {
	tests := []string{
		"gacha",
		"balance",
		"slip",
		"approve_111",             // missing amount and guild
		"approve_111_abc_999",     // amount not numeric
		"approve_111_250_999_888", // too many segments
		"reject_111",              // missing guild
		"",
	}
	for _, id := range tests {
		_, ok := ParseAction(id)
		assert.False(t, ok, "expected %q to be rejected", id)
	}
}
