package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
)

// Component custom IDs for the menu buttons
const (
	CustomIDGacha   = "gacha"
	CustomIDBalance = "balance"
	CustomIDSlip    = "slip"
)

// DMGuildID is the guild placeholder used for interactions that happen in
// direct messages, so they still land in a ledger scope.
const DMGuildID = "DM"

// RewardAnnouncePhrase appears in every public spin announcement. Reset
// cleanup matches on it to find announcements worth deleting.
const RewardAnnouncePhrase = "spun the gacha and won"
