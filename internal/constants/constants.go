package constants

// Context and session keys
const (
	ContextKeyUserID = "user_id"
	SessionName      = "task_session"
)

// Placeholders used when a referenced record cannot be resolved
const (
	UnknownProjectName = "Unknown Project"
	UnknownMemberName  = "Unknown"
	DefaultMemberRole  = "Member"
)

// Validation limits
const (
	// MaxTeamNameLength matches the teams.name column size
	MaxTeamNameLength = 255
)
