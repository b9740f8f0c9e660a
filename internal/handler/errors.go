package handler

// User-facing messages. These intentionally avoid internal error details;
// handlers and tests reference the same constants.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgMissingQueryParam     = "Missing %s query parameter"
	ErrMsgGenericServerError    = "Something went wrong"

	ErrMsgNoActiveActivity      = "No active activity"
	ErrMsgActivityInProgress    = "An activity is already in progress. Stop it or start with replace."
	ErrMsgResourceNotFound      = "Resource not found"
	ErrMsgResourceUnavailable   = "That resource is not available at this location"
	ErrMsgToolRequired          = "You need the right tool equipped for that"
	ErrMsgInsufficientLevel     = "Your skill level is too low for that resource"
	ErrMsgBaitRequired          = "Select a bait before fishing"
	ErrMsgBaitInvalid           = "That bait cannot be used here"
	ErrMsgInsufficientMaterials = "Not enough materials"
	ErrMsgInventoryFull         = "Inventory is full"
	ErrMsgPlayerNotFound        = "Player not found"

	ErrMsgStartActivityFailed  = "Failed to start activity"
	ErrMsgStopActivityFailed   = "Failed to stop activity"
	ErrMsgGetStatusFailed      = "Failed to get activity status"
	ErrMsgClaimFailed          = "Failed to claim rewards"
	ErrMsgListResourcesFailed  = "Failed to list resources"
	ErrMsgIssueTokenFailed     = "Failed to issue connection token"
)

// Success messages
const (
	MsgActivityStopped = "Activity stopped"
)
