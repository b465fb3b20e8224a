package presence

import "errors"

var (
	// ErrEmptyIdentifier is returned when a blank identifier is submitted.
	ErrEmptyIdentifier = errors.New("identifier is empty")
	// ErrUnknownIdentifier is returned when Lanyard answers success=false.
	ErrUnknownIdentifier = errors.New("identifier not known to lanyard")
	// ErrUnknownIntent is returned by Dispatch for intents it cannot handle.
	ErrUnknownIntent = errors.New("unknown intent")
	// ErrDisposed is returned by operations on a disposed synchronizer.
	ErrDisposed = errors.New("synchronizer disposed")
)

// Messages shown to the user. These match what Lanyard users expect to see.
const (
	MessageEmptyIdentifier = "Please enter a Discord ID"
	MessageUnknownUser     = "User not found! Make sure you're in the Lanyard Discord server: https://discord.com/invite/UrXF2cfJ7F"
	MessageValidateFailed  = "Failed to validate Discord ID. Please try again."
	MessageFetchFailed     = "Failed to fetch Spotify data"
)
