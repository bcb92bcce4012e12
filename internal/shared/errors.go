package shared

import "fmt"

var (
	// Configuration errors
	ErrMissingConfig = fmt.Errorf("configuration not found")
	ErrInvalidConfig = fmt.Errorf("invalid configuration")

	// Storage errors
	ErrDuplicateKey        = fmt.Errorf("duplicate key")
	ErrForeignKeyViolation = fmt.Errorf("foreign key violation")
	ErrNotFound            = fmt.Errorf("not found")
	ErrStorageFailure      = fmt.Errorf("storage failure")

	// Catalog errors
	ErrAlreadyCataloged = fmt.Errorf("song already cataloged")

	// Player errors
	ErrPlayerNotFound  = fmt.Errorf("player command not found")
	ErrPlaybackFailed  = fmt.Errorf("playback failed")
	ErrPlaybackStopped = fmt.Errorf("playback stopped")

	// Input validation errors
	ErrMissingArgument = fmt.Errorf("missing required argument")
	ErrInvalidArgument = fmt.Errorf("invalid argument")
)
