package scoring

import "errors"

// Expected, caller-recoverable conditions. Nothing in this package is
// process-fatal; an internal inconsistency in the arithmetic panics instead
// of producing a corrupted score.
var (
	// ErrAlreadyInitialized means scoring state already exists for the match.
	ErrAlreadyInitialized = errors.New("match scoring already initialized")
	// ErrMatchComplete rejects points against a decided match.
	ErrMatchComplete = errors.New("match is already complete")
	// ErrVersionConflict means the caller's expected version is stale. The
	// caller must refetch and re-prompt; retrying blindly could double-score
	// a point, so no layer retries automatically.
	ErrVersionConflict = errors.New("scoring state version conflict")
	// ErrNothingToUndo rejects undo when the history ring is empty.
	ErrNothingToUndo = errors.New("no point to undo")
	// ErrInvalidSide rejects events that name neither side 1 nor side 2.
	ErrInvalidSide = errors.New("invalid side")
)
