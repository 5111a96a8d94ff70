package service

import (
	"errors"
	"fmt"
)

// Publish/connection failure taxonomy. These surface to the operator
// per-platform; none of them roll back a sibling platform's success.
var (
	ErrNoPlatformSelected   = errors.New("no platform selected")
	ErrPlatformNotConnected = errors.New("platform is not connected")
	ErrAuthExpired          = errors.New("platform authorization expired")
	ErrGenerationFailed     = errors.New("caption generation failed")
	ErrAlreadySold          = errors.New("vehicle is already at the last stage")
)

// LedgerWriteError reports a ledger write that failed after the platform
// post itself succeeded. The external post id is carried so the success is
// never hidden behind the persistence failure.
type LedgerWriteError struct {
	Platform       string
	ExternalPostID string
	Err            error
}

func (e *LedgerWriteError) Error() string {
	return fmt.Sprintf("post %s published to %s but ledger write failed: %v", e.ExternalPostID, e.Platform, e.Err)
}

func (e *LedgerWriteError) Unwrap() error {
	return e.Err
}
