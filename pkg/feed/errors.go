package feed

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned for transport failures and timeouts
	ErrNetwork = errors.New("feed: network error")

	// ErrNotFound is returned when a target video does not exist or is private
	ErrNotFound = errors.New("feed: video not found")

	// ErrUnknownItem is returned when an interaction names an id that is not loaded
	ErrUnknownItem = errors.New("feed: video not loaded")

	// ErrInteractionPending is returned when a like toggle is already in flight for the id
	ErrInteractionPending = errors.New("feed: interaction already in flight")

	// ErrDestroyed is returned by operations on a destroyed controller
	ErrDestroyed = errors.New("feed: controller destroyed")
)

// ErrorTag is the short error label kept on FeedState
type ErrorTag string

const (
	TagNone     ErrorTag = ""
	TagNotFound ErrorTag = "not_found"
	TagNetwork  ErrorTag = "network"
)

// TagFor classifies an error returned by a Source
func TagFor(err error) ErrorTag {
	switch {
	case err == nil:
		return TagNone
	case errors.Is(err, ErrNotFound):
		return TagNotFound
	default:
		return TagNetwork
	}
}

// classify makes sure every Source error carries one of the sentinels.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrNetwork) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: request timed out: %w", ErrNetwork, err)
	}
	return fmt.Errorf("%w: %w", ErrNetwork, err)
}
