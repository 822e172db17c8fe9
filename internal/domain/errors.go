package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Configuration errors
	ErrMsgNotConfigured  = "no drop channel configured"
	ErrMsgChannelMissing = "drop channel missing"

	// Claim errors
	ErrMsgNothingToClaim = "nothing to claim"
	ErrMsgWrongChannel   = "wrong channel"
	ErrMsgLostRace       = "lost the race"
	ErrMsgDropActive     = "drop already active"
	ErrMsgUnknownDrop    = "unknown drop"
	ErrMsgDropExpired    = "drop expired"

	// Control errors
	ErrMsgNotSubject     = "only the selected member can do that"
	ErrMsgAlreadyClaimed = "already claimed"
	ErrMsgAlreadyRated   = "already rated"
	ErrMsgNoRerolls      = "no rerolls left"
	ErrMsgOwnDrop        = "cannot steal from your own drop"
	ErrMsgNoMembers      = "no eligible members"
	ErrMsgNothingToSteal = "nothing to steal"

	// Cooldown errors
	ErrMsgOnCooldown = "action on cooldown"

	// Permission errors
	ErrMsgNotAdmin = "missing admin permission"

	// Storage errors
	ErrMsgStoreUnavailable = "store unavailable"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrNotConfigured  = errors.New(ErrMsgNotConfigured)
	ErrChannelMissing = errors.New(ErrMsgChannelMissing)

	ErrNothingToClaim = errors.New(ErrMsgNothingToClaim)
	ErrWrongChannel   = errors.New(ErrMsgWrongChannel)
	ErrLostRace       = errors.New(ErrMsgLostRace)
	ErrDropActive     = errors.New(ErrMsgDropActive)
	ErrUnknownDrop    = errors.New(ErrMsgUnknownDrop)
	ErrDropExpired    = errors.New(ErrMsgDropExpired)

	ErrNotSubject     = errors.New(ErrMsgNotSubject)
	ErrAlreadyClaimed = errors.New(ErrMsgAlreadyClaimed)
	ErrAlreadyRated   = errors.New(ErrMsgAlreadyRated)
	ErrNoRerolls      = errors.New(ErrMsgNoRerolls)
	ErrOwnDrop        = errors.New(ErrMsgOwnDrop)
	ErrNoMembers      = errors.New(ErrMsgNoMembers)
	ErrNothingToSteal = errors.New(ErrMsgNothingToSteal)

	ErrOnCooldown = errors.New(ErrMsgOnCooldown)

	ErrNotAdmin = errors.New(ErrMsgNotAdmin)

	ErrStoreUnavailable = errors.New(ErrMsgStoreUnavailable)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
