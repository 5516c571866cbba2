// Package services defines the business logic for the wallet ledger and
// the wagering games. This file centralizes common service-level error
// values so that they can be consistently returned by service methods and
// checked by callers.
//
// These errors are intended for internal use by the service layer;
// translation into user-facing Persian messages is performed by the bot's
// command-dispatch layer.
package services

import "errors"

var (
	// ErrInvalidAmount is returned when a wager or gift amount is zero,
	// negative, or unparseable.
	ErrInvalidAmount = errors.New("amount is invalid")

	// ErrInsufficientFunds is returned when a wager or gift exceeds the
	// user's wallet.
	ErrInsufficientFunds = errors.New("wallet balance too low")

	// ErrSelfGift is returned when a user tries to gift coins to themselves.
	ErrSelfGift = errors.New("cannot gift to yourself")

	// ErrUnknownRecipient is returned when a gift or admin target has never
	// started the bot and therefore has no account.
	ErrUnknownRecipient = errors.New("recipient not registered")

	// ErrUnknownUser indicates the acting user has no account row.
	ErrUnknownUser = errors.New("user not registered")

	// ErrInvalidChoice is returned when a game choice is outside the
	// allowed set (dice face 1..6, even/odd, left/right).
	ErrInvalidChoice = errors.New("choice is invalid")
)
