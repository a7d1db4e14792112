package game

import "errors"

// Errors returned by Table operations. They are wrapped with context, so
// compare with errors.Is.
var (
	// ErrConfig reports invalid table parameters
	ErrConfig = errors.New("invalid table config")
	// ErrBuyIn reports a buy-in outside the table bounds
	ErrBuyIn = errors.New("buy-in out of range")
	// ErrOutOfTurn reports an action from a player who is not due to act
	ErrOutOfTurn = errors.New("not player's turn")
	// ErrIllegalAction reports an action the current betting state does not allow
	ErrIllegalAction = errors.New("illegal action")

	ErrUnknownPlayer    = errors.New("unknown player")
	ErrDuplicatePlayer  = errors.New("player name already taken")
	ErrTableFull        = errors.New("table is full")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrHandInProgress   = errors.New("hand in progress")
)
