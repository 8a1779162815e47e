package model

import (
	"errors"
	"fmt"
)

// Common errors used across the application. Each command validates in a
// fixed priority order and returns the first violated precondition's
// error; callers depend on which specific error is reported.
var (
	ErrInvalidCredentials            = errors.New("invalid credentials, please recheck team_key and team_id")
	ErrNoMoreRequestsLeft            = errors.New("no more requests left, please wait before retrying")
	ErrInvalidTeamRole               = errors.New("invalid team role")
	ErrRoleAlreadyUsed               = errors.New("role already used")
	ErrTeamDisplayNameTaken          = errors.New("display name is already taken, please choose another")
	ErrCannotJoinAfterHostHasStarted = errors.New("cannot join after host has started the game")

	// Command-level failures surfaced when a success-shaped result cannot
	// be assembled after the preconditions passed; the whole command rolls
	// back and no quota is consumed
	ErrFailedToAttackSquare    = errors.New("failed to attack square, please recheck request")
	ErrFailedToDefendSquare    = errors.New("failed to defend square, please recheck request")
	ErrFailedToQueryGridSquare = errors.New("failed to query grid square, please recheck game_id and coordinates")
)

// InvalidGameIDError reports a game id that does not resolve to a game
type InvalidGameIDError struct {
	GameID GameID
}

func (e *InvalidGameIDError) Error() string {
	return fmt.Sprintf("invalid game id %q", e.GameID)
}

// InvalidTeamIDError reports a team id that does not resolve to a team
// of the targeted game
type InvalidTeamIDError struct {
	TeamID TeamID
}

func (e *InvalidTeamIDError) Error() string {
	return fmt.Sprintf("no team found with id %q", e.TeamID)
}

// InvalidCoordinatesError reports coordinates outside the game's grid
type InvalidCoordinatesError struct {
	Row    int
	Column int
}

func (e *InvalidCoordinatesError) Error() string {
	return fmt.Sprintf("invalid coordinates row = %d, column = %d", e.Row, e.Column)
}

// InvalidGameStatusError reports a command issued while the game is in
// the wrong lifecycle phase
type InvalidGameStatusError struct {
	Current  GameStatus
	Required GameStatus
	Action   string
}

func (e *InvalidGameStatusError) Error() string {
	return fmt.Sprintf(
		"failed to %s: game status is currently %s, but needs to be %s to perform this action",
		e.Action, e.Current, e.Required,
	)
}

// OnlyHostCanStartError reports a Start issued by a non-host team
type OnlyHostCanStartError struct {
	TeamID TeamID
}

func (e *OnlyHostCanStartError) Error() string {
	return fmt.Sprintf("failed to start game, your team (%s) is not the host of this game", e.TeamID)
}

// OnlyMinelayersCanPlaceMinesError reports a PlaceMine by a team whose
// role is not Minelayer
type OnlyMinelayersCanPlaceMinesError struct {
	Role TeamRole
}

func (e *OnlyMinelayersCanPlaceMinesError) Error() string {
	return fmt.Sprintf("only minelayers can place mines, your team role is %s", e.Role)
}

// FailedToFindHostError reports a game whose host team is missing
type FailedToFindHostError struct {
	GameID GameID
}

func (e *FailedToFindHostError) Error() string {
	return fmt.Sprintf("failed to find host for game (game id = %s)", e.GameID)
}
