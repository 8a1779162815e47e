package model

import "time"

// TeamID identifies a team within a game
type TeamID string

// TeamRole is the special ability a team picks when joining.
// It is fixed at join time and never changes.
type TeamRole string

const (
	RoleMinelayer TeamRole = "Minelayer"
	RoleSpy       TeamRole = "Spy"
	RoleCloaker   TeamRole = "Cloaker"
)

// Valid reports whether the role is one of the known variants
func (r TeamRole) Valid() bool {
	switch r {
	case RoleMinelayer, RoleSpy, RoleCloaker:
		return true
	}
	return false
}

// ParseTeamRole converts a wire-format role string into a closed variant
func ParseTeamRole(s string) (TeamRole, error) {
	role := TeamRole(s)
	if !role.Valid() {
		return "", ErrInvalidTeamRole
	}
	return role, nil
}

// StartingRequests is the action quota every team receives at join time
const StartingRequests = 30

// Team is a registered participant of a single game
type Team struct {
	ID          TeamID   `json:"id"`
	DisplayName string   `json:"display_name"`
	Key         string   `json:"key"`
	Role        TeamRole `json:"role"`
	RoleUsed    bool     `json:"role_used"`
	// RequestsLeft is the remaining action quota, always within [0, 30]
	// and monotonically non-increasing
	RequestsLeft      int        `json:"requests_left"`
	CreatedAt         time.Time  `json:"created_at"`
	TimeOfLastCommand *time.Time `json:"time_of_last_command"`
}

// SenderDetails is the claimed identity and credential a team attaches
// to every mutating command
type SenderDetails struct {
	TeamID  TeamID
	TeamKey string
}
