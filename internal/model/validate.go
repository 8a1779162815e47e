package model

import "fmt"

// Validate checks the hard integrity constraints of a game aggregate,
// mirroring what a relational schema would enforce with CHECK and UNIQUE
// constraints. The store runs this before committing any mutation; a
// violation here is an integrity failure, not a business-rule error.
func (g *Game) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("game id must not be empty")
	}
	if !g.Status.Valid() {
		return fmt.Errorf("unknown game status %q", g.Status)
	}
	if len(g.Grid) != GridSize*GridSize {
		return fmt.Errorf("grid must have exactly %d squares, has %d", GridSize*GridSize, len(g.Grid))
	}

	coords := make(map[[2]int]struct{}, len(g.Grid))
	for i := range g.Grid {
		sq := &g.Grid[i]
		if sq.Row < 0 || sq.Row >= GridSize || sq.Column < 0 || sq.Column >= GridSize {
			return fmt.Errorf("square (%d, %d) is outside the grid", sq.Row, sq.Column)
		}
		key := [2]int{sq.Row, sq.Column}
		if _, dup := coords[key]; dup {
			return fmt.Errorf("duplicate square at (%d, %d)", sq.Row, sq.Column)
		}
		coords[key] = struct{}{}
		if sq.Health < 0 || sq.Health > MaxSquareHealth {
			return fmt.Errorf("square (%d, %d) health %d outside [0, %d]", sq.Row, sq.Column, sq.Health, MaxSquareHealth)
		}
		if sq.Bonus < 0 || sq.Bonus > MaxSquareBonus {
			return fmt.Errorf("square (%d, %d) bonus %d outside [0, %d]", sq.Row, sq.Column, sq.Bonus, MaxSquareBonus)
		}
		if sq.OwnerID != nil && g.TeamByID(*sq.OwnerID) == nil {
			return fmt.Errorf("square (%d, %d) owned by unknown team %q", sq.Row, sq.Column, *sq.OwnerID)
		}
	}

	names := make(map[string]struct{}, len(g.Teams))
	keys := make(map[string]struct{}, len(g.Teams))
	for i := range g.Teams {
		team := &g.Teams[i]
		if team.ID == "" {
			return fmt.Errorf("team id must not be empty")
		}
		if !team.Role.Valid() {
			return fmt.Errorf("team %q has unknown role %q", team.ID, team.Role)
		}
		if team.RequestsLeft < 0 || team.RequestsLeft > StartingRequests {
			return fmt.Errorf("team %q requests_left %d outside [0, %d]", team.ID, team.RequestsLeft, StartingRequests)
		}
		if team.TimeOfLastCommand != nil && team.TimeOfLastCommand.Before(team.CreatedAt) {
			return fmt.Errorf("team %q time_of_last_command precedes created_at", team.ID)
		}
		if _, dup := names[team.DisplayName]; dup {
			return fmt.Errorf("duplicate team display name %q", team.DisplayName)
		}
		names[team.DisplayName] = struct{}{}
		if _, dup := keys[team.Key]; dup {
			return fmt.Errorf("duplicate team key")
		}
		keys[team.Key] = struct{}{}
	}

	if len(g.Teams) > 0 && g.HostTeam() == nil {
		return fmt.Errorf("host team %q missing from game", g.HostTeamID)
	}

	return nil
}
