package model

import "time"

// GameID is a short human-shareable identifier for a game
type GameID string

// GameStatus represents the lifecycle phase of a game.
// Transitions are monotonic: WaitingForRegistrations -> Started -> Ended.
type GameStatus string

const (
	StatusWaitingForRegistrations GameStatus = "WaitingForRegistrations"
	StatusStarted                 GameStatus = "Started"
	StatusEnded                   GameStatus = "Ended"
)

// Valid reports whether the status is one of the known variants
func (s GameStatus) Valid() bool {
	switch s {
	case StatusWaitingForRegistrations, StatusStarted, StatusEnded:
		return true
	}
	return false
}

// Grid and health constants
const (
	// GridSize is the fixed side length of a game's grid
	GridSize = 5
	// DefaultSquareHealth is the health every square starts with
	DefaultSquareHealth = 60
	// UnownedHealthCap is the maximum health of an unowned square
	UnownedHealthCap = 60
	// MaxSquareHealth is the maximum health of an owned square
	MaxSquareHealth = 120
	// MaxSquareBonus is the upper bound of a square's static bonus
	MaxSquareBonus = 5
)

// Mine associates a grid square with the team that placed it.
// TriggeredBy is reserved for detonation handling; no command sets it yet.
type Mine struct {
	PlacedBy    TeamID  `json:"placed_by"`
	TriggeredBy *TeamID `json:"triggered_by"`
}

// GridSquare is one cell of a game's 5x5 grid
type GridSquare struct {
	Row       int       `json:"row_index"`
	Column    int       `json:"column_index"`
	OwnerID   *TeamID   `json:"owner_id"`
	Bonus     int       `json:"bonus"`
	Health    int       `json:"health"`
	Mine      *Mine     `json:"mine,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Game is the aggregate root: it exclusively owns its teams and grid
// squares (and transitively their mines). Teams and squares reference
// each other only by identity.
type Game struct {
	ID         GameID       `json:"id"`
	Status     GameStatus   `json:"status"`
	HostTeamID TeamID       `json:"host_team_id"`
	Teams      []Team       `json:"teams"`
	Grid       []GridSquare `json:"grid"`
	CreatedAt  time.Time    `json:"created_at"`
}

// NewGrid creates the fixed 5x5 grid with default health and no bonuses
func NewGrid(createdAt time.Time) []GridSquare {
	grid := make([]GridSquare, 0, GridSize*GridSize)
	for row := 0; row < GridSize; row++ {
		for column := 0; column < GridSize; column++ {
			grid = append(grid, GridSquare{
				Row:       row,
				Column:    column,
				Bonus:     0,
				Health:    DefaultSquareHealth,
				CreatedAt: createdAt,
			})
		}
	}
	return grid
}

// SquareAt returns the square at the given coordinates, or nil if the
// coordinates do not resolve to a square of this game
func (g *Game) SquareAt(row, column int) *GridSquare {
	for i := range g.Grid {
		if g.Grid[i].Row == row && g.Grid[i].Column == column {
			return &g.Grid[i]
		}
	}
	return nil
}

// TeamByID returns the team with the given id, or nil if not found
func (g *Game) TeamByID(id TeamID) *Team {
	for i := range g.Teams {
		if g.Teams[i].ID == id {
			return &g.Teams[i]
		}
	}
	return nil
}

// TeamByDisplayName returns the team with the given display name, or nil
func (g *Game) TeamByDisplayName(name string) *Team {
	for i := range g.Teams {
		if g.Teams[i].DisplayName == name {
			return &g.Teams[i]
		}
	}
	return nil
}

// HostTeam returns the host team, or nil if it is missing from the game
func (g *Game) HostTeam() *Team {
	return g.TeamByID(g.HostTeamID)
}

// Clone returns a deep copy of the game. Mutating the copy never affects
// the original.
func (g *Game) Clone() *Game {
	clone := *g

	clone.Teams = make([]Team, len(g.Teams))
	for i, team := range g.Teams {
		if team.TimeOfLastCommand != nil {
			t := *team.TimeOfLastCommand
			team.TimeOfLastCommand = &t
		}
		clone.Teams[i] = team
	}

	clone.Grid = make([]GridSquare, len(g.Grid))
	for i, square := range g.Grid {
		if square.OwnerID != nil {
			owner := *square.OwnerID
			square.OwnerID = &owner
		}
		if square.Mine != nil {
			mine := *square.Mine
			if mine.TriggeredBy != nil {
				triggered := *mine.TriggeredBy
				mine.TriggeredBy = &triggered
			}
			square.Mine = &mine
		}
		clone.Grid[i] = square
	}

	return &clone
}
