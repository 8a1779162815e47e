package response

import (
	"time"

	"github.com/crayola-eater/code-and-conquer/internal/model"
)

// Team represents a team in API responses. The team key is a secret
// credential and is deliberately never included here.
type Team struct {
	ID                string     `json:"id"`
	DisplayName       string     `json:"display_name"`
	Role              string     `json:"role"`
	RoleUsed          bool       `json:"role_used"`
	RequestsLeft      int        `json:"requests_left"`
	TimeOfLastCommand *time.Time `json:"time_of_last_command,omitempty"`
}

// TeamFromModel converts a model.Team to a response Team
func TeamFromModel(t *model.Team) Team {
	return Team{
		ID:                string(t.ID),
		DisplayName:       t.DisplayName,
		Role:              string(t.Role),
		RoleUsed:          t.RoleUsed,
		RequestsLeft:      t.RequestsLeft,
		TimeOfLastCommand: t.TimeOfLastCommand,
	}
}

// Mine represents a placed mine in API responses
type Mine struct {
	PlacedBy    string  `json:"placed_by"`
	TriggeredBy *string `json:"triggered_by,omitempty"`
}

// GridSquare represents one cell of the grid in API responses
type GridSquare struct {
	Row     int     `json:"row_index"`
	Column  int     `json:"column_index"`
	OwnerID *string `json:"owner_id"`
	Bonus   int     `json:"bonus"`
	Health  int     `json:"health"`
	Mine    *Mine   `json:"mine,omitempty"`
}

// GridSquareFromModel converts a model.GridSquare to a response GridSquare
func GridSquareFromModel(sq *model.GridSquare) GridSquare {
	resp := GridSquare{
		Row:    sq.Row,
		Column: sq.Column,
		Bonus:  sq.Bonus,
		Health: sq.Health,
	}
	if sq.OwnerID != nil {
		owner := string(*sq.OwnerID)
		resp.OwnerID = &owner
	}
	if sq.Mine != nil {
		mine := &Mine{PlacedBy: string(sq.Mine.PlacedBy)}
		if sq.Mine.TriggeredBy != nil {
			triggered := string(*sq.Mine.TriggeredBy)
			mine.TriggeredBy = &triggered
		}
		resp.Mine = mine
	}
	return resp
}

// Game represents a full game snapshot in API responses
type Game struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	HostTeamID string       `json:"host_team_id"`
	Teams      []Team       `json:"teams"`
	Grid       []GridSquare `json:"grid"`
	CreatedAt  time.Time    `json:"created_at"`
}

// GameFromModel converts a model.Game to a response Game
func GameFromModel(g *model.Game) Game {
	teams := make([]Team, 0, len(g.Teams))
	for i := range g.Teams {
		teams = append(teams, TeamFromModel(&g.Teams[i]))
	}
	grid := make([]GridSquare, 0, len(g.Grid))
	for i := range g.Grid {
		grid = append(grid, GridSquareFromModel(&g.Grid[i]))
	}
	return Game{
		ID:         string(g.ID),
		Status:     string(g.Status),
		HostTeamID: string(g.HostTeamID),
		Teams:      teams,
		Grid:       grid,
		CreatedAt:  g.CreatedAt,
	}
}

// RegisterGameResponse is the response for creating or joining a game.
// This is the only place the team key is ever returned.
type RegisterGameResponse struct {
	GameID  string `json:"game_id"`
	TeamID  string `json:"team_id"`
	TeamKey string `json:"team_key"`
}

// StartGameResponse is the response for starting a game
type StartGameResponse struct {
	GameID string `json:"game_id"`
	Status string `json:"status"`
}

// AttackResponse is the response for an attack action
type AttackResponse struct {
	Square       GridSquare `json:"square"`
	Conquered    bool       `json:"conquered"`
	RequestsLeft int        `json:"requests_left"`
}

// DefendResponse is the response for a defend action
type DefendResponse struct {
	Square       GridSquare `json:"square"`
	RequestsLeft int        `json:"requests_left"`
}

// PlaceMineResponse is the response for a mine placement
type PlaceMineResponse struct {
	Square       GridSquare `json:"square"`
	RequestsLeft int        `json:"requests_left"`
}
