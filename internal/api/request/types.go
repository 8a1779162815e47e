package request

// CreateGameRequest is the request body for creating a game
type CreateGameRequest struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// JoinGameRequest is the request body for joining an existing game
type JoinGameRequest struct {
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	TeamID  string `json:"team_id"`
	TeamKey string `json:"team_key"`
}

// SquareActionRequest is the request body for attack, defend and
// mine-placement actions against a single grid square
type SquareActionRequest struct {
	TeamID  string `json:"team_id"`
	TeamKey string `json:"team_key"`
	Row     int    `json:"row"`
	Column  int    `json:"column"`
}
