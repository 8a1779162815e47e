package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case RegisterResult:
		o.printRegisterResult(v)
	case StartResult:
		o.printStartResult(v)
	case Game:
		o.printGame(v)
	case GridSquare:
		o.printGridSquare(v)
	case *AttackResult:
		o.printAttackResult(v)
	case *DefendResult:
		o.printDefendResult(v)
	case *PlaceMineResult:
		o.printPlaceMineResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// RegisterResult response type (matches API)
type RegisterResult struct {
	GameID  string `json:"game_id"`
	TeamID  string `json:"team_id"`
	TeamKey string `json:"team_key"`
}

// StartResult response type
type StartResult struct {
	GameID string `json:"game_id"`
	Status string `json:"status"`
}

// Team response type
type Team struct {
	ID                string     `json:"id"`
	DisplayName       string     `json:"display_name"`
	Role              string     `json:"role"`
	RoleUsed          bool       `json:"role_used"`
	RequestsLeft      int        `json:"requests_left"`
	TimeOfLastCommand *time.Time `json:"time_of_last_command,omitempty"`
}

// Mine response type
type Mine struct {
	PlacedBy    string  `json:"placed_by"`
	TriggeredBy *string `json:"triggered_by,omitempty"`
}

// GridSquare response type
type GridSquare struct {
	Row     int     `json:"row_index"`
	Column  int     `json:"column_index"`
	OwnerID *string `json:"owner_id"`
	Bonus   int     `json:"bonus"`
	Health  int     `json:"health"`
	Mine    *Mine   `json:"mine,omitempty"`
}

// Game response type
type Game struct {
	ID         string       `json:"id"`
	Status     string       `json:"status"`
	HostTeamID string       `json:"host_team_id"`
	Teams      []Team       `json:"teams"`
	Grid       []GridSquare `json:"grid"`
	CreatedAt  time.Time    `json:"created_at"`
}

// AttackResult response type
type AttackResult struct {
	Square       GridSquare `json:"square"`
	Conquered    bool       `json:"conquered"`
	RequestsLeft int        `json:"requests_left"`
}

// DefendResult response type
type DefendResult struct {
	Square       GridSquare `json:"square"`
	RequestsLeft int        `json:"requests_left"`
}

// PlaceMineResult response type
type PlaceMineResult struct {
	Square       GridSquare `json:"square"`
	RequestsLeft int        `json:"requests_left"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printRegisterResult(r RegisterResult) {
	fmt.Printf("Game: %s\n", r.GameID)
	fmt.Printf("Team: %s\n", r.TeamID)
	fmt.Printf("Key: %s\n", r.TeamKey)
	fmt.Println("Credentials saved; keep the key secret.")
}

func (o *Output) printStartResult(r StartResult) {
	fmt.Printf("Game: %s\n", r.GameID)
	fmt.Printf("Status: %s\n", r.Status)
}

func (o *Output) printGame(g Game) {
	fmt.Printf("Game: %s\n", g.ID)
	fmt.Printf("Status: %s\n", g.Status)

	// Assign a letter marker per team for the grid rendering
	markers := map[string]byte{}
	fmt.Printf("Teams (%d):\n", len(g.Teams))
	for i, t := range g.Teams {
		marker := byte('A' + i%26)
		markers[t.ID] = marker
		hostStr := ""
		if t.ID == g.HostTeamID {
			hostStr = " [host]"
		}
		roleUsedStr := ""
		if t.RoleUsed {
			roleUsedStr = ", role used"
		}
		fmt.Printf("  %c: %s (%s, %d requests left%s)%s\n",
			marker, t.DisplayName, t.Role, t.RequestsLeft, roleUsedStr, hostStr)
	}

	fmt.Println("\nGrid (health, owner marker, ! = mined):")
	o.printGrid(g.Grid, markers)
}

func (o *Output) printGrid(grid []GridSquare, markers map[string]byte) {
	// Index squares by coordinates; the API sends all 25 but order is
	// not guaranteed
	size := 0
	byCoord := map[[2]int]GridSquare{}
	for _, sq := range grid {
		byCoord[[2]int{sq.Row, sq.Column}] = sq
		if sq.Row+1 > size {
			size = sq.Row + 1
		}
	}

	fmt.Print("     ")
	for col := 0; col < size; col++ {
		fmt.Printf("   %d    ", col)
	}
	fmt.Println()

	for row := 0; row < size; row++ {
		fmt.Printf(" %d |", row)
		for col := 0; col < size; col++ {
			sq := byCoord[[2]int{row, col}]
			marker := byte('.')
			if sq.OwnerID != nil {
				if m, ok := markers[*sq.OwnerID]; ok {
					marker = m
				} else {
					marker = '?'
				}
			}
			mineStr := " "
			if sq.Mine != nil {
				mineStr = "!"
			}
			fmt.Printf(" %3d %c%s|", sq.Health, marker, mineStr)
		}
		fmt.Println()
	}
}

func (o *Output) printGridSquare(sq GridSquare) {
	fmt.Printf("Square: (%d, %d)\n", sq.Row, sq.Column)
	fmt.Printf("Health: %d\n", sq.Health)
	fmt.Printf("Bonus: %d\n", sq.Bonus)
	if sq.OwnerID != nil {
		fmt.Printf("Owner: %s\n", *sq.OwnerID)
	} else {
		fmt.Println("Owner: none")
	}
	if sq.Mine != nil {
		fmt.Printf("Mine placed by: %s\n", sq.Mine.PlacedBy)
	}
}

func (o *Output) printAttackResult(r *AttackResult) {
	if r.Conquered {
		fmt.Println("Square conquered!")
	} else {
		fmt.Println("Square attacked")
	}
	o.printGridSquare(r.Square)
	fmt.Printf("Requests left: %d\n", r.RequestsLeft)
}

func (o *Output) printDefendResult(r *DefendResult) {
	fmt.Println("Square defended")
	o.printGridSquare(r.Square)
	fmt.Printf("Requests left: %d\n", r.RequestsLeft)
}

func (o *Output) printPlaceMineResult(r *PlaceMineResult) {
	fmt.Println("Mine placed")
	o.printGridSquare(r.Square)
	fmt.Printf("Requests left: %d\n", r.RequestsLeft)
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
