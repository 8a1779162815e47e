package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGame() *Game {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	host := Team{
		ID:           "team-1",
		DisplayName:  "Hosts",
		Key:          "key-1",
		Role:         RoleMinelayer,
		RequestsLeft: StartingRequests,
		CreatedAt:    now,
	}
	return &Game{
		ID:         "GAME0001",
		Status:     StatusWaitingForRegistrations,
		HostTeamID: host.ID,
		Teams:      []Team{host},
		Grid:       NewGrid(now),
		CreatedAt:  now,
	}
}

func TestNewGridHasDefaults(t *testing.T) {
	grid := NewGrid(time.Now())
	require.Len(t, grid, GridSize*GridSize)

	seen := map[[2]int]bool{}
	for _, sq := range grid {
		assert.Equal(t, DefaultSquareHealth, sq.Health)
		assert.Equal(t, 0, sq.Bonus)
		assert.Nil(t, sq.OwnerID)
		assert.Nil(t, sq.Mine)
		assert.False(t, seen[[2]int{sq.Row, sq.Column}])
		seen[[2]int{sq.Row, sq.Column}] = true
	}
}

func TestSquareAt(t *testing.T) {
	g := testGame()

	sq := g.SquareAt(2, 3)
	require.NotNil(t, sq)
	assert.Equal(t, 2, sq.Row)
	assert.Equal(t, 3, sq.Column)

	assert.Nil(t, g.SquareAt(5, 0))
	assert.Nil(t, g.SquareAt(0, 5))
	assert.Nil(t, g.SquareAt(-1, 0))
}

func TestTeamLookups(t *testing.T) {
	g := testGame()

	require.NotNil(t, g.TeamByID("team-1"))
	assert.Nil(t, g.TeamByID("team-2"))

	require.NotNil(t, g.TeamByDisplayName("Hosts"))
	assert.Nil(t, g.TeamByDisplayName("Nobody"))

	host := g.HostTeam()
	require.NotNil(t, host)
	assert.Equal(t, TeamID("team-1"), host.ID)
}

func TestHostTeamMissing(t *testing.T) {
	g := testGame()
	g.HostTeamID = "gone"
	assert.Nil(t, g.HostTeam())
}

func TestCloneIsIndependent(t *testing.T) {
	g := testGame()
	owner := TeamID("team-1")
	g.Grid[0].OwnerID = &owner
	g.Grid[0].Mine = &Mine{PlacedBy: "team-1"}
	lastCmd := g.CreatedAt.Add(time.Minute)
	g.Teams[0].TimeOfLastCommand = &lastCmd

	clone := g.Clone()

	// Mutate the clone in every pointer-bearing spot
	clone.Teams[0].RequestsLeft = 0
	*clone.Teams[0].TimeOfLastCommand = lastCmd.Add(time.Hour)
	clone.Grid[0].Health = 1
	*clone.Grid[0].OwnerID = "other"
	clone.Grid[0].Mine.PlacedBy = "other"
	clone.Status = StatusEnded

	assert.Equal(t, StartingRequests, g.Teams[0].RequestsLeft)
	assert.Equal(t, lastCmd, *g.Teams[0].TimeOfLastCommand)
	assert.Equal(t, DefaultSquareHealth, g.Grid[0].Health)
	assert.Equal(t, TeamID("team-1"), *g.Grid[0].OwnerID)
	assert.Equal(t, TeamID("team-1"), g.Grid[0].Mine.PlacedBy)
	assert.Equal(t, StatusWaitingForRegistrations, g.Status)
}

func TestGameStatusValid(t *testing.T) {
	assert.True(t, StatusWaitingForRegistrations.Valid())
	assert.True(t, StatusStarted.Valid())
	assert.True(t, StatusEnded.Valid())
	assert.False(t, GameStatus("Paused").Valid())
	assert.False(t, GameStatus("").Valid())
}

func TestParseTeamRole(t *testing.T) {
	role, err := ParseTeamRole("Minelayer")
	require.NoError(t, err)
	assert.Equal(t, RoleMinelayer, role)

	for _, valid := range []string{"Spy", "Cloaker"} {
		_, err := ParseTeamRole(valid)
		assert.NoError(t, err)
	}

	for _, invalid := range []string{"", "minelayer", "Ninja"} {
		_, err := ParseTeamRole(invalid)
		assert.ErrorIs(t, err, ErrInvalidTeamRole)
	}
}
