package game

import (
	"encoding/json"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveTimeLeft(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		state   GameState
		want    int
	}{
		{"fresh round", 0, StateTeam1Explain, 180},
		{"half spent", 90 * time.Second, StateTeam2Explain, 90},
		{"exactly expired", 180 * time.Second, StateTeam1Explain, 0},
		{"long expired clamps to zero", 200 * time.Second, StateTeam1Explain, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			room := &Room{
				GameState:  tc.state,
				TimerStart: now.Add(-tc.elapsed).UnixMilli(),
			}
			room.DeriveTimeLeft(now)
			assert.Equal(t, tc.want, room.TimeLeft)
		})
	}
}

func TestDeriveTimeLeftUntimedPhase(t *testing.T) {
	now := time.Now()
	room := &Room{GameState: StateResults, TimerStart: now.UnixMilli(), TimeLeft: 42}
	room.DeriveTimeLeft(now)
	assert.Equal(t, 42, room.TimeLeft, "untimed phases keep the stored value")
}

func TestTermUnmarshalBothShapes(t *testing.T) {
	var fromString Term
	require.NoError(t, json.Unmarshal([]byte(`"API"`), &fromString))
	assert.Equal(t, Term{En: "API"}, fromString)

	var fromObject Term
	require.NoError(t, json.Unmarshal([]byte(`{"en":"Sharding","difficulty":"hard"}`), &fromObject))
	assert.Equal(t, Term{En: "Sharding", Difficulty: "hard"}, fromObject)
}

func TestRoomJSONKeysMatchWireFormat(t *testing.T) {
	room := NewRoom("AB12CD", "Ann", "p1", time.Unix(0, 0))
	data, err := json.Marshal(room)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	for _, key := range []string{"code", "host", "players", "teams", "gameState", "explanations", "scores", "teamNames", "lastUpdate"} {
		assert.Contains(t, raw, key)
	}

	var teams map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw["teams"], &teams))
	assert.Contains(t, teams, "team1")
	assert.Contains(t, teams, "team2")
}

func TestGenerateRoomCodeFormat(t *testing.T) {
	pattern := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	for i := 0; i < 100; i++ {
		assert.Regexp(t, pattern, GenerateRoomCode())
	}
}

func TestGameStateValid(t *testing.T) {
	for _, s := range []GameState{StateSetup, StateTeam1Explain, StateTeam2Explain, StateJudging, StateResults} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, GameState("paused").Valid())
}
