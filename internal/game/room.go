package game

import (
	"encoding/json"
	"math/rand/v2"
	"strings"
	"time"
)

// GameState represents the phase a room is currently in.
type GameState string

const (
	StateSetup        GameState = "setup"
	StateTeam1Explain GameState = "team1-explain"
	StateTeam2Explain GameState = "team2-explain"
	StateJudging      GameState = "judging"
	StateResults      GameState = "results"
)

// Valid reports whether s is one of the five known phases.
func (s GameState) Valid() bool {
	switch s {
	case StateSetup, StateTeam1Explain, StateTeam2Explain, StateJudging, StateResults:
		return true
	}
	return false
}

// Timed reports whether the phase runs against the round clock.
func (s GameState) Timed() bool {
	return s == StateTeam1Explain || s == StateTeam2Explain
}

// RoundSeconds is the length of each explanation phase.
const RoundSeconds = 180

// Default display names applied when the host doesn't pick any.
const (
	DefaultTeam1Name = "Team Alpha"
	DefaultTeam2Name = "Team Beta"
)

// Player is a room member. IDs are opaque and client-generated.
type Player struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	IsHost bool   `json:"isHost"`
}

// TeamPair holds one value per team. It replaces the wire format's
// string-keyed {"team1": ..., "team2": ...} maps with a struct so team
// lookups are checked at compile time, while serializing identically.
type TeamPair[T any] struct {
	Team1 T `json:"team1"`
	Team2 T `json:"team2"`
}

// Ref returns a pointer to the member for team n (1 or 2), or nil for any
// other n.
func (p *TeamPair[T]) Ref(n int) *T {
	switch n {
	case 1:
		return &p.Team1
	case 2:
		return &p.Team2
	}
	return nil
}

// Term is the topic a round is played on. The original client sends either
// a bare string or an {en, difficulty} object, so both decode.
type Term struct {
	En         string `json:"en"`
	Difficulty string `json:"difficulty,omitempty"`
}

func (t *Term) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Term{En: s}
		return nil
	}
	type plain Term
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Term(p)
	return nil
}

// Room is the persisted aggregate for one game session, keyed by Code.
type Room struct {
	Code          string               `json:"code"`
	Host          string               `json:"host"`
	Players       []Player             `json:"players"`
	Teams         TeamPair[[]Player]   `json:"teams"`
	GameState     GameState            `json:"gameState"`
	CurrentTerm   *Term                `json:"currentTerm"`
	CurrentTeam   int                  `json:"currentTeam"`
	Explanations  TeamPair[string]     `json:"explanations"`
	Scores        TeamPair[int]        `json:"scores"`
	TeamNames     TeamPair[string]     `json:"teamNames"`
	TimerStart    int64                `json:"timerStart,omitempty"`
	TimeLeft      int                  `json:"timeLeft"`
	JudgeResponse string               `json:"judgeResponse,omitempty"`
	Version       int64                `json:"version"`
	LastUpdate    int64                `json:"lastUpdate"`
}

// FindPlayer returns the member with the given id.
func (r *Room) FindPlayer(id string) (*Player, bool) {
	for i := range r.Players {
		if r.Players[i].ID == id {
			return &r.Players[i], true
		}
	}
	return nil, false
}

// HasName reports whether any member already uses the given display name.
func (r *Room) HasName(name string) bool {
	for i := range r.Players {
		if r.Players[i].Name == name {
			return true
		}
	}
	return false
}

// OnTeam reports whether the player is currently on team n.
func (r *Room) OnTeam(n int, playerID string) bool {
	members := r.Teams.Ref(n)
	if members == nil {
		return false
	}
	for _, p := range *members {
		if p.ID == playerID {
			return true
		}
	}
	return false
}

// DeriveTimeLeft recomputes the remaining round seconds from the stored
// start instant. The countdown is informational only; nothing is stored
// back and no transition fires when it reaches zero.
func (r *Room) DeriveTimeLeft(now time.Time) {
	if r.TimerStart == 0 || !r.GameState.Timed() {
		return
	}
	elapsed := int((now.UnixMilli() - r.TimerStart) / 1000)
	r.TimeLeft = max(0, RoundSeconds-elapsed)
}

// touch records a successful mutation.
func (r *Room) touch(now time.Time) {
	r.LastUpdate = now.UnixMilli()
	r.Version++
}

const codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// GenerateRoomCode produces a 6-character shareable code. Codes are treated
// as opaque keys everywhere else; the format only matters for humans
// reading them out loud.
func GenerateRoomCode() string {
	var b strings.Builder
	for i := 0; i < 6; i++ {
		b.WriteByte(codeAlphabet[rand.IntN(len(codeAlphabet))])
	}
	return strings.ToUpper(b.String())
}
