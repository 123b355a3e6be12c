package game

import (
	"errors"
	"time"
)

// Domain errors. The dispatcher maps these to HTTP statuses in one place.
var (
	ErrNameTaken        = errors.New("player name already taken")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrNotHost          = errors.New("not authorized")
	ErrNotOnTeam        = errors.New("not on this team")
	ErrBadTeam          = errors.New("team must be 1 or 2")
	ErrWrongPhase       = errors.New("action not allowed in current phase")
	ErrAlreadySubmitted = errors.New("explanation already submitted")
)

// Action names mirror the wire-level action segment.
type Action string

const (
	ActionJoinRoom       Action = "join-room"
	ActionJoinTeam       Action = "join-team"
	ActionStartGame      Action = "start-game"
	ActionSubmit         Action = "submit-explanation"
	ActionRequestJudging Action = "request-judging"
	ActionAwardPoints    Action = "award-points"
	ActionNextRound      Action = "next-round"
	ActionResetGame      Action = "reset-game"
	ActionLeaveRoom      Action = "leave-room"
)

// transitions is the authoritative table of which phases each
// state-dependent action may run in. Actions absent from the table are
// phase-independent.
var transitions = map[Action][]GameState{
	ActionStartGame:      {StateSetup},
	ActionSubmit:         {StateTeam1Explain, StateTeam2Explain},
	ActionRequestJudging: {StateTeam2Explain},
	ActionAwardPoints:    {StateResults},
	ActionNextRound:      {StateResults, StateTeam1Explain, StateTeam2Explain},
}

func stateAllows(a Action, s GameState) bool {
	allowed, ok := transitions[a]
	if !ok {
		return true
	}
	for _, st := range allowed {
		if st == s {
			return true
		}
	}
	return false
}

// Rules holds the tunable edges of the state machine.
type Rules struct {
	// AllowResubmit lets a team overwrite an explanation it already
	// submitted (team 1 correcting itself during team2-explain does not
	// re-fire the phase transition). Matches the source behavior when true.
	AllowResubmit bool
}

// NewRoom creates a fresh room in setup with a single host player.
func NewRoom(code, playerName, playerID string, now time.Time) *Room {
	r := &Room{
		Code:         code,
		Host:         playerID,
		Players:      []Player{{ID: playerID, Name: playerName, IsHost: true}},
		Teams:        TeamPair[[]Player]{Team1: []Player{}, Team2: []Player{}},
		GameState:    StateSetup,
		CurrentTeam:  1,
		Explanations: TeamPair[string]{},
		Scores:       TeamPair[int]{},
		TeamNames:    TeamPair[string]{Team1: DefaultTeam1Name, Team2: DefaultTeam2Name},
	}
	r.touch(now)
	return r
}

// Join appends a new non-host player. Duplicate names are rejected
// outright, never auto-renamed.
func (ru Rules) Join(r *Room, name, playerID string, now time.Time) error {
	if r.HasName(name) {
		return ErrNameTaken
	}
	r.Players = append(r.Players, Player{ID: playerID, Name: name})
	r.touch(now)
	return nil
}

// JoinTeam moves the player onto team n, removing them from both teams
// first so an id never appears on both. Repeating the call with the same
// arguments is a no-op beyond the version bump.
func (ru Rules) JoinTeam(r *Room, playerID string, n int, now time.Time) error {
	p, ok := r.FindPlayer(playerID)
	if !ok {
		return ErrPlayerNotFound
	}
	team := r.Teams.Ref(n)
	if team == nil {
		return ErrBadTeam
	}
	r.Teams.Team1 = removePlayer(r.Teams.Team1, playerID)
	r.Teams.Team2 = removePlayer(r.Teams.Team2, playerID)
	*team = append(*team, *p)
	r.touch(now)
	return nil
}

// Start begins the first round: host only, from setup.
func (ru Rules) Start(r *Room, playerID string, term Term, team1Name, team2Name string, now time.Time) error {
	if r.Host != playerID {
		return ErrNotHost
	}
	if !stateAllows(ActionStartGame, r.GameState) {
		return ErrWrongPhase
	}
	r.TeamNames.Team1 = orDefault(team1Name, DefaultTeam1Name)
	r.TeamNames.Team2 = orDefault(team2Name, DefaultTeam2Name)
	ru.beginRound(r, term, now)
	return nil
}

// SubmitExplanation stores a team's text. Team 1's submission advances the
// room to team2-explain and restarts the clock; team 2's leaves the phase
// alone until the host requests judging.
func (ru Rules) SubmitExplanation(r *Room, playerID string, team int, text string, now time.Time) error {
	slot := r.Explanations.Ref(team)
	if slot == nil {
		return ErrBadTeam
	}
	if !r.OnTeam(team, playerID) {
		return ErrNotOnTeam
	}
	if !stateAllows(ActionSubmit, r.GameState) {
		return ErrWrongPhase
	}

	switch team {
	case 1:
		if r.GameState == StateTeam2Explain {
			// Late correction after the phase already advanced.
			if !ru.AllowResubmit {
				return ErrAlreadySubmitted
			}
			*slot = text
			r.touch(now)
			return nil
		}
		*slot = text
		r.GameState = StateTeam2Explain
		r.CurrentTeam = 2
		r.TimerStart = now.UnixMilli()
		r.TimeLeft = RoundSeconds
	case 2:
		if r.GameState != StateTeam2Explain {
			return ErrWrongPhase
		}
		if *slot != "" && !ru.AllowResubmit {
			return ErrAlreadySubmitted
		}
		*slot = text
	}
	r.touch(now)
	return nil
}

// BeginJudging moves the room into the judging phase. The caller is
// expected to obtain feedback and then call CompleteJudging; the two steps
// bracket a persist each so pollers see the judging spinner.
func (ru Rules) BeginJudging(r *Room, playerID string, now time.Time) error {
	if r.Host != playerID {
		return ErrNotHost
	}
	if !stateAllows(ActionRequestJudging, r.GameState) {
		return ErrWrongPhase
	}
	r.GameState = StateJudging
	r.touch(now)
	return nil
}

// CompleteJudging records the feedback and lands on results.
func (ru Rules) CompleteJudging(r *Room, feedback string, now time.Time) {
	r.JudgeResponse = feedback
	r.GameState = StateResults
	r.touch(now)
}

// AwardPoint increments a team's score by one. Deliberately not
// idempotent: scoring is a manual host action and repeated calls award
// repeated points.
func (ru Rules) AwardPoint(r *Room, playerID string, team int, now time.Time) error {
	if r.Host != playerID {
		return ErrNotHost
	}
	score := r.Scores.Ref(team)
	if score == nil {
		return ErrBadTeam
	}
	if !stateAllows(ActionAwardPoints, r.GameState) {
		return ErrWrongPhase
	}
	*score++
	r.touch(now)
	return nil
}

// NextRound starts a fresh round with a new term, keeping scores.
func (ru Rules) NextRound(r *Room, playerID string, term Term, now time.Time) error {
	if r.Host != playerID {
		return ErrNotHost
	}
	if !stateAllows(ActionNextRound, r.GameState) {
		return ErrWrongPhase
	}
	ru.beginRound(r, term, now)
	return nil
}

// Reset returns the room to setup, clearing everything but membership.
func (ru Rules) Reset(r *Room, playerID string, now time.Time) error {
	if r.Host != playerID {
		return ErrNotHost
	}
	r.GameState = StateSetup
	r.CurrentTerm = nil
	r.CurrentTeam = 1
	r.Explanations = TeamPair[string]{}
	r.Scores = TeamPair[int]{}
	r.Teams = TeamPair[[]Player]{Team1: []Player{}, Team2: []Player{}}
	r.JudgeResponse = ""
	r.TimerStart = 0
	r.TimeLeft = 0
	r.touch(now)
	return nil
}

// Leave removes the player from the room and both teams. When the host
// leaves, the first remaining player inherits the role. The returned flag
// is true when the room is now empty and should be deleted rather than
// persisted.
func (ru Rules) Leave(r *Room, playerID string, now time.Time) (empty bool, err error) {
	if _, ok := r.FindPlayer(playerID); !ok {
		return false, ErrPlayerNotFound
	}
	r.Players = removePlayer(r.Players, playerID)
	r.Teams.Team1 = removePlayer(r.Teams.Team1, playerID)
	r.Teams.Team2 = removePlayer(r.Teams.Team2, playerID)

	if len(r.Players) == 0 {
		return true, nil
	}
	if r.Host == playerID {
		r.Host = r.Players[0].ID
		r.Players[0].IsHost = true
	}
	r.touch(now)
	return false, nil
}

func (ru Rules) beginRound(r *Room, term Term, now time.Time) {
	r.CurrentTerm = &term
	r.GameState = StateTeam1Explain
	r.CurrentTeam = 1
	r.Explanations = TeamPair[string]{}
	r.JudgeResponse = ""
	r.TimerStart = now.UnixMilli()
	r.TimeLeft = RoundSeconds
	r.touch(now)
}

func removePlayer(players []Player, id string) []Player {
	out := players[:0]
	for _, p := range players {
		if p.ID != id {
			out = append(out, p)
		}
	}
	return out
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
