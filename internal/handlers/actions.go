package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/explainit/backend/internal/game"
	"github.com/explainit/backend/internal/judge"
	"github.com/explainit/backend/internal/store"
)

// GameHandler dispatches game actions. Every action is a stateless
// read-validate-mutate-write cycle against the room store; concurrent
// writers to the same code race and the later full-record write wins.
type GameHandler struct {
	store     store.RoomStore
	judge     judge.Judge
	rules     game.Rules
	publicURL string
	now       func() time.Time
}

// NewGameHandler wires the dispatcher's collaborators.
func NewGameHandler(st store.RoomStore, j judge.Judge, rules game.Rules, publicURL string) *GameHandler {
	return &GameHandler{
		store:     st,
		judge:     j,
		rules:     rules,
		publicURL: publicURL,
		now:       time.Now,
	}
}

// Register mounts all routes on the router.
func (h *GameHandler) Register(r *mux.Router) {
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("healthy"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api/game").Subrouter()
	api.HandleFunc("/get-room/{code}", h.GetRoom).Methods(http.MethodGet)
	api.HandleFunc("/random-term", h.RandomTerm).Methods(http.MethodGet)
	api.HandleFunc("/qr/{code}", h.QR).Methods(http.MethodGet)
	api.HandleFunc("/{action}", h.Dispatch).Methods(http.MethodPost)
}

// actionRequest is the superset of all action payloads. Which fields are
// required depends on the action; see requiredFields.
type actionRequest struct {
	RoomCode    string     `json:"roomCode"`
	PlayerName  string     `json:"playerName"`
	PlayerID    string     `json:"playerId"`
	TeamNumber  int        `json:"teamNumber"`
	Team        int        `json:"team"`
	Term        *game.Term `json:"term"`
	Team1Name   string     `json:"team1Name"`
	Team2Name   string     `json:"team2Name"`
	Explanation string     `json:"explanation"`
}

// present maps wire field names to presence checks, mirroring the
// truthiness clients rely on (zero team numbers and empty strings count
// as missing).
var present = map[string]func(*actionRequest) bool{
	"roomCode":    func(a *actionRequest) bool { return a.RoomCode != "" },
	"playerName":  func(a *actionRequest) bool { return a.PlayerName != "" },
	"playerId":    func(a *actionRequest) bool { return a.PlayerID != "" },
	"teamNumber":  func(a *actionRequest) bool { return a.TeamNumber != 0 },
	"team":        func(a *actionRequest) bool { return a.Team != 0 },
	"term":        func(a *actionRequest) bool { return a.Term != nil && a.Term.En != "" },
	"explanation": func(a *actionRequest) bool { return a.Explanation != "" },
}

var requiredFields = map[game.Action][]string{
	"create-room":             {"playerName", "playerId"},
	game.ActionJoinRoom:       {"roomCode", "playerName", "playerId"},
	game.ActionJoinTeam:       {"roomCode", "playerId", "teamNumber"},
	game.ActionStartGame:      {"roomCode", "playerId", "term"},
	game.ActionSubmit:         {"roomCode", "playerId", "team", "explanation"},
	game.ActionRequestJudging: {"roomCode", "playerId"},
	game.ActionAwardPoints:    {"roomCode", "playerId", "team"},
	game.ActionNextRound:      {"roomCode", "playerId", "term"},
	game.ActionResetGame:      {"roomCode", "playerId"},
	game.ActionLeaveRoom:      {"roomCode", "playerId"},
}

// Dispatch routes a POST action by its path segment.
func (h *GameHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	action := game.Action(mux.Vars(r)["action"])

	required, known := requiredFields[action]
	if !known {
		writeError(w, http.StatusNotFound, "Action not found")
		return
	}

	req := parseBody(r)
	if missing := missingFields(req, required); len(missing) > 0 {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error":    "Missing required fields",
			"required": missing,
		})
		return
	}

	switch action {
	case "create-room":
		h.createRoom(w, r, req)
	case game.ActionJoinRoom:
		h.joinRoom(w, r, req)
	case game.ActionJoinTeam:
		h.joinTeam(w, r, req)
	case game.ActionStartGame:
		h.startGame(w, r, req)
	case game.ActionSubmit:
		h.submitExplanation(w, r, req)
	case game.ActionRequestJudging:
		h.requestJudging(w, r, req)
	case game.ActionAwardPoints:
		h.awardPoints(w, r, req)
	case game.ActionNextRound:
		h.nextRound(w, r, req)
	case game.ActionResetGame:
		h.resetGame(w, r, req)
	case game.ActionLeaveRoom:
		h.leaveRoom(w, r, req)
	}
}

// GetRoom returns a snapshot with the derived countdown.
func (h *GameHandler) GetRoom(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	room, err := h.store.Get(r.Context(), code)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	room.DeriveTimeLeft(h.now())
	writeJSON(w, http.StatusOK, map[string]any{"room": room})
}

// RandomTerm serves a term from the built-in catalog, optionally filtered
// by difficulty.
func (h *GameHandler) RandomTerm(w http.ResponseWriter, r *http.Request) {
	difficulty := r.URL.Query().Get("difficulty")
	if difficulty == "" {
		writeJSON(w, http.StatusOK, map[string]any{"term": game.RandomTerm()})
		return
	}
	if !game.ValidDifficulty(difficulty) {
		writeError(w, http.StatusBadRequest, "Unknown difficulty")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"term": game.RandomTermByDifficulty(difficulty)})
}

const maxCodeAttempts = 5

func (h *GameHandler) createRoom(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	var code string
	for i := 0; i < maxCodeAttempts; i++ {
		code = game.GenerateRoomCode()
		if _, err := h.store.Get(r.Context(), code); errors.Is(err, store.ErrNotFound) {
			break
		}
	}

	room := game.NewRoom(code, req.PlayerName, req.PlayerID, h.now())
	if err := h.store.Set(r.Context(), code, room); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to create room")
		return
	}
	log.Info().Str("room", code).Str("player", req.PlayerID).Msg("room created")
	h.respondRoom(w, room, map[string]any{"roomCode": code})
}

func (h *GameHandler) joinRoom(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.Join(room, req.PlayerName, req.PlayerID, h.now())
	})
}

func (h *GameHandler) joinTeam(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.JoinTeam(room, req.PlayerID, req.TeamNumber, h.now())
	})
}

func (h *GameHandler) startGame(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.Start(room, req.PlayerID, *req.Term, req.Team1Name, req.Team2Name, h.now())
	})
}

func (h *GameHandler) submitExplanation(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.SubmitExplanation(room, req.PlayerID, req.Team, req.Explanation, h.now())
	})
}

// requestJudging persists the judging phase before calling the
// collaborator and the results phase after, so pollers see both.
func (h *GameHandler) requestJudging(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	room, err := h.store.Get(r.Context(), req.RoomCode)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.rules.BeginJudging(room, req.PlayerID, h.now()); err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.store.Set(r.Context(), req.RoomCode, room); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save room")
		return
	}

	var term string
	if room.CurrentTerm != nil {
		term = room.CurrentTerm.En
	}
	feedback := h.judge.Feedback(r.Context(), judge.Input{
		Term:             term,
		Team1Name:        room.TeamNames.Team1,
		Team2Name:        room.TeamNames.Team2,
		Team1Explanation: room.Explanations.Team1,
		Team2Explanation: room.Explanations.Team2,
	})

	h.rules.CompleteJudging(room, feedback, h.now())
	if err := h.store.Set(r.Context(), req.RoomCode, room); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save room")
		return
	}
	h.respondRoom(w, room, map[string]any{"judgeResponse": feedback})
}

func (h *GameHandler) awardPoints(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.AwardPoint(room, req.PlayerID, req.Team, h.now())
	})
}

func (h *GameHandler) nextRound(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.NextRound(room, req.PlayerID, *req.Term, h.now())
	})
}

func (h *GameHandler) resetGame(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	h.mutate(w, r, req, func(room *game.Room) error {
		return h.rules.Reset(room, req.PlayerID, h.now())
	})
}

// leaveRoom deletes the room outright when the last player walks out;
// otherwise host succession runs inside the state machine.
func (h *GameHandler) leaveRoom(w http.ResponseWriter, r *http.Request, req *actionRequest) {
	room, err := h.store.Get(r.Context(), req.RoomCode)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	empty, err := h.rules.Leave(room, req.PlayerID, h.now())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if empty {
		if err := h.store.Delete(r.Context(), req.RoomCode); err != nil {
			writeError(w, http.StatusInternalServerError, "Failed to delete room")
			return
		}
		log.Info().Str("room", req.RoomCode).Msg("room deleted, last player left")
	} else if err := h.store.Set(r.Context(), req.RoomCode, room); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save room")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// mutate runs the common load-validate-mutate-persist cycle.
func (h *GameHandler) mutate(w http.ResponseWriter, r *http.Request, req *actionRequest, op func(*game.Room) error) {
	room, err := h.store.Get(r.Context(), req.RoomCode)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := op(room); err != nil {
		h.writeDomainError(w, err)
		return
	}
	if err := h.store.Set(r.Context(), req.RoomCode, room); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save room")
		return
	}
	h.respondRoom(w, room, nil)
}

func (h *GameHandler) respondRoom(w http.ResponseWriter, room *game.Room, extra map[string]any) {
	room.DeriveTimeLeft(h.now())
	payload := map[string]any{"success": true, "room": room}
	for k, v := range extra {
		payload[k] = v
	}
	writeJSON(w, http.StatusOK, payload)
}

func (h *GameHandler) writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Room not found")
	case errors.Is(err, game.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, game.ErrNotHost):
		writeError(w, http.StatusForbidden, "Not authorized")
	case errors.Is(err, game.ErrNotOnTeam):
		writeError(w, http.StatusForbidden, "Not on this team")
	case errors.Is(err, game.ErrNameTaken):
		writeError(w, http.StatusBadRequest, "Player name already taken")
	case errors.Is(err, game.ErrBadTeam):
		writeError(w, http.StatusBadRequest, "Team must be 1 or 2")
	case errors.Is(err, game.ErrWrongPhase):
		writeError(w, http.StatusConflict, "Action not allowed in current phase")
	case errors.Is(err, game.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, "Explanation already submitted")
	default:
		log.Error().Err(err).Msg("unexpected error handling action")
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// parseBody decodes the request body, treating an absent or malformed
// body as an empty request; field validation produces the user-facing
// error instead of a parse failure.
func parseBody(r *http.Request) *actionRequest {
	var req actionRequest
	data, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || len(data) == 0 {
		return &req
	}
	if err := json.Unmarshal(data, &req); err != nil {
		log.Debug().Err(err).Msg("ignoring malformed request body")
		return &actionRequest{}
	}
	return &req
}

func missingFields(req *actionRequest, required []string) []string {
	var missing []string
	for _, name := range required {
		if !present[name](req) {
			missing = append(missing, name)
		}
	}
	return missing
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"error": msg})
}
