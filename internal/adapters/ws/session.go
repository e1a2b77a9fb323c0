// Package ws serves interactive play sessions over a websocket. One
// connection drives one game at a time: the client sends actions, the
// server answers with events and keeps the solution to itself.
package ws

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"svw.info/sudogen/internal/domain"
	"svw.info/sudogen/internal/ports"
	"svw.info/sudogen/internal/usecase"
)

var log = logrus.WithField("component", "ws")

type Handler struct {
	UC       *usecase.Service
	upgrader websocket.Upgrader
}

func New(uc *usecase.Service) *Handler {
	return &Handler{
		UC: uc,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// same-origin policy is enforced upstream when deployed
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/ws/play", h.handlePlay)
}

// request is any client action. Fields beyond Action are read per action.
type request struct {
	Action     string `json:"action"`
	Size       int    `json:"size,omitempty"`
	Difficulty string `json:"difficulty,omitempty"`
	Seed       int64  `json:"seed,omitempty"`
	Row        int    `json:"row,omitempty"`
	Col        int    `json:"col,omitempty"`
	Value      int    `json:"value,omitempty"`
}

type event struct {
	Event      string              `json:"event"`
	ID         string              `json:"id,omitempty"`
	Size       int                 `json:"size,omitempty"`
	Difficulty string              `json:"difficulty,omitempty"`
	Board      domain.Grid         `json:"board,omitempty"`
	Lives      int                 `json:"lives,omitempty"`
	Hints      int                 `json:"hints,omitempty"`
	Legal      *bool               `json:"legal,omitempty"`
	Correct    *bool               `json:"correct,omitempty"`
	Row        int                 `json:"row,omitempty"`
	Col        int                 `json:"col,omitempty"`
	Value      int                 `json:"value,omitempty"`
	Found      bool                `json:"found,omitempty"`
	Complete   bool                `json:"complete,omitempty"`
	GameOver   bool                `json:"gameOver,omitempty"`
	Record     *domain.ScoreRecord `json:"record,omitempty"`
	Error      string              `json:"error,omitempty"`
}

func (h *Handler) handlePlay(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	defer conn.Close()

	s := session{h: h, conn: conn, ctx: r.Context()}
	s.run()
}

type session struct {
	h      *Handler
	conn   *websocket.Conn
	ctx    context.Context
	gameID string
}

func (s *session) run() {
	for {
		var req request
		if err := s.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.WithError(err).Debug("session closed")
			}
			s.cleanup()
			return
		}
		if done := s.dispatch(req); done {
			s.cleanup()
			return
		}
	}
}

func (s *session) dispatch(req request) (done bool) {
	switch req.Action {
	case "new":
		s.handleNew(req)
	case "move":
		s.handleMove(req)
	case "hint":
		s.handleHint()
	case "complete":
		s.handleComplete()
	case "quit":
		return true
	default:
		s.send(event{Event: "error", Error: "unknown action: " + req.Action})
	}
	return false
}

func (s *session) handleNew(req request) {
	if req.Size == 0 {
		req.Size = 9
	}
	game, err := s.h.UC.NewGame(s.ctx, req.Size, domain.ParseDifficulty(req.Difficulty), req.Seed)
	if err != nil {
		s.send(event{Event: "error", Error: err.Error()})
		return
	}
	s.gameID = game.ID
	s.send(event{
		Event:      "game",
		ID:         game.ID,
		Size:       game.Size,
		Difficulty: game.Difficulty.String(),
		Board:      game.Board.Values,
		Lives:      game.Lives,
		Hints:      game.Hints,
	})
}

func (s *session) handleMove(req request) {
	if s.gameID == "" {
		s.send(event{Event: "error", Error: "no active game"})
		return
	}
	res, err := s.h.UC.Move(s.ctx, s.gameID, req.Row, req.Col, req.Value)
	if err != nil {
		s.send(event{Event: "error", Error: err.Error()})
		return
	}
	legal, correct := res.Legal, res.Correct
	s.send(event{
		Event:    "move",
		Legal:    &legal,
		Correct:  &correct,
		Lives:    res.Lives,
		Complete: res.Complete,
		GameOver: res.GameOver,
	})
}

func (s *session) handleHint() {
	if s.gameID == "" {
		s.send(event{Event: "error", Error: "no active game"})
		return
	}
	hint, found, err := s.h.UC.Hint(s.ctx, s.gameID)
	if err != nil {
		s.send(event{Event: "error", Error: err.Error()})
		return
	}
	s.send(event{Event: "hint", Found: found, Row: hint.Row, Col: hint.Col, Value: hint.Value})
}

func (s *session) handleComplete() {
	if s.gameID == "" {
		s.send(event{Event: "error", Error: "no active game"})
		return
	}
	rec, err := s.h.UC.Complete(s.ctx, s.gameID)
	if err != nil {
		s.send(event{Event: "error", Error: err.Error()})
		return
	}
	s.gameID = ""
	s.send(event{Event: "done", Record: rec})
}

// cleanup drops an abandoned game so its session entry does not linger.
func (s *session) cleanup() {
	if s.gameID == "" {
		return
	}
	if err := s.h.UC.Games.Delete(context.Background(), s.gameID); err != nil && !errors.Is(err, ports.ErrNotFound) {
		log.WithError(err).WithField("game", s.gameID).Warn("abandoning game")
	}
}

func (s *session) send(ev event) {
	if err := s.conn.WriteJSON(ev); err != nil {
		log.WithError(err).Debug("write failed")
	}
}
