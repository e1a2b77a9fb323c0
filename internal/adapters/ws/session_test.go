package ws

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"svw.info/sudogen/internal/generator"
	"svw.info/sudogen/internal/infrastructure/storage"
	"svw.info/sudogen/internal/solver"
	"svw.info/sudogen/internal/usecase"
)

func dialTestServer(t *testing.T) (*websocket.Conn, *usecase.Service) {
	t.Helper()
	uc := usecase.NewService(
		generator.New(),
		solver.NewBacktrackingSolver(),
		storage.NewMemoryGames(),
		storage.NewMemoryScores(),
		nil,
	)
	mux := http.NewServeMux()
	New(uc).Register(mux)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/play"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn, uc
}

func expect(t *testing.T, conn *websocket.Conn, want string) event {
	t.Helper()
	var ev event
	if err := conn.ReadJSON(&ev); err != nil {
		t.Fatalf("read: %v", err)
	}
	if ev.Event != want {
		t.Fatalf("got event %q (error=%q), want %q", ev.Event, ev.Error, want)
	}
	return ev
}

func TestPlaySession(t *testing.T) {
	conn, uc := dialTestServer(t)

	if err := conn.WriteJSON(request{Action: "new", Size: 4, Difficulty: "easy", Seed: 7}); err != nil {
		t.Fatalf("write: %v", err)
	}
	game := expect(t, conn, "game")
	if game.Size != 4 || game.Lives != 5 || game.Hints != 3 {
		t.Fatalf("unexpected game event: %+v", game)
	}

	stored, err := uc.Games.Get(context.Background(), game.ID)
	if err != nil {
		t.Fatalf("game not stored: %v", err)
	}

	// first open cell, played correctly
	var row, col int
found:
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if stored.Board.Values[r][c] == 0 {
				row, col = r, c
				break found
			}
		}
	}
	good := stored.Solution[row][col]
	if err := conn.WriteJSON(request{Action: "move", Row: row, Col: col, Value: good}); err != nil {
		t.Fatalf("write: %v", err)
	}
	mv := expect(t, conn, "move")
	if mv.Legal == nil || !*mv.Legal || mv.Correct == nil || !*mv.Correct {
		t.Fatalf("correct move not acknowledged: %+v", mv)
	}
	if mv.Lives != 5 {
		t.Fatalf("correct move cost a life: %d", mv.Lives)
	}

	// a hint comes from the solution
	if err := conn.WriteJSON(request{Action: "hint"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	hint := expect(t, conn, "hint")
	if !hint.Found {
		t.Fatal("hint not found on an open board")
	}
	if hint.Value != stored.Solution[hint.Row][hint.Col] {
		t.Fatalf("hint %d at (%d,%d) disagrees with solution %d",
			hint.Value, hint.Row, hint.Col, stored.Solution[hint.Row][hint.Col])
	}
}

func TestIllegalMoveCostsLife(t *testing.T) {
	conn, uc := dialTestServer(t)

	if err := conn.WriteJSON(request{Action: "new", Size: 4, Difficulty: "easy", Seed: 11}); err != nil {
		t.Fatalf("write: %v", err)
	}
	game := expect(t, conn, "game")

	stored, _ := uc.Games.Get(context.Background(), game.ID)
	var row, col int
found:
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			if stored.Board.Values[r][c] == 0 {
				row, col = r, c
				break found
			}
		}
	}
	// a value already present in the row is always illegal
	var clash int
	for c := 0; c < 4; c++ {
		if v := stored.Board.Values[row][c]; v != 0 {
			clash = v
			break
		}
	}
	if clash == 0 {
		// fully open row; column clash instead
		for r := 0; r < 4; r++ {
			if v := stored.Board.Values[r][col]; v != 0 {
				clash = v
				break
			}
		}
	}
	if clash == 0 {
		t.Skip("carved board left target row and column empty")
	}
	if err := conn.WriteJSON(request{Action: "move", Row: row, Col: col, Value: clash}); err != nil {
		t.Fatalf("write: %v", err)
	}
	mv := expect(t, conn, "move")
	if mv.Legal == nil || *mv.Legal {
		t.Fatalf("clash accepted as legal: %+v", mv)
	}
	if mv.Lives != 4 {
		t.Fatalf("lives after illegal move = %d, want 4", mv.Lives)
	}
}

func TestUnknownActionAndMoveWithoutGame(t *testing.T) {
	conn, _ := dialTestServer(t)

	if err := conn.WriteJSON(request{Action: "dance"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	ev := expect(t, conn, "error")
	if !strings.Contains(ev.Error, "unknown action") {
		t.Fatalf("error = %q", ev.Error)
	}

	if err := conn.WriteJSON(request{Action: "move", Row: 0, Col: 0, Value: 1}); err != nil {
		t.Fatalf("write: %v", err)
	}
	ev = expect(t, conn, "error")
	if ev.Error != "no active game" {
		t.Fatalf("error = %q", ev.Error)
	}
}

func timeoutSoon() time.Time { return time.Now().Add(2 * time.Second) }

func TestQuitDropsGame(t *testing.T) {
	conn, uc := dialTestServer(t)

	if err := conn.WriteJSON(request{Action: "new", Size: 4, Seed: 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
	game := expect(t, conn, "game")
	if err := conn.WriteJSON(request{Action: "quit"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	// server closes its side after quit; reads fail from then on
	conn.SetReadDeadline(timeoutSoon())
	for {
		var ev event
		if err := conn.ReadJSON(&ev); err != nil {
			break
		}
	}
	if _, err := uc.Games.Get(context.Background(), game.ID); err == nil {
		t.Fatal("game survived quit")
	}
}
