package server

import (
	"context"
	"testing"
	"time"

	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/physics"
	"github.com/tomz197/orbitdefense/internal/savecode"
)

func TestMergeCommands(t *testing.T) {
	aim := &physics.Vec2{X: 3}
	tests := []struct {
		name       string
		prev, next game.Command
		want       game.Command
	}{
		{
			"latest movement wins",
			game.Command{MoveX: 1}, game.Command{MoveY: -1},
			game.Command{MoveY: -1},
		},
		{
			"fire is kept",
			game.Command{Fire: true}, game.Command{},
			game.Command{Fire: true},
		},
		{
			"aim is kept",
			game.Command{Aim: aim}, game.Command{MoveX: 1},
			game.Command{Aim: aim, MoveX: 1},
		},
		{
			"double toggle cancels",
			game.Command{ToggleShield: true}, game.Command{ToggleShield: true},
			game.Command{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mergeCommands(tt.prev, tt.next); got != tt.want {
				t.Errorf("mergeCommands(%+v, %+v) = %+v, want %+v", tt.prev, tt.next, got, tt.want)
			}
		})
	}
}

func TestSessionLifecycle(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("alice")
	s.Step()

	if snap := s.GetSnapshot(h.ID); snap != nil {
		t.Fatalf("snapshot before StartGame = %+v, want nil", snap)
	}

	s.StartGame(h.ID, game.Options{Seed: 1})
	s.Step()
	snap := s.GetSnapshot(h.ID)
	if snap == nil || snap.Tick != 1 {
		t.Fatalf("snapshot after one tick = %+v, want tick 1", snap)
	}

	s.SendCommand(h.ID, game.Command{ToggleShield: true})
	s.Step()
	if !s.GetSnapshot(h.ID).HUD.ShieldRaised {
		t.Error("command not applied to the client's session")
	}

	s.UnregisterClient(h.ID)
	s.Step()
	if _, ok := <-h.EventsCh; ok {
		t.Error("events channel still open after unregister")
	}
	if s.GetSnapshot(h.ID) != nil {
		t.Error("snapshot available after unregister")
	}
}

func TestGameOverEventAndLeaderboard(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("bob")
	s.Step()

	load := savecode.LoadData{Score: 700, Level: 4, Bases: [4]bool{true, true, true, true}}
	s.StartGame(h.ID, game.Options{Seed: 2, Load: &load})
	s.Step()

	select {
	case ev := <-h.EventsCh:
		if ev.Type != EventGameOver || ev.Score != 700 || ev.Level != 4 {
			t.Errorf("event = %+v, want game over with score 700 at level 4", ev)
		}
		if _, err := savecode.Decode(ev.SaveCode); err != nil {
			t.Errorf("save code %q: %v", ev.SaveCode, err)
		}
	default:
		t.Fatal("no game over event")
	}

	// Game over is announced once.
	s.Step()
	select {
	case ev := <-h.EventsCh:
		t.Errorf("unexpected second event %+v", ev)
	default:
	}

	top := s.TopScores()
	if len(top) != 1 || top[0].Username != "bob" || top[0].Score != 700 {
		t.Errorf("TopScores() = %+v, want bob with 700", top)
	}
}

func TestRequestsApplyInOrder(t *testing.T) {
	// Select between several ready channels is random, so repeat.
	for i := 0; i < 50; i++ {
		s := NewServer()

		started := s.RegisterClient("erin")
		s.StartGame(started.ID, game.Options{Seed: 2})
		left := s.RegisterClient("frank")
		s.UnregisterClient(left.ID)
		s.Step()

		if s.GetSnapshot(started.ID) == nil {
			t.Fatalf("run %d: start requested right after register was lost", i)
		}
		s.mu.RLock()
		_, stillThere := s.clients[left.ID]
		s.mu.RUnlock()
		if stillThere {
			t.Fatalf("run %d: unregister requested right after register was lost", i)
		}
		if _, ok := <-left.EventsCh; ok {
			t.Fatalf("run %d: unregistered client's events still open", i)
		}
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s := NewServer()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	h := s.RegisterClient("carol")
	s.StartGame(h.ID, game.Options{Seed: 3})
	deadline := time.Now().Add(2 * time.Second)
	for s.GetSnapshot(h.ID) == nil && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	if s.GetSnapshot(h.ID) == nil {
		t.Error("Run never started the game")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if _, ok := <-h.EventsCh; ok {
		t.Error("events channel still open after the server stopped")
	}
	if s.GetSnapshot(h.ID) != nil {
		t.Error("client still registered after the server stopped")
	}
}

func TestShutdownNotifiesClients(t *testing.T) {
	s := NewServer()
	h := s.RegisterClient("dave")
	s.Step()

	go func() {
		ev := <-h.EventsCh
		if ev.Type == EventServerShutdown {
			s.UnregisterClient(h.ID)
			s.Step()
		}
	}()

	start := time.Now()
	s.Shutdown(3 * time.Second)
	if time.Since(start) >= 3*time.Second {
		t.Error("Shutdown waited for the full timeout after the client left")
	}
}

func TestLeaderboardRecord(t *testing.T) {
	l := NewLeaderboard(3)
	entries := []TopScoreEntry{
		{Username: "a", Score: 100, clientID: 1},
		{Username: "b", Score: 300, clientID: 2},
		{Username: "zero", Score: 0, clientID: 3},
		{Username: "c", Score: 200, clientID: 4},
		{Username: "d", Score: 100, Level: 2, clientID: 5},
		{Username: "e", Score: 50, clientID: 6},
	}
	placed := []bool{true, true, false, true, true, false}
	for i, e := range entries {
		if got := l.Record(e); got != placed[i] {
			t.Errorf("Record(%s) = %v, want %v", e.Username, got, placed[i])
		}
	}

	var names []string
	for _, e := range l.Entries() {
		names = append(names, e.Username)
	}
	want := []string{"b", "c", "d"}
	if len(names) != len(want) {
		t.Fatalf("Entries() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Entries() = %v, want %v", names, want)
			break
		}
	}
}
