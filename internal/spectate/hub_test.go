package spectate

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/tomz197/orbitdefense/internal/game"
	"github.com/tomz197/orbitdefense/internal/logger"
	"github.com/tomz197/orbitdefense/internal/loop/config"
)

func init() {
	logger.Log.SetOutput(io.Discard)
}

func TestStepBroadcastsFrames(t *testing.T) {
	h := NewHub(7)
	w := &Watcher{hub: h, send: make(chan []byte, 8)}
	h.register(w)

	for i := 0; i < config.SpectateBroadcastEvery*3; i++ {
		h.Step()
	}
	if got := len(w.send); got != 3 {
		t.Fatalf("queued frames = %d, want 3", got)
	}

	var snap game.Snapshot
	if err := json.Unmarshal(<-w.send, &snap); err != nil {
		t.Fatalf("frame is not a snapshot: %v", err)
	}
	if snap.Tick != config.SpectateBroadcastEvery {
		t.Errorf("first frame tick = %d, want %d", snap.Tick, config.SpectateBroadcastEvery)
	}
	if len(snap.Sprites) == 0 {
		t.Error("first frame has no sprites")
	}
}

func TestSlowWatcherDropped(t *testing.T) {
	h := NewHub(7)
	w := &Watcher{hub: h, send: make(chan []byte, 1)}
	h.register(w)

	for i := 0; i < config.SpectateBroadcastEvery*2; i++ {
		h.Step()
	}
	if h.Watchers() != 0 {
		t.Fatalf("Watchers() = %d, want 0", h.Watchers())
	}
	<-w.send
	if _, ok := <-w.send; ok {
		t.Error("dropped watcher's queue still open")
	}

	h.unregister(w)
}

func TestServeWSStreamsSnapshots(t *testing.T) {
	h := NewHub(3)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		h.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	srv := httptest.NewServer(http.HandlerFunc(h.ServeWS))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("Dial() = %v", err)
	}
	defer conn.Close()

	if err := conn.SetReadDeadline(time.Now().Add(3 * time.Second)); err != nil {
		t.Fatal(err)
	}
	var snap game.Snapshot
	if err := conn.ReadJSON(&snap); err != nil {
		t.Fatalf("ReadJSON() = %v", err)
	}
	if snap.HUD.Difficulty != config.SpectateDifficulty || snap.HUD.Level != 1 {
		t.Errorf("HUD = %+v, want level 1 difficulty %d", snap.HUD, config.SpectateDifficulty)
	}
}

func TestServeSchema(t *testing.T) {
	h := NewHub(1)
	rec := httptest.NewRecorder()
	h.ServeSchema(rec, httptest.NewRequest(http.MethodGet, "/schema", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("schema is not JSON: %v", err)
	}
	props, _ := doc["properties"].(map[string]any)
	for _, key := range []string{"tick", "sprites", "hud", "saveCode"} {
		if _, ok := props[key]; !ok {
			t.Errorf("schema missing property %q", key)
		}
	}
}
