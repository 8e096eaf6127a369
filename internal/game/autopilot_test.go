package game

import (
	"testing"

	"github.com/tomz197/orbitdefense/internal/physics"
)

func TestAutopilotNext(t *testing.T) {
	far := Sprite{Kind: "asteroid", X: 10, Y: 0, Active: true}
	near := Sprite{Kind: "saucer", X: 0, Y: -6, Active: true}
	inside := Sprite{Kind: "drone", X: 2, Y: 0, Active: true}
	offscreen := Sprite{Kind: "asteroid", X: 0, Y: 29, Active: true}
	friendly := Sprite{Kind: "projectile", X: 4, Y: 0, Active: true}
	blast := Sprite{Kind: "explosion", X: 5, Y: 0, Active: true}

	tests := []struct {
		name       string
		snap       *Snapshot
		wantAim    *physics.Vec2
		wantToggle bool
	}{
		{"nil snapshot", nil, nil, false},
		{"no hostiles", &Snapshot{Sprites: []Sprite{friendly, blast}}, nil, false},
		{"nearest hostile", &Snapshot{Sprites: []Sprite{far, near, offscreen}}, &physics.Vec2{Y: -6}, false},
		{"offscreen ignored", &Snapshot{Sprites: []Sprite{offscreen}}, nil, false},
		{
			"threat raises shield",
			&Snapshot{Sprites: []Sprite{inside, far}, HUD: HUD{ShieldEnergy: 100}},
			&physics.Vec2{X: 10}, true,
		},
		{
			"no energy to raise",
			&Snapshot{Sprites: []Sprite{inside}, HUD: HUD{ShieldEnergy: 5}},
			nil, false,
		},
		{
			"clear sky lowers shield",
			&Snapshot{Sprites: []Sprite{far}, HUD: HUD{ShieldRaised: true}},
			&physics.Vec2{X: 10}, true,
		},
		{"game over", &Snapshot{Sprites: []Sprite{far}, GameOver: true}, nil, false},
	}

	a := NewAutopilot()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := a.Next(tt.snap)
			if cmd.ToggleShield != tt.wantToggle {
				t.Errorf("ToggleShield = %v, want %v", cmd.ToggleShield, tt.wantToggle)
			}
			switch {
			case tt.wantAim == nil && cmd.Aim != nil:
				t.Errorf("Aim = %v, want none", *cmd.Aim)
			case tt.wantAim != nil && cmd.Aim == nil:
				t.Errorf("Aim = none, want %v", *tt.wantAim)
			case tt.wantAim != nil && *cmd.Aim != *tt.wantAim:
				t.Errorf("Aim = %v, want %v", *cmd.Aim, *tt.wantAim)
			}
			if cmd.Fire != (tt.wantAim != nil) {
				t.Errorf("Fire = %v with aim %v", cmd.Fire, cmd.Aim)
			}
		})
	}
}

func TestAutopilotPlaysSession(t *testing.T) {
	s, _ := newTestSession(t, Options{Difficulty: 2})
	a := NewAutopilot()

	for i := 0; i < 2000 && !s.GameOver(); i++ {
		s.Tick(a.Next(s.Snapshot()))
	}
	if s.Score() == 0 && !s.GameOver() {
		t.Error("autopilot scored nothing in 2000 ticks")
	}
}
