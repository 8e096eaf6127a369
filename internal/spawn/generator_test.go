package spawn

import (
	"math/rand"
	"testing"

	"github.com/tomz197/orbitdefense/internal/collision"
	"github.com/tomz197/orbitdefense/internal/lifecycle"
	"github.com/tomz197/orbitdefense/internal/loop/config"
	"github.com/tomz197/orbitdefense/internal/object"
	"github.com/tomz197/orbitdefense/internal/physics"
)

// dummy is a member with a scripted lifecycle.
type dummy struct {
	id     int
	state  lifecycle.State
	points int
}

func (d *dummy) Advance() bool {
	return d.state == lifecycle.Removed
}

func (d *dummy) State() lifecycle.State { return d.state }

func (d *dummy) Points() int {
	if d.state == lifecycle.Alive {
		return 0
	}
	return d.points
}

type regenDummy struct{ *dummy }

func (r regenDummy) Regenerate() bool {
	if r.state != lifecycle.Inactive {
		return false
	}
	r.state = lifecycle.Alive
	return true
}

type tally struct{ total, calls int }

func (t *tally) AddPoints(n int) {
	t.total += n
	t.calls++
}

func dummyRecipe(base, perDifficulty int, spawned *[]*dummy) Recipe[*dummy] {
	return Recipe[*dummy]{
		Base:          base,
		PerDifficulty: perDifficulty,
		Spawn: func(_, _, _ int) *dummy {
			d := &dummy{id: len(*spawned), points: 10}
			*spawned = append(*spawned, d)
			return d
		},
	}
}

func TestNewGeneratorSizesPool(t *testing.T) {
	tests := []struct {
		name       string
		level      int
		difficulty int
		want       int
	}{
		{"level 1 difficulty 0", 1, 0, 8},
		{"level 1 difficulty 2", 1, 2, 12},
		{"level 3 difficulty 1", 3, 1, 8 + 2 + 2*2},
		{"level below 1 is clamped", 0, 0, 8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var spawned []*dummy
			g := NewGenerator(dummyRecipe(8, 2, &spawned), tt.level, tt.difficulty, nil)
			if g.MaxCount() != tt.want {
				t.Errorf("MaxCount() = %d, want %d", g.MaxCount(), tt.want)
			}
			if g.Len() != tt.want || len(spawned) != tt.want {
				t.Errorf("Len() = %d spawned = %d, want %d", g.Len(), len(spawned), tt.want)
			}
		})
	}
}

func TestAdvanceLevelGrowsByDifficultyPlusOne(t *testing.T) {
	var spawned []*dummy
	// Base 8 + difficulty term 2 gives maxCount 10 at level 1.
	g := NewGenerator(dummyRecipe(8, 2, &spawned), 1, 1, nil)
	if g.MaxCount() != 10 {
		t.Fatalf("MaxCount() = %d, want 10", g.MaxCount())
	}

	g.AdvanceLevel(2, true)

	if want := 10 + (1 + 1); g.MaxCount() != want {
		t.Errorf("MaxCount() after level 2 = %d, want %d", g.MaxCount(), want)
	}
	if g.Len() != 12 {
		t.Errorf("Len() = %d, want 12", g.Len())
	}
	if g.Level() != 2 {
		t.Errorf("Level() = %d, want 2", g.Level())
	}
}

func TestRecipeMaxCapsPool(t *testing.T) {
	var spawned []*dummy
	recipe := dummyRecipe(8, 2, &spawned)
	recipe.Max = 20

	g := NewGenerator(recipe, 255, 15, nil)
	if g.MaxCount() != 20 || len(spawned) != 20 {
		t.Fatalf("MaxCount() = %d spawned = %d, want 20", g.MaxCount(), len(spawned))
	}

	g.AdvanceLevel(300, true)
	if g.MaxCount() != 20 || g.Len() != 20 {
		t.Errorf("after AdvanceLevel MaxCount() = %d Len() = %d, want 20", g.MaxCount(), g.Len())
	}
	if g.Level() != 300 {
		t.Errorf("Level() = %d, want 300", g.Level())
	}
}

func TestAdvanceLevelIgnoredWhenGameOver(t *testing.T) {
	var spawned []*dummy
	g := NewGenerator(dummyRecipe(3, 0, &spawned), 1, 0, nil)
	g.AdvanceLevel(4, false)
	if g.MaxCount() != 3 || g.Level() != 1 || len(spawned) != 3 {
		t.Errorf("MaxCount() = %d Level() = %d spawned = %d, want 3/1/3", g.MaxCount(), g.Level(), len(spawned))
	}
}

func TestAdvanceLevelRefillsClearedPool(t *testing.T) {
	var spawned []*dummy
	g := NewGenerator(dummyRecipe(3, 0, &spawned), 1, 0, nil)
	for _, d := range spawned {
		d.state = lifecycle.Removed
	}
	if !g.Tick(true) {
		t.Fatal("Tick() = false on an emptied pool")
	}

	g.AdvanceLevel(2, true)
	if g.Len() != 4 {
		t.Errorf("Len() = %d, want 4", g.Len())
	}
}

func TestTickCompactsStablyAndScores(t *testing.T) {
	var spawned []*dummy
	board := &tally{}
	g := NewGenerator(dummyRecipe(5, 0, &spawned), 1, 2, board)

	spawned[1].state = lifecycle.Removed
	spawned[3].state = lifecycle.Removed
	spawned[3].points = 0 // Crashed, not shot down

	if g.Tick(true) {
		t.Fatal("Tick() = true with live members")
	}

	var ids []int
	g.Each(func(d *dummy) {
		if d.State() == lifecycle.Removed {
			t.Errorf("removed member %d still pooled", d.id)
		}
		ids = append(ids, d.id)
	})
	want := []int{0, 2, 4}
	if len(ids) != len(want) {
		t.Fatalf("pool = %v, want %v", ids, want)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("pool = %v, want %v", ids, want)
			break
		}
	}

	// One scoring removal worth 10 at multiplier difficulty+1 = 3.
	if board.total != 30 || board.calls != 1 {
		t.Errorf("board total = %d calls = %d, want 30/1", board.total, board.calls)
	}
}

func TestTickDoesNotScoreWhenGameOver(t *testing.T) {
	var spawned []*dummy
	board := &tally{}
	g := NewGenerator(dummyRecipe(2, 0, &spawned), 1, 0, board)
	spawned[0].state = lifecycle.Removed
	g.Tick(false)
	if board.calls != 0 {
		t.Errorf("AddPoints called %d times after game over", board.calls)
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestTickKeepsInactiveMembers(t *testing.T) {
	var spawned []*dummy
	g := NewGenerator(dummyRecipe(2, 0, &spawned), 1, 0, nil)
	spawned[0].state = lifecycle.Inactive
	if g.Tick(true) {
		t.Error("Tick() = true while an inactive member remains")
	}
	if g.Len() != 2 {
		t.Errorf("Len() = %d, want 2", g.Len())
	}
}

func TestAdvanceLevelRegeneratesInactive(t *testing.T) {
	var members []regenDummy
	recipe := Recipe[regenDummy]{
		Base:   3,
		Growth: func(int) int { return 0 },
		Spawn: func(_, _, i int) regenDummy {
			r := regenDummy{&dummy{id: i}}
			members = append(members, r)
			return r
		},
	}
	g := NewGenerator(recipe, 1, 0, nil)
	members[1].state = lifecycle.Inactive
	members[2].state = lifecycle.Exploding

	g.AdvanceLevel(2, true)

	if members[1].state != lifecycle.Alive {
		t.Errorf("inactive member state = %v, want alive", members[1].state)
	}
	if members[2].state != lifecycle.Exploding {
		t.Errorf("exploding member state = %v, want exploding", members[2].state)
	}
	if g.Len() != 3 {
		t.Errorf("Len() = %d, want 3 with zero growth", g.Len())
	}
}

func TestSaucerGeneratorLaunchesDrones(t *testing.T) {
	env := lifecycle.Env{Registry: collision.NewRegistry()}
	rng := rand.New(rand.NewSource(11))
	board := &tally{}
	g := NewSaucerGenerator(env, rng, 1, 0, board)
	g.DroneChance = 1

	if g.Saucers() != 1 {
		t.Fatalf("Saucers() = %d, want 1", g.Saucers())
	}

	var saucer *object.Saucer
	g.EachSaucer(func(s *object.Saucer) { saucer = s })
	// Park the saucer next to the planet with its drone bay ready.
	path := saucer.Mover().(*physics.Path)
	path.Origin = physics.Vec2{X: 1}
	path.Delay = 1000
	saucer.DroneCooldown = 0

	if g.Tick(true, nil) {
		t.Fatal("Tick() = true with a live saucer")
	}
	if g.Drones() != 1 {
		t.Fatalf("Drones() = %d, want 1", g.Drones())
	}

	// Shoot down the saucer and its drone; the generator reports done once
	// both have finished exploding.
	saucer.Impact(collision.CategoryProjectile)
	done := false
	for i := 0; i < 1000 && !done; i++ {
		g.drones.Each(func(d *object.Drone) { d.Impact(collision.CategoryProjectile) })
		done = g.Tick(true, nil)
	}
	if !done {
		t.Fatal("Tick() never reported the wave gone")
	}
	if g.Saucers() != 0 || g.Drones() != 0 {
		t.Errorf("Saucers() = %d Drones() = %d, want 0/0", g.Saucers(), g.Drones())
	}
	if want := config.ScoreSaucer + config.ScoreDrone; board.total != want {
		t.Errorf("board total = %d, want %d", board.total, want)
	}
}

func TestSaucerGeneratorNoDronesFarFromPlanet(t *testing.T) {
	env := lifecycle.Env{Registry: collision.NewRegistry()}
	g := NewSaucerGenerator(env, rand.New(rand.NewSource(4)), 1, 0, nil)
	g.DroneChance = 1

	var saucer *object.Saucer
	g.EachSaucer(func(s *object.Saucer) { saucer = s })
	path := saucer.Mover().(*physics.Path)
	path.Origin = physics.Vec2{X: config.WorldHalfWidth}
	path.Delay = 1000
	saucer.DroneCooldown = 0

	for i := 0; i < 10; i++ {
		g.Tick(true, nil)
	}
	if g.Drones() != 0 {
		t.Errorf("Drones() = %d, want 0", g.Drones())
	}
}
