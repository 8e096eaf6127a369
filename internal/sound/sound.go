// Package sound defines the fire-and-forget sound collaborator used by the
// game core.
package sound

// Player plays short effects. Calls never block and never fail.
type Player interface {
	Boom()
	InertBoom()
	Fire()
	ShieldUp()
	ShieldDown()
	Regenerate()
	LevelUp()
}

// Nop discards every effect. Used by remote sessions and tests.
type Nop struct{}

func (Nop) Boom()       {}
func (Nop) InertBoom()  {}
func (Nop) Fire()       {}
func (Nop) ShieldUp()   {}
func (Nop) ShieldDown() {}
func (Nop) Regenerate() {}
func (Nop) LevelUp()    {}

// Effect names a sound for recording players.
type Effect string

const (
	EffectBoom       Effect = "boom"
	EffectInertBoom  Effect = "inert-boom"
	EffectFire       Effect = "fire"
	EffectShieldUp   Effect = "shield-up"
	EffectShieldDown Effect = "shield-down"
	EffectRegenerate Effect = "regenerate"
	EffectLevelUp    Effect = "level-up"
)

// Recorder remembers every effect it was asked to play, in order.
type Recorder struct {
	Played []Effect
}

func (r *Recorder) Boom()       { r.Played = append(r.Played, EffectBoom) }
func (r *Recorder) InertBoom()  { r.Played = append(r.Played, EffectInertBoom) }
func (r *Recorder) Fire()       { r.Played = append(r.Played, EffectFire) }
func (r *Recorder) ShieldUp()   { r.Played = append(r.Played, EffectShieldUp) }
func (r *Recorder) ShieldDown() { r.Played = append(r.Played, EffectShieldDown) }
func (r *Recorder) Regenerate() { r.Played = append(r.Played, EffectRegenerate) }
func (r *Recorder) LevelUp()    { r.Played = append(r.Played, EffectLevelUp) }

// Count returns how many times e was played.
func (r *Recorder) Count(e Effect) int {
	n := 0
	for _, p := range r.Played {
		if p == e {
			n++
		}
	}
	return n
}
