package physics

// Mover produces a position each tick.
type Mover interface {
	// Step advances one tick and returns the new position. arrived is true
	// once the mover has reached its destination.
	Step() (pos Vec2, arrived bool)
	// Position returns the current position without advancing.
	Position() Vec2
}

// Path moves linearly from Origin to Destination by accumulating distance.
type Path struct {
	Origin      Vec2
	Destination Vec2
	Total       float64 // Distance from origin to destination
	Traveled    float64 // Distance covered so far
	Speed       float64 // Distance added per tick
	Delay       int     // Ticks to wait at the origin before moving
}

// NewPath creates a path between two points.
func NewPath(origin, dest Vec2, speed float64) *Path {
	return &Path{
		Origin:      origin,
		Destination: dest,
		Total:       origin.Dist(dest),
		Speed:       speed,
	}
}

// Boost raises the per-tick speed by levelFactor/1000. It is applied once at
// spawn time; paths are never rebalanced afterwards.
func (p *Path) Boost(levelFactor float64) {
	p.Speed += levelFactor / 1000
}

// Progress returns Traveled/Total, or 1 for a zero-length path.
func (p *Path) Progress() float64 {
	if p.Total <= 0 {
		return 1
	}
	return p.Traveled / p.Total
}

// Position interpolates between origin and destination.
func (p *Path) Position() Vec2 {
	return Lerp(p.Origin, p.Destination, p.Progress())
}

// Arrived reports whether the full distance has been covered.
func (p *Path) Arrived() bool {
	return p.Traveled >= p.Total
}

// Step implements Mover.
func (p *Path) Step() (Vec2, bool) {
	if p.Delay > 0 {
		p.Delay--
		return p.Origin, false
	}
	p.Traveled += p.Speed
	if p.Traveled > p.Total {
		p.Traveled = p.Total
	}
	return p.Position(), p.Arrived()
}

// Retarget starts a new leg from the current position.
func (p *Path) Retarget(dest Vec2) {
	p.Origin = p.Position()
	p.Destination = dest
	p.Total = p.Origin.Dist(dest)
	p.Traveled = 0
}

// Orbit circles a center point at a fixed radius. It never arrives.
type Orbit struct {
	Center       Vec2
	Radius       float64
	Angle        float64 // Radians
	AngularSpeed float64 // Radians per tick
}

// Position applies the orbit transform to the current angle.
func (o *Orbit) Position() Vec2 {
	return o.Center.Add(Polar(o.Angle, o.Radius))
}

// Step implements Mover.
func (o *Orbit) Step() (Vec2, bool) {
	o.Angle += o.AngularSpeed
	return o.Position(), false
}
