package game

// Sprite is the render data for one shown entity.
type Sprite struct {
	Kind    string    `json:"kind" jsonschema:"description=Entity category such as asteroid or explosion"`
	Name    string    `json:"name"`
	X       float64   `json:"x"`
	Y       float64   `json:"y"`
	Radius  float64   `json:"radius"`
	Active  bool      `json:"active" jsonschema:"description=False for destroyed installations awaiting regeneration"`
	Opacity float64   `json:"opacity" jsonschema:"minimum=0,maximum=1"`
	Angle   float64   `json:"angle,omitempty"`
	Outline []float64 `json:"outline,omitempty" jsonschema:"description=Vertex distances of an irregular polygon starting at angle"`
}

// HUD carries the values shown around the play field.
type HUD struct {
	Score           int        `json:"score"`
	Level           int        `json:"level"`
	Difficulty      int        `json:"difficulty"`
	ShieldRaised    bool       `json:"shieldRaised"`
	ShieldEnergy    float64    `json:"shieldEnergy"`
	SatelliteEnergy [4]float64 `json:"satelliteEnergy"`
	Bases           [4]bool    `json:"bases" jsonschema:"description=True while the base is alive"`
	Satellites      [4]bool    `json:"satellites" jsonschema:"description=True while the satellite is alive"`
	Asteroids       int        `json:"asteroids"`
	Saucers         int        `json:"saucers"`
	Drones          int        `json:"drones"`
	Forbidden       bool       `json:"forbidden" jsonschema:"description=The reticle is inside the shield and cannot fire"`
}

// Snapshot is an immutable view of a session after a tick.
type Snapshot struct {
	Tick     uint64   `json:"tick"`
	Sprites  []Sprite `json:"sprites"`
	ReticleX float64  `json:"reticleX"`
	ReticleY float64  `json:"reticleY"`
	HUD      HUD      `json:"hud"`
	SaveCode string   `json:"saveCode" jsonschema:"pattern=^E[0-9A-F]{6}7[0-9A-F]{6}A[0-9A-F]$"`
	GameOver bool     `json:"gameOver"`
}
