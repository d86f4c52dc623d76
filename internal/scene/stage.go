package scene

import "github.com/playmatatu/pitchviz/internal/pitch"

type Camera struct {
	FOV      float64    `json:"fov"`
	Near     float64    `json:"near"`
	Far      float64    `json:"far"`
	Position pitch.Vec3 `json:"position"`
	LookAt   pitch.Vec3 `json:"look_at"`
}

type LightType string

const (
	LightAmbient     LightType = "ambient"
	LightDirectional LightType = "directional"
)

type Light struct {
	Type      LightType   `json:"type"`
	Color     uint32      `json:"color"`
	Intensity float64     `json:"intensity"`
	Position  *pitch.Vec3 `json:"position,omitempty"`
}

// Stage is everything a frame draws: camera, lights and the node tree.
// PitchGroup holds the ball of the current flight; trail markers are added
// directly under Root.
type Stage struct {
	Camera     Camera
	Lights     []Light
	Root       *Node
	PitchGroup *Node
}

// Renderer draws a stage. One call per animation frame.
type Renderer interface {
	Render(s *Stage) error
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(s *Stage) error

func (f RendererFunc) Render(s *Stage) error { return f(s) }

// NewStage builds the plate-side view: camera behind the plate looking
// up the pitch axis, two lights, the strike zone and an empty pitch group.
func NewStage(plateY float64) *Stage {
	dirPos := pitch.NewVec3(0, 0, 50)
	s := &Stage{
		Camera: Camera{
			FOV:      75,
			Near:     0.1,
			Far:      1000,
			Position: pitch.NewVec3(0, plateY-4.5, 3),
			LookAt:   pitch.NewVec3(0, plateY, 3),
		},
		Lights: []Light{
			{Type: LightAmbient, Color: 0xffffff, Intensity: 0.5},
			{Type: LightDirectional, Color: 0xffffff, Intensity: 0.8, Position: &dirPos},
		},
		Root:       NewGroup("scene"),
		PitchGroup: NewGroup("pitch"),
	}
	s.Root.Add(NewStrikeZone(plateY), s.PitchGroup)
	return s
}

// NewStrikeZone returns the wireframe zone box over the plate.
func NewStrikeZone(plateY float64) *Node {
	zone := NewMesh("zone",
		Box(pitch.ZoneWidth, pitch.ZoneDepth, pitch.ZoneHeight),
		&Material{Type: MaterialBasic, Color: 0x000000, Wireframe: true})
	zone.SetPosition(pitch.NewVec3(0, plateY, pitch.ZoneCenterZ))
	return zone
}
