package scene

// Snapshot is a detached copy of a stage, safe to serialize after the
// stage has moved on.
type Snapshot struct {
	Camera Camera  `json:"camera"`
	Lights []Light `json:"lights"`
	Root   *Node   `json:"root"`
}

func (s *Stage) Snapshot() Snapshot {
	lights := make([]Light, len(s.Lights))
	copy(lights, s.Lights)
	return Snapshot{
		Camera: s.Camera,
		Lights: lights,
		Root:   s.Root.clone(),
	}
}
