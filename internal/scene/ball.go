package scene

import (
	"math"

	"github.com/playmatatu/pitchviz/internal/pitch"
)

// NewBall builds the two-tone ball for a pitch type: a white sphere turned
// a quarter around Y, and a half-width stripe in the pitch type's colour
// pushed to one side.
func NewBall(pitchType string) *Node {
	ball := NewGroup("ball")

	half := NewMesh("ball-half",
		Sphere(pitch.BallRadius, pitch.BallSegments, pitch.BallSegments),
		&Material{Type: MaterialStandard, Color: 0xffffff})
	half.Rotation.Y = math.Pi / 2

	stripe := NewMesh("ball-stripe",
		Sphere(pitch.BallRadius, pitch.BallSegments, pitch.BallSegments),
		&Material{Type: MaterialStandard, Color: pitch.ColorFor(pitchType)})
	stripe.Scale.X = pitch.StripeScaleX
	stripe.Position.X = pitch.StripeOffsetX

	ball.Add(half, stripe)
	return ball
}

// NewTrailMarker returns a small grey dot at p.
func NewTrailMarker(p pitch.Vec3) *Node {
	dot := NewMesh("trail",
		Sphere(pitch.TrailMarkerRadius, pitch.TrailMarkerSegment, pitch.TrailMarkerSegment),
		&Material{Type: MaterialBasic, Color: pitch.TrailMarkerColor})
	dot.SetPosition(p)
	return dot
}
