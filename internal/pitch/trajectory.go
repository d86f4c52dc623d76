package pitch

import (
	"errors"
	"math"
)

// ErrInvalidSteps is returned by Sample for a non-positive step count.
var ErrInvalidSteps = errors.New("steps must be at least 1")

// Kinematics holds the constant-acceleration parameters of one flight.
type Kinematics struct {
	Release  Vec3 `json:"release"`
	Velocity Vec3 `json:"velocity"`
	Accel    Vec3 `json:"accel"`
}

// NewKinematics derives flight parameters from a record. The release y is
// measured from the plate: plateY + release_extension.
func NewKinematics(rec Record, plateY float64) Kinematics {
	return Kinematics{
		Release:  NewVec3(rec.ReleasePosX, plateY+rec.ReleaseExtension, rec.ReleasePosZ),
		Velocity: NewVec3(rec.VX0, rec.VY0, rec.VZ0),
		Accel:    NewVec3(rec.AX, rec.AY, rec.AZ),
	}
}

// PositionAt evaluates p0 + v0*t + 0.5*a*t² on each axis.
func (k Kinematics) PositionAt(t float64) Vec3 {
	return Vec3{
		X: k.Release.X + k.Velocity.X*t + 0.5*k.Accel.X*t*t,
		Y: k.Release.Y + k.Velocity.Y*t + 0.5*k.Accel.Y*t*t,
		Z: k.Release.Z + k.Velocity.Z*t + 0.5*k.Accel.Z*t*t,
	}
}

// VelocityAt returns v0 + a*t.
func (k Kinematics) VelocityAt(t float64) Vec3 {
	return k.Velocity.Plus(k.Accel.Times(t))
}

// Finished reports whether a flight is over at elapsed time t. The
// boundary itself is still part of the flight.
func Finished(t, duration float64) bool {
	return t > duration
}

// Sample returns steps+1 evenly spaced positions over [0, duration].
func (k Kinematics) Sample(duration float64, steps int) ([]Vec3, error) {
	if steps < 1 {
		return nil, ErrInvalidSteps
	}
	out := make([]Vec3, steps+1)
	for i := 0; i <= steps; i++ {
		t := duration * float64(i) / float64(steps)
		out[i] = k.PositionAt(t)
	}
	return out, nil
}

// TimeToPlane returns the earliest t >= 0 at which the ball's y coordinate
// equals y. ok is false if the ball never gets there.
func (k Kinematics) TimeToPlane(y float64) (t float64, ok bool) {
	a := 0.5 * k.Accel.Y
	b := k.Velocity.Y
	c := k.Release.Y - y

	if a == 0 {
		if b == 0 {
			return 0, c == 0
		}
		t = -c / b
		return t, t >= 0
	}

	discriminant := b*b - 4*a*c
	if discriminant < 0 {
		return 0, false
	}
	sqrtDisc := math.Sqrt(discriminant)
	t1 := (-b - sqrtDisc) / (2 * a)
	t2 := (-b + sqrtDisc) / (2 * a)
	if t1 > t2 {
		t1, t2 = t2, t1
	}
	switch {
	case t1 >= 0:
		return t1, true
	case t2 >= 0:
		return t2, true
	}
	return 0, false
}

// PlateCrossing returns where the ball crosses the front of the plate.
func (k Kinematics) PlateCrossing(plateY float64) (Vec3, float64, bool) {
	t, ok := k.TimeToPlane(plateY)
	if !ok {
		return Vec3{}, 0, false
	}
	return k.PositionAt(t), t, true
}
