package pitch

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1e-9

func sampleRecord() Record {
	return Record{
		PitchType:        FourSeam,
		ReleasePosX:      -1,
		ReleasePosZ:      6,
		ReleaseExtension: 5.5,
		VX0:              5,
		VY0:              -130,
		VZ0:              -8,
		AX:               0,
		AY:               16,
		AZ:               0,
	}
}

func TestPositionAtReleaseIsReleasePoint(t *testing.T) {
	k := NewKinematics(sampleRecord(), PlateY)
	p := k.PositionAt(0)

	assert.InDelta(t, -1.0, p.X, tol)
	assert.InDelta(t, -55.0, p.Y, tol)
	assert.InDelta(t, 6.0, p.Z, tol)
}

func TestPositionAtMatchesWorkedExample(t *testing.T) {
	k := NewKinematics(sampleRecord(), PlateY)
	p := k.PositionAt(0.3)

	assert.InDelta(t, 0.5, p.X, tol)
	assert.InDelta(t, -93.28, p.Y, tol)
	assert.InDelta(t, 3.6, p.Z, tol)
}

func TestPositionAtClosedFormAcrossFlight(t *testing.T) {
	rec := Record{ReleasePosX: 1.2, ReleasePosZ: 5.8, ReleaseExtension: 6.4,
		VX0: -4.1, VY0: -135.2, VZ0: -5.3, AX: 9.7, AY: 28.4, AZ: -18.1}
	k := NewKinematics(rec, PlateY)

	for i := 0; i <= 45; i++ {
		tm := float64(i) / 100
		p := k.PositionAt(tm)
		assert.InDelta(t, 1.2-4.1*tm+0.5*9.7*tm*tm, p.X, tol)
		assert.InDelta(t, PlateY+6.4-135.2*tm+0.5*28.4*tm*tm, p.Y, tol)
		assert.InDelta(t, 5.8-5.3*tm-0.5*18.1*tm*tm, p.Z, tol)
	}
}

func TestFinishedIsStrictlyAfterDuration(t *testing.T) {
	assert.False(t, Finished(0, PitchDuration))
	assert.False(t, Finished(PitchDuration, PitchDuration))
	assert.True(t, Finished(PitchDuration+1e-6, PitchDuration))
}

func TestSample(t *testing.T) {
	k := NewKinematics(sampleRecord(), PlateY)

	pts, err := k.Sample(0.3, 3)
	require.NoError(t, err)
	require.Len(t, pts, 4)
	assert.Equal(t, k.PositionAt(0), pts[0])
	assert.InDelta(t, -93.28, pts[3].Y, tol)

	_, err = k.Sample(0.3, 0)
	assert.ErrorIs(t, err, ErrInvalidSteps)
}

func TestTimeToPlane(t *testing.T) {
	k := NewKinematics(sampleRecord(), PlateY)

	tm, ok := k.TimeToPlane(PlateY)
	require.True(t, ok)
	assert.InDelta(t, PlateY, k.PositionAt(tm).Y, 1e-6)
	assert.Greater(t, tm, 0.0)

	// no acceleration along y
	lin := Kinematics{Release: NewVec3(0, -10, 0), Velocity: NewVec3(0, -5, 0)}
	tm, ok = lin.TimeToPlane(-20)
	require.True(t, ok)
	assert.InDelta(t, 2.0, tm, tol)

	_, ok = lin.TimeToPlane(0)
	assert.False(t, ok, "plane behind the ball")

	// decelerating before the plane
	short := Kinematics{Release: NewVec3(0, 0, 0), Velocity: NewVec3(0, -1, 0), Accel: NewVec3(0, 10, 0)}
	_, ok = short.TimeToPlane(-5)
	assert.False(t, ok)
}

func TestRecordRejectsMissingField(t *testing.T) {
	data := []byte(`{"pitch_type":"SL","release_pos_x":1,"release_pos_z":6,"release_extension":6,
		"vx0":1,"vy0":-120,"vz0":-3,"ax":2,"ay":25}`)

	var rec Record
	err := json.Unmarshal(data, &rec)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingField))
	assert.Contains(t, err.Error(), "az")
}

func TestRecordRejectsNonNumericField(t *testing.T) {
	data := []byte(`{"pitch_type":"SL","release_pos_x":"left","release_pos_z":6,"release_extension":6,
		"vx0":1,"vy0":-120,"vz0":-3,"ax":2,"ay":25,"az":-30}`)

	var rec Record
	assert.Error(t, json.Unmarshal(data, &rec))
}

func TestColorFallsBackForUnknownType(t *testing.T) {
	assert.Equal(t, uint32(0xff0000), ColorFor("FF"))
	assert.Equal(t, uint32(0x4b0082), ColorFor("KC"))
	assert.Equal(t, DefaultColor, ColorFor("EP"))
	assert.Equal(t, DefaultColor, Record{}.Color())
	assert.Equal(t, "Slider", Name("SL"))
	assert.Equal(t, "EP", Name("EP"))
}

func TestKnownType(t *testing.T) {
	assert.True(t, KnownType(FourSeam))
	assert.True(t, KnownType(KnuckleCurve))
	assert.False(t, KnownType("EP"))
	assert.False(t, KnownType(""))
}

func TestVelocityAndDistance(t *testing.T) {
	k := NewKinematics(sampleRecord(), PlateY)

	v := k.VelocityAt(0.5)
	assert.InDelta(t, 5.0, v.X, tol)
	assert.InDelta(t, -122.0, v.Y, tol)
	assert.InDelta(t, -8.0, v.Z, tol)

	assert.InDelta(t, 5.0, NewVec3(0, 0, 0).DistanceTo(NewVec3(3, 4, 0)), tol)
	assert.InDelta(t, k.PositionAt(0.2).Minus(k.Release).Magnitude(), k.Release.DistanceTo(k.PositionAt(0.2)), tol)
}
