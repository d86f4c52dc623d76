package pitch

// Scene constants shared by the trajectory model and the scene builders.
// The browser renderer uses the same values; keep them in sync.

const (
	// PlateY is the y coordinate of the front of home plate. A pitch's
	// release y is PlateY + release_extension.
	PlateY = -60.5

	// PitchDuration is the elapsed time after which a flight is finished.
	PitchDuration = 0.45

	BallRadius         = 0.145
	BallSegments       = 32
	StripeScaleX       = 0.5
	StripeOffsetX      = 0.0725
	TrailMarkerRadius  = 0.02
	TrailMarkerSegment = 8
	TrailMarkerColor   = 0x888888

	// Strike zone box, centred over the plate.
	ZoneWidth   = 1.5
	ZoneDepth   = 0.01
	ZoneHeight  = 2.0
	ZoneCenterZ = 3.0
)
