package pitch

// Pitch type codes as they appear in the catalog.
const (
	FourSeam     = "FF"
	Slider       = "SL"
	Changeup     = "CH"
	Curveball    = "CU"
	Sinker       = "SI"
	KnuckleCurve = "KC"
)

// DefaultColor is used for pitch types without an entry in the table.
const DefaultColor uint32 = 0xffffff

var typeColors = map[string]uint32{
	FourSeam:     0xff0000,
	Slider:       0x0000ff,
	Changeup:     0x00ff00,
	Curveball:    0xffff00,
	Sinker:       0xffa500,
	KnuckleCurve: 0x4b0082,
}

var typeNames = map[string]string{
	FourSeam:     "Four-seam fastball",
	Slider:       "Slider",
	Changeup:     "Changeup",
	Curveball:    "Curveball",
	Sinker:       "Sinker",
	KnuckleCurve: "Knuckle curve",
}

// ColorFor maps a pitch type code to its stripe colour.
func ColorFor(code string) uint32 {
	if c, ok := typeColors[code]; ok {
		return c
	}
	return DefaultColor
}

// Name returns a readable name for code, or the code itself if unknown.
func Name(code string) string {
	if n, ok := typeNames[code]; ok {
		return n
	}
	if code == "" {
		return "Unknown"
	}
	return code
}

// KnownType reports whether code has its own colour.
func KnownType(code string) bool {
	_, ok := typeColors[code]
	return ok
}
