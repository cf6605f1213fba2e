package color

// modelGamuts maps Hue model identifiers to the gamut class of their device
// generation. Compiled in; models the bridge reports that are missing here
// are treated as unconstrained and must not be gamut-adjusted.
var modelGamuts = map[string]Gamut{
	// Gamut A: LivingColors generation.
	"LST001": GamutA,
	"LLC005": GamutA,
	"LLC006": GamutA,
	"LLC007": GamutA,
	"LLC010": GamutA,
	"LLC011": GamutA,
	"LLC012": GamutA,
	"LLC013": GamutA,
	"LLC014": GamutA,

	// Gamut B: first-generation Hue bulbs.
	"LCT001": GamutB,
	"LCT002": GamutB,
	"LCT003": GamutB,
	"LCT007": GamutB,
	"LLM001": GamutB,

	// Gamut C: third-generation bulbs and Gen 2 strips.
	"LCT010": GamutC,
	"LCT011": GamutC,
	"LCT014": GamutC,
	"LCT015": GamutC,
	"LCT016": GamutC,
	"LLC020": GamutC,
	"LST002": GamutC,
}

// GamutForModel looks up the gamut for a light model identifier. The second
// return is false for unrecognized models, which carry no gamut constraint.
func GamutForModel(modelID string) (Gamut, bool) {
	g, ok := modelGamuts[modelID]
	return g, ok
}
