package bridge

// LightState mirrors the state object of the v1 lights API.
type LightState struct {
	On        bool      `json:"on"`
	Bri       uint8     `json:"bri"`
	Hue       uint16    `json:"hue"`
	Sat       uint8     `json:"sat"`
	Effect    string    `json:"effect"`
	XY        []float64 `json:"xy"`
	Ct        uint32    `json:"ct"`
	Alert     string    `json:"alert"`
	ColorMode string    `json:"colormode"`
	Reachable bool      `json:"reachable"`
}

// Light mirrors a light record of the v1 lights API. The bridge returns
// lights as a JSON object keyed by numeric index strings.
type Light struct {
	State            LightState `json:"state"`
	Type             string     `json:"type"`
	Name             string     `json:"name"`
	ModelID          string     `json:"modelid"`
	ManufacturerName string     `json:"manufacturername"`
	UniqueID         string     `json:"uniqueid"`
	SWVersion        string     `json:"swversion"`
}

// StateUpdate is a partial state write. Nil fields are omitted from the
// request body, so a color update carries exactly {"bri": .., "xy": [..]}.
type StateUpdate struct {
	On  *bool     `json:"on,omitempty"`
	Bri *uint8    `json:"bri,omitempty"`
	XY  []float64 `json:"xy,omitempty"`
}
