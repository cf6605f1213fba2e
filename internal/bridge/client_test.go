package bridge

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

const lightsFixture = `{
	"1": {
		"state": {
			"on": true, "bri": 254, "hue": 14956, "sat": 140,
			"effect": "none", "xy": [0.4571, 0.4097], "ct": 366,
			"alert": "none", "colormode": "ct", "reachable": true
		},
		"type": "Extended color light",
		"name": "Sinnerlig",
		"modelid": "LCT003",
		"manufacturername": "Philips",
		"uniqueid": "00:17:88:01:00:f1:01:17-0b",
		"swversion": "5.50.1.19085"
	},
	"2": {
		"state": {
			"on": false, "bri": 100, "hue": 0, "sat": 0,
			"effect": "none", "xy": [0.3227, 0.3290], "ct": 153,
			"alert": "none", "colormode": "xy", "reachable": false
		},
		"type": "Color light",
		"name": "Desk",
		"modelid": "LST001",
		"manufacturername": "Philips",
		"uniqueid": "00:17:88:01:00:f1:01:18-0b",
		"swversion": "5.50.1.19085"
	}
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	addr := strings.TrimPrefix(srv.URL, "http://")
	return NewClient(addr, "testtoken", 5*time.Second)
}

func TestGetLights(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/testtoken/lights" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(lightsFixture))
	})

	lights, err := c.GetLights(context.Background())
	if err != nil {
		t.Fatalf("GetLights: %v", err)
	}

	if len(lights) != 2 {
		t.Fatalf("got %d lights, want 2", len(lights))
	}

	l := lights["1"]
	if l.Name != "Sinnerlig" || l.ModelID != "LCT003" {
		t.Errorf("light 1 = %q model %q", l.Name, l.ModelID)
	}
	if !l.State.On || !l.State.Reachable {
		t.Errorf("light 1 state = %+v, want on and reachable", l.State)
	}
	if lights["2"].State.Reachable {
		t.Error("light 2 should be unreachable")
	}
}

func TestSetState_Payload(t *testing.T) {
	var gotPath string
	var gotBody map[string]any

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode body: %v", err)
		}
		w.Write([]byte(`[{"success": {"/lights/1/state/bri": 32}}]`))
	})

	bri := uint8(32)
	err := c.SetState(context.Background(), "1", StateUpdate{
		Bri: &bri,
		XY:  []float64{0.3227, 0.3290},
	})
	if err != nil {
		t.Fatalf("SetState: %v", err)
	}

	if gotPath != "/api/testtoken/lights/1/state" {
		t.Errorf("path = %s", gotPath)
	}
	if _, ok := gotBody["on"]; ok {
		t.Error("payload should not carry an on field")
	}
	if gotBody["bri"] != float64(32) {
		t.Errorf("bri = %v, want 32", gotBody["bri"])
	}
	xy, ok := gotBody["xy"].([]any)
	if !ok || len(xy) != 2 {
		t.Fatalf("xy = %v, want two-element array", gotBody["xy"])
	}
}

func TestSetState_BridgeError(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"error": {"type": 3, "address": "/lights/9", "description": "resource, /lights/9, not available"}}]`))
	})

	err := c.SetPower(context.Background(), "9", true)
	if err == nil || !strings.Contains(err.Error(), "not available") {
		t.Fatalf("err = %v, want bridge error", err)
	}
}

func TestRename(t *testing.T) {
	var gotBody map[string]string

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "PUT" || r.URL.Path != "/api/testtoken/lights/2" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`[{"success": {"/lights/2/name": "Shelf"}}]`))
	})

	if err := c.Rename(context.Background(), "2", "Shelf"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if gotBody["name"] != "Shelf" {
		t.Errorf("name = %q, want Shelf", gotBody["name"])
	}
}
