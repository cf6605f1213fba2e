package script

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/scripts-richard/huectl/internal/bridge"
)

// fakeController records calls made by scripts.
type fakeController struct {
	lights   map[string]bridge.Light
	setCalls []string
	powered  map[string]bool
}

func (f *fakeController) Lights(ctx context.Context) (map[string]bridge.Light, error) {
	return f.lights, nil
}

func (f *fakeController) SetColor(ctx context.Context, target, spec string) error {
	f.setCalls = append(f.setCalls, target+"="+spec)
	return nil
}

func (f *fakeController) Power(ctx context.Context, target string, on bool) error {
	if f.powered == nil {
		f.powered = map[string]bool{}
	}
	f.powered[target] = on
	return nil
}

func runScript(t *testing.T, ctrl Controller, body string) error {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.lua")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return Run(context.Background(), ctrl, path)
}

func TestRun_HueModule(t *testing.T) {
	ctrl := &fakeController{
		lights: map[string]bridge.Light{
			"1": {Name: "Desk", ModelID: "LCT001", State: bridge.LightState{On: true, Reachable: true}},
		},
	}

	err := runScript(t, ctrl, `
		local hue = require("hue")

		for _, light in ipairs(hue.lights()) do
			if light.on then
				hue.set_color(light.id, "#ff0000")
				hue.off(light.id)
			end
		end
	`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(ctrl.setCalls) != 1 || ctrl.setCalls[0] != "1=#ff0000" {
		t.Errorf("setCalls = %v", ctrl.setCalls)
	}
	if on, ok := ctrl.powered["1"]; !ok || on {
		t.Errorf("powered = %v, want light 1 off", ctrl.powered)
	}
}

func TestRun_ColorsModule(t *testing.T) {
	err := runScript(t, &fakeController{}, `
		local colors = require("colors")

		local xy = colors.rgb_to_xy(100, 100, 100)
		assert(math.abs(xy.x - 0.3227) < 0.001, "x was " .. xy.x)
		assert(math.abs(xy.y - 0.3290) < 0.001, "y was " .. xy.y)
		assert(xy.bri == 32, "bri was " .. xy.bri)

		local r, g, b = colors.xy_to_rgb(xy.x, xy.y, xy.bri)
		assert(math.abs(r - 100) <= 2, "r was " .. r)

		local bad, err = colors.xy_to_rgb(0.5, 0, 100)
		assert(bad == nil and err ~= nil, "y=0 should fail")
	`)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
}

func TestRun_ScriptError(t *testing.T) {
	err := runScript(t, &fakeController{}, `error("boom")`)
	if err == nil {
		t.Fatal("script error should propagate")
	}
}
