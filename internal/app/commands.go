package app

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/scripts-richard/huectl/internal/bridge"
	"github.com/scripts-richard/huectl/internal/color"
	"github.com/scripts-richard/huectl/internal/palette"
)

// Info prints every light with its full state.
func (a *App) Info(ctx context.Context, w io.Writer) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	ids := make([]string, 0, len(lights))
	for id := range lights {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		l := lights[id]
		fmt.Fprintf(w, "Light %s:\n", id)
		fmt.Fprintf(w, "\tName: %s\n", l.Name)
		fmt.Fprintf(w, "\tType: %s\n", l.Type)
		fmt.Fprintf(w, "\tModel ID: %s\n", l.ModelID)
		fmt.Fprintf(w, "\tManufacturer: %s\n", l.ManufacturerName)
		fmt.Fprintf(w, "\tUnique ID: %s\n", l.UniqueID)
		fmt.Fprintf(w, "\tSoftware Version: %s\n", l.SWVersion)
		fmt.Fprintf(w, "\tState:\n")
		fmt.Fprintf(w, "\t\tOn: %t\n", l.State.On)
		fmt.Fprintf(w, "\t\tBrightness: %d\n", l.State.Bri)
		fmt.Fprintf(w, "\t\tHue: %d\n", l.State.Hue)
		fmt.Fprintf(w, "\t\tSaturation: %d\n", l.State.Sat)
		fmt.Fprintf(w, "\t\tEffect: %s\n", l.State.Effect)
		if len(l.State.XY) == 2 {
			fmt.Fprintf(w, "\t\tx: %g\ty: %g\n", l.State.XY[0], l.State.XY[1])
		}
		fmt.Fprintf(w, "\t\tColor Temperature: %d\n", l.State.Ct)
		fmt.Fprintf(w, "\t\tAlert: %s\n", l.State.Alert)
		fmt.Fprintf(w, "\t\tColor Mode: %s\n", l.State.ColorMode)
		fmt.Fprintf(w, "\t\tReachable: %t\n", l.State.Reachable)
	}

	return nil
}

// Toggle drives all lights to a common power state: if any reachable light
// is on, everything turns off; otherwise everything turns on.
func (a *App) Toggle(ctx context.Context) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	client, err := a.Client(ctx)
	if err != nil {
		return err
	}

	anyOn := false
	for _, l := range lights {
		if l.State.Reachable && l.State.On {
			anyOn = true
			break
		}
	}
	target := !anyOn

	for id, l := range lights {
		if !l.State.Reachable || l.State.On == target {
			continue
		}
		if err := client.SetPower(ctx, id, target); err != nil {
			return err
		}
	}

	a.cache.Invalidate()
	log.Info().Bool("on", target).Msg("Toggled lights")
	return nil
}

// SetColor sets one light, selected by index or name, to a palette color or
// #rrggbb literal.
func (a *App) SetColor(ctx context.Context, target, spec string) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	ids, err := selectLights(lights, target)
	if err != nil {
		return err
	}

	return a.applyColor(ctx, lights, ids, spec)
}

// SetAll sets every reachable light to the given color.
func (a *App) SetAll(ctx context.Context, spec string) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	var ids []string
	for id, l := range lights {
		if l.State.Reachable {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	return a.applyColor(ctx, lights, ids, spec)
}

// applyColor converts the requested color to the device color space once per
// light, constraining it to the light model's gamut when the model is known.
func (a *App) applyColor(ctx context.Context, lights map[string]bridge.Light, ids []string, spec string) error {
	colors, err := a.loadPalette()
	if err != nil {
		return err
	}

	rgb, err := colors.Resolve(spec)
	if err != nil {
		return err
	}

	client, err := a.Client(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		xy := color.XYFromRGB(rgb)
		if g, ok := color.GamutForModel(lights[id].ModelID); ok {
			color.AdjustForGamut(&xy, g)
		}

		bri := xy.Bri
		update := bridge.StateUpdate{
			Bri: &bri,
			XY:  []float64{xy.X, xy.Y},
		}
		if err := client.SetState(ctx, id, update); err != nil {
			return err
		}

		log.Info().
			Str("light", id).
			Str("color", spec).
			Float64("x", xy.X).
			Float64("y", xy.Y).
			Uint8("bri", bri).
			Msg("Set light color")
	}

	a.cache.Invalidate()
	return nil
}

// Lights returns the current light inventory keyed by v1 index.
func (a *App) Lights(ctx context.Context) (map[string]bridge.Light, error) {
	return a.lights(ctx)
}

// Power switches a light, selected by index or name, on or off.
func (a *App) Power(ctx context.Context, target string, on bool) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	ids, err := selectLights(lights, target)
	if err != nil {
		return err
	}

	client, err := a.Client(ctx)
	if err != nil {
		return err
	}

	for _, id := range ids {
		if err := client.SetPower(ctx, id, on); err != nil {
			return err
		}
	}

	a.cache.Invalidate()
	return nil
}

// Rename changes a light's name.
func (a *App) Rename(ctx context.Context, target, name string) error {
	lights, err := a.lights(ctx)
	if err != nil {
		return err
	}

	ids, err := selectLights(lights, target)
	if err != nil {
		return err
	}
	if len(ids) > 1 {
		return fmt.Errorf("%q matches %d lights, rename them by index", target, len(ids))
	}

	client, err := a.Client(ctx)
	if err != nil {
		return err
	}

	if err := client.Rename(ctx, ids[0], name); err != nil {
		return err
	}

	a.cache.Invalidate()
	return nil
}

// ColorsList prints the palette, one name and hex value per line.
func (a *App) ColorsList(w io.Writer) error {
	colors, err := a.loadPalette()
	if err != nil {
		return err
	}

	for _, name := range colors.Names() {
		c := colors[name]
		fmt.Fprintf(w, "%s\t#%02x%02x%02x\n", name, c.R, c.G, c.B)
	}
	return nil
}

// ColorsSet adds or replaces a palette entry.
func (a *App) ColorsSet(name, hex string) error {
	colors, err := a.loadPalette()
	if err != nil {
		return err
	}

	rgb, err := palette.ParseHex(hex)
	if err != nil {
		return err
	}

	colors[name] = rgb
	return colors.Save(a.PalettePath())
}

// ColorsRemove deletes a palette entry.
func (a *App) ColorsRemove(name string) error {
	colors, err := a.loadPalette()
	if err != nil {
		return err
	}

	if _, ok := colors[name]; !ok {
		return fmt.Errorf("color %q is not in the palette", name)
	}

	delete(colors, name)
	return colors.Save(a.PalettePath())
}
