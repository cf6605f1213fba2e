package script

import (
	"context"

	"github.com/rs/zerolog/log"
	lua "github.com/yuin/gopher-lua"

	"github.com/scripts-richard/huectl/internal/color"
)

// hueModule provides light control functions to Lua
type hueModule struct {
	ctx  context.Context
	ctrl Controller
}

// Loader is the module loader for Lua
func (m *hueModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "lights", L.NewFunction(m.lights))
	L.SetField(mod, "set_color", L.NewFunction(m.setColor))
	L.SetField(mod, "on", L.NewFunction(m.on))
	L.SetField(mod, "off", L.NewFunction(m.off))

	L.Push(mod)
	return 1
}

func (m *hueModule) lights(L *lua.LState) int {
	lights, err := m.ctrl.Lights(m.ctx)
	if err != nil {
		L.RaiseError("hue.lights: %v", err)
		return 0
	}

	result := L.NewTable()
	for id, l := range lights {
		entry := L.NewTable()
		L.SetField(entry, "id", lua.LString(id))
		L.SetField(entry, "name", lua.LString(l.Name))
		L.SetField(entry, "model", lua.LString(l.ModelID))
		L.SetField(entry, "on", lua.LBool(l.State.On))
		L.SetField(entry, "bri", lua.LNumber(l.State.Bri))
		L.SetField(entry, "reachable", lua.LBool(l.State.Reachable))
		result.Append(entry)
	}

	L.Push(result)
	return 1
}

func (m *hueModule) setColor(L *lua.LState) int {
	target := L.CheckString(1)
	spec := L.CheckString(2)

	if err := m.ctrl.SetColor(m.ctx, target, spec); err != nil {
		L.RaiseError("hue.set_color: %v", err)
	}
	return 0
}

func (m *hueModule) on(L *lua.LState) int {
	target := L.CheckString(1)
	if err := m.ctrl.Power(m.ctx, target, true); err != nil {
		L.RaiseError("hue.on: %v", err)
	}
	return 0
}

func (m *hueModule) off(L *lua.LState) int {
	target := L.CheckString(1)
	if err := m.ctrl.Power(m.ctx, target, false); err != nil {
		L.RaiseError("hue.off: %v", err)
	}
	return 0
}

// colorsModule exposes the conversion core to Lua
type colorsModule struct{}

// Loader is the module loader for Lua
func (m *colorsModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "rgb_to_xy", L.NewFunction(m.rgbToXY))
	L.SetField(mod, "xy_to_rgb", L.NewFunction(m.xyToRGB))

	L.Push(mod)
	return 1
}

func (m *colorsModule) rgbToXY(L *lua.LState) int {
	r := L.CheckInt(1)
	g := L.CheckInt(2)
	b := L.CheckInt(3)

	xy := color.XYFromRGB(color.RGB{R: uint8(r), G: uint8(g), B: uint8(b)})

	result := L.NewTable()
	L.SetField(result, "x", lua.LNumber(xy.X))
	L.SetField(result, "y", lua.LNumber(xy.Y))
	L.SetField(result, "bri", lua.LNumber(xy.Bri))

	L.Push(result)
	return 1
}

func (m *colorsModule) xyToRGB(L *lua.LState) int {
	x := L.CheckNumber(1)
	y := L.CheckNumber(2)
	bri := L.CheckInt(3)

	rgb, err := color.RGBFromXY(color.XY{X: float64(x), Y: float64(y), Bri: uint8(bri)})
	if err != nil {
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
		return 2
	}

	L.Push(lua.LNumber(rgb.R))
	L.Push(lua.LNumber(rgb.G))
	L.Push(lua.LNumber(rgb.B))
	return 3
}

// logModule provides logging functions to Lua
type logModule struct{}

// Loader is the module loader for Lua
func (m *logModule) Loader(L *lua.LState) int {
	mod := L.NewTable()

	L.SetField(mod, "debug", L.NewFunction(m.debug))
	L.SetField(mod, "info", L.NewFunction(m.info))
	L.SetField(mod, "warn", L.NewFunction(m.warn))
	L.SetField(mod, "error", L.NewFunction(m.errorLog))

	L.Push(mod)
	return 1
}

func (m *logModule) debug(L *lua.LState) int {
	log.Debug().Str("source", "script").Msg(L.CheckString(1))
	return 0
}

func (m *logModule) info(L *lua.LState) int {
	log.Info().Str("source", "script").Msg(L.CheckString(1))
	return 0
}

func (m *logModule) warn(L *lua.LState) int {
	log.Warn().Str("source", "script").Msg(L.CheckString(1))
	return 0
}

func (m *logModule) errorLog(L *lua.LState) int {
	log.Error().Str("source", "script").Msg(L.CheckString(1))
	return 0
}
