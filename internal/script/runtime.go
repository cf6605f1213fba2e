// Package script runs user Lua scripts against the bridge. Scripts get a
// hue module for light control, a colors module exposing the conversion
// core, and a log module.
package script

import (
	"context"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/scripts-richard/huectl/internal/bridge"
)

// Controller is the light-control surface exposed to scripts. *app.App
// implements it.
type Controller interface {
	Lights(ctx context.Context) (map[string]bridge.Light, error)
	SetColor(ctx context.Context, target, spec string) error
	Power(ctx context.Context, target string, on bool) error
}

// Run executes the script at path. The script runs top to bottom on a fresh
// Lua state and the process exits afterwards; there is no scheduler.
func Run(ctx context.Context, ctrl Controller, path string) error {
	L := lua.NewState()
	defer L.Close()
	L.SetContext(ctx)

	L.PreloadModule("hue", (&hueModule{ctx: ctx, ctrl: ctrl}).Loader)
	L.PreloadModule("colors", (&colorsModule{}).Loader)
	L.PreloadModule("log", (&logModule{}).Loader)

	if err := L.DoFile(path); err != nil {
		return fmt.Errorf("script %s failed: %w", path, err)
	}
	return nil
}
