// Package app implements the huectl commands on top of the bridge client,
// the color core, and the local cache.
package app

import (
	"context"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/scripts-richard/huectl/internal/bridge"
	"github.com/scripts-richard/huectl/internal/config"
	"github.com/scripts-richard/huectl/internal/db"
	"github.com/scripts-richard/huectl/internal/palette"
	"github.com/scripts-richard/huectl/internal/storage"
)

// App holds the per-invocation wiring: configuration, the cache database,
// and a lazily constructed bridge client.
type App struct {
	cfg    *config.Config
	db     *db.DB
	cache  *storage.Cache
	client *bridge.Client
}

// New opens the cache and prepares an App. The bridge client is built on
// first use so palette-only commands work without a bridge.
func New(cfg *config.Config) (*App, error) {
	database, err := db.Open(cfg.Cache.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}

	return &App{
		cfg:   cfg,
		db:    database,
		cache: storage.NewCache(database.DB),
	}, nil
}

// Close releases the cache database.
func (a *App) Close() error {
	return a.db.Close()
}

// PalettePath returns the palette file location.
func (a *App) PalettePath() string {
	return a.cfg.Palette
}

// ResolveBridge returns the bridge address from config, the discovery
// cache, or a fresh network discovery, in that order.
func (a *App) ResolveBridge(ctx context.Context) (string, error) {
	if a.cfg.Bridge.Address != "" {
		return a.cfg.Bridge.Address, nil
	}

	if addr, ok := a.cache.BridgeAddress(); ok {
		return addr, nil
	}

	addr, err := bridge.Discover(ctx)
	if err != nil {
		return "", err
	}

	if err := a.cache.PutBridgeAddress(addr, a.cfg.Cache.BridgeTTL.Duration()); err != nil {
		log.Warn().Err(err).Msg("Failed to cache bridge address")
	}
	return addr, nil
}

// Client returns the bridge client, resolving address and token on first
// call.
func (a *App) Client(ctx context.Context) (*bridge.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	addr, err := a.ResolveBridge(ctx)
	if err != nil {
		return nil, err
	}

	token, err := a.cfg.ResolveToken()
	if err != nil {
		return nil, err
	}

	a.client = bridge.NewClient(addr, token, a.cfg.Bridge.Timeout.Duration())
	return a.client, nil
}

// Register pairs with the bridge and stores the issued token.
func (a *App) Register(ctx context.Context) error {
	addr, err := a.ResolveBridge(ctx)
	if err != nil {
		return err
	}

	token, err := bridge.Register(ctx, addr)
	if err != nil {
		return err
	}

	if err := a.cfg.SaveToken(token); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	log.Info().Str("file", a.cfg.Bridge.TokenFile).Msg("Token stored")
	return nil
}

// lights fetches the light inventory, via the snapshot cache when valid.
func (a *App) lights(ctx context.Context) (map[string]bridge.Light, error) {
	if cached, ok := a.cache.Lights(); ok {
		return cached, nil
	}

	client, err := a.Client(ctx)
	if err != nil {
		return nil, err
	}

	lights, err := client.GetLights(ctx)
	if err != nil {
		return nil, err
	}

	if err := a.cache.PutLights(lights, a.cfg.Cache.LightsTTL.Duration()); err != nil {
		log.Warn().Err(err).Msg("Failed to cache light snapshot")
	}
	return lights, nil
}

// selectLights resolves a light argument to one or more v1 indexes. A
// numeric-ish index matches directly; otherwise every light with that name
// matches.
func selectLights(lights map[string]bridge.Light, target string) ([]string, error) {
	if _, ok := lights[target]; ok {
		return []string{target}, nil
	}

	var ids []string
	for id, l := range lights {
		if l.Name == target {
			ids = append(ids, id)
		}
	}

	if len(ids) == 0 {
		return nil, fmt.Errorf("no light with index or name %q", target)
	}
	sort.Strings(ids)
	return ids, nil
}

// loadPalette loads the color table once for this invocation.
func (a *App) loadPalette() (palette.Palette, error) {
	return palette.Load(a.PalettePath())
}
