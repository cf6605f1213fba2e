package bridge

import (
	"context"
	"fmt"
	"os"

	"github.com/amimof/huego"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Discover locates a bridge on the local network and returns its address.
func Discover(ctx context.Context) (string, error) {
	b, err := huego.DiscoverContext(ctx)
	if err != nil {
		return "", fmt.Errorf("bridge discovery failed: %w", err)
	}

	log.Info().Str("address", b.Host).Str("id", b.ID).Msg("Discovered bridge")
	return b.Host, nil
}

// Register creates an API user on the bridge at host. The bridge's link
// button must have been pressed within the last 30 seconds. Returns the new
// token.
func Register(ctx context.Context, host string) (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	// Devicetype must be unique per installation or the bridge reuses the
	// previous whitelist entry.
	devicetype := fmt.Sprintf("huectl#%s-%s", hostname, uuid.NewString()[:8])

	b := huego.New(host, "")
	token, err := b.CreateUserContext(ctx, devicetype)
	if err != nil {
		return "", fmt.Errorf("failed to register with bridge (press the link button first): %w", err)
	}

	log.Info().Str("devicetype", devicetype).Msg("Registered with bridge")
	return token, nil
}
