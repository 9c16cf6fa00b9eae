package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/edgarrmondragon/citric-sub000/pkg/api"
)

// withClient opens a client from the loaded configuration, runs fn, and
// releases the session afterwards. The fn error wins over the release error.
func withClient(ctx context.Context, fn func(ctx context.Context, client *api.Client) error) error {
	cfg := GetConfig()
	if cfg == nil {
		return fmt.Errorf("no configuration loaded")
	}

	client, err := api.Connect(ctx, cfg.URL, cfg.Username, cfg.Password)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", cfg.URL, err)
	}
	defer func() {
		if closeErr := client.Close(ctx); closeErr != nil {
			errorLabel.Fprintf(os.Stderr, "Warning: releasing session: %v\n", closeErr)
		}
	}()

	return fn(ctx, client)
}
