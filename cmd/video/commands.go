package video

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

const commandTimeout = 30 * time.Second

// NewVideoCommand creates the main video command. A nil service makes every
// subcommand build its own from the configuration.
func NewVideoCommand(service videosvc.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "video",
		Short: "Manage videos",
		Long:  `List, search, create, import, like and unlike videos`,
	}

	cmd.AddCommand(NewListCommand(service))
	cmd.AddCommand(NewGetCommand(service))
	cmd.AddCommand(NewSearchCommand(service))
	cmd.AddCommand(NewCreateCommand(service))
	cmd.AddCommand(NewLikeCommand(service))
	cmd.AddCommand(NewUnlikeCommand(service))
	cmd.AddCommand(NewImportCommand(service))

	return cmd
}

// runWithService hands fn the provided service (for testing) or one created from the configuration
func runWithService(service videosvc.Service, fn func(ctx context.Context, svc videosvc.Service) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	if service != nil {
		return fn(ctx, service)
	}

	svc, cleanup, err := NewServiceFactory().CreateService(ctx)
	if err != nil {
		return fmt.Errorf("failed to create video service: %w", err)
	}
	defer cleanup()

	return fn(ctx, svc)
}

// parseID parses a VIDEO_ID argument
func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid video ID %q: must be an integer", arg)
	}
	return id, nil
}
