package video

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidlike/internal/model"
	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

// NewListCommand creates the list videos command
func NewListCommand(service videosvc.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				videos, err := svc.ListVideos(ctx)
				if err != nil {
					return fmt.Errorf("failed to list videos: %w", err)
				}
				return printVideos(cmd, videos)
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

// NewGetCommand creates the get video command
func NewGetCommand(service videosvc.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get [VIDEO_ID]",
		Short: "Get a video",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				video, err := svc.GetVideo(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get video: %w", err)
				}
				return printVideo(cmd, video)
			})
		},
	}
	addFormatFlag(cmd)
	return cmd
}

// NewSearchCommand creates the search command with its title and duration subcommands
func NewSearchCommand(service videosvc.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search videos by title or duration",
	}

	byTitle := &cobra.Command{
		Use:   "title [NAME]",
		Short: "Find videos whose name equals NAME",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				videos, err := svc.SearchByTitle(ctx, args[0])
				if err != nil {
					return fmt.Errorf("failed to search videos: %w", err)
				}
				return printVideos(cmd, videos)
			})
		},
	}
	addFormatFlag(byTitle)

	byDuration := &cobra.Command{
		Use:   "duration [SECONDS]",
		Short: "Find videos shorter than SECONDS",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			duration, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid duration %q: must be an integer", args[0])
			}

			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				videos, err := svc.SearchByDurationLessThan(ctx, duration)
				if err != nil {
					return fmt.Errorf("failed to search videos: %w", err)
				}
				return printVideos(cmd, videos)
			})
		},
	}
	addFormatFlag(byDuration)

	cmd.AddCommand(byTitle)
	cmd.AddCommand(byDuration)
	return cmd
}

func addFormatFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "json", "Output format (json, text)")
}

func formatterFor(cmd *cobra.Command) (Formatter, error) {
	format, _ := cmd.Flags().GetString("format")
	return GetFormatter(format)
}

func printVideo(cmd *cobra.Command, video *model.Video) error {
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}

	output, err := formatter.FormatVideo(video)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}

func printVideos(cmd *cobra.Command, videos []*model.Video) error {
	formatter, err := formatterFor(cmd)
	if err != nil {
		return err
	}

	output, err := formatter.FormatVideos(videos)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
