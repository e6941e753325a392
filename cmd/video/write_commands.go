package video

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Taichi-iskw/vidlike/internal/model"
	videosvc "github.com/Taichi-iskw/vidlike/internal/service/video"
)

// NewCreateCommand creates the create video command
func NewCreateCommand(service videosvc.Service) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a video",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			duration, _ := cmd.Flags().GetInt64("duration")

			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				video, err := svc.CreateVideo(ctx, &model.Video{Name: name, Duration: duration})
				if err != nil {
					return fmt.Errorf("failed to create video: %w", err)
				}
				return printVideo(cmd, video)
			})
		},
	}

	cmd.Flags().String("name", "", "Video name")
	cmd.Flags().Int64("duration", 0, "Duration in seconds")
	_ = cmd.MarkFlagRequired("name")
	addFormatFlag(cmd)

	return cmd
}

// NewLikeCommand creates the like command
func NewLikeCommand(service videosvc.Service) *cobra.Command {
	return newToggleCommand(service, "like", "Like a video as USER", func(svc videosvc.Service) func(context.Context, int64, string) error {
		return svc.LikeVideo
	})
}

// NewUnlikeCommand creates the unlike command
func NewUnlikeCommand(service videosvc.Service) *cobra.Command {
	return newToggleCommand(service, "unlike", "Withdraw USER's like from a video", func(svc videosvc.Service) func(context.Context, int64, string) error {
		return svc.UnlikeVideo
	})
}

func newToggleCommand(
	service videosvc.Service,
	action string,
	short string,
	op func(svc videosvc.Service) func(ctx context.Context, id int64, username string) error,
) *cobra.Command {
	cmd := &cobra.Command{
		Use:   action + " [VIDEO_ID]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			user, _ := cmd.Flags().GetString("user")

			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				if err := op(svc)(ctx, id, user); err != nil {
					return fmt.Errorf("failed to %s video: %w", action, err)
				}

				video, err := svc.GetVideo(ctx, id)
				if err != nil {
					return fmt.Errorf("failed to get video: %w", err)
				}
				return printVideo(cmd, video)
			})
		},
	}

	cmd.Flags().StringP("user", "u", "", "Username acting on the video")
	_ = cmd.MarkFlagRequired("user")
	addFormatFlag(cmd)

	return cmd
}

// NewImportCommand creates the import command
func NewImportCommand(service videosvc.Service) *cobra.Command {
	return &cobra.Command{
		Use:   "import [FILE]",
		Short: "Import videos from a JSON array file",
		Long:  `Import videos from a JSON file holding an array of videos. Ids and likes in the file are ignored.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}

			var videos []*model.Video
			if err := json.Unmarshal(data, &videos); err != nil {
				return fmt.Errorf("failed to parse %s: %w", args[0], err)
			}

			return runWithService(service, func(ctx context.Context, svc videosvc.Service) error {
				count, err := svc.ImportVideos(ctx, videos)
				if err != nil {
					return fmt.Errorf("failed to import videos: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d video(s) imported successfully\n", count)
				return nil
			})
		},
	}
}
