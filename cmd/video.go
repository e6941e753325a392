package cmd

import (
	videocmd "github.com/Taichi-iskw/vidlike/cmd/video"
)

func init() {
	// nil service: each subcommand builds one from the configuration
	rootCmd.AddCommand(videocmd.NewVideoCommand(nil))
}
