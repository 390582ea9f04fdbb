package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zfogg/swipefeed/pkg/client"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/credentials"
	clierrors "github.com/zfogg/swipefeed/pkg/errors"
	"github.com/zfogg/swipefeed/pkg/logger"
	"github.com/zfogg/swipefeed/pkg/output"
)

var (
	verbose    bool
	configPath string
	outputFmt  string
	offline    bool
)

var rootCmd = &cobra.Command{
	Use:   "swipefeed",
	Short: "swipefeed - Swipe through short videos from the terminal",
	Long: `swipefeed is a terminal client for a short-video feed. Swipe,
scroll or use the arrow keys to move through videos one at a time,
and like, share or comment without leaving the feed.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Initialize config and logger
		if err := config.Init(configPath); err != nil {
			return fmt.Errorf("initializing config: %w", err)
		}

		logger.Init(verbose)

		if !output.ValidateOutputFormat(outputFmt) {
			return clierrors.ValidationError("output", "must be one of text, json, table")
		}
		config.Set("output.format", outputFmt)

		if token := credentials.Token(); token != "" {
			client.SetAuthToken(token)
		}
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, clierrors.FormatError(err))
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file (default: ~/.config/swipefeed/config.toml)")
	rootCmd.PersistentFlags().StringVar(&outputFmt, "output", "text", "Output format: text, json, table")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Use the built-in demo catalog instead of the API")

	// Add subcommands
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(likeCmd)
	rootCmd.AddCommand(unlikeCmd)
	rootCmd.AddCommand(shareCmd)
	rootCmd.AddCommand(commentCmd)
	rootCmd.AddCommand(tokenCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(completionCmd)
}
