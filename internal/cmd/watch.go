package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/zfogg/swipefeed/internal/tui"
	"github.com/zfogg/swipefeed/pkg/config"
	clierrors "github.com/zfogg/swipefeed/pkg/errors"
	"github.com/zfogg/swipefeed/pkg/service"
	"golang.org/x/term"
)

var watchLive bool

var watchCmd = &cobra.Command{
	Use:   "watch [video-id]",
	Short: "Swipe through the video feed",
	Long: `Open the feed full screen. With a video id the feed starts at that
video and continues with the main feed after it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return clierrors.ValidationError("stdout", "watch needs an interactive terminal")
		}

		opts := tui.Options{
			Backend: service.NewBackend(offline),
			Live:    (watchLive || config.GetBool("live.enabled")) && !offline,
		}
		if len(args) == 1 {
			opts.TargetID = args[0]
		}
		return tui.Run(opts)
	},
}

func init() {
	watchCmd.Flags().BoolVar(&watchLive, "live", false, "Receive live counter updates over the websocket")
}
