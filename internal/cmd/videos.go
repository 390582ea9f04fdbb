package cmd

import (
	"github.com/spf13/cobra"
	"github.com/zfogg/swipefeed/pkg/feed"
	"github.com/zfogg/swipefeed/pkg/service"
)

var pageNumber int

var pageCmd = &cobra.Command{
	Use:   "page",
	Short: "Print one page of the feed",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewVideoService(service.NewBackend(offline))
		return svc.ShowPage(cmd.Context(), pageNumber)
	},
}

var videoCmd = &cobra.Command{
	Use:   "video <video-id>",
	Short: "Print a single video",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc := service.NewVideoService(service.NewBackend(offline))
		return svc.ShowVideo(cmd.Context(), args[0])
	},
}

var likeCmd = interactionCmd(feed.KindLike, "Like a video")
var unlikeCmd = interactionCmd(feed.KindUnlike, "Remove a like")
var shareCmd = interactionCmd(feed.KindShare, "Record a share")
var commentCmd = interactionCmd(feed.KindComment, "Record a comment")

func interactionCmd(kind feed.InteractionKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind) + " <video-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc := service.NewVideoService(service.NewBackend(offline))
			return svc.Interact(cmd.Context(), kind, args[0])
		},
	}
}

func init() {
	pageCmd.Flags().IntVar(&pageNumber, "page", 1, "Page number")
}
