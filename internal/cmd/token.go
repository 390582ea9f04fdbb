package cmd

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/zfogg/swipefeed/pkg/service"
)

var (
	tokenUsername  string
	tokenExpiresIn time.Duration
	tokenForce     bool
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the API token",
	Long:  "Store, inspect or remove the token sent with API requests",
}

var tokenSetCmd = &cobra.Command{
	Use:   "set [token]",
	Short: "Store an API token",
	Long:  "Store an API token. Without an argument the token is read from the terminal without echo.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		token := ""
		if len(args) == 1 {
			token = args[0]
		}
		return service.NewTokenService().Set(token, tokenUsername, tokenExpiresIn)
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API token",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewTokenService().Clear(tokenForce)
	},
}

var tokenStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which token is in use",
	RunE: func(cmd *cobra.Command, args []string) error {
		return service.NewTokenService().Status()
	},
}

func init() {
	tokenSetCmd.Flags().StringVar(&tokenUsername, "username", "", "Account the token belongs to")
	tokenSetCmd.Flags().DurationVar(&tokenExpiresIn, "expires-in", 0, "Token lifetime, e.g. 720h (default: never)")
	tokenClearCmd.Flags().BoolVarP(&tokenForce, "force", "f", false, "Skip confirmation")

	tokenCmd.AddCommand(tokenSetCmd)
	tokenCmd.AddCommand(tokenClearCmd)
	tokenCmd.AddCommand(tokenStatusCmd)
}
