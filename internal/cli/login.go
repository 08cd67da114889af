package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/auth"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/ui"
)

// loginCmd verifies the credentials and the login flow without running
// the product loop.
var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Verify storefront credentials and session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, fetcher, err := newPipeline()
		if err != nil {
			return err
		}
		creds, err := auth.LoadCredentials()
		if err != nil {
			return err
		}
		verdict, err := auth.Login(cmd.Context(), fetcher.Client(), loginOptions(cfg), creds)
		if err != nil {
			return err
		}
		switch verdict {
		case auth.Confirmed:
			fmt.Println(ui.Success("login confirmed"))
		case auth.Unconfirmed:
			fmt.Println(ui.Warn("login unconfirmed: no success marker found on the check page"))
		default:
			fmt.Println(ui.Error("login " + verdict.String()))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
}
