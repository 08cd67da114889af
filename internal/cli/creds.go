package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/auth"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/ui"
)

var credsCmd = &cobra.Command{
	Use:   "creds",
	Short: "Manage supplier credentials in the OS keyring",
	Long: `Credentials are read from ` + auth.EnvUsername + ` and ` + auth.EnvPassword + `
first; the keyring is the fallback for machines where exporting them per
run is inconvenient.`,
}

var credsSetCmd = &cobra.Command{
	Use:   "set <username>",
	Short: "Store the supplier account in the OS keyring",
	Args:  cobra.ExactArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		fmt.Fprint(os.Stderr, "Password: ")
		pass, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return fmt.Errorf("read password: %w", err)
		}
		if len(pass) == 0 {
			return fmt.Errorf("password must not be empty")
		}
		if err := auth.StoreCredentials(auth.Credentials{
			Username: args[0],
			Password: string(pass),
		}); err != nil {
			return err
		}
		fmt.Printf("%s credentials stored for %s\n", ui.Success("✓"), args[0])
		return nil
	},
}

var credsClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored credentials from the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := auth.ClearCredentials(); err != nil {
			return err
		}
		fmt.Printf("%s credentials cleared\n", ui.Success("✓"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(credsCmd)
	credsCmd.AddCommand(credsSetCmd)
	credsCmd.AddCommand(credsClearCmd)
}
