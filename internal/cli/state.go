package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/store"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/ui"
)

var clearAll bool

var stateCmd = &cobra.Command{
	Use:   "state",
	Short: "Inspect or prune the persisted snapshots",
}

// stateListCmd prints every stored snapshot. Entries for products no
// longer in the configuration show up here too; that is where "state
// clear" comes in.
var stateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the stored snapshot per product URL",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		st, err := store.Open(statePath)
		if err != nil {
			return err
		}
		if st.Len() == 0 {
			fmt.Println(ui.Dim("state is empty"))
			return nil
		}
		for _, url := range st.URLs() {
			snap, _ := st.Get(url)
			fmt.Printf("%s\n%s\n", ui.Bold(snap.Name), ui.Dim(url))
			fmt.Printf("  price: %s  raw: %s  stock: %s\n",
				fmtPrice(snap), fmtOptional(snap.RawPrice), fmtOptional(snap.Stock))
		}
		return nil
	},
}

var stateClearCmd = &cobra.Command{
	Use:   "clear [url]",
	Short: "Remove one stored snapshot, or all with --all",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		if clearAll && len(args) > 0 {
			return fmt.Errorf("--all does not take a URL")
		}
		if !clearAll && len(args) == 0 {
			return fmt.Errorf("pass a product URL or --all")
		}
		st, err := store.Open(statePath)
		if err != nil {
			return err
		}
		if clearAll {
			n := st.Len()
			st.Clear()
			fmt.Printf("%s %d entries removed\n", ui.Success("✓"), n)
		} else {
			if !st.Delete(args[0]) {
				return fmt.Errorf("no entry for %s", args[0])
			}
			fmt.Printf("%s entry removed\n", ui.Success("✓"))
		}
		return st.Save()
	},
}

func init() {
	rootCmd.AddCommand(stateCmd)
	stateCmd.AddCommand(stateListCmd)
	stateCmd.AddCommand(stateClearCmd)

	stateClearCmd.Flags().BoolVar(&clearAll, "all", false, "Remove every stored snapshot")
}
