package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/monitor"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/notify"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/snapshot"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/store"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/ui"
)

var (
	dryRun       bool
	showProgress bool
)

// runCmd performs one full monitoring pass.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Check every configured product and notify about changes",
	Long: `Run performs one full monitoring pass: login, fetch each product page in
configuration order, compare against the stored snapshots and deliver a
single aggregate Discord message. State is persisted once, after all
products were processed.`,
	Example: `  # Normal scheduled invocation
  mauser-monitor run

  # Inspect what would change without persisting or notifying
  mauser-monitor run --dry-run -v`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Do not save state or send the notification")
	runCmd.Flags().BoolVar(&showProgress, "progress", false, "Show a progress bar over the products")
}

func runRun(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, fetcher, err := newPipeline()
	if err != nil {
		return err
	}
	rules, err := monitor.RulesFromConfig(cfg)
	if err != nil {
		return err
	}
	if err := ensureLogin(ctx, cfg, fetcher); err != nil {
		return err
	}

	st, err := store.Open(statePath)
	if err != nil {
		return err
	}

	m := monitor.New(fetcher, st, notify.NewDiscord(os.Getenv(notify.EnvWebhookURL)), rules)
	m.DryRun = dryRun
	if showProgress {
		bar := progressbar.Default(int64(len(rules)), "checking products")
		m.OnProduct = func(snapshot.ProductRule) { _ = bar.Add(1) }
	}

	report, err := m.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("%s %d products checked, %d changed, %d failed\n",
		ui.Success("✓"), report.Checked, report.Changed, report.Failed)
	if dryRun {
		fmt.Println(ui.Dim("dry run, message that would have been sent:"))
		fmt.Println(report.Message)
	}
	return nil
}
