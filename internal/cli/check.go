package cli

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/monitor"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/snapshot"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/ui"
)

// checkCmd snapshots a single product without touching state, for
// diagnosing extraction drift when a page layout changes.
var checkCmd = &cobra.Command{
	Use:   "check <url|name>",
	Short: "Snapshot a single product without touching state",
	Example: `  mauser-monitor check https://mauser.pt/p/racao-10kg
  mauser-monitor check "Ração 10kg"`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, fetcher, err := newPipeline()
	if err != nil {
		return err
	}
	rules, err := monitor.RulesFromConfig(cfg)
	if err != nil {
		return err
	}

	var rule *snapshot.ProductRule
	for i := range rules {
		if rules[i].URL == args[0] || rules[i].Name == args[0] {
			rule = &rules[i]
			break
		}
	}
	if rule == nil {
		return fmt.Errorf("no configured product matches %q", args[0])
	}

	if err := ensureLogin(ctx, cfg, fetcher); err != nil {
		return err
	}

	html, err := fetcher.Fetch(ctx, rule.URL)
	if err != nil {
		return err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return fmt.Errorf("parse page: %w", err)
	}
	snap := snapshot.Take(doc, html, *rule)

	fmt.Printf("%s\n%s\n", ui.Bold(snap.Name), ui.Dim(snap.URL))
	fmt.Printf("  price:     %s\n", fmtPrice(snap))
	fmt.Printf("  raw price: %s\n", fmtOptional(snap.RawPrice))
	fmt.Printf("  stock:     %s\n", fmtOptional(snap.Stock))
	return nil
}

func fmtPrice(snap snapshot.Snapshot) string {
	if snap.Price == nil {
		return ui.Warn("n/d")
	}
	return ui.Success(snap.Price.StringFixed(2) + " €")
}

func fmtOptional(s *string) string {
	if s == nil {
		return ui.Warn("n/d")
	}
	return *s
}
