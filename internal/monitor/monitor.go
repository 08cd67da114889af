// Package monitor runs the extraction and change-detection pipeline over
// the configured products and composes the aggregate notification.
package monitor

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/config"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/extract"
	"github.com/Wyzincsmarthome/mauser-monitor/internal/snapshot"
)

// Fetcher retrieves one page as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Store is the persistent last-snapshot cache.
type Store interface {
	Get(url string) (snapshot.Snapshot, bool)
	Set(snap snapshot.Snapshot)
	Save() error
}

// Notifier accepts the composed run message.
type Notifier interface {
	Send(ctx context.Context, content string) error
}

// Monitor orchestrates one run over the configured products.
type Monitor struct {
	fetcher  Fetcher
	store    Store
	notifier Notifier
	rules    []snapshot.ProductRule

	// OnProduct, when set, is called after each product finishes. The CLI
	// uses it to advance the progress bar.
	OnProduct func(rule snapshot.ProductRule)

	// DryRun skips the store save and the notification.
	DryRun bool
}

// Report summarizes one run for the CLI.
type Report struct {
	Checked int
	Changed int
	Failed  int
	Message string
}

// New creates a Monitor over the given collaborators.
func New(f Fetcher, s Store, n Notifier, rules []snapshot.ProductRule) *Monitor {
	return &Monitor{fetcher: f, store: s, notifier: n, rules: rules}
}

// RulesFromConfig compiles the configured products into extraction rules.
// Patterns were already syntax-checked at config load, so errors here are
// unexpected but still reported rather than panicked on.
func RulesFromConfig(cfg *config.Config) ([]snapshot.ProductRule, error) {
	rules := make([]snapshot.ProductRule, 0, len(cfg.Products))
	for i, p := range cfg.Products {
		priceRule, err := extract.NewRule(p.Price.Selector, p.Price.Regex, p.Price.RegexFullHTML)
		if err != nil {
			return nil, fmt.Errorf("products[%d].price: %w", i, err)
		}
		stockRule, err := extract.NewRule(p.Stock.Selector, p.Stock.Regex, p.Stock.RegexFullHTML)
		if err != nil {
			return nil, fmt.Errorf("products[%d].stock: %w", i, err)
		}
		rules = append(rules, snapshot.ProductRule{
			URL:   p.URL,
			Name:  p.Name,
			Price: priceRule,
			Stock: stockRule,
		})
	}
	return rules, nil
}

// Run processes every configured product in order and delivers exactly one
// aggregate message. One product's failure becomes an error line in that
// message and never aborts the loop. The state store is saved once, after
// the loop, regardless of per-product failures; notification delivery
// failure is logged, never escalated.
func (m *Monitor) Run(ctx context.Context) (*Report, error) {
	report := &Report{}
	var blocks []string

	for _, rule := range m.rules {
		block, changed, err := m.checkProduct(ctx, rule)
		report.Checked++
		switch {
		case err != nil:
			report.Failed++
			log.Error().Err(err).Str("url", rule.URL).Msg("Product check failed")
			blocks = append(blocks, fmt.Sprintf(":x: Erro ao ler %s: %v", displayName(rule), err))
		case changed:
			report.Changed++
			blocks = append(blocks, block)
		}
		if m.OnProduct != nil {
			m.OnProduct(rule)
		}
	}

	report.Message = composeMessage(blocks)

	if m.DryRun {
		log.Info().Msg("Dry run: state not saved, notification not sent")
		return report, nil
	}
	if err := m.store.Save(); err != nil {
		return report, fmt.Errorf("save state: %w", err)
	}
	if err := m.notifier.Send(ctx, report.Message); err != nil {
		log.Error().Err(err).Msg("Notification delivery failed")
	}
	return report, nil
}

func (m *Monitor) checkProduct(ctx context.Context, rule snapshot.ProductRule) (string, bool, error) {
	html, err := m.fetcher.Fetch(ctx, rule.URL)
	if err != nil {
		return "", false, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", false, fmt.Errorf("parse page: %w", err)
	}

	curr := snapshot.Take(doc, html, rule)
	var prev *snapshot.Snapshot
	if p, ok := m.store.Get(rule.URL); ok {
		prev = &p
	}
	changes := snapshot.Detect(prev, curr)

	// "nothing" is a valid observation: the entry is overwritten even when
	// extraction came back empty.
	m.store.Set(curr)

	if len(changes) == 0 {
		log.Debug().Str("url", rule.URL).Msg("No changes")
		return "", false, nil
	}
	log.Info().Str("url", rule.URL).Int("changes", len(changes)).Msg("Changes detected")
	return productBlock(rule, changes), true, nil
}

func productBlock(rule snapshot.ProductRule, changes []snapshot.Change) string {
	descs := make([]string, len(changes))
	for i, c := range changes {
		descs[i] = c.Describe()
	}
	return fmt.Sprintf("**[%s]**\n%s\nAlterações: %s", displayName(rule), rule.URL, strings.Join(descs, "; "))
}

func displayName(rule snapshot.ProductRule) string {
	if rule.Name != "" {
		return rule.Name
	}
	return rule.URL
}

func composeMessage(blocks []string) string {
	if len(blocks) == 0 {
		return ":white_check_mark: Sem alterações em preço/stock (Mauser)."
	}
	return ":bell: **Alterações detetadas (Mauser)**\n\n" + strings.Join(blocks, "\n\n")
}
