// Package config loads and validates the monitor configuration file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FieldRule configures how one field is extracted from a product page.
// All keys are optional; a field with no keys is never extracted.
type FieldRule struct {
	Selector      string `yaml:"selector"`
	Regex         string `yaml:"regex"`
	RegexFullHTML string `yaml:"regex_full_html"`
}

// Product is one monitored product page. The URL doubles as the product's
// identity in the state store.
type Product struct {
	URL   string    `yaml:"url"`
	Name  string    `yaml:"name"`
	Price FieldRule `yaml:"price"`
	Stock FieldRule `yaml:"stock"`
}

// Login describes the storefront's login form.
type Login struct {
	LoginPage string `yaml:"login_page"`
	PostURL   string `yaml:"post_url"`
	UserField string `yaml:"user_field"`
	PassField string `yaml:"pass_field"`
	// SuccessMarkers confirm a session when found on the post-login page.
	SuccessMarkers []string `yaml:"success_markers"`
	// RequireConfirmation makes an unconfirmed login abort the run instead
	// of continuing with a warning.
	RequireConfirmation bool `yaml:"require_confirmation"`
}

// Config is the parsed configuration document. It is built once at load
// time and treated as immutable afterwards.
type Config struct {
	Login    Login     `yaml:"login"`
	Products []Product `yaml:"products"`
}

// Load reads, defaults and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}
