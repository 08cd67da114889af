package config

import (
	"fmt"
	"regexp"
	"strings"
)

// validate fails fast on anything that would otherwise surface mid-run:
// missing login endpoints, products without a URL, duplicate URLs and
// regexes that do not compile.
func validate(c *Config) error {
	if c.Login.LoginPage == "" || c.Login.PostURL == "" {
		return fmt.Errorf("login.login_page and login.post_url are required")
	}
	if c.Login.UserField == "" || c.Login.PassField == "" {
		return fmt.Errorf("login.user_field and login.pass_field are required")
	}
	if len(c.Products) == 0 {
		return fmt.Errorf("at least one product is required")
	}

	seen := make(map[string]int)
	for i, p := range c.Products {
		if strings.TrimSpace(p.URL) == "" {
			return fmt.Errorf("products[%d]: url is required", i)
		}
		if prev, dup := seen[p.URL]; dup {
			return fmt.Errorf("products[%d]: url duplicates products[%d] (%s)", i, prev, p.URL)
		}
		seen[p.URL] = i

		if err := validateField(p.Price); err != nil {
			return fmt.Errorf("products[%d].price: %w", i, err)
		}
		if err := validateField(p.Stock); err != nil {
			return fmt.Errorf("products[%d].stock: %w", i, err)
		}
	}
	return nil
}

func validateField(fr FieldRule) error {
	if fr.Regex != "" {
		if _, err := regexp.Compile(fr.Regex); err != nil {
			return fmt.Errorf("regex: %w", err)
		}
	}
	if fr.RegexFullHTML != "" {
		if _, err := regexp.Compile(fr.RegexFullHTML); err != nil {
			return fmt.Errorf("regex_full_html: %w", err)
		}
	}
	return nil
}
