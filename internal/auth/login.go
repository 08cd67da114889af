// Package auth establishes and verifies the storefront session.
package auth

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rs/zerolog/log"

	"github.com/Wyzincsmarthome/mauser-monitor/internal/fetch"
)

// Verdict is the tri-state outcome of the post-login check.
type Verdict int

const (
	// Confirmed means a logged-in marker was found on the check page.
	Confirmed Verdict = iota
	// Unconfirmed means the heuristic check was inconclusive. Product
	// pages may still be readable without a session, so whether this is
	// fatal is a configuration policy, not a hard rule.
	Unconfirmed
	// Failed means the login request itself did not go through.
	Failed
)

func (v Verdict) String() string {
	switch v {
	case Confirmed:
		return "confirmed"
	case Unconfirmed:
		return "unconfirmed"
	case Failed:
		return "failed"
	}
	return "unknown"
}

// Options describe the storefront's login form and the markers that
// confirm a session.
type Options struct {
	LoginPage string
	PostURL   string
	UserField string
	PassField string
	// SuccessMarkers are substrings whose presence on the post-login page
	// confirms the session. Matched case-insensitively.
	SuccessMarkers []string
}

// Login submits the storefront login form over client and verifies the
// result. The client's cookie jar carries the session afterwards.
//
// Verification is a heuristic: the login page is fetched again and scanned
// for the configured markers. Markers absent means Unconfirmed, not
// Failed; the page may simply not expose an account area to scraping.
func Login(ctx context.Context, client *http.Client, opts Options, creds Credentials) (Verdict, error) {
	// The login form usually carries hidden fields (CSRF tokens, redirect
	// targets) that must be echoed back in the POST.
	page, err := getPage(ctx, client, opts.LoginPage)
	if err != nil {
		return Failed, fmt.Errorf("login page: %w", err)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return Failed, fmt.Errorf("parse login page: %w", err)
	}

	form := hiddenInputs(doc)
	form.Set(opts.UserField, creds.Username)
	form.Set(opts.PassField, creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, opts.PostURL, strings.NewReader(form.Encode()))
	if err != nil {
		return Failed, fmt.Errorf("create login request: %w", err)
	}
	fetch.SetHeaders(req)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return Failed, fmt.Errorf("submit login: %w", err)
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	if resp.StatusCode >= 400 {
		return Failed, &fetch.StatusError{URL: opts.PostURL, StatusCode: resp.StatusCode}
	}

	check, err := getPage(ctx, client, opts.LoginPage)
	if err != nil {
		log.Warn().Err(err).Msg("Could not re-fetch login page for verification")
		return Unconfirmed, nil
	}
	lower := strings.ToLower(check)
	for _, marker := range opts.SuccessMarkers {
		if marker != "" && strings.Contains(lower, strings.ToLower(marker)) {
			log.Debug().Str("marker", marker).Msg("Login marker found")
			return Confirmed, nil
		}
	}
	return Unconfirmed, nil
}

func getPage(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, http.NoBody)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	fetch.SetHeaders(req)

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &fetch.StatusError{URL: pageURL, StatusCode: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body of %s: %w", pageURL, err)
	}
	return string(body), nil
}

// hiddenInputs collects the form's hidden fields so server-issued tokens
// survive the round trip.
func hiddenInputs(doc *goquery.Document) url.Values {
	form := url.Values{}
	doc.Find("input[type=hidden]").Each(func(_ int, s *goquery.Selection) {
		name, ok := s.Attr("name")
		if !ok || name == "" {
			return
		}
		form.Set(name, s.AttrOr("value", ""))
	})
	return form
}
