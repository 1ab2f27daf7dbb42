// Package session establishes the cookie-bearing HTTP session used against
// the EMS booking system, optionally authenticated with college credentials.
// The availability grid is often public; login unlocks reservation detail.
package session

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/120.0.0.0 Safari/537.36"
	acceptHeader   = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguage = "en-US,en;q=0.5"

	requestTimeout = 15 * time.Second
)

// New creates an HTTP client with a cookie jar and browser-like headers on
// every request. EMS rejects obviously non-browser user agents.
func New() *http.Client {
	jar, _ := cookiejar.New(nil)
	return &http.Client{
		Jar:       jar,
		Timeout:   requestTimeout,
		Transport: headerTransport{base: http.DefaultTransport},
	}
}

// headerTransport stamps the standard browser headers onto every request.
type headerTransport struct {
	base http.RoundTripper
}

func (t headerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set("User-Agent", userAgent)
	clone.Header.Set("Accept", acceptHeader)
	clone.Header.Set("Accept-Language", acceptLanguage)
	return t.base.RoundTrip(clone)
}

// Login attempts to authenticate the session against the EMS login form at
// baseURL. ASP.NET pages carry hidden state fields (ViewState, request
// verification tokens) that must be echoed back with the credentials, so the
// form is fetched and harvested first.
//
// Returns whether login appears to have succeeded. A false return is not
// fatal: public availability pages may still be scrapeable.
func Login(ctx context.Context, client *http.Client, baseURL, username, password string) (bool, error) {
	loginURL := strings.TrimRight(baseURL, "/") + "/Default.aspx"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, loginURL, nil)
	if err != nil {
		return false, fmt.Errorf("creating login page request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return false, fmt.Errorf("fetching login page: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("login page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return false, fmt.Errorf("parsing login page: %w", err)
	}

	form := url.Values{}
	doc.Find(`input[type="hidden"]`).Each(func(_ int, input *goquery.Selection) {
		name, hasName := input.Attr("name")
		value, hasValue := input.Attr("value")
		if hasName && hasValue {
			form.Set(name, value)
		}
	})
	form.Set("UserName", username)
	form.Set("Password", password)

	action := doc.Find("form").First().AttrOr("action", "/Default.aspx")
	postURL, err := resolveAction(loginURL, action)
	if err != nil {
		return false, fmt.Errorf("resolving form action: %w", err)
	}

	postReq, err := http.NewRequestWithContext(ctx, http.MethodPost, postURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return false, fmt.Errorf("creating login request: %w", err)
	}
	postReq.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	postResp, err := client.Do(postReq)
	if err != nil {
		return false, fmt.Errorf("submitting login: %w", err)
	}
	defer postResp.Body.Close()

	body, err := io.ReadAll(postResp.Body)
	if err != nil {
		return false, fmt.Errorf("reading login response: %w", err)
	}

	// EMS has no reliable success marker; a logout link or the user's own
	// name appearing on the page is the best available signal.
	lowered := strings.ToLower(string(body))
	ok := strings.Contains(lowered, "logout") ||
		strings.Contains(lowered, strings.ToLower(username))
	return ok, nil
}

func resolveAction(pageURL, action string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(action)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
