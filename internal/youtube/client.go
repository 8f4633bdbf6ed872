package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
)

// DefaultBaseURL is the production YouTube host.
const DefaultBaseURL = "https://www.youtube.com"

// ErrNoTrack is returned when no caption track matches any of the
// requested languages, or when the timedtext endpoint returns an
// empty document.
var ErrNoTrack = errors.New("no matching caption track")

// Client defines the interface for fetching raw timed-text caption
// data for a video.
type Client interface {
	FetchTimedText(ctx context.Context, videoID string, languages []string, proxies *ProxyConfig) (string, error)
}

// ProxyConfig holds per-scheme proxy endpoints forwarded to the
// outbound requests of a single fetch.
type ProxyConfig struct {
	HTTP  string
	HTTPS string
}

// HTTPClient implements Client by scraping the public watch page.
type HTTPClient struct {
	// BaseURL is the YouTube host. Defaults to DefaultBaseURL.
	BaseURL    string
	Locator    TrackLocator
	HTTPClient *http.Client
}

// NewClient creates an HTTPClient with the default locator strategy.
func NewClient() *HTTPClient {
	return &HTTPClient{
		BaseURL:    DefaultBaseURL,
		Locator:    SplitLocator{},
		HTTPClient: &http.Client{},
	}
}

// FetchTimedText retrieves the raw caption XML for videoID in the
// highest-priority available language. It issues at most two GET
// requests: the watch page, then the timedtext API for the track the
// locator picked. Returns ErrNoTrack when the page advertises no
// usable track or the timedtext response is empty.
func (c *HTTPClient) FetchTimedText(ctx context.Context, videoID string, languages []string, proxies *ProxyConfig) (string, error) {
	client, err := c.httpClient(proxies)
	if err != nil {
		return "", err
	}

	page, err := c.get(ctx, client, c.baseURL()+"/watch?v="+videoID)
	if err != nil {
		return "", fmt.Errorf("fetching watch page: %w", err)
	}

	fragment, ok := c.locator().Locate(page, languages)
	if !ok {
		log.Printf("[youtube] no caption track for video %s (languages %v)", videoID, languages)
		return "", ErrNoTrack
	}

	// The fragment already carries the v=<id>&... query content lifted
	// from the page, so the rebuilt URL nests it after the marker. The
	// upstream endpoint expects exactly this shape.
	body, err := c.get(ctx, client, c.baseURL()+"/api/"+timedtextMarker+fragment)
	if err != nil {
		return "", fmt.Errorf("fetching timedtext: %w", err)
	}
	if body == "" {
		return "", ErrNoTrack
	}
	return body, nil
}

func (c *HTTPClient) get(ctx context.Context, client *http.Client, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response: %w", err)
	}
	return string(body), nil
}

// httpClient returns the client to use for one fetch. A non-nil proxy
// configuration builds a dedicated transport routing each request
// through the endpoint matching its scheme.
func (c *HTTPClient) httpClient(proxies *ProxyConfig) (*http.Client, error) {
	if proxies == nil {
		if c.HTTPClient != nil {
			return c.HTTPClient, nil
		}
		return http.DefaultClient, nil
	}

	var httpURL, httpsURL *url.URL
	var err error
	if proxies.HTTP != "" {
		if httpURL, err = url.Parse(proxies.HTTP); err != nil {
			return nil, fmt.Errorf("invalid http proxy URL: %w", err)
		}
	}
	if proxies.HTTPS != "" {
		if httpsURL, err = url.Parse(proxies.HTTPS); err != nil {
			return nil, fmt.Errorf("invalid https proxy URL: %w", err)
		}
	}

	return &http.Client{
		Transport: &http.Transport{
			Proxy: func(req *http.Request) (*url.URL, error) {
				if req.URL.Scheme == "https" {
					return httpsURL, nil
				}
				return httpURL, nil
			},
		},
	}, nil
}

func (c *HTTPClient) baseURL() string {
	if c.BaseURL == "" {
		return DefaultBaseURL
	}
	return c.BaseURL
}

func (c *HTTPClient) locator() TrackLocator {
	if c.Locator == nil {
		return SplitLocator{}
	}
	return c.Locator
}
