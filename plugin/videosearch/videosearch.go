// Package videosearch finds YouTube videos by scraping the public
// results page. There is no official key-free search API, so results
// come from the ytInitialData blob embedded in the page scripts.
package videosearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"golang.org/x/net/html"
)

const defaultSearchURL = "https://www.youtube.com/results"

// Video is a single search result.
type Video struct {
	ID    string
	Title string
	URL   string
}

// Client queries the results page over HTTP.
type Client struct {
	httpClient *http.Client
	searchURL  string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithSearchURL overrides the results endpoint, mainly for tests.
func WithSearchURL(u string) Option {
	return func(c *Client) { c.searchURL = u }
}

// NewClient creates a video search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		searchURL:  defaultSearchURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var videoRendererRE = regexp.MustCompile(`"videoRenderer":\{"videoId":"([\w-]{11})".*?"title":\{"runs":\[\{"text":"((?:[^"\\]|\\.)*)"`)

// Search returns up to limit videos matching the query, in page order.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Video, error) {
	if limit <= 0 {
		limit = 3
	}

	q := url.Values{}
	q.Set("search_query", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.searchURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("video search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("video search returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return nil, err
	}

	videos := parseResultsPage(body, limit)
	if len(videos) == 0 {
		return nil, fmt.Errorf("no videos found for query %q", query)
	}
	return videos, nil
}

// parseResultsPage walks the page's script nodes and extracts video
// renderers from the ytInitialData payload.
func parseResultsPage(page []byte, limit int) []Video {
	doc, err := html.Parse(strings.NewReader(string(page)))
	if err != nil {
		return nil
	}

	var videos []Video
	seen := make(map[string]bool)

	var visit func(*html.Node)
	visit = func(n *html.Node) {
		if len(videos) >= limit {
			return
		}
		if n.Type == html.ElementNode && n.Data == "script" {
			if n.FirstChild != nil && strings.Contains(n.FirstChild.Data, "ytInitialData") {
				for _, m := range videoRendererRE.FindAllStringSubmatch(n.FirstChild.Data, -1) {
					if len(videos) >= limit {
						break
					}
					id := m[1]
					if seen[id] {
						continue
					}
					seen[id] = true
					videos = append(videos, Video{
						ID:    id,
						Title: unescapeJSON(m[2]),
						URL:   "https://www.youtube.com/watch?v=" + id,
					})
				}
			}
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			visit(child)
		}
	}
	visit(doc)
	return videos
}

func unescapeJSON(s string) string {
	r := strings.NewReplacer(`\"`, `"`, `\\`, `\`, `\/`, `/`, `\u0026`, "&")
	return r.Replace(s)
}
