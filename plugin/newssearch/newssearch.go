// Package newssearch fetches news headlines from the Google News RSS feed.
package newssearch

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const defaultFeedURL = "https://news.google.com/rss/search"

// searchWindow keeps results to the last week; stale fitness news is
// worse than fewer results.
const searchWindow = "when:7d"

// Article is a single news result.
type Article struct {
	Title     string
	Link      string
	Source    string
	Published string
	Snippet   string
}

// Client queries the news feed over HTTP.
type Client struct {
	httpClient *http.Client
	feedURL    string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithFeedURL overrides the feed endpoint, mainly for tests.
func WithFeedURL(u string) Option {
	return func(c *Client) { c.feedURL = u }
}

// NewClient creates a news search client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		feedURL:    defaultFeedURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type rssFeed struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
	Source      struct {
		Name string `xml:",chardata"`
	} `xml:"source"`
}

// Search returns up to limit articles matching the query, newest first
// as ordered by the feed.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]Article, error) {
	if limit <= 0 {
		limit = 5
	}

	q := url.Values{}
	q.Set("q", query+" "+searchWindow)
	q.Set("hl", "en-US")
	q.Set("gl", "US")
	q.Set("ceid", "US:en")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "repgenie/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news feed returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, err
	}

	var feed rssFeed
	if err := xml.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("failed to parse news feed: %w", err)
	}

	articles := make([]Article, 0, limit)
	for _, item := range feed.Channel.Items {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, Article{
			Title:     strings.TrimSpace(item.Title),
			Link:      strings.TrimSpace(item.Link),
			Source:    strings.TrimSpace(item.Source.Name),
			Published: strings.TrimSpace(item.PubDate),
			Snippet:   extractSnippet(item.Description),
		})
	}
	return articles, nil
}

// extractSnippet strips the HTML markup the feed embeds in descriptions.
func extractSnippet(descriptionHTML string) string {
	if descriptionHTML == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(descriptionHTML))
	if err != nil {
		return strings.TrimSpace(descriptionHTML)
	}
	return strings.TrimSpace(doc.Text())
}
