package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/inbucket/html2text"
	"github.com/sandevgo/marvin/internal/core"
	"github.com/sandevgo/marvin/pkg/log"
)

const (
	summaryEndpoint = "https://en.wikipedia.org/api/rest_v1/page/summary/"
	articleBase     = "https://en.wikipedia.org/wiki/"
	maxSnippetLen   = 500
)

// Client answers topic lookups with the Wikipedia REST summary. When the
// REST endpoint has no extract it falls back to flattening the article HTML.
type Client struct {
	client      *http.Client
	summaryBase string
	articleBase string
}

func NewClient() *Client {
	return &Client{
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		summaryBase: summaryEndpoint,
		articleBase: articleBase,
	}
}

func (c *Client) Summary(ctx context.Context, topic string) (string, error) {
	title := strings.ReplaceAll(strings.TrimSpace(topic), " ", "_")
	if title == "" {
		return "", fmt.Errorf("empty topic")
	}

	extract, err := c.restSummary(ctx, title)
	if err == nil && extract != "" {
		return extract, nil
	}
	if err != nil {
		log.FromCtx(ctx).Debug().Err(err).Str("topic", topic).Msg("rest summary failed, trying article page")
	}

	return c.articleSnippet(ctx, title)
}

func (c *Client) restSummary(ctx context.Context, title string) (string, error) {
	body, err := c.get(ctx, c.summaryBase+url.PathEscape(title))
	if err != nil {
		return "", err
	}

	var result struct {
		Extract string `json:"extract"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("decode summary: %w", err)
	}
	return strings.TrimSpace(result.Extract), nil
}

// articleSnippet fetches the article HTML and returns the first part of its
// text content.
func (c *Client) articleSnippet(ctx context.Context, title string) (string, error) {
	body, err := c.get(ctx, c.articleBase+url.PathEscape(title))
	if err != nil {
		return "", err
	}

	text, err := html2text.FromString(string(body), html2text.Options{TextOnly: true})
	if err != nil {
		return "", fmt.Errorf("flatten article: %w", err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("article %q has no readable text", title)
	}
	if len(text) > maxSnippetLen {
		if cut := strings.LastIndex(text[:maxSnippetLen], ". "); cut > 0 {
			text = text[:cut+1]
		} else {
			text = text[:maxSnippetLen]
		}
	}
	return text, nil
}

func (c *Client) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", core.MarvinUserAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", reqURL, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("http %d from %s", resp.StatusCode, reqURL)
	}
	return body, nil
}
