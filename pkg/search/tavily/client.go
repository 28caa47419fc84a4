// Package tavily implements keyword search against the Tavily REST API.
package tavily

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.tavily.com"

// Client calls the Tavily /search endpoint. A missing API key or a failed
// request degrades to an empty result set so the interview can proceed on
// fallback prompts.
type Client struct {
	ApiKey  string
	BaseURL string
	Client  *http.Client
	Logger  *log.Logger
}

func NewClient(apiKey string, logger *log.Logger) *Client {
	return &Client{
		ApiKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{Timeout: 30 * time.Second},
		Logger:  logger,
	}
}

type searchRequest struct {
	ApiKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

// searchResultItem tolerates the several field names Tavily has used for
// the snippet text across API versions.
type searchResultItem struct {
	Snippet string `json:"snippet"`
	Content string `json:"content"`
	Title   string `json:"title"`
}

type searchResponse struct {
	Results []searchResultItem `json:"results"`
}

// Search returns up to topK plain-text snippets for the query. It never
// returns results and an error together; transport and decode failures are
// logged and surfaced as an empty slice.
func (c *Client) Search(ctx context.Context, query string, topK int) ([]string, error) {
	if strings.TrimSpace(c.ApiKey) == "" {
		c.logf("[WARN] tavily search skipped: no api key configured")
		return []string{}, nil
	}
	if topK <= 0 {
		topK = 3
	}

	payload := searchRequest{
		ApiKey:     c.ApiKey,
		Query:      query,
		MaxResults: topK,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return []string{}, nil
	}

	endpoint := fmt.Sprintf("%s/search", c.BaseURL)
	req, err := http.NewRequestWithContext(ctx, "POST", endpoint, bytes.NewBuffer(payloadJson))
	if err != nil {
		return []string{}, nil
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.Client.Do(req)
	if err != nil {
		c.logf("[WARN] tavily request failed: %v", err)
		return []string{}, nil
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		c.logf("[WARN] tavily read response failed: %v", err)
		return []string{}, nil
	}

	if res.StatusCode != http.StatusOK {
		c.logf("[WARN] tavily error: status %d, body %s", res.StatusCode, string(resBody))
		return []string{}, nil
	}

	var searchRes searchResponse
	if err := json.Unmarshal(resBody, &searchRes); err != nil {
		c.logf("[WARN] tavily decode failed: %v", err)
		return []string{}, nil
	}

	snippets := make([]string, 0, len(searchRes.Results))
	for _, item := range searchRes.Results {
		text := item.Snippet
		if text == "" {
			text = item.Content
		}
		if text == "" {
			text = item.Title
		}
		if text == "" {
			continue
		}
		snippets = append(snippets, text)
		if len(snippets) == topK {
			break
		}
	}
	return snippets, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.Logger != nil {
		c.Logger.Printf(format, args...)
	}
}
