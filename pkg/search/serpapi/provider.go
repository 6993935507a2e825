package serpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"ai-research-be/pkg/search"
)

const defaultBaseURL = "https://serpapi.com/search"

// SerpAPIProvider queries SerpAPI's Google engine and maps organic results to
// the generic search.Result shape.
type SerpAPIProvider struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
}

var _ search.Provider = &SerpAPIProvider{}

func NewSerpAPIProvider(apiKey string) *SerpAPIProvider {
	return &SerpAPIProvider{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

type serpAPIResponse struct {
	OrganicResults []struct {
		Title   string `json:"title"`
		Link    string `json:"link"`
		Snippet string `json:"snippet"`
	} `json:"organic_results"`
	Error string `json:"error,omitempty"`
}

func (s *SerpAPIProvider) Search(ctx context.Context, query string, count int) ([]search.Result, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("api_key", s.APIKey)
	params.Set("num", strconv.Itoa(count))
	params.Set("engine", "google")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("serpapi request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("serpapi error: status %d, body: %s", resp.StatusCode, string(bodyBytes))
	}

	var serpResp serpAPIResponse
	if err := json.Unmarshal(bodyBytes, &serpResp); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	if serpResp.Error != "" {
		return nil, fmt.Errorf("serpapi error: %s", serpResp.Error)
	}

	results := make([]search.Result, 0, count)
	for _, r := range serpResp.OrganicResults {
		if len(results) >= count {
			break
		}
		results = append(results, search.Result{
			Title:   r.Title,
			Link:    r.Link,
			Snippet: r.Snippet,
		})
	}

	return results, nil
}
