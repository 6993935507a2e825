package search

import (
	"context"
)

// Result is a single web search hit.
type Result struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

// Provider defines the contract for any web search backend
type Provider interface {
	// Search runs a query and returns at most count results
	Search(ctx context.Context, query string, count int) ([]Result, error)
}
