// Package provider contains the adapters that translate between the
// canonical book record and each external API's wire format.
package provider

import (
	"context"

	"github.com/lepinkainen/bookdex/internal/book"
)

// Provider defines the interface for looking up a single book by ISBN.
// Each implementation handles its own rate limiting and maps its wire
// format to the canonical record.
type Provider interface {
	// Name returns the human-readable name of the source (e.g., "OpenLibrary").
	Name() string

	// Ping tests the connection to the source and returns an error if it
	// cannot be reached for whatever reason.
	Ping(ctx context.Context) error

	// Lookup retrieves a book by ISBN.
	// Returns nil, nil if the book was not found (allows fallback providers
	// to try). Returns nil, error for actual errors (network, decode, HTTP).
	Lookup(ctx context.Context, isbn string) (*book.Book, error)
}

// Searcher defines the interface for free-text searches. Only the
// primary provider supports these; results come back in the provider's
// relevance order, untitled records included.
type Searcher interface {
	Name() string
	Search(ctx context.Context, mode book.SearchMode, query string) ([]book.Book, error)
}
