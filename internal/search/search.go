// Package search drives a query through normalization, the provider
// adapters and result filtering, reporting a single outcome per invocation.
package search

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/isbn"
	"github.com/lepinkainen/bookdex/internal/provider"
)

// Status is the terminal state of one search invocation.
type Status int

const (
	// StatusSuccess means one or more books were produced.
	StatusSuccess Status = iota
	// StatusEmpty means no books were produced and no error occurred.
	StatusEmpty
	// StatusFailed means validation or every provider path failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusEmpty:
		return "empty"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Outcome is what a search invocation reports to the presentation layer.
// Failures carry a message instead of propagating an error to the caller.
type Outcome struct {
	Status  Status
	Books   []book.Book
	Message string
	Err     error
}

// Recorder is the slice of the history store the orchestrator mutates.
type Recorder interface {
	Record(query string) error
}

// PrimaryProvider serves both ISBN lookups and free-text searches.
type PrimaryProvider interface {
	provider.Provider
	provider.Searcher
}

// Orchestrator owns the per-search control flow. Collaborators are
// injected so tests run without a live network. Invocations are
// serialized; see the mutex note on Search.
type Orchestrator struct {
	mu      sync.Mutex
	primary PrimaryProvider
	lookups []provider.Provider
	history Recorder
}

// New creates an Orchestrator. ISBN lookups try the primary provider
// first and the fallbacks in order, first success wins.
func New(primary PrimaryProvider, history Recorder, fallbacks ...provider.Provider) *Orchestrator {
	lookups := make([]provider.Provider, 0, len(fallbacks)+1)
	lookups = append(lookups, primary)
	lookups = append(lookups, fallbacks...)

	return &Orchestrator{
		primary: primary,
		lookups: lookups,
		history: history,
	}
}

// Search runs one search invocation through validation, history
// recording and the mode-specific provider path. It never returns an
// error; everything surfaces in the Outcome. Overlapping invocations
// are serialized rather than cancelled.
func (o *Orchestrator) Search(ctx context.Context, mode book.SearchMode, rawQuery string) Outcome {
	o.mu.Lock()
	defer o.mu.Unlock()

	query := strings.TrimSpace(rawQuery)
	if query == "" {
		return Outcome{Status: StatusFailed, Message: "missing query"}
	}

	if err := o.history.Record(query); err != nil {
		// History is best-effort; a failed write never blocks the search.
		slog.Warn("Failed to record query in history", "query", query, "error", err)
	}

	if mode == book.ModeISBN {
		return o.searchISBN(ctx, query)
	}
	return o.searchFreeText(ctx, mode, query)
}

// searchISBN normalizes and validates the identifier, then walks the
// lookup providers in priority order.
func (o *Orchestrator) searchISBN(ctx context.Context, query string) Outcome {
	normalized := isbn.Normalize(query)
	if !isbn.Valid(normalized) {
		return Outcome{Status: StatusFailed, Message: "invalid ISBN format"}
	}

	var (
		lastErr  error
		notFound bool
	)
	for _, p := range o.lookups {
		b, err := p.Lookup(ctx, normalized)
		if err != nil {
			slog.Debug("Provider lookup failed", "provider", p.Name(), "isbn", normalized, "error", err)
			lastErr = err
			continue
		}
		if b != nil {
			slog.Debug("Provider lookup matched", "provider", p.Name(), "isbn", normalized)
			return Outcome{Status: StatusSuccess, Books: []book.Book{*b}}
		}
		notFound = true
	}

	// A definitive miss from any provider outranks transport errors from
	// the others: the identifier was checked and nothing matched.
	if notFound {
		return Outcome{Status: StatusEmpty, Message: fmt.Sprintf("no book found for ISBN %s", normalized)}
	}

	return Outcome{
		Status:  StatusFailed,
		Message: lastErr.Error(),
		Err:     lastErr,
	}
}

// searchFreeText runs one primary-provider query with the mode qualifier
// and filters out untitled records.
func (o *Orchestrator) searchFreeText(ctx context.Context, mode book.SearchMode, query string) Outcome {
	books, err := o.primary.Search(ctx, mode, query)
	if err != nil {
		slog.Debug("Provider search failed", "provider", o.primary.Name(), "mode", mode.String(), "error", err)
		return Outcome{Status: StatusFailed, Message: err.Error(), Err: err}
	}

	titled := book.FilterTitled(books)
	if len(titled) == 0 {
		return Outcome{Status: StatusEmpty, Message: fmt.Sprintf("no books found for %q", query)}
	}

	return Outcome{Status: StatusSuccess, Books: titled}
}
