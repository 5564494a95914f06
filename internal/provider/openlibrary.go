package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/lepinkainen/bookdex/internal/apperr"
	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/fetch"
	"github.com/lepinkainen/bookdex/internal/ratelimit"
)

const (
	openLibraryName    = "OpenLibrary"
	openLibraryBaseURL = "https://openlibrary.org"
)

// OpenLibrary is the secondary provider. It only serves ISBN lookups and
// is tried when Google Books yields nothing usable.
type OpenLibrary struct {
	client  *fetch.Client
	limiter *ratelimit.Limiter
	baseURL string
}

var _ Provider = (*OpenLibrary)(nil)

// NewOpenLibrary creates the OpenLibrary adapter.
func NewOpenLibrary(client *fetch.Client) *OpenLibrary {
	return &OpenLibrary{
		client:  client,
		limiter: ratelimit.PerSecond(openLibraryName, 1),
		baseURL: openLibraryBaseURL,
	}
}

// Name returns the human-readable name of this provider.
func (o *OpenLibrary) Name() string {
	return openLibraryName
}

// Ping tests the connection to OpenLibrary.
func (o *OpenLibrary) Ping(ctx context.Context) error {
	if _, err := o.client.Get(ctx, o.baseURL); err != nil {
		return fmt.Errorf("openlibrary ping: %w", err)
	}
	return nil
}

// openLibraryBook matches the jscmd=data response structure.
type openLibraryBook struct {
	Title       string `json:"title"`
	PublishDate string `json:"publish_date"`
	Publishers  []struct {
		Name string `json:"name"`
	} `json:"publishers"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Cover struct {
		Large  string `json:"large"`
		Medium string `json:"medium"`
	} `json:"cover"`
	Subjects      []any `json:"subjects"`
	NumberOfPages int   `json:"number_of_pages"`
	// Description is a string or an object with a "value" key depending
	// on the record.
	Description any `json:"description"`
}

// Lookup retrieves a single book by ISBN from the bibliographic registry,
// nil when not found.
func (o *OpenLibrary) Lookup(ctx context.Context, isbn string) (*book.Book, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	u := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data", o.baseURL, isbn)

	body, err := o.client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("openlibrary request: %w", err)
	}

	var result map[string]openLibraryBook
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperr.NewParseError(openLibraryName, err)
	}

	olBook, ok := result["ISBN:"+isbn]
	if !ok {
		slog.Debug("No OpenLibrary match", "isbn", isbn)
		return nil, nil
	}

	b := book.Book{
		Title:       olBook.Title,
		ISBN:        isbn,
		PublishDate: olBook.PublishDate,
		Description: sanitizeText(extractDescription(olBook.Description)),
		Source:      openLibraryName,
	}

	authors := make([]string, 0, len(olBook.Authors))
	for _, a := range olBook.Authors {
		if a.Name != "" {
			authors = append(authors, a.Name)
		}
	}
	b.Authors = book.AuthorsOrUnknown(authors)

	if len(olBook.Publishers) > 0 {
		b.Publisher = olBook.Publishers[0].Name
	}
	if olBook.NumberOfPages > 0 {
		b.Pages = olBook.NumberOfPages
	}

	cover := olBook.Cover.Large
	if cover == "" {
		cover = olBook.Cover.Medium
	}
	b.CoverURL = cover

	b.Categories = extractStringSlice(olBook.Subjects)

	return &b, nil
}

// extractDescription handles the forms the description field can take.
func extractDescription(desc any) string {
	switch v := desc.(type) {
	case string:
		return v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			return val
		}
	}
	return ""
}

// extractStringSlice converts []any to []string, taking plain strings and
// the "name" key of object entries.
func extractStringSlice(items []any) []string {
	if len(items) == 0 {
		return nil
	}
	result := make([]string, 0, len(items))
	for _, item := range items {
		switch v := item.(type) {
		case string:
			result = append(result, v)
		case map[string]any:
			if name, ok := v["name"].(string); ok {
				result = append(result, name)
			}
		}
	}
	if len(result) == 0 {
		return nil
	}
	return result
}
