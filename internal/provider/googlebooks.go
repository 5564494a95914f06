package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/lepinkainen/bookdex/internal/apperr"
	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/fetch"
	"github.com/lepinkainen/bookdex/internal/ratelimit"
)

const (
	googleBooksName    = "Google Books"
	googleBooksBaseURL = "https://www.googleapis.com/books/v1"

	// DefaultMaxResults caps multi-result searches.
	DefaultMaxResults = 20
)

// GoogleBooks is the primary provider. It serves all four search modes:
// ISBN lookups plus free-text title, author and keyword searches.
type GoogleBooks struct {
	client     *fetch.Client
	limiter    *ratelimit.Limiter
	baseURL    string
	apiKey     string
	maxResults int
}

// Compile-time checks that GoogleBooks serves both roles.
var (
	_ Provider = (*GoogleBooks)(nil)
	_ Searcher = (*GoogleBooks)(nil)
)

// NewGoogleBooks creates the Google Books adapter. The API key is
// optional; anonymous requests work with tighter quotas.
func NewGoogleBooks(client *fetch.Client, apiKey string, maxResults int) *GoogleBooks {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	return &GoogleBooks{
		client:     client,
		limiter:    ratelimit.PerSecond(googleBooksName, 1),
		baseURL:    googleBooksBaseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}

// Name returns the human-readable name of this provider.
func (g *GoogleBooks) Name() string {
	return googleBooksName
}

// Ping tests the connection to the Google Books API.
func (g *GoogleBooks) Ping(ctx context.Context) error {
	// A well-known ISBN that should always resolve.
	u := fmt.Sprintf("%s/volumes?q=isbn:0140447938&maxResults=1", g.baseURL)
	if _, err := g.client.Get(ctx, u); err != nil {
		return fmt.Errorf("google books ping: %w", err)
	}
	return nil
}

// googleBooksResponse matches the volumes endpoint response structure.
type googleBooksResponse struct {
	TotalItems int               `json:"totalItems"`
	Items      []googleBooksItem `json:"items"`
}

type googleBooksItem struct {
	VolumeInfo struct {
		Title               string   `json:"title"`
		Authors             []string `json:"authors"`
		Publisher           string   `json:"publisher"`
		PublishedDate       string   `json:"publishedDate"`
		Description         string   `json:"description"`
		PageCount           int      `json:"pageCount"`
		Categories          []string `json:"categories"`
		Language            string   `json:"language"`
		IndustryIdentifiers []struct {
			Type       string `json:"type"`
			Identifier string `json:"identifier"`
		} `json:"industryIdentifiers"`
		ImageLinks struct {
			Thumbnail      string `json:"thumbnail"`
			SmallThumbnail string `json:"smallThumbnail"`
		} `json:"imageLinks"`
	} `json:"volumeInfo"`
}

// Lookup retrieves a single book by ISBN, nil when not found.
func (g *GoogleBooks) Lookup(ctx context.Context, isbn string) (*book.Book, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	result, err := g.query(ctx, "isbn:"+isbn, 1)
	if err != nil {
		return nil, err
	}

	if result.TotalItems == 0 || len(result.Items) == 0 {
		slog.Debug("No Google Books match", "isbn", isbn)
		return nil, nil
	}

	b := g.toBook(result.Items[0])
	if b.ISBN == "" {
		b.ISBN = isbn
	}
	return &b, nil
}

// Search runs a free-text query with the mode-specific qualifier and
// returns the candidates in the provider's relevance order.
func (g *GoogleBooks) Search(ctx context.Context, mode book.SearchMode, query string) ([]book.Book, error) {
	if err := g.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var q string
	switch mode {
	case book.ModeTitle:
		q = "intitle:" + query
	case book.ModeAuthor:
		q = "inauthor:" + query
	default:
		q = query
	}

	result, err := g.query(ctx, q, g.maxResults)
	if err != nil {
		return nil, err
	}

	books := make([]book.Book, 0, len(result.Items))
	for _, item := range result.Items {
		books = append(books, g.toBook(item))
	}
	return books, nil
}

func (g *GoogleBooks) query(ctx context.Context, q string, maxResults int) (*googleBooksResponse, error) {
	params := url.Values{}
	params.Set("q", q)
	if maxResults > 1 {
		params.Set("maxResults", strconv.Itoa(maxResults))
	}
	if g.apiKey != "" {
		params.Set("key", g.apiKey)
	}
	u := fmt.Sprintf("%s/volumes?%s", g.baseURL, params.Encode())

	body, err := g.client.Get(ctx, u)
	if err != nil {
		var statusErr *apperr.StatusError
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return &googleBooksResponse{}, nil
		}
		return nil, fmt.Errorf("google books request: %w", err)
	}

	var result googleBooksResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, apperr.NewParseError(googleBooksName, err)
	}
	return &result, nil
}

// toBook maps a volume record to the canonical book record.
func (g *GoogleBooks) toBook(item googleBooksItem) book.Book {
	vol := item.VolumeInfo

	b := book.Book{
		Title:       strings.TrimSpace(vol.Title),
		Authors:     book.AuthorsOrUnknown(vol.Authors),
		PublishDate: vol.PublishedDate,
		Publisher:   vol.Publisher,
		Description: sanitizeText(vol.Description),
		Language:    vol.Language,
		Categories:  vol.Categories,
		Source:      googleBooksName,
	}

	if vol.PageCount > 0 {
		b.Pages = vol.PageCount
	}

	// First identifier wins, whichever type it is.
	if len(vol.IndustryIdentifiers) > 0 {
		b.ISBN = vol.IndustryIdentifiers[0].Identifier
	}

	cover := vol.ImageLinks.Thumbnail
	if cover == "" {
		cover = vol.ImageLinks.SmallThumbnail
	}
	if cover != "" {
		// Remove zoom parameter for higher quality.
		b.CoverURL = strings.Replace(cover, "zoom=1", "zoom=0", 1)
	}

	return b
}
