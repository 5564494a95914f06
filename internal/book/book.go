// Package book defines the canonical, provider-independent book record
// and the search modes the rest of the application operates on.
package book

import (
	"fmt"
	"strings"
)

// UnknownAuthor is the placeholder used when a provider returns no author data.
const UnknownAuthor = "unknown"

// Book is the canonical book record. Optional fields stay empty when the
// provider did not supply them; Authors always has at least one entry.
type Book struct {
	Title       string   `json:"title" yaml:"title"`
	Authors     []string `json:"authors" yaml:"authors"`
	PublishDate string   `json:"publish_date,omitempty" yaml:"publish_date,omitempty"`
	Publisher   string   `json:"publisher,omitempty" yaml:"publisher,omitempty"`
	ISBN        string   `json:"isbn,omitempty" yaml:"isbn,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Language    string   `json:"language,omitempty" yaml:"language,omitempty"`
	Pages       int      `json:"pages,omitempty" yaml:"pages,omitempty"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	CoverURL    string   `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	Source      string   `json:"source" yaml:"source"`
}

// AuthorsOrUnknown returns the author list, substituting the placeholder
// when the list is empty.
func AuthorsOrUnknown(authors []string) []string {
	cleaned := make([]string, 0, len(authors))
	for _, a := range authors {
		if strings.TrimSpace(a) != "" {
			cleaned = append(cleaned, a)
		}
	}
	if len(cleaned) == 0 {
		return []string{UnknownAuthor}
	}
	return cleaned
}

// FilterTitled returns only the books with a non-empty title, preserving
// order. Multi-result lists must not surface untitled records.
func FilterTitled(books []Book) []Book {
	result := make([]Book, 0, len(books))
	for _, b := range books {
		if strings.TrimSpace(b.Title) != "" {
			result = append(result, b)
		}
	}
	return result
}

// SearchMode selects the normalization rule and the provider path for a query.
type SearchMode int

const (
	ModeISBN SearchMode = iota
	ModeTitle
	ModeAuthor
	ModeKeyword
)

// ParseMode converts a mode keyword to a SearchMode.
func ParseMode(s string) (SearchMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "isbn":
		return ModeISBN, nil
	case "title":
		return ModeTitle, nil
	case "author":
		return ModeAuthor, nil
	case "keyword":
		return ModeKeyword, nil
	}
	return ModeKeyword, fmt.Errorf("unknown search mode: %q", s)
}

func (m SearchMode) String() string {
	switch m {
	case ModeISBN:
		return "isbn"
	case ModeTitle:
		return "title"
	case ModeAuthor:
		return "author"
	case ModeKeyword:
		return "keyword"
	}
	return "unknown"
}
