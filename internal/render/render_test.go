package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bookdex/internal/book"
)

func sampleBook() book.Book {
	return book.Book{
		Title:       "The Odyssey",
		Authors:     []string{"Homer", "Robert Fagles"},
		PublishDate: "1996",
		Publisher:   "Penguin Classics",
		ISBN:        "9780140268867",
		Language:    "en",
		Pages:       541,
		Categories:  []string{"Poetry"},
		CoverURL:    "http://books.google.com/books/content?id=abc",
		Description: "The epic poem of Odysseus' journey home.",
		Source:      "Google Books",
	}
}

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain text untouched",
			input:    "The Odyssey",
			expected: "The Odyssey",
		},
		{
			name:     "escape sequences removed",
			input:    "evil\x1b[31mtitle\x1b[0m",
			expected: "evil[31mtitle[0m",
		},
		{
			name:     "newlines and tabs become spaces",
			input:    "line\none\ttab",
			expected: "line one tab",
		},
		{
			name:     "bell and backspace removed",
			input:    "ding\a\bdong",
			expected: "dingdong",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestDetailContainsFields(t *testing.T) {
	out := Detail(sampleBook())

	require.Contains(t, out, "The Odyssey")
	require.Contains(t, out, "Homer, Robert Fagles")
	require.Contains(t, out, "9780140268867")
	require.Contains(t, out, "541")
	require.Contains(t, out, "source: Google Books")
}

func TestDetailOmitsEmptyFields(t *testing.T) {
	out := Detail(book.Book{
		Title:   "Bare Record",
		Authors: []string{book.UnknownAuthor},
		Source:  "Google Books",
	})

	require.Contains(t, out, "Bare Record")
	require.NotContains(t, out, "Publisher")
	require.NotContains(t, out, "Pages")
	require.NotContains(t, out, "About")
}

func TestTableListsAllBooks(t *testing.T) {
	books := []book.Book{
		{Title: "One", Authors: []string{"A"}, PublishDate: "2001"},
		{Title: "Two", Authors: []string{"B"}, PublishDate: "2002"},
		{Title: "Three", Authors: []string{"C"}, PublishDate: "2003"},
	}

	out := Table(books)

	require.Contains(t, out, "3 results")
	for _, b := range books {
		require.Contains(t, out, b.Title)
	}
	// Header plus separator plus one line per book.
	require.GreaterOrEqual(t, strings.Count(out, "\n"), 5)
}

func TestMarshalJSON(t *testing.T) {
	data, err := Marshal([]book.Book{sampleBook()}, "json")
	require.NoError(t, err)
	require.Contains(t, string(data), `"title": "The Odyssey"`)
	require.Contains(t, string(data), `"source": "Google Books"`)
}

func TestMarshalYAML(t *testing.T) {
	data, err := Marshal([]book.Book{sampleBook()}, "yaml")
	require.NoError(t, err)
	require.Contains(t, string(data), "title: The Odyssey")
	require.Contains(t, string(data), "source: Google Books")
}

func TestMarshalUnknownFormat(t *testing.T) {
	_, err := Marshal(nil, "xml")
	require.Error(t, err)
	require.Contains(t, err.Error(), "unknown output format")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "short", truncate("short", 10))
	require.Equal(t, "exactly te", truncate("exactly te", 10))
	require.Equal(t, "abcdefg...", truncate("abcdefghijk", 10))
	require.Equal(t, "ab", truncate("abcdef", 2))
}
