package shell

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/history"
	"github.com/lepinkainen/bookdex/internal/provider"
	"github.com/lepinkainen/bookdex/internal/search"
)

type stubPrimary struct{}

func (stubPrimary) Name() string                 { return "stub" }
func (stubPrimary) Ping(context.Context) error   { return nil }
func (stubPrimary) Lookup(context.Context, string) (*book.Book, error) {
	return nil, nil
}
func (stubPrimary) Search(context.Context, book.SearchMode, string) ([]book.Book, error) {
	return nil, nil
}

var _ provider.Provider = stubPrimary{}

func TestRunReturnsOnCancelledContext(t *testing.T) {
	hist := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)
	orchestrator := search.New(stubPrimary{}, hist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(orchestrator, hist, &out).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestParseInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
		mode  book.SearchMode
		query string
	}{
		{
			name:  "isbn prefix",
			input: "isbn 978-0-14-044913-6",
			mode:  book.ModeISBN,
			query: "978-0-14-044913-6",
		},
		{
			name:  "title prefix",
			input: "title the odyssey",
			mode:  book.ModeTitle,
			query: "the odyssey",
		},
		{
			name:  "author prefix",
			input: "author homer",
			mode:  book.ModeAuthor,
			query: "homer",
		},
		{
			name:  "keyword prefix",
			input: "keyword greek epic",
			mode:  book.ModeKeyword,
			query: "greek epic",
		},
		{
			name:  "bare text defaults to keyword",
			input: "greek epic poetry",
			mode:  book.ModeKeyword,
			query: "greek epic poetry",
		},
		{
			name:  "single word defaults to keyword",
			input: "odyssey",
			mode:  book.ModeKeyword,
			query: "odyssey",
		},
		{
			name:  "surrounding whitespace trimmed",
			input: "  title  the odyssey ",
			mode:  book.ModeTitle,
			query: "the odyssey",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mode, query := ParseInput(tt.input)
			require.Equal(t, tt.mode, mode)
			require.Equal(t, tt.query, query)
		})
	}
}

func TestCompleteMode(t *testing.T) {
	require.Equal(t, []string{"isbn "}, completeMode("is"))
	require.Equal(t, []string{"title "}, completeMode("t"))
	require.ElementsMatch(t, []string{"isbn ", "title ", "author ", "keyword "}, completeMode(""))
	require.Nil(t, completeMode("isbn 978"))
	require.Nil(t, completeMode("zzz"))
}
