package cmd

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/lepinkainen/bookdex/internal/apperr"
	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/config"
	"github.com/lepinkainen/bookdex/internal/history"
	"github.com/lepinkainen/bookdex/internal/provider"
	"github.com/lepinkainen/bookdex/internal/search"
)

type fakePrimary struct {
	books []book.Book
	err   error
}

func (f *fakePrimary) Name() string { return "fake" }

func (f *fakePrimary) Ping(_ context.Context) error { return nil }

func (f *fakePrimary) Lookup(_ context.Context, _ string) (*book.Book, error) {
	if f.err != nil {
		return nil, f.err
	}
	if len(f.books) == 0 {
		return nil, nil
	}
	return &f.books[0], nil
}

func (f *fakePrimary) Search(_ context.Context, _ book.SearchMode, _ string) ([]book.Book, error) {
	return f.books, f.err
}

func stubDeps(t *testing.T, primary *fakePrimary) {
	t.Helper()

	hist := history.NewStore(filepath.Join(t.TempDir(), "history.json"), 10)

	orig := buildDeps
	buildDeps = func() *deps {
		return &deps{
			orchestrator: search.New(primary, hist),
			history:      hist,
			providers:    []provider.Provider{primary},
		}
	}
	t.Cleanup(func() { buildDeps = orig })
}

func TestRunSearchFailedOutcomeReturnsError(t *testing.T) {
	stubDeps(t, &fakePrimary{err: &apperr.TimeoutError{URL: "http://x", Timeout: time.Second}})

	cmd := &TitleCmd{searchOptions{Query: []string{"the", "odyssey"}, Format: "table", NoInteractive: true}}
	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "timed out")
}

func TestRunSearchEmptyOutcomeIsNotAnError(t *testing.T) {
	stubDeps(t, &fakePrimary{})

	cmd := &TitleCmd{searchOptions{Query: []string{"nothing"}, Format: "table", NoInteractive: true}}
	assert.NoError(t, cmd.Run())
}

func TestRunSearchMissingQueryReturnsError(t *testing.T) {
	stubDeps(t, &fakePrimary{})

	cmd := &KeywordCmd{searchOptions{Query: []string{"   "}, Format: "table", NoInteractive: true}}
	err := cmd.Run()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing query")
}

func TestRunSearchFormats(t *testing.T) {
	books := []book.Book{
		{Title: "The Odyssey", Authors: []string{"Homer"}, Source: "fake"},
		{Title: "The Iliad", Authors: []string{"Homer"}, Source: "fake"},
	}

	for _, format := range []string{"table", "json", "yaml"} {
		t.Run(format, func(t *testing.T) {
			stubDeps(t, &fakePrimary{books: books})

			cmd := &KeywordCmd{searchOptions{Query: []string{"homer"}, Format: format, NoInteractive: true}}
			assert.NoError(t, cmd.Run())
		})
	}
}

func TestHistoryCommands(t *testing.T) {
	primary := &fakePrimary{books: []book.Book{{Title: "The Odyssey", Source: "fake"}}}
	stubDeps(t, primary)

	searchCmd := &KeywordCmd{searchOptions{Query: []string{"odyssey"}, Format: "json"}}
	assert.NoError(t, searchCmd.Run())

	d := buildDeps()
	assert.Equal(t, []string{"odyssey"}, d.history.Entries())

	assert.NoError(t, (&HistoryListCmd{}).Run())
	assert.NoError(t, (&HistoryClearCmd{}).Run())
	assert.Equal(t, 0, len(d.history.Entries()))
}

func TestProvidersPing(t *testing.T) {
	stubDeps(t, &fakePrimary{})
	assert.NoError(t, (&ProvidersPingCmd{}).Run())
}

func TestUpdateGlobalConfig(t *testing.T) {
	origFile := config.HistoryFile
	origTimeout := config.SearchTimeout
	t.Cleanup(func() {
		config.HistoryFile = origFile
		config.SearchTimeout = origTimeout
	})

	updateGlobalConfig(&CLI{HistoryFile: "/tmp/custom.json", Timeout: 3 * time.Second})
	assert.Equal(t, "/tmp/custom.json", config.HistoryFile)
	assert.Equal(t, 3*time.Second, config.SearchTimeout)

	// Zero values leave the resolved config alone.
	updateGlobalConfig(&CLI{})
	assert.Equal(t, "/tmp/custom.json", config.HistoryFile)
	assert.Equal(t, 3*time.Second, config.SearchTimeout)
}
