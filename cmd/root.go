package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/config"
	"github.com/lepinkainen/bookdex/internal/fetch"
	"github.com/lepinkainen/bookdex/internal/history"
	"github.com/lepinkainen/bookdex/internal/provider"
	"github.com/lepinkainen/bookdex/internal/render"
	"github.com/lepinkainen/bookdex/internal/search"
	"github.com/lepinkainen/bookdex/internal/shell"
	"github.com/lepinkainen/bookdex/internal/tui"
)

// CLI represents the complete command structure for the bookdex application
type CLI struct {
	// Global flags
	HistoryFile string        `help:"Path to the history JSON file"`
	Timeout     time.Duration `help:"Timeout for a single provider request"`
	Verbose     bool          `short:"v" help:"Enable debug logging"`

	Search    SearchCmd    `cmd:"" help:"Search for book metadata"`
	History   HistoryCmd   `cmd:"" help:"Show or clear the recent-query list"`
	Shell     ShellCmd     `cmd:"" help:"Start the interactive search shell"`
	Providers ProvidersCmd `cmd:"" help:"Provider diagnostics"`
}

// SearchCmd groups the four search modes.
type SearchCmd struct {
	Isbn    IsbnCmd    `cmd:"" help:"Look up a single book by ISBN"`
	Title   TitleCmd   `cmd:"" help:"Search books by title"`
	Author  AuthorCmd  `cmd:"" help:"Search books by author"`
	Keyword KeywordCmd `cmd:"" help:"Search books by free-text keyword"`
}

type searchOptions struct {
	Query         []string `arg:"" help:"The query text"`
	Format        string   `help:"Output format" enum:"table,json,yaml" default:"table"`
	NoInteractive bool     `help:"Print multi-result lists as a table instead of the interactive picker"`
}

// IsbnCmd looks up one book by ISBN with the provider fallback chain.
type IsbnCmd struct{ searchOptions }

// TitleCmd searches by title qualifier.
type TitleCmd struct{ searchOptions }

// AuthorCmd searches by author qualifier.
type AuthorCmd struct{ searchOptions }

// KeywordCmd searches with no qualifier.
type KeywordCmd struct{ searchOptions }

// HistoryCmd groups the history subcommands.
type HistoryCmd struct {
	List  HistoryListCmd  `cmd:"" help:"List recent queries, most recent first" default:"1"`
	Clear HistoryClearCmd `cmd:"" help:"Clear the recent-query list"`
}

// HistoryListCmd prints the recent queries.
type HistoryListCmd struct{}

// HistoryClearCmd empties the recent-query list.
type HistoryClearCmd struct{}

// ShellCmd starts the interactive prompt loop.
type ShellCmd struct{}

// ProvidersCmd groups provider diagnostics.
type ProvidersCmd struct {
	Ping ProvidersPingCmd `cmd:"" help:"Check that each provider is reachable"`
}

// ProvidersPingCmd checks provider reachability.
type ProvidersPingCmd struct{}

// deps bundles the collaborators every command operates on.
type deps struct {
	orchestrator *search.Orchestrator
	history      *history.Store
	providers    []provider.Provider
}

// buildDeps wires the fetch client, providers, history store and
// orchestrator from the resolved configuration. Overridable in tests.
var buildDeps = func() *deps {
	client := fetch.New(config.SearchTimeout)
	googleBooks := provider.NewGoogleBooks(client, config.GoogleBooksAPIKey, config.MaxResults)
	openLibrary := provider.NewOpenLibrary(client)

	hist := history.NewStore(config.HistoryFile, config.HistorySize)

	return &deps{
		orchestrator: search.New(googleBooks, hist, openLibrary),
		history:      hist,
		providers:    []provider.Provider{googleBooks, openLibrary},
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookdex"),
		kong.Description("Search book metadata by ISBN, title, author or keyword."),
		kong.UsageOnError(),
	)

	initLogging(cli.Verbose)
	initConfig()
	updateGlobalConfig(&cli)

	err := ctx.Run()
	if err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.AutomaticEnv()
	if err := viper.BindEnv("googlebooks.api_key", "GOOGLE_BOOKS_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	config.SetHistoryFile(cli.HistoryFile)
	config.SetSearchTimeout(cli.Timeout)
}

func initLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// Run methods for each command

func (c *IsbnCmd) Run() error {
	return runSearch(book.ModeISBN, c.searchOptions)
}

func (c *TitleCmd) Run() error {
	return runSearch(book.ModeTitle, c.searchOptions)
}

func (c *AuthorCmd) Run() error {
	return runSearch(book.ModeAuthor, c.searchOptions)
}

func (c *KeywordCmd) Run() error {
	return runSearch(book.ModeKeyword, c.searchOptions)
}

func runSearch(mode book.SearchMode, opts searchOptions) error {
	d := buildDeps()
	query := strings.Join(opts.Query, " ")

	outcome := d.orchestrator.Search(context.Background(), mode, query)

	switch outcome.Status {
	case search.StatusFailed:
		return errors.New(outcome.Message)
	case search.StatusEmpty:
		fmt.Println(outcome.Message)
		return nil
	}

	if opts.Format != "table" {
		data, err := render.Marshal(outcome.Books, opts.Format)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	if len(outcome.Books) == 1 {
		fmt.Println(render.Detail(outcome.Books[0]))
		return nil
	}

	if opts.NoInteractive {
		fmt.Println(render.Table(outcome.Books))
		return nil
	}

	result, err := tui.Select(query, outcome.Books)
	if err != nil {
		return err
	}
	switch result.Action {
	case tui.ActionSelected:
		fmt.Println(render.Detail(*result.Selection))
	case tui.ActionSkipped:
		fmt.Println(render.Table(outcome.Books))
	}
	return nil
}

func (c *HistoryListCmd) Run() error {
	d := buildDeps()
	entries := d.history.Entries()
	if len(entries) == 0 {
		fmt.Println("history is empty")
		return nil
	}
	for i, entry := range entries {
		fmt.Printf("%2d  %s\n", i+1, entry)
	}
	return nil
}

func (c *HistoryClearCmd) Run() error {
	d := buildDeps()
	if err := d.history.Clear(); err != nil {
		return fmt.Errorf("clearing history: %w", err)
	}
	fmt.Println("history cleared")
	return nil
}

func (c *ShellCmd) Run() error {
	d := buildDeps()
	return shell.New(d.orchestrator, d.history, os.Stdout).Run(context.Background())
}

func (c *ProvidersPingCmd) Run() error {
	d := buildDeps()
	ctx := context.Background()

	var failed bool
	for _, p := range d.providers {
		if err := p.Ping(ctx); err != nil {
			slog.Error("Provider unreachable", "provider", p.Name(), "error", err)
			failed = true
			continue
		}
		fmt.Printf("%s: ok\n", p.Name())
	}
	if failed {
		return errors.New("one or more providers are unreachable")
	}
	return nil
}
