// Package shell implements the interactive prompt loop. Line editing and
// in-session recall come from liner; the persistent recent-query list is
// the history store's.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/lepinkainen/bookdex/internal/book"
	"github.com/lepinkainen/bookdex/internal/history"
	"github.com/lepinkainen/bookdex/internal/render"
	"github.com/lepinkainen/bookdex/internal/search"
)

const prompt = "bookdex> "

var modeKeywords = []string{"isbn", "title", "author", "keyword"}

// Shell runs the prompt loop against an orchestrator.
type Shell struct {
	orchestrator *search.Orchestrator
	history      *history.Store
	out          io.Writer
}

// New creates a Shell writing results to out.
func New(orchestrator *search.Orchestrator, hist *history.Store, out io.Writer) *Shell {
	return &Shell{
		orchestrator: orchestrator,
		history:      hist,
		out:          out,
	}
}

// Run reads and executes queries until EOF or an exit command.
func (s *Shell) Run(ctx context.Context) error {
	line := liner.NewLiner()
	defer func() { _ = line.Close() }()

	line.SetCtrlCAborts(true)
	line.SetCompleter(completeMode)

	// Seed line recall with the persisted history, oldest first so the
	// most recent query is one arrow-up away.
	entries := s.history.Entries()
	for i := len(entries) - 1; i >= 0; i-- {
		line.AppendHistory(entries[i])
	}

	// Every recorded query becomes recallable immediately.
	s.history.OnChange(func(entries []string) {
		if len(entries) > 0 {
			line.AppendHistory(entries[0])
		}
	})

	fmt.Fprintln(s.out, "bookdex interactive shell. Modes: isbn, title, author, keyword. Type exit to leave.")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		input, err := line.Prompt(prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				continue
			}
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(s.out)
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if input == "exit" || input == "quit" {
			return nil
		}

		mode, query := ParseInput(input)
		outcome := s.orchestrator.Search(ctx, mode, query)
		s.printOutcome(outcome)
	}
}

// ParseInput splits a shell line into a search mode and query. A leading
// mode keyword selects the mode; anything else is a keyword search.
func ParseInput(input string) (book.SearchMode, string) {
	fields := strings.SplitN(strings.TrimSpace(input), " ", 2)
	if len(fields) == 2 {
		if mode, err := book.ParseMode(fields[0]); err == nil {
			return mode, strings.TrimSpace(fields[1])
		}
	}
	return book.ModeKeyword, strings.TrimSpace(input)
}

func (s *Shell) printOutcome(outcome search.Outcome) {
	switch outcome.Status {
	case search.StatusSuccess:
		if len(outcome.Books) == 1 {
			fmt.Fprintln(s.out, render.Detail(outcome.Books[0]))
		} else {
			fmt.Fprintln(s.out, render.Table(outcome.Books))
		}
	case search.StatusEmpty:
		fmt.Fprintln(s.out, outcome.Message)
	case search.StatusFailed:
		fmt.Fprintf(s.out, "search failed: %s\n", outcome.Message)
	}
}

// completeMode offers the mode keywords while the first word is typed.
func completeMode(line string) []string {
	if strings.Contains(line, " ") {
		return nil
	}
	var out []string
	for _, kw := range modeKeywords {
		if strings.HasPrefix(kw, strings.ToLower(line)) {
			out = append(out, kw+" ")
		}
	}
	return out
}
