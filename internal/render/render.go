// Package render formats search outcomes for the terminal. Provider and
// user supplied text is treated as untrusted: control sequences are
// stripped before anything reaches the screen.
package render

import (
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/bookdex/internal/book"
)

const descriptionLimit = 500

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("254"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("110")).
			Width(11)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	sourceStyle = lipgloss.NewStyle().
			Faint(true).
			Foreground(lipgloss.Color("247"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))
)

// CleanText strips control and escape characters from untrusted text so
// provider data cannot inject terminal sequences.
func CleanText(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return ' '
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// Detail renders a single book as a bordered card.
func Detail(b book.Book) string {
	var rows []string

	rows = append(rows, titleStyle.Render(CleanText(b.Title)))
	rows = append(rows, row("Authors", strings.Join(b.Authors, ", ")))

	if b.PublishDate != "" {
		rows = append(rows, row("Published", b.PublishDate))
	}
	if b.Publisher != "" {
		rows = append(rows, row("Publisher", b.Publisher))
	}
	if b.ISBN != "" {
		rows = append(rows, row("ISBN", b.ISBN))
	}
	if b.Language != "" {
		rows = append(rows, row("Language", b.Language))
	}
	if b.Pages > 0 {
		rows = append(rows, row("Pages", fmt.Sprintf("%d", b.Pages)))
	}
	if len(b.Categories) > 0 {
		rows = append(rows, row("Categories", strings.Join(b.Categories, ", ")))
	}
	if b.CoverURL != "" {
		rows = append(rows, row("Cover", b.CoverURL))
	}
	if b.Description != "" {
		rows = append(rows, row("About", truncate(b.Description, descriptionLimit)))
	}

	rows = append(rows, sourceStyle.Render("source: "+b.Source))

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func row(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render(label),
		valueStyle.Render(CleanText(value)),
	)
}

// Table renders a multi-result list as an aligned plain table.
func Table(books []book.Book) string {
	var sb strings.Builder

	sb.WriteString(headerStyle.Render(fmt.Sprintf("%d results", len(books))))
	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("%-3s  %-42s  %-28s  %s\n", "#", "Title", "Authors", "Published"))
	sb.WriteString(strings.Repeat("-", 90))
	sb.WriteString("\n")

	for i, b := range books {
		sb.WriteString(fmt.Sprintf("%-3d  %-42s  %-28s  %s\n",
			i+1,
			truncate(CleanText(b.Title), 42),
			truncate(CleanText(strings.Join(b.Authors, ", ")), 28),
			CleanText(b.PublishDate),
		))
	}

	return sb.String()
}

// Marshal serializes books in the requested machine-readable format,
// "json" or "yaml".
func Marshal(books []book.Book, format string) ([]byte, error) {
	switch format {
	case "json":
		return json.MarshalIndent(books, "", "  ")
	case "yaml":
		return yaml.Marshal(books)
	}
	return nil, fmt.Errorf("unknown output format: %q", format)
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
