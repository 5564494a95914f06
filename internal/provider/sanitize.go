package provider

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

// sanitizeText strips HTML markup from provider-supplied text. Both
// providers occasionally return descriptions with embedded tags; the
// canonical record carries plain text only.
func sanitizeText(s string) string {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	stripped := strictPolicy.Sanitize(s)
	// Sanitize entity-escapes its output; the record stores readable text.
	return strings.TrimSpace(html.UnescapeString(stripped))
}
