package youtube

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strictPolicy = bluemonday.StrictPolicy()

// PlainText strips every tag from provider-rendered HTML and unescapes
// entities.
func PlainText(s string) string {
	// <br> carries line structure in comment text.
	s = strings.NewReplacer("<br>", "\n", "<br/>", "\n", "<br />", "\n").Replace(s)
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}
