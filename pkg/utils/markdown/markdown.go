// Package markdown renders generated outlines to sanitised HTML.
package markdown

import (
	"bytes"
	"html/template"

	"github.com/microcosm-cc/bluemonday"
	"github.com/russross/blackfriday/v2"
)

var (
	bfFlags      = blackfriday.Safelink | blackfriday.NofollowLinks | blackfriday.HrefTargetBlank | blackfriday.Smartypants | blackfriday.SmartypantsDashes
	bfExtensions = blackfriday.NoIntraEmphasis | blackfriday.Autolink | blackfriday.Strikethrough | blackfriday.SpaceHeadings | blackfriday.NoEmptyLineBeforeBlock | blackfriday.HeadingIDs | blackfriday.AutoHeadingIDs
	policy       = bluemonday.UGCPolicy()
)

// Document is Markdown source with lazily rendered output.
type Document struct {
	Source string

	html *template.HTML
}

func New(source string) *Document {
	return &Document{Source: source}
}

// run renders with a fresh renderer; HTMLRenderer tracks heading ids and
// smartypants state and must not be shared between renders.
func (d *Document) run() []byte {
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: bfFlags})
	return blackfriday.Run([]byte(d.Source),
		blackfriday.WithRenderer(renderer),
		blackfriday.WithExtensions(bfExtensions),
	)
}

// HTML converts the source into sanitised HTML. Model output is untrusted, so
// the UGC policy always runs.
func (d *Document) HTML() template.HTML {
	if d.html != nil {
		return *d.html
	}
	if d.Source == "" {
		empty := template.HTML("")
		d.html = &empty
		return empty
	}
	h := template.HTML(bytes.TrimSpace(policy.SanitizeBytes(d.run())))
	d.html = &h
	return h
}

// Render is shorthand for New(source).HTML().
func Render(source string) template.HTML {
	return New(source).HTML()
}
