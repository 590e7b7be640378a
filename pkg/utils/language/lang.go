// Package language wraps x/text/language for the configured content language.
package language

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Default is the language generated content is written in unless configured.
var Default = Tag(language.Korean)

type Tag language.Tag

// Parse parses a BCP 47 tag. An empty string yields Default.
func Parse(s string) (Tag, error) {
	if s == "" {
		return Default, nil
	}
	tag, err := language.Parse(s)
	if err != nil {
		return Tag(language.Und), fmt.Errorf("language.Parse %q: %w", s, err)
	}
	return Tag(tag), nil
}

func (t Tag) String() string {
	return language.Tag(t).String()
}

// Name returns the English name of the language, e.g. "Korean".
func (t Tag) Name() string {
	if name := display.English.Languages().Name(language.Tag(t)); name != "" {
		return name
	}
	return t.String()
}

// SelfName returns the language's name for itself, e.g. "한국어".
func (t Tag) SelfName() string {
	return display.Self.Name(language.Tag(t))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Tag) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tag) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}
