package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ParseError reports a completion that is not valid JSON for the target.
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("completion is not valid json: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Unwrap strips an optional ```json or ``` opening fence and a closing fence
// from raw and returns the trimmed payload.
func Unwrap(raw string) ([]byte, error) {
	s := strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(s, "```json"):
		s = s[len("```json"):]
	case strings.HasPrefix(s, "```"):
		s = s[len("```"):]
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, ErrEmptyCompletion
	}
	return []byte(s), nil
}

// DecodeJSON unwraps raw and decodes it into v.
func DecodeJSON(raw string, v any) error {
	payload, err := Unwrap(raw)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return &ParseError{Raw: raw, Err: err}
	}
	return nil
}
