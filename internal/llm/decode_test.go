package llm

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUnwrap(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n{\"a\":1}\n```", `{"a":1}`},
		{"surrounding space", "  \n```json {\"a\":1}```  ", `{"a":1}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Unwrap(tc.raw)
			require.NoError(t, err)
			require.Equal(t, tc.want, string(got))
		})
	}
}

func TestUnwrap_Empty(t *testing.T) {
	for _, raw := range []string{"", "   ", "```json\n```", "``````"} {
		_, err := Unwrap(raw)
		require.ErrorIs(t, err, ErrEmptyCompletion, raw)
	}
}

func TestDecodeJSON(t *testing.T) {
	var v struct {
		Title string `json:"title"`
	}
	require.NoError(t, DecodeJSON("```json\n{\"title\":\"hello\"}\n```", &v))
	require.Equal(t, "hello", v.Title)

	err := DecodeJSON("Sure! Here is your JSON: {", &v)
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	require.Contains(t, pe.Raw, "Sure!")
}
