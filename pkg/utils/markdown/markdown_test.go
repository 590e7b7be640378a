package markdown

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_Empty(t *testing.T) {
	require.Equal(t, "", string(Render("")))
}

func TestDocument_HTML_Sanitizes(t *testing.T) {
	doc := New("# Title\n\nhello <script>alert(1)</script> **world**")

	html := string(doc.HTML())
	require.NotContains(t, strings.ToLower(html), "<script")
	require.Contains(t, html, "<strong>world</strong>")
	require.Contains(t, html, "<h1")

	// cached
	require.Equal(t, html, string(doc.HTML()))
}

func TestRender_StableHeadingIDs(t *testing.T) {
	first := string(Render("# Hook\n\ntext"))
	second := string(Render("# Hook\n\ntext"))

	require.Contains(t, first, `id="hook"`)
	require.Equal(t, first, second)
}

func TestRender_Concurrent(t *testing.T) {
	want := string(Render("# Hook\n\n## Intro\n\n\"quoted\" -- text"))

	var wg sync.WaitGroup
	errs := make(chan string, 32)
	for range 32 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				if got := string(Render("# Hook\n\n## Intro\n\n\"quoted\" -- text")); got != want {
					errs <- got
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for got := range errs {
		require.Equal(t, want, got)
	}
}
