package youtube

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"thirdcoast.systems/trendscout/internal/apperror"
)

func commentItems(start, n int) []map[string]any {
	items := make([]map[string]any, 0, n)
	for i := start; i < start+n; i++ {
		items = append(items, map[string]any{
			"id": fmt.Sprintf("c%d", i),
			"snippet": map[string]any{
				"topLevelComment": map[string]any{
					"snippet": map[string]any{
						"textDisplay":       fmt.Sprintf("<b>comment</b> %d &amp; more", i),
						"authorDisplayName": "viewer",
						"likeCount":         i,
						"publishedAt":       "2024-01-01T00:00:00Z",
					},
				},
			},
		})
	}
	return items
}

func TestCollectComments_PagesUntilLimit(t *testing.T) {
	api, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"commentThreads": func(w http.ResponseWriter, r *http.Request) {
			want, _ := strconv.Atoi(r.URL.Query().Get("maxResults"))
			start := 0
			if r.URL.Query().Get("pageToken") == "p2" {
				start = 100
			}
			writeJSON(w, http.StatusOK, map[string]any{
				"nextPageToken": "p2",
				"items":         commentItems(start, want),
			})
		},
	})

	batch, err := client.CollectComments(context.Background(), "https://youtu.be/ggLajT7aMMk", 150)
	require.NoError(t, err)
	require.False(t, batch.Disabled)
	require.Len(t, batch.Comments, 150)
	require.Equal(t, "comment 0 & more", batch.Comments[0].Text)
	require.Equal(t, "c149", batch.Comments[149].ID)

	reqs := api.calls("commentThreads")
	require.Len(t, reqs, 2)
	require.Equal(t, "100", reqs[0].URL.Query().Get("maxResults"))
	require.Equal(t, "50", reqs[1].URL.Query().Get("maxResults"))
	require.Equal(t, "relevance", reqs[0].URL.Query().Get("order"))
	require.Equal(t, "ggLajT7aMMk", reqs[0].URL.Query().Get("videoId"))
}

func TestCollectComments_StopsWithoutToken(t *testing.T) {
	api, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"commentThreads": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{"items": commentItems(0, 3)})
		},
	})

	batch, err := client.CollectComments(context.Background(), "ggLajT7aMMk", 0)
	require.NoError(t, err)
	require.Len(t, batch.Comments, 3)
	require.Len(t, api.calls("commentThreads"), 1)
}

func TestCollectComments_Disabled(t *testing.T) {
	_, client := newFakeAPI(t, map[string]http.HandlerFunc{
		"commentThreads": func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusForbidden, apiError(http.StatusForbidden,
				"The video identified by the videoId parameter has disabled comments.", "commentsDisabled"))
		},
	})

	batch, err := client.CollectComments(context.Background(), "ggLajT7aMMk", 100)
	require.NoError(t, err)
	require.True(t, batch.Disabled)
	require.Empty(t, batch.Comments)
}

func TestCollectComments_InvalidVideoRef(t *testing.T) {
	_, client := newFakeAPI(t, nil)

	_, err := client.CollectComments(context.Background(), "https://example.com/nope", 100)
	require.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestClampCommentLimit(t *testing.T) {
	require.Equal(t, DefaultCommentLimit, ClampCommentLimit(0))
	require.Equal(t, DefaultCommentLimit, ClampCommentLimit(-5))
	require.Equal(t, 42, ClampCommentLimit(42))
	require.Equal(t, MaxCommentLimit, ClampCommentLimit(10_000))
}

func TestPlainText(t *testing.T) {
	require.Equal(t, "it's <fine> & \"quoted\"", PlainText(`<a href="x">it&#39;s</a> &lt;fine&gt; &amp; &quot;quoted&quot;`))
	require.Equal(t, "line one\nline two", PlainText("line one<br>line two"))
}
