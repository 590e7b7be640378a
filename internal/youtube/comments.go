package youtube

import (
	"context"

	yt "google.golang.org/api/youtube/v3"

	"thirdcoast.systems/trendscout/internal/apperror"
)

const (
	// DefaultCommentLimit is used when the caller does not ask for a count.
	DefaultCommentLimit = 100
	// MaxCommentLimit caps a single collection.
	MaxCommentLimit = 500
	commentPageSize = 100
)

// Comment is one top-level viewer comment.
type Comment struct {
	ID          string `json:"id"`
	Text        string `json:"text"`
	AuthorName  string `json:"authorName"`
	LikeCount   int64  `json:"likeCount"`
	PublishedAt string `json:"publishedAt"`
}

// CommentBatch is the result of a collection. Disabled is set when the video
// has comments turned off; Comments is then empty.
type CommentBatch struct {
	Comments []Comment
	Disabled bool
}

// ClampCommentLimit applies the default and the upper cap.
func ClampCommentLimit(n int) int {
	if n <= 0 {
		return DefaultCommentLimit
	}
	return min(n, MaxCommentLimit)
}

// CollectComments pages through relevance-ordered comment threads until max
// comments are collected or the provider has no further pages. videoRef may
// be a bare id or any YouTube video URL.
func (c *Client) CollectComments(ctx context.Context, videoRef string, max int) (CommentBatch, error) {
	videoID, err := ExtractVideoID(videoRef)
	if err != nil {
		return CommentBatch{}, apperror.Validation("a valid video id is required")
	}
	max = ClampCommentLimit(max)

	batch := CommentBatch{Comments: make([]Comment, 0, max)}
	pageToken := ""
	for len(batch.Comments) < max {
		want := int64(min(commentPageSize, max-len(batch.Comments)))

		var resp *yt.CommentThreadListResponse
		err := c.call(ctx, "commentThreads", func() error {
			call := c.svc.CommentThreads.List([]string{"snippet"}).
				VideoId(videoID).
				MaxResults(want).
				Order("relevance").
				Context(ctx)
			if pageToken != "" {
				call = call.PageToken(pageToken)
			}
			var err error
			resp, err = call.Do()
			return err
		})
		if err != nil {
			if IsCommentsDisabled(err) {
				return CommentBatch{Comments: []Comment{}, Disabled: true}, nil
			}
			return CommentBatch{}, classify(err, "failed to collect comments")
		}

		for _, item := range resp.Items {
			if cm, ok := toComment(item); ok {
				batch.Comments = append(batch.Comments, cm)
			}
		}

		// An empty page with a token would loop forever.
		if resp.NextPageToken == "" || len(resp.Items) == 0 {
			break
		}
		pageToken = resp.NextPageToken
	}

	if len(batch.Comments) > max {
		batch.Comments = batch.Comments[:max]
	}
	return batch, nil
}

func toComment(item *yt.CommentThread) (Comment, bool) {
	if item == nil || item.Snippet == nil || item.Snippet.TopLevelComment == nil || item.Snippet.TopLevelComment.Snippet == nil {
		return Comment{}, false
	}
	s := item.Snippet.TopLevelComment.Snippet
	return Comment{
		ID:          item.Id,
		Text:        PlainText(s.TextDisplay),
		AuthorName:  s.AuthorDisplayName,
		LikeCount:   s.LikeCount,
		PublishedAt: s.PublishedAt,
	}, true
}
