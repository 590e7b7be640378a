package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"thirdcoast.systems/trendscout/internal/ranking"
	"thirdcoast.systems/trendscout/internal/search"
)

func newSearchCmd(root *rootOptions) *cobra.Command {
	f := ranking.DefaultFilter()
	var contentType string

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search videos and rank them by views per subscriber",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f.ContentType = ranking.ContentType(contentType)
			query := strings.Join(args, " ")
			if err := search.Validate(query, f); err != nil {
				return err
			}

			yt, conf, err := newYouTube(cmd)
			if err != nil {
				return err
			}
			videos, err := search.NewService(yt, conf.SearchBatch).Search(cmd.Context(), query, f)
			if err != nil {
				return err
			}

			if root.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{"videos": videos})
			}
			return writeVideos(cmd.OutOrStdout(), videos, time.Now())
		},
	}
	cmd.Flags().StringVar(&contentType, "content-type", string(ranking.ContentAll), "all, shorts or long")
	cmd.Flags().Float64Var(&f.MinViralRatio, "min", f.MinViralRatio, "minimum viral ratio")
	cmd.Flags().Float64Var(&f.MaxViralRatio, "max", f.MaxViralRatio, "maximum viral ratio")
	return cmd
}
