package main

import (
	"time"

	"github.com/spf13/cobra"

	"thirdcoast.systems/trendscout/internal/trends"
)

func newTrendsCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "trends",
		Short: "Aggregate keywords from the most popular videos in Korea and the USA",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			yt, _, err := newYouTube(cmd)
			if err != nil {
				return err
			}
			report, err := trends.NewService(yt, nil).Trends(cmd.Context())
			if err != nil {
				return err
			}

			if root.json {
				return writeJSON(cmd.OutOrStdout(), map[string]any{
					"trends":    report,
					"timestamp": report.GeneratedAt.UTC().Format(time.RFC3339Nano),
				})
			}
			return writeTrends(cmd.OutOrStdout(), report)
		},
	}
}
