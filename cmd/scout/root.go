package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"thirdcoast.systems/trendscout/internal/config"
	"thirdcoast.systems/trendscout/internal/youtube"
)

type rootOptions struct {
	json    bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "scout",
		Short:         "Find viral YouTube videos and trending keywords",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if opts.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
	}
	cmd.PersistentFlags().BoolVar(&opts.json, "json", false, "print JSON instead of a table")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log requests to stderr")

	cmd.AddCommand(newSearchCmd(opts))
	cmd.AddCommand(newTrendsCmd(opts))
	return cmd
}

// newYouTube builds a client from YOUTUBE_* configuration.
func newYouTube(cmd *cobra.Command) (*youtube.Client, *config.YouTube, error) {
	ctx := cmd.Context()
	conf, err := config.LoadYouTubeConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	yt, err := youtube.NewClient(ctx, youtube.Options{
		APIKey:            conf.APIKey,
		RegionCode:        conf.RegionCode,
		RelevanceLanguage: conf.RelevanceLanguage,
		RequestsPerSecond: conf.RequestsPerSecond,
		Timeout:           conf.Timeout,
	})
	if err != nil {
		return nil, nil, err
	}
	return yt, conf, nil
}
