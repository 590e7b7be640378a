package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"thirdcoast.systems/trendscout/internal/ranking"
	"thirdcoast.systems/trendscout/internal/trends"
	"thirdcoast.systems/trendscout/pkg/utils/format"
)

const titleWidth = 48

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func writeVideos(w io.Writer, videos []ranking.VideoRecord, now time.Time) error {
	if len(videos) == 0 {
		_, err := fmt.Fprintln(w, "No videos matched.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RATIO\tVIEWS\tSUBS\tLENGTH\tAGE\tCHANNEL\tTITLE")
	for _, v := range videos {
		subs := format.Count(v.SubscriberCount)
		if v.SubscribersHidden {
			subs = "hidden"
		}
		length := v.Duration
		if v.IsShorts {
			length += " (short)"
		}
		age := "-"
		if t := v.PublishedTime(); !t.IsZero() {
			age = humanize.RelTime(t, now, "ago", "from now")
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			format.Ratio(v.ViralRatio),
			format.Count(v.ViewCount),
			subs,
			length,
			age,
			format.Truncate(v.ChannelTitle, 24),
			format.Truncate(v.Title, titleWidth),
		)
	}
	return tw.Flush()
}

func writeTrends(w io.Writer, report trends.Report) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	section := func(name string, entries []trends.TrendEntry) {
		fmt.Fprintf(tw, "%s\n", strings.ToUpper(name))
		if len(entries) == 0 {
			fmt.Fprintln(tw, "  (none)")
		}
		for i, e := range entries {
			fmt.Fprintf(tw, "  %d.\t%s\t%s\t%s\n", i+1, e.Keyword, e.Category, humanize.Comma(int64(e.Count)))
		}
		fmt.Fprintln(tw)
	}

	section(trends.RegionKR.Key(), report.Korea)
	section(trends.RegionUS.Key(), report.USA)
	section("gaming", report.Categories.Gaming)
	section("music", report.Categories.Music)
	section("entertainment", report.Categories.Entertainment)
	section("education", report.Categories.Education)
	section("tech", report.Categories.Tech)
	section("lifestyle", report.Categories.Lifestyle)

	for _, r := range report.FailedRegions {
		fmt.Fprintf(tw, "warning: trending feed for %s (%s) could not be fetched\n", r.Name(), r)
	}
	return tw.Flush()
}
