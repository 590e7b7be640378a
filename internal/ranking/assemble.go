package ranking

import "sort"

// Assemble joins search hits with their video and channel statistics,
// applies filter and sorts the result by viral ratio, highest first.
//
// Hits missing either statistics entry are dropped. Ties keep input order.
// A filter whose minimum exceeds its maximum yields no records.
func Assemble(hits []SearchHit, videos map[string]VideoStats, channels map[string]ChannelStats, filter Filter) []VideoRecord {
	records := make([]VideoRecord, 0, len(hits))
	for _, hit := range hits {
		vs, ok := videos[hit.VideoID]
		if !ok {
			continue
		}
		cs, ok := channels[hit.ChannelID]
		if !ok {
			continue
		}

		rec := newRecord(hit, vs, cs)
		if !filter.Match(rec) {
			continue
		}
		records = append(records, rec)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].ViralRatio > records[j].ViralRatio
	})
	return records
}

// Match reports whether rec passes the content type and viral ratio filters.
func (f Filter) Match(rec VideoRecord) bool {
	switch f.ContentType {
	case ContentShorts:
		if !rec.IsShorts {
			return false
		}
	case ContentLong:
		if rec.IsShorts {
			return false
		}
	}
	return rec.ViralRatio >= f.MinViralRatio && rec.ViralRatio <= f.MaxViralRatio
}

func newRecord(hit SearchHit, vs VideoStats, cs ChannelStats) VideoRecord {
	d := ParseDuration(vs.Duration)
	subs := flooredSubscribers(cs.SubscriberCount)
	return VideoRecord{
		ID:                hit.VideoID,
		Title:             hit.Title,
		Description:       hit.Description,
		ThumbnailURL:      hit.ThumbnailURL,
		ChannelID:         hit.ChannelID,
		ChannelTitle:      hit.ChannelTitle,
		PublishedAt:       hit.PublishedAt,
		ViewCount:         vs.ViewCount,
		SubscriberCount:   subs,
		SubscribersHidden: cs.Hidden,
		ViralRatio:        ViralRatio(vs.ViewCount, subs),
		Duration:          d.Clock(),
		DurationSeconds:   d.Seconds,
		IsShorts:          d.IsShort(),
	}
}
