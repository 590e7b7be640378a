// Package trends ranks keywords across regional trending feeds.
package trends

import (
	"sort"
	"time"
	"unicode/utf8"

	"thirdcoast.systems/trendscout/internal/keywords"
)

const (
	// TitleWeight is added per title token occurrence.
	TitleWeight = 2
	// TagWeight is added per tag.
	TagWeight = 1
	// CategoryWeight is added per video for its category name.
	CategoryWeight = 1

	// TopPerRegion caps the keywords surfaced for one region.
	TopPerRegion = 10
	// TopPerBucket caps each topical bucket in a Report.
	TopPerBucket = 5

	minTagRunes = 3
)

// TrendingVideo is the subset of a trending feed item used for aggregation.
type TrendingVideo struct {
	Title      string
	Tags       []string
	CategoryID string
}

// KeywordCount pairs a normalized keyword with its accumulated weight.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
}

// TrendEntry is a ranked keyword for one region.
type TrendEntry struct {
	Keyword  string            `json:"keyword"`
	Category keywords.Category `json:"category"`
	Region   Region            `json:"region"`
	Count    int               `json:"count"`
}

// Buckets groups trend entries by display category.
type Buckets struct {
	Gaming        []TrendEntry `json:"gaming"`
	Music         []TrendEntry `json:"music"`
	Entertainment []TrendEntry `json:"entertainment"`
	Education     []TrendEntry `json:"education"`
	Tech          []TrendEntry `json:"tech"`
	Lifestyle     []TrendEntry `json:"lifestyle"`
}

// Report is the partitioned trend output.
type Report struct {
	Korea         []TrendEntry `json:"korea"`
	USA           []TrendEntry `json:"usa"`
	Categories    Buckets      `json:"categories"`
	GeneratedAt   time.Time    `json:"-"`
	FailedRegions []Region     `json:"failedRegions,omitempty"`
}

// tally accumulates weights while remembering first-seen order so equal
// weights rank deterministically.
type tally struct {
	order   []string
	weights map[string]int
}

func newTally() *tally {
	return &tally{weights: make(map[string]int)}
}

func (t *tally) add(keyword string, weight int) {
	if keyword == "" {
		return
	}
	if _, ok := t.weights[keyword]; !ok {
		t.order = append(t.order, keyword)
	}
	t.weights[keyword] += weight
}

func (t *tally) ranked() []KeywordCount {
	out := make([]KeywordCount, len(t.order))
	for i, k := range t.order {
		out[i] = KeywordCount{Keyword: k, Weight: t.weights[k]}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Weight > out[j].Weight
	})
	return out
}

// Weigh accumulates keyword weights over videos: title tokens, tags and the
// video's category name.
func Weigh(videos []TrendingVideo, extractor *keywords.Extractor) []KeywordCount {
	t := newTally()
	for _, v := range videos {
		for _, word := range extractor.Extract(v.Title) {
			t.add(word, TitleWeight)
		}
		for _, tag := range v.Tags {
			clean := keywords.NormalizeTag(tag)
			if utf8.RuneCountInString(clean) >= minTagRunes {
				t.add(clean, TagWeight)
			}
		}
		if name := keywords.CategoryName(v.CategoryID); name != "" {
			t.add(keywords.NormalizeTag(name), CategoryWeight)
		}
	}
	return t.ranked()
}

// Aggregate returns the top keywords for one region's trending videos, each
// labelled with its display category.
func Aggregate(region Region, videos []TrendingVideo, extractor *keywords.Extractor) []TrendEntry {
	counts := Weigh(videos, extractor)
	if len(counts) > TopPerRegion {
		counts = counts[:TopPerRegion]
	}

	entries := make([]TrendEntry, len(counts))
	for i, kc := range counts {
		entries[i] = TrendEntry{
			Keyword:  kc.Keyword,
			Category: keywords.Classify(kc.Keyword),
			Region:   region,
			Count:    kc.Weight,
		}
	}
	return entries
}

// Partition splits entries by region and slices them into topical buckets.
// Entries are expected in region order.
func Partition(entries []TrendEntry) Report {
	r := Report{Korea: []TrendEntry{}, USA: []TrendEntry{}}
	for _, e := range entries {
		switch e.Region {
		case RegionKR:
			r.Korea = append(r.Korea, e)
		case RegionUS:
			r.USA = append(r.USA, e)
		}
	}

	r.Categories = Buckets{
		Gaming:        pick(entries, keywords.CategoryGaming),
		Music:         pick(entries, keywords.CategoryMusic),
		Entertainment: pick(entries, keywords.CategoryEntertainment),
		Education:     pick(entries, keywords.CategoryEducation),
		Tech:          pick(entries, keywords.CategoryTech),
		Lifestyle:     pick(entries, keywords.CategoryLifestyle),
	}
	return r
}

func pick(entries []TrendEntry, c keywords.Category) []TrendEntry {
	out := []TrendEntry{}
	for _, e := range entries {
		if e.Category != c {
			continue
		}
		out = append(out, e)
		if len(out) == TopPerBucket {
			break
		}
	}
	return out
}
