package trends

import (
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Region is an ISO 3166 region code supported by the trending feed.
type Region string

const (
	RegionKR Region = "KR"
	RegionUS Region = "US"
)

// Regions lists the supported regions in report order.
var Regions = []Region{RegionKR, RegionUS}

// Key returns the report key for the region.
func (r Region) Key() string {
	switch r {
	case RegionKR:
		return "korea"
	case RegionUS:
		return "usa"
	default:
		return string(r)
	}
}

// Name returns the English display name of the region, e.g. "South Korea".
func (r Region) Name() string {
	reg, err := language.ParseRegion(string(r))
	if err != nil {
		return string(r)
	}
	return display.English.Regions().Name(reg)
}
