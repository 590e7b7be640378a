package ranking

// ViralRatio returns views per subscriber as a percentage. A subscriber count
// of zero is treated as one, so channels with hidden or empty subscriber
// counts rank as if they had a single subscriber.
func ViralRatio(views, subscribers uint64) float64 {
	return float64(views) / float64(flooredSubscribers(subscribers)) * 100
}

func flooredSubscribers(n uint64) uint64 {
	if n == 0 {
		return 1
	}
	return n
}
