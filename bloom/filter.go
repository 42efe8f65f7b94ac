// Package bloom provides the crawl frontier's probabilistic seen-set.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// SeenSet tracks URLs already enqueued during a crawl run. It may report a
// never-seen URL as seen (a false positive skips that page), but never the
// reverse, so no URL is crawled twice.
type SeenSet struct {
	f *bloom.BloomFilter
}

// NewSeenSet creates a seen-set sized for n expected URLs with the given
// false positive rate.
func NewSeenSet(n uint, fpRate float64) *SeenSet {
	return &SeenSet{
		f: bloom.NewWithEstimates(n, fpRate),
	}
}

// Add records a URL as seen.
func (s *SeenSet) Add(url string) {
	s.f.AddString(url)
}

// Seen reports whether the URL has (probably) been recorded.
func (s *SeenSet) Seen(url string) bool {
	return s.f.TestString(url)
}

// EstimatedCount returns the approximate number of recorded URLs.
func (s *SeenSet) EstimatedCount() uint {
	return uint(s.f.ApproximatedSize())
}
