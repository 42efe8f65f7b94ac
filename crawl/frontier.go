package crawl

import (
	"strings"
	"sync"

	"github.com/covdoc/covdoc"
	"github.com/covdoc/covdoc/bloom"
)

// Frontier is an in-memory FIFO URL frontier with Bloom filter deduplication.
// One Frontier is created per crawl run and discarded with it, so the seen-set
// never grows across runs. Safe for concurrent use.
type Frontier struct {
	mu    sync.Mutex
	seen  *bloom.SeenSet
	queue []covdoc.DiscoveredLink
}

// NewFrontier creates a new Frontier sized for n expected URLs with the
// given false positive rate for deduplication.
func NewFrontier(n uint, fpRate float64) *Frontier {
	return &Frontier{
		seen: bloom.NewSeenSet(n, fpRate),
	}
}

// Push enqueues a link in discovery order. Returns false if the URL has
// already been seen. Fragments are stripped before deduplication, so URLs
// differing only by fragment are duplicates.
func (f *Frontier) Push(link covdoc.DiscoveredLink) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	url := stripFragment(link.URL)
	if f.seen.Seen(url) {
		return false
	}
	f.seen.Add(url)

	link.URL = url
	f.queue = append(f.queue, link)
	return true
}

// Pop returns the next link in FIFO order.
// The bool result is false if the frontier is empty.
func (f *Frontier) Pop() (covdoc.DiscoveredLink, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return covdoc.DiscoveredLink{}, false
	}
	link := f.queue[0]
	f.queue = f.queue[1:]
	return link, true
}

// Len returns the number of queued URLs.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// Seen returns true if the URL has been queued at some point during this
// run. Fragments are stripped before checking.
func (f *Frontier) Seen(rawURL string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seen.Seen(stripFragment(rawURL))
}

func stripFragment(url string) string {
	if idx := strings.Index(url, "#"); idx != -1 {
		return url[:idx]
	}
	return url
}
