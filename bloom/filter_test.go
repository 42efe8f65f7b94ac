package bloom_test

import (
	"fmt"
	"testing"

	"github.com/covdoc/covdoc/bloom"
	"github.com/stretchr/testify/assert"
)

func TestSeenSet_AddAndSeen(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	assert.False(t, s.Seen("https://hrcaonline.org/page1"))

	s.Add("https://hrcaonline.org/page1")

	assert.True(t, s.Seen("https://hrcaonline.org/page1"))
	assert.False(t, s.Seen("https://hrcaonline.org/page2"))
}

func TestSeenSet_EstimatedCount(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	assert.Equal(t, uint(0), s.EstimatedCount())

	s.Add("https://hrcaonline.org/page1")
	s.Add("https://hrcaonline.org/page2")
	s.Add("https://hrcaonline.org/page3")

	count := s.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestSeenSet_AddIsIdempotent(t *testing.T) {
	t.Parallel()

	s := bloom.NewSeenSet(1000, 0.01)

	url := "https://hrcaonline.org/page1"

	s.Add(url)
	countAfterFirst := s.EstimatedCount()

	s.Add(url)
	s.Add(url)

	assert.Equal(t, countAfterFirst, s.EstimatedCount())
	assert.True(t, s.Seen(url))
}

func TestSeenSet_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	s := bloom.NewSeenSet(numItems, fpRate)

	for i := range numItems {
		s.Add(fmt.Sprintf("https://hrcaonline.org/added/%d", i))
	}

	// No false negatives by construction; measure the false positive side.
	falsePositives := 0
	for i := range testProbes {
		if s.Seen(fmt.Sprintf("https://hrcaonline.org/notadded/%d", i)) {
			falsePositives++
		}
	}

	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
