package covdoc_test

import (
	"testing"

	"github.com/covdoc/covdoc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractTags(t *testing.T) {
	t.Parallel()

	t.Run("matches case-insensitively", func(t *testing.T) {
		t.Parallel()

		tags := covdoc.ExtractTags("The FENCE must be BROWN.", "")
		assert.Equal(t, []string{"brown", "fence"}, tags)
	})

	t.Run("includes the title in matching", func(t *testing.T) {
		t.Parallel()

		tags := covdoc.ExtractTags("no matching words here", "Fence Standards")
		assert.Equal(t, []string{"fence"}, tags)
	})

	t.Run("returns a sorted set with no duplicates", func(t *testing.T) {
		t.Parallel()

		tags := covdoc.ExtractTags("fence fencing boundary perimeter", "")
		assert.Equal(t, []string{"fence"}, tags)
	})

	t.Run("is deterministic", func(t *testing.T) {
		t.Parallel()

		text := "Exterior fence paint must be an approved brown color; sheds require ARC review."
		first := covdoc.ExtractTags(text, "")
		for i := 0; i < 10; i++ {
			assert.Equal(t, first, covdoc.ExtractTags(text, ""))
		}
	})

	t.Run("returns nothing for unrelated text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, covdoc.ExtractTags("the quick fox jumps over the lazy dog", ""))
	})
}

func TestQueryTags(t *testing.T) {
	t.Parallel()

	t.Run("derives tags from the same table used at indexing time", func(t *testing.T) {
		t.Parallel()

		query := "What color can my fence be?"
		queryTags, _ := covdoc.QueryTags(query)
		indexTags := covdoc.ExtractTags(query, "")
		assert.Equal(t, indexTags, queryTags)
	})

	t.Run("reports conflict-prone topics", func(t *testing.T) {
		t.Parallel()

		tags, conflictProne := covdoc.QueryTags("What color can my fence be?")
		require.Contains(t, tags, "fence")
		assert.True(t, conflictProne)
	})

	t.Run("ordinary topics are not conflict-prone", func(t *testing.T) {
		t.Parallel()

		tags, conflictProne := covdoc.QueryTags("Can I park my trailer on the driveway?")
		require.Contains(t, tags, "parking")
		assert.False(t, conflictProne)
	})

	t.Run("returns nothing for unrelated queries", func(t *testing.T) {
		t.Parallel()

		tags, conflictProne := covdoc.QueryTags("hello there")
		assert.Empty(t, tags)
		assert.False(t, conflictProne)
	})
}
